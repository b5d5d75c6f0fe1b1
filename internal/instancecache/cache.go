/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package instancecache holds a read-only, watch-fed view of Bind9Instance
// objects keyed by owning cluster, so zone and record reconcilers can
// resolve an instance set without issuing a List call on every reconcile.
package instancecache

import (
	"fmt"
	"sync"
)

// Instance is the subset of Bind9Instance state reconcilers need to resolve
// endpoints and roles without reading the full CRD object.
type Instance struct {
	Name      string
	Namespace string
	Role      string
	Endpoint  string
	Ready     bool
	Labels    map[string]string
}

var (
	cache     = map[string][]Instance{}
	cacheLock sync.RWMutex
)

// Key identifies a cluster's instance set in the cache.
func Key(namespace, clusterName string) string {
	return fmt.Sprintf("%s/%s", namespace, clusterName)
}

// Set replaces the cached instance set for a cluster key.
func Set(key string, instances []Instance) {
	cacheLock.Lock()
	defer cacheLock.Unlock()
	cache[key] = append([]Instance(nil), instances...)
}

// Get returns a defensive copy of the cached instance set, or nil if absent.
func Get(key string) []Instance {
	cacheLock.RLock()
	defer cacheLock.RUnlock()
	entries, ok := cache[key]
	if !ok {
		return nil
	}
	out := make([]Instance, len(entries))
	copy(out, entries)
	return out
}

// Clear removes a cluster's cached instance set, e.g. on cluster deletion.
func Clear(key string) {
	cacheLock.Lock()
	defer cacheLock.Unlock()
	delete(cache, key)
}

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

// Package providerresolve resolves a DNSZone's cluster reference, which may
// name either a namespaced Bind9Cluster or a cluster-scoped Bind9Provider,
// preferring the namespaced form when both are present.
package providerresolve

import (
	"sync"
)

// Provider is the cached redirection target of a Bind9Provider.
type Provider struct {
	ClusterName      string
	ClusterNamespace string
}

var (
	cache     = map[string]Provider{}
	cacheLock sync.RWMutex
)

// Set caches the redirection target for a provider name.
func Set(providerName string, p Provider) {
	cacheLock.Lock()
	defer cacheLock.Unlock()
	cache[providerName] = p
}

// Get retrieves a cached provider redirection, and whether it was found.
func Get(providerName string) (Provider, bool) {
	cacheLock.RLock()
	defer cacheLock.RUnlock()
	p, ok := cache[providerName]
	return p, ok
}

// Clear removes a provider's cached redirection, e.g. on provider deletion.
func Clear(providerName string) {
	cacheLock.Lock()
	defer cacheLock.Unlock()
	delete(cache, providerName)
}

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

package sidecarclient

import (
	"fmt"

	"github.com/firestoned/bindy/pkg/consts"
)

// Kind classifies a sidecar call failure so reconcilers can pick the right
// status condition reason without re-inspecting the HTTP status (§4.1).
type Kind int

const (
	KindUnreachable Kind = iota
	KindBadRequest
	KindAuthFailed
	KindZoneNotFound
	KindInternalError
	KindNotImplemented
	KindGatewayError
	KindAlreadyExists
)

// Error is returned by every Client method on a non-2xx response or a
// transport-level failure.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bindcar call failed: %s (status %d)", e.Reason(), e.StatusCode)
	}
	return fmt.Sprintf("bindcar call failed: %s (status %d): %s", e.Reason(), e.StatusCode, e.Message)
}

// Reason maps the error kind to the status condition reason string used by
// the record and zone controllers.
func (e *Error) Reason() string {
	switch e.Kind {
	case KindBadRequest:
		return consts.ReasonBindcarBadRequest
	case KindAuthFailed:
		return consts.ReasonBindcarAuthFailed
	case KindZoneNotFound:
		return consts.ReasonZoneNotFound
	case KindInternalError:
		return consts.ReasonBindcarInternalError
	case KindNotImplemented:
		return consts.ReasonBindcarNotImplemented
	case KindGatewayError:
		return consts.ReasonGatewayError
	case KindAlreadyExists:
		return consts.ReasonZoneAlreadyExists
	default:
		return consts.ReasonBindcarUnreachable
	}
}

// IsNotFound reports whether err is a 404 from the sidecar.
func IsNotFound(err error) bool {
	sidecarErr, ok := err.(*Error)
	return ok && sidecarErr.Kind == KindZoneNotFound
}

// IsAlreadyExists reports whether err represents a creation attempt against
// an already-configured zone, which §6 treats as non-fatal.
func IsAlreadyExists(err error) bool {
	sidecarErr, ok := err.(*Error)
	return ok && sidecarErr.Kind == KindAlreadyExists
}

// IsRetryable reports whether the reconciler should requeue rather than mark
// the resource degraded. Unreachable, gateway and internal-error responses
// are transient, as is any error that is not a sidecar *Error;
// everything else reflects a configuration problem that requeuing alone
// will not fix.
func IsRetryable(err error) bool {
	sidecarErr, ok := err.(*Error)
	if !ok {
		return true
	}
	switch sidecarErr.Kind {
	case KindUnreachable, KindGatewayError, KindInternalError:
		return true
	default:
		return false
	}
}

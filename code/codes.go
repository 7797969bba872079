/*
   Copyright 2025 The DIRPX Authors

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

package code

import (
	"errors"
	"net/http"
)

// Codes derived from HTTP statuses.
const (
	BadRequest          Code = "bad_request"
	Unauthenticated     Code = "unauthenticated"
	PaymentRequired     Code = "payment_required"
	PermissionDenied    Code = "permission_denied"
	NotFound            Code = "not_found"
	MethodNotAllowed    Code = "method_not_allowed"
	NotAcceptable       Code = "not_acceptable"
	Timeout             Code = "timeout"
	Conflict            Code = "conflict"
	Gone                Code = "gone"
	PreconditionFailed  Code = "precondition_failed"
	TooLarge            Code = "too_large"
	UnsupportedMedia    Code = "unsupported_media"
	Invalid             Code = "invalid"
	Locked              Code = "locked"
	TooEarly            Code = "too_early"
	RateLimited         Code = "rate_limited"
	Unavailable         Code = "unavailable"
	Internal            Code = "internal"
	NotImplemented      Code = "not_implemented"
	DependencyFailed    Code = "dependency_failed"
	GatewayTimeout      Code = "gateway_timeout"
	ClientError         Code = "client_error"
	UnexpectedCondition Code = "unexpected"
)

var byStatus = map[int]Code{
	http.StatusBadRequest:            BadRequest,
	http.StatusUnauthorized:          Unauthenticated,
	http.StatusPaymentRequired:       PaymentRequired,
	http.StatusForbidden:             PermissionDenied,
	http.StatusNotFound:              NotFound,
	http.StatusMethodNotAllowed:      MethodNotAllowed,
	http.StatusNotAcceptable:         NotAcceptable,
	http.StatusRequestTimeout:        Timeout,
	http.StatusConflict:              Conflict,
	http.StatusGone:                  Gone,
	http.StatusPreconditionFailed:    PreconditionFailed,
	http.StatusRequestEntityTooLarge: TooLarge,
	http.StatusUnsupportedMediaType:  UnsupportedMedia,
	http.StatusUnprocessableEntity:   Invalid,
	http.StatusLocked:                Locked,
	http.StatusTooEarly:              TooEarly,
	http.StatusTooManyRequests:       RateLimited,
	http.StatusInternalServerError:   Internal,
	http.StatusNotImplemented:        NotImplemented,
	http.StatusBadGateway:            DependencyFailed,
	http.StatusServiceUnavailable:    Unavailable,
	http.StatusGatewayTimeout:        GatewayTimeout,
}

// FromStatus returns the default code for an HTTP status. Unlisted 4xx
// statuses map to ClientError, unlisted 5xx to Internal and anything else
// to UnexpectedCondition.
func FromStatus(status int) Code {
	if c, ok := byStatus[status]; ok {
		return c
	}
	switch {
	case status >= 400 && status < 500:
		return ClientError
	case status >= 500 && status < 600:
		return Internal
	default:
		return UnexpectedCondition
	}
}

// Coder is implemented by classified errors that choose their own code.
type Coder interface {
	ErrorCode() Code
}

// Resolve returns the code for err.
//
// A valid code from a Coder in the chain wins, unless err reports itself as
// a catch-all error (CatchAll() bool). Otherwise the code is derived from
// the first Status() int found in the chain, and Internal is the fallback.
func Resolve(err error) Code {
	if err == nil {
		return Empty
	}
	if !isCatchAll(err) {
		var cd Coder
		if errors.As(err, &cd) {
			if c := cd.ErrorCode(); Validate(c) == nil {
				return c
			}
		}
	}
	var st interface{ Status() int }
	if errors.As(err, &st) {
		return FromStatus(st.Status())
	}
	return Internal
}

func isCatchAll(err error) bool {
	ca, ok := err.(interface{ CatchAll() bool })
	return ok && ca.CatchAll()
}

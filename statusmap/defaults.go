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

package statusmap

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// defaultGRPC is the built-in HTTP status to gRPC code table. It follows the
// inverse of the grpc-gateway mapping where one exists.
var defaultGRPC = map[int]codes.Code{
	// 4xx
	http.StatusBadRequest:          codes.InvalidArgument,
	http.StatusUnauthorized:        codes.Unauthenticated,
	http.StatusForbidden:           codes.PermissionDenied,
	http.StatusNotFound:            codes.NotFound,
	http.StatusMethodNotAllowed:    codes.Unimplemented,
	http.StatusRequestTimeout:      codes.DeadlineExceeded,
	http.StatusConflict:            codes.Aborted,
	http.StatusGone:                codes.NotFound,
	http.StatusPreconditionFailed:  codes.FailedPrecondition,
	http.StatusUnprocessableEntity: codes.InvalidArgument,
	http.StatusTooEarly:            codes.FailedPrecondition,
	http.StatusTooManyRequests:     codes.ResourceExhausted,
	// 499 is nginx's "client closed request".
	499: codes.Canceled,

	// 5xx
	http.StatusInternalServerError: codes.Internal,
	http.StatusNotImplemented:      codes.Unimplemented,
	http.StatusBadGateway:          codes.Unavailable,
	http.StatusServiceUnavailable:  codes.Unavailable,
	http.StatusGatewayTimeout:      codes.DeadlineExceeded,
}

// defaultClass holds the per-class fallbacks, keyed by status/100.
var defaultClass = map[int]codes.Code{
	4: codes.FailedPrecondition,
	5: codes.Internal,
}

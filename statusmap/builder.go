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
	"dirpx.dev/httperr/code"
	"google.golang.org/grpc/codes"
)

// builder collects user adjustments before New validates and freezes them.
type builder struct {
	// codeOverride pins a gRPC code for a machine-readable error code.
	// Keys are raw and normalized in New.
	codeOverride map[string]codes.Code
	// statusOverride pins a gRPC code for an HTTP status.
	statusOverride map[int]codes.Code
	// class holds per-class fallbacks keyed by status/100.
	class map[int]codes.Code

	fallback codes.Code
}

func newBuilder() *builder {
	b := &builder{
		codeOverride:   make(map[string]codes.Code),
		statusOverride: make(map[int]codes.Code),
		class:          make(map[int]codes.Code, len(defaultClass)),
		fallback:       codes.Internal,
	}
	for k, v := range defaultClass {
		b.class[k] = v
	}
	return b
}

func freezeCodes(src map[code.Code]codes.Code) map[code.Code]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]codes.Code, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func freezeStatuses(src map[int]codes.Code) map[int]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[int]codes.Code, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

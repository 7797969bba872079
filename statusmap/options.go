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
	"google.golang.org/grpc/codes"
)

// Option adjusts a Mapper under construction.
type Option func(*builder)

// WithCodeOverride maps every error carrying the given code to g.
// The code is normalized; New fails when it is not canonical.
func WithCodeOverride(c string, g codes.Code) Option {
	return func(b *builder) { b.codeOverride[c] = g }
}

// WithStatusOverride maps the HTTP status to g, replacing the library default.
func WithStatusOverride(status int, g codes.Code) Option {
	return func(b *builder) { b.statusOverride[status] = g }
}

// WithClassFallback sets the code used for unlisted statuses of a class.
// class is the hundreds digit: 4 for 4xx, 5 for 5xx.
func WithClassFallback(class int, g codes.Code) Option {
	return func(b *builder) { b.class[class] = g }
}

// WithFallback replaces the global fallback (codes.Internal).
func WithFallback(g codes.Code) Option {
	return func(b *builder) { b.fallback = g }
}

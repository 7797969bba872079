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

// Package statusmap maps rendered HTTP errors onto gRPC status codes.
//
// A DynamicError carries an HTTP status and, through package code, a
// machine-readable code. Servers that expose the same handlers over gRPC
// need a gRPC code for that pair. Package statusmap resolves it in a way
// that is:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers can pin a gRPC code per error code or per status;
//   - total: every input resolves to some code.
//
// # Resolution model
//
// A Mapper resolves a gRPC code in the following order:
//
//  1. override for the error code (WithCodeOverride);
//  2. override for the HTTP status (WithStatusOverride);
//  3. library default for the HTTP status;
//  4. fallback for the status class, 4xx or 5xx (WithClassFallback);
//  5. global fallback (codes.Internal, see WithFallback).
//
// # Building a mapper
//
//	m, err := statusmap.New(
//	    statusmap.WithCodeOverride("user_banned", codes.PermissionDenied),
//	    statusmap.WithStatusOverride(http.StatusConflict, codes.AlreadyExists),
//	)
//	if err != nil {
//	    // invalid status or code
//	}
//
//	m.GRPCCode(http.StatusNotFound, code.NotFound) // codes.NotFound
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of which tier matched. It is
// meant for inspection and logging, not for machine parsing.
package statusmap

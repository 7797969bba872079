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

// Package httperr translates arbitrary handler errors into HTTP responses.
//
// A handler fails with any error value. At the boundary a Converter erases
// that value into a *DynamicError, and a Renderer turns the DynamicError into
// a Response. Call sites never need to know the full set of error types used
// by a service.
//
// # Classified errors
//
// An error type opts in by implementing Reportable:
//
//	type MissingUser struct{}
//
//	func (MissingUser) Error() string  { return "User not found" }
//	func (MissingUser) Status() int    { return http.StatusNotFound }
//
// The reason shown to clients defaults to Error(); implement Reasoner to
// override it.
//
// # Catch-all errors
//
// Any other error (typically built with fmt.Errorf and %w) is wrapped by the
// catch-all path when Config.CatchAll is enabled. It is reported as 500 unless
// a status was attached with WithStatus. With Config.Redact the client only
// ever sees Config.RedactedReason, while the instrumentation Sink still
// receives the full message:
//
//	err := fmt.Errorf("load user %d: %w", id, sql.ErrNoRows)
//	return httperr.WithStatus(err, http.StatusNotFound)
//
// # Rendering
//
// Renderers are selected statically through a type parameter, so different
// route groups can answer with different body shapes:
//
//	res := httperr.Try[User, render.JSON](conv, user, err)
//	value, resp := res.Respond()
//
// Every DynamicError is rendered at most once.
package httperr

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

package httperr

// Reportable is implemented by error types that classify themselves for HTTP.
//
// Status is mandatory and has no default. The client-facing reason is the
// value of Error() unless the type also implements Reasoner.
type Reportable interface {
	error

	// Status returns the HTTP status code used for the response.
	Status() int
}

// Reasoner lets a Reportable error present a client-facing reason that
// differs from its Error() text.
type Reasoner interface {
	Reason() string
}

// ReasonOf returns the client-facing reason of r.
func ReasonOf(r Reportable) string {
	if rs, ok := r.(Reasoner); ok {
		return rs.Reason()
	}
	return r.Error()
}

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

// Result is the outcome of a handler: a success value of type T or a
// DynamicError that renderer R turns into a response.
//
// The renderer is part of the type, so the choice is fixed by the handler
// signature:
//
//	func getUser(r *http.Request) httperr.Result[User, render.JSON]
type Result[T any, R Renderer] struct {
	value T
	err   *DynamicError
}

// Ok returns a successful Result.
func Ok[T any, R Renderer](v T) Result[T, R] {
	return Result[T, R]{value: v}
}

// Fail returns a failed Result. A nil err yields the zero success value.
func Fail[T any, R Renderer](err *DynamicError) Result[T, R] {
	return Result[T, R]{err: err}
}

// Try builds a Result from the usual (value, error) pair, converting a
// non-nil err with c.
func Try[T any, R Renderer](c *Converter, v T, err error) Result[T, R] {
	if d := c.Convert(err); d != nil {
		return Result[T, R]{err: d}
	}
	return Result[T, R]{value: v}
}

// IsOk reports whether the Result holds a success value.
func (r Result[T, R]) IsOk() bool { return r.err == nil }

// Value returns the success value, or the zero T on failure.
func (r Result[T, R]) Value() T { return r.value }

// Err returns the failure, or nil on success.
func (r Result[T, R]) Err() *DynamicError { return r.err }

// Unpack returns the Result as a (value, error) pair. The error is a nil
// interface on success.
func (r Result[T, R]) Unpack() (T, error) {
	if r.err == nil {
		return r.value, nil
	}
	var zero T
	return zero, r.err
}

// Respond renders the failure with R. On success it returns the value and a
// nil Response.
func (r Result[T, R]) Respond() (T, *Response) {
	if r.err == nil {
		return r.value, nil
	}
	resp := Render[R](r.err)
	var zero T
	return zero, &resp
}

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

import "net/http"

// Response is a transport-ready error response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Send writes the response to w. Statuses outside the range accepted by
// net/http are sent as 500.
func (r Response) Send(w http.ResponseWriter) error {
	h := w.Header()
	for k, vs := range r.Header {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	st := r.Status
	if st < 100 || st > 999 {
		st = http.StatusInternalServerError
	}
	w.WriteHeader(st)
	_, err := w.Write(r.Body)
	return err
}

// Renderer turns a DynamicError into a Response. Implementations must be
// total: every DynamicError renders to some Response.
//
// Renderers are selected through type parameters (Render, Result), so they
// should be usable as zero values.
type Renderer interface {
	Render(err *DynamicError) Response
}

// Text is the default Renderer: the status of the error and its reason as a
// plain text body.
type Text struct{}

// Render implements Renderer.
func (Text) Render(err *DynamicError) Response {
	return Response{
		Status: err.Status(),
		Header: http.Header{"Content-Type": {"text/plain; charset=utf-8"}},
		Body:   []byte(err.Reason()),
	}
}

// Render consumes err with the zero value of R.
func Render[R Renderer](err *DynamicError) Response {
	var r R
	return RenderWith(r, err)
}

// RenderWith consumes err with r. It panics if err was already rendered.
func RenderWith(r Renderer, err *DynamicError) Response {
	err.consume()
	if r == nil {
		r = Text{}
	}
	return r.Render(err)
}

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

// Package httpx adapts httperr to net/http handlers.
package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	"dirpx.dev/httperr"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Writer turns handler errors into HTTP responses.
//
// A zero Writer uses the default Converter and the Text renderer.
type Writer struct {
	Converter *httperr.Converter
	Renderer  httperr.Renderer
}

// Write converts err and sends the rendered response. A nil err writes
// nothing.
func (w Writer) Write(rw http.ResponseWriter, err error) {
	d := w.Converter.Convert(err)
	if d == nil {
		return
	}
	Send(rw, d, w.Renderer)
}

// Send renders d with r and writes the response. A nil r uses Text.
func Send(rw http.ResponseWriter, d *httperr.DynamicError, r httperr.Renderer) {
	resp := httperr.RenderWith(r, d)
	_ = resp.Send(rw)
}

// Handle returns a handler that calls fn and writes its value as JSON, or
// renders its error with R.
//
// proto.Message values are written with protojson, everything else with
// encoding/json. A value that fails to encode is reported as a catch-all
// error.
func Handle[T any, R httperr.Renderer](c *httperr.Converter, fn func(*http.Request) (T, error)) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		v, err := fn(req)
		respond(rw, c, httperr.Try[T, R](c, v, err))
	})
}

// HandleResult is Handle for functions that build their own Result.
func HandleResult[T any, R httperr.Renderer](c *httperr.Converter, fn func(*http.Request) httperr.Result[T, R]) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		respond(rw, c, fn(req))
	})
}

func respond[T any, R httperr.Renderer](rw http.ResponseWriter, c *httperr.Converter, res httperr.Result[T, R]) {
	v, resp := res.Respond()
	if resp != nil {
		_ = resp.Send(rw)
		return
	}
	body, err := encode(v)
	if err != nil {
		Send(rw, c.Convert(err), *new(R))
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write(body)
}

func encode(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

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

package render

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dirpx.dev/httperr"
	"dirpx.dev/httperr/code"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Content types written by this package.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeProblem = "application/problem+json"
)

// RetryAfterer is implemented by classified errors that ask the client to
// retry later. The hint is sent as a Retry-After header in whole seconds.
type RetryAfterer interface {
	RetryAfter() time.Duration
}

var (
	_ httperr.Renderer = JSON{}
	_ httperr.Renderer = Problem{}
)

// JSON renders {"status": 404, "code": "not_found", "message": "User not found"}.
type JSON struct{}

// Render implements httperr.Renderer.
func (JSON) Render(err *httperr.DynamicError) httperr.Response {
	return marshal(err, ContentTypeJSON, map[string]any{
		"status":  err.Status(),
		"code":    code.Resolve(err).String(),
		"message": err.Reason(),
	})
}

// Problem renders an RFC 7807 problem document with a "code" extension
// member. The type is always "about:blank", so the title is the status text.
type Problem struct{}

// Render implements httperr.Renderer.
func (Problem) Render(err *httperr.DynamicError) httperr.Response {
	title := http.StatusText(err.Status())
	if title == "" {
		title = "Error"
	}
	return marshal(err, ContentTypeProblem, map[string]any{
		"type":   "about:blank",
		"title":  title,
		"status": err.Status(),
		"detail": err.Reason(),
		"code":   code.Resolve(err).String(),
	})
}

// marshal builds the body through structpb and protojson. Values structpb
// rejects (invalid UTF-8 text) fall back to the plain text rendering.
func marshal(err *httperr.DynamicError, contentType string, fields map[string]any) httperr.Response {
	st, serr := structpb.NewStruct(fields)
	if serr != nil {
		return httperr.Text{}.Render(err)
	}
	body, merr := protojson.MarshalOptions{EmitUnpopulated: false}.Marshal(st)
	if merr != nil {
		return httperr.Text{}.Render(err)
	}
	h := http.Header{"Content-Type": {contentType}}
	if d, ok := retryAfter(err); ok {
		h.Set("Retry-After", strconv.Itoa(int(d/time.Second)))
	}
	return httperr.Response{Status: err.Status(), Header: h, Body: body}
}

// retryAfter reports a positive retry hint. Catch-all errors never send one.
func retryAfter(err *httperr.DynamicError) (time.Duration, bool) {
	if err.CatchAll() {
		return 0, false
	}
	var ra RetryAfterer
	if !errors.As(err, &ra) {
		return 0, false
	}
	d := ra.RetryAfter().Round(time.Second)
	if d <= 0 {
		return 0, false
	}
	return d, true
}

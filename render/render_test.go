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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"dirpx.dev/httperr"
	"dirpx.dev/httperr/code"
)

type missingUser struct{}

func (missingUser) Error() string { return "User not found" }
func (missingUser) Status() int   { return http.StatusNotFound }

type banned struct{}

func (banned) Error() string        { return "user 42 is banned" }
func (banned) Status() int          { return http.StatusForbidden }
func (banned) Reason() string       { return "Account suspended" }
func (banned) ErrorCode() code.Code { return "user_banned" }

type throttled struct{ after time.Duration }

func (throttled) Error() string               { return "Slow down" }
func (throttled) Status() int                 { return http.StatusTooManyRequests }
func (e throttled) RetryAfter() time.Duration { return e.after }

func convert(t *testing.T, cfg httperr.Config, err error) *httperr.DynamicError {
	t.Helper()
	d := httperr.New(cfg).Convert(err)
	if d == nil {
		t.Fatal("Convert returned nil")
	}
	return d
}

func decode(t *testing.T, resp httperr.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(resp.Body, &m); err != nil {
		t.Fatalf("body %q is not JSON: %v", resp.Body, err)
	}
	return m
}

func TestJSON(t *testing.T) {
	catchAll := httperr.Config{CatchAll: true, Redact: true, RedactedReason: httperr.DefaultRedactedReason}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"classified", missingUser{}, 404, "not_found", "User not found"},
		{"coder and reasoner", banned{}, 403, "user_banned", "Account suspended"},
		{"catch-all", errors.New("db: connection refused"), 500, "internal", "Server error"},
		{"catch-all with status", httperr.WithStatus(errors.New("no row"), http.StatusNotFound), 404, "not_found", "Server error"},
		{"catch-all ignores coder", fmt.Errorf("lookup: %w", banned{}), 500, "internal", "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := httperr.Render[JSON](convert(t, catchAll, tt.err))
			if resp.Status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.Status, tt.wantStatus)
			}
			if ct := resp.Header.Get("Content-Type"); ct != ContentTypeJSON {
				t.Fatalf("content type = %q", ct)
			}
			m := decode(t, resp)
			if m["status"] != float64(tt.wantStatus) || m["code"] != tt.wantCode || m["message"] != tt.wantMessage {
				t.Fatalf("body = %v", m)
			}
		})
	}
}

func TestProblem(t *testing.T) {
	resp := httperr.Render[Problem](convert(t, httperr.DefaultConfig(), missingUser{}))
	if resp.Status != http.StatusNotFound {
		t.Fatalf("status = %d", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != ContentTypeProblem {
		t.Fatalf("content type = %q", ct)
	}
	m := decode(t, resp)
	want := map[string]any{
		"type":   "about:blank",
		"title":  "Not Found",
		"status": float64(404),
		"detail": "User not found",
		"code":   "not_found",
	}
	for k, v := range want {
		if m[k] != v {
			t.Fatalf("%s = %v, want %v (body %v)", k, m[k], v, m)
		}
	}
}

type oddStatus struct{}

func (oddStatus) Error() string { return "odd" }
func (oddStatus) Status() int   { return 599 }

func TestProblem_UnknownStatusTitle(t *testing.T) {
	m := decode(t, httperr.Render[Problem](convert(t, httperr.DefaultConfig(), oddStatus{})))
	if m["title"] != "Error" {
		t.Fatalf("title = %v", m["title"])
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		name  string
		after time.Duration
		want  string
	}{
		{"seconds", 30 * time.Second, "30"},
		{"rounded", 1500 * time.Millisecond, "2"},
		{"zero", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := httperr.Render[JSON](convert(t, httperr.DefaultConfig(), throttled{tt.after}))
			if got := resp.Header.Get("Retry-After"); got != tt.want {
				t.Fatalf("Retry-After = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRetryAfter_NotSentForCatchAll(t *testing.T) {
	cfg := httperr.Config{CatchAll: true, Redact: true}
	err := fmt.Errorf("upstream: %w", throttled{time.Minute})
	resp := httperr.Render[Problem](convert(t, cfg, err))
	if got := resp.Header.Get("Retry-After"); got != "" {
		t.Fatalf("Retry-After = %q for a catch-all error", got)
	}
}

type badText struct{}

func (badText) Error() string { return "bad \xff text" }
func (badText) Status() int   { return http.StatusBadRequest }

func TestJSON_InvalidUTF8FallsBackToText(t *testing.T) {
	resp := httperr.Render[JSON](convert(t, httperr.DefaultConfig(), badText{}))
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if string(resp.Body) != "bad \xff text" {
		t.Fatalf("body = %q", resp.Body)
	}
}

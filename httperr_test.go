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

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

type missingUser struct{}

func (missingUser) Error() string { return "User not found" }
func (missingUser) Status() int   { return http.StatusNotFound }

type badInput struct{ field string }

func (e *badInput) Error() string  { return "invalid field " + e.field }
func (e *badInput) Status() int    { return http.StatusBadRequest }
func (e *badInput) Reason() string { return "Bad request" }

type teapot struct{}

func (teapot) Error() string { return "short and stout" }
func (teapot) Status() int   { return http.StatusTeapot }

// recorder is a Sink that keeps every event.
type recorder struct{ events []Event }

func (r *recorder) Record(e Event) error {
	r.events = append(r.events, e)
	return nil
}

func catchAllConfig(redact bool) Config {
	return Config{CatchAll: true, Redact: redact, Instrument: true, RedactedReason: DefaultRedactedReason}
}

func TestConvert_ClassifiedIdentity(t *testing.T) {
	conv := New(DefaultConfig())
	tests := []struct {
		name string
		err  Reportable
	}{
		{"value receiver", missingUser{}},
		{"pointer receiver with Reasoner", &badInput{field: "email"}},
		{"non-standard status", teapot{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := conv.Convert(tt.err)
			if d == nil {
				t.Fatal("Convert returned nil for non-nil error")
			}
			if d.Status() != tt.err.Status() {
				t.Fatalf("Status() = %d, want %d", d.Status(), tt.err.Status())
			}
			if d.Reason() != ReasonOf(tt.err) {
				t.Fatalf("Reason() = %q, want %q", d.Reason(), ReasonOf(tt.err))
			}
			if d.CatchAll() {
				t.Fatal("classified error must not be marked catch-all")
			}
			if d.Error() != tt.err.Error() {
				t.Fatalf("Error() = %q, want %q", d.Error(), tt.err.Error())
			}
		})
	}
}

func TestConvert_Nil(t *testing.T) {
	if d := New(DefaultConfig()).Convert(nil); d != nil {
		t.Fatalf("Convert(nil) = %v, want nil", d)
	}
	if d := New(DefaultConfig()).Wrap(nil); d != nil {
		t.Fatalf("Wrap(nil) = %v, want nil", d)
	}
}

func TestConvert_ReasonerOverridesError(t *testing.T) {
	d := From(New(DefaultConfig()), &badInput{field: "name"})
	if d.Reason() != "Bad request" {
		t.Fatalf("Reason() = %q, want Reasoner text", d.Reason())
	}
	if d.Error() != "invalid field name" {
		t.Fatalf("Error() = %q, want full message", d.Error())
	}
}

func TestConvert_ClassifiedIsNeverRedacted(t *testing.T) {
	d := New(catchAllConfig(true)).Convert(missingUser{})
	if d.Reason() != "User not found" {
		t.Fatalf("classified reason redacted: %q", d.Reason())
	}
}

func TestConvert_CatchAllDefaultsTo500(t *testing.T) {
	for _, redact := range []bool{true, false} {
		conv := New(catchAllConfig(redact))
		for _, err := range []error{
			errors.New("Missing user"),
			fmt.Errorf("load profile: %w", errors.New("connection reset")),
		} {
			d := conv.Convert(err)
			if d.Status() != http.StatusInternalServerError {
				t.Fatalf("redact=%v: Status() = %d, want 500", redact, d.Status())
			}
			if !d.CatchAll() {
				t.Fatalf("redact=%v: expected catch-all", redact)
			}
		}
	}
}

func TestConvert_CatchAllVerbatimWithoutRedaction(t *testing.T) {
	d := New(catchAllConfig(false)).Convert(errors.New("Missing user"))
	if d.Reason() != "Missing user" {
		t.Fatalf("Reason() = %q, want verbatim message", d.Reason())
	}
}

func TestConvert_RedactionIsIndependentOfMessage(t *testing.T) {
	conv := New(catchAllConfig(true))
	a := conv.Convert(errors.New("password for admin is hunter2"))
	b := conv.Convert(fmt.Errorf("dial tcp 10.0.0.7:5432: %w", errors.New("refused")))
	if a.Reason() != b.Reason() {
		t.Fatalf("redacted reasons differ: %q vs %q", a.Reason(), b.Reason())
	}
	if a.Reason() != DefaultRedactedReason {
		t.Fatalf("Reason() = %q, want %q", a.Reason(), DefaultRedactedReason)
	}
	if !strings.Contains(a.Error(), "hunter2") {
		t.Fatalf("Error() must keep the full message, got %q", a.Error())
	}
}

func TestConvert_CustomRedactedReason(t *testing.T) {
	cfg := catchAllConfig(true)
	cfg.RedactedReason = "Something went wrong"
	d := New(cfg).Convert(errors.New("boom"))
	if d.Reason() != "Something went wrong" {
		t.Fatalf("Reason() = %q", d.Reason())
	}
}

func TestConvert_EmptyRedactedReasonFallsBack(t *testing.T) {
	d := New(Config{CatchAll: true, Redact: true}).Convert(errors.New("boom"))
	if d.Reason() != DefaultRedactedReason {
		t.Fatalf("Reason() = %q, want default", d.Reason())
	}
}

func TestConvert_AttachedStatusHonoredUnderAnyRedaction(t *testing.T) {
	for _, redact := range []bool{true, false} {
		d := New(catchAllConfig(redact)).Convert(WithStatus(errors.New("Missing user"), http.StatusNotFound))
		if d.Status() != http.StatusNotFound {
			t.Fatalf("redact=%v: Status() = %d, want 404", redact, d.Status())
		}
		wantReason := "Missing user"
		if redact {
			wantReason = DefaultRedactedReason
		}
		if d.Reason() != wantReason {
			t.Fatalf("redact=%v: Reason() = %q, want %q", redact, d.Reason(), wantReason)
		}
	}
}

func TestConvert_AttachmentBelowContextIsFound(t *testing.T) {
	err := fmt.Errorf("handler: %w", WithStatus(errors.New("no row"), http.StatusConflict))
	d := New(catchAllConfig(true)).Convert(err)
	if d.Status() != http.StatusConflict {
		t.Fatalf("Status() = %d, want 409", d.Status())
	}
}

func TestConvert_AttachedStatusOnClassifiedTakesCatchAllPath(t *testing.T) {
	d := New(catchAllConfig(true)).Convert(WithStatus(missingUser{}, http.StatusGone))
	if !d.CatchAll() || d.Status() != http.StatusGone {
		t.Fatalf("got catchAll=%v status=%d, want catch-all 410", d.CatchAll(), d.Status())
	}
	if d.Reason() != DefaultRedactedReason {
		t.Fatalf("Reason() = %q, want redacted text", d.Reason())
	}
}

func TestConvert_CatchAllDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Redact = false
	d := New(cfg).Convert(WithStatus(errors.New("Missing user"), http.StatusNotFound))
	if d.Status() != http.StatusInternalServerError {
		t.Fatalf("Status() = %d, want 500 when catch-all support is off", d.Status())
	}
	if d.Reason() != DefaultRedactedReason {
		t.Fatalf("Reason() = %q, want redacted text when catch-all support is off", d.Reason())
	}
}

func TestConvert_DynamicErrorIsNotErasedTwice(t *testing.T) {
	rec := &recorder{}
	conv := New(DefaultConfig(), WithSink(rec))
	d := conv.Convert(missingUser{})
	if again := conv.Convert(d); again != d {
		t.Fatal("Convert(*DynamicError) must return the same value")
	}
	if again := conv.Wrap(d); again != d {
		t.Fatal("Wrap(*DynamicError) must return the same value")
	}
	if len(rec.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(rec.events))
	}
}

func TestDynamicError_UnwrapReachesOriginal(t *testing.T) {
	root := errors.New("root cause")
	conv := New(catchAllConfig(true))

	d := conv.Convert(WithStatus(fmt.Errorf("ctx: %w", root), http.StatusBadGateway))
	if !errors.Is(d, root) {
		t.Fatal("errors.Is must find the root cause through DynamicError")
	}
	var se *StatusError
	if !errors.As(d, &se) || se.AttachedStatus() != http.StatusBadGateway {
		t.Fatal("errors.As must find the attachment through DynamicError")
	}

	var mu missingUser
	if !errors.As(conv.Convert(missingUser{}), &mu) {
		t.Fatal("errors.As must find the classified value")
	}
}

func TestDynamicError_TypeName(t *testing.T) {
	conv := New(catchAllConfig(true))
	if got := conv.Convert(&badInput{}).TypeName(); got != "*httperr.badInput" {
		t.Fatalf("TypeName() = %q", got)
	}
	got := conv.Convert(WithStatus(fmt.Errorf("x: %w", errors.New("y")), 404)).TypeName()
	if got != "*fmt.wrapError" {
		t.Fatalf("catch-all TypeName() = %q, want the original error type", got)
	}
}

func TestDynamicError_Format(t *testing.T) {
	d := New(DefaultConfig()).Convert(missingUser{})
	if got := fmt.Sprintf("%v", d); got != "User not found" {
		t.Fatalf("%%v = %q", got)
	}
	if got := fmt.Sprintf("%+v", d); got != "httperr.missingUser(404): User not found" {
		t.Fatalf("%%+v = %q", got)
	}
	if got := fmt.Sprintf("%q", d); got != `"User not found"` {
		t.Fatalf("%%q = %q", got)
	}
}

func TestNilConverterUsesDefaults(t *testing.T) {
	var conv *Converter
	d := conv.Convert(errors.New("boom"))
	if d.Status() != http.StatusInternalServerError || d.Reason() != DefaultRedactedReason {
		t.Fatalf("got %d %q", d.Status(), d.Reason())
	}
	if conv.Config() != DefaultConfig() {
		t.Fatal("nil Converter must report the default config")
	}
}

func TestConvert_WrappedDynamicErrorIsReused(t *testing.T) {
	rec := &recorder{}
	conv := New(catchAllConfig(true), WithSink(rec))

	_, err := Try[int, Text](conv, 0, missingUser{}).Unpack()
	wrapped := fmt.Errorf("load page: %w", err)

	d := conv.Convert(wrapped)
	if d != err {
		t.Fatal("Convert must reuse the DynamicError found in the chain")
	}
	if d.Status() != http.StatusNotFound || d.Reason() != "User not found" || d.CatchAll() {
		t.Fatalf("got %d %q catchAll=%v, want the original classification", d.Status(), d.Reason(), d.CatchAll())
	}
	if again := conv.Convert(WithStatus(wrapped, http.StatusConflict)); again != d {
		t.Fatal("an attachment above a converted error must not convert it again")
	}
	if len(rec.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(rec.events))
	}
}

func TestConvert_TypedNilTakesCatchAllPath(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"catch-all enabled", catchAllConfig(false)},
		{"catch-all disabled", DefaultConfig()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			conv := New(tt.cfg, WithSink(rec))

			var bad *badInput
			var err error = bad
			d := conv.Convert(err)
			if d == nil {
				t.Fatal("a typed nil is a failure, Convert must not return nil")
			}
			if d.Status() != http.StatusInternalServerError || !d.CatchAll() {
				t.Fatalf("got %d catchAll=%v", d.Status(), d.CatchAll())
			}
			if got := d.Error(); got != "httperr: nil *httperr.badInput returned as error" {
				t.Fatalf("Error() = %q", got)
			}
			if got := d.TypeName(); got != "*httperr.badInput" {
				t.Fatalf("TypeName() = %q", got)
			}
			if got := fmt.Sprintf("%+v", d); got != "*httperr.badInput(500): httperr: nil *httperr.badInput returned as error" {
				t.Fatalf("%%+v = %q", got)
			}
			_ = Render[Text](d)
			if len(rec.events) != 1 || rec.events[0].Message != d.Error() {
				t.Fatalf("events = %+v", rec.events)
			}
		})
	}

	var bad *badInput
	if d := New(catchAllConfig(true)).Wrap(bad); d == nil || d.Status() != http.StatusInternalServerError {
		t.Fatalf("Wrap(typed nil) = %v", d)
	}
}

func TestDynamicError_NilReceiver(t *testing.T) {
	var d *DynamicError
	if d.Status() != http.StatusInternalServerError {
		t.Fatalf("Status() = %d", d.Status())
	}
	if d.Reason() != DefaultRedactedReason {
		t.Fatalf("Reason() = %q", d.Reason())
	}
	if d.Error() != "<nil>" || d.Unwrap() != nil || d.TypeName() != "" || d.CatchAll() {
		t.Fatal("nil DynamicError accessors must return zero values")
	}
}

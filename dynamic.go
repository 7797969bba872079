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
	"fmt"
	"io"
	"net/http"
)

// DynamicError owns exactly one Reportable value behind a uniform handle.
//
// It is created by a Converter at the point a handler fails and is consumed
// once by a Renderer. A DynamicError is not safe for concurrent use; it
// belongs to the request that produced it.
type DynamicError struct {
	inner    Reportable
	typeName string
	catchAll bool
	consumed bool
}

// Status forwards to the held error. A nil DynamicError reports 500.
func (d *DynamicError) Status() int {
	if d == nil {
		return http.StatusInternalServerError
	}
	return d.inner.Status()
}

// Reason forwards to the held error. For catch-all errors under redaction
// this is the redacted text. A nil DynamicError reports
// DefaultRedactedReason.
func (d *DynamicError) Reason() string {
	if d == nil {
		return DefaultRedactedReason
	}
	return ReasonOf(d.inner)
}

// Error returns the full message of the held error. It is never redacted and
// is meant for logs, not for clients.
func (d *DynamicError) Error() string {
	if d == nil {
		return "<nil>"
	}
	return d.inner.Error()
}

// Unwrap returns the held error so errors.Is / errors.As reach the original
// value and its causes.
func (d *DynamicError) Unwrap() error {
	if d == nil {
		return nil
	}
	return d.inner
}

// TypeName returns the dynamic type of the erased error, e.g.
// "*users.MissingUser" or "*fmt.wrapError".
func (d *DynamicError) TypeName() string {
	if d == nil {
		return ""
	}
	return d.typeName
}

// CatchAll reports whether the error was not classified by its author and
// went through the catch-all path.
func (d *DynamicError) CatchAll() bool { return d != nil && d.catchAll }

// Format implements fmt.Formatter. %+v adds the erased type and the status.
func (d *DynamicError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "%s(%d): %s", d.TypeName(), d.Status(), d.Error())
			return
		}
		_, _ = io.WriteString(s, d.Error())
	case 's':
		_, _ = io.WriteString(s, d.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", d.Error())
	}
}

// consume marks d as rendered. Rendering twice is a programming error.
func (d *DynamicError) consume() {
	if d.consumed {
		panic("httperr: DynamicError rendered more than once")
	}
	d.consumed = true
}

// From erases a classified error of any concrete type. It is the generic
// form of Converter.Wrap.
func From[E Reportable](c *Converter, e E) *DynamicError {
	return c.Wrap(e)
}

func typeNameOf(r Reportable) string {
	if ca, ok := r.(*catchAll); ok {
		if nv, ok := ca.err.(*nilValueError); ok {
			return nv.typ
		}
		return fmt.Sprintf("%T", stripStatus(ca.err))
	}
	return fmt.Sprintf("%T", r)
}

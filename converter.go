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
	"net/http"
)

// DefaultRedactedReason is the client-facing text of redacted catch-all errors.
const DefaultRedactedReason = "Server error"

// Config holds the process-wide policy switches. It is resolved once at
// startup and bound into a Converter; it is never mutated afterwards.
type Config struct {
	// CatchAll enables the catch-all path for errors that do not implement
	// Reportable. When disabled such errors are still converted, but always
	// as a redacted 500 and without honoring attached statuses.
	CatchAll bool `yaml:"catch_all" mapstructure:"catch_all"`

	// Redact replaces the reason of catch-all errors with RedactedReason.
	// Attached statuses are still honored.
	Redact bool `yaml:"redact" mapstructure:"redact"`

	// Instrument enables the Sink call on every DynamicError construction.
	Instrument bool `yaml:"instrument" mapstructure:"instrument"`

	// RedactedReason is the text shown instead of redacted messages.
	RedactedReason string `yaml:"redacted_reason" mapstructure:"redacted_reason" validate:"required,max=256"`
}

// DefaultConfig returns the default policy: instrumentation on, catch-all
// support off, redaction on.
func DefaultConfig() Config {
	return Config{
		CatchAll:       false,
		Redact:         true,
		Instrument:     true,
		RedactedReason: DefaultRedactedReason,
	}
}

// Option configures a Converter at construction time.
type Option func(*Converter)

// WithSink sets the instrumentation sink. A nil sink disables recording.
func WithSink(s Sink) Option {
	return func(c *Converter) {
		if s == nil {
			s = nopSink{}
		}
		c.sink = s
	}
}

// Converter erases handler errors into DynamicError values according to an
// immutable Config. It is safe for concurrent use.
//
// A nil *Converter behaves like New(DefaultConfig()).
type Converter struct {
	cfg  Config
	sink Sink
}

// New builds a Converter for cfg. An empty RedactedReason is replaced by
// DefaultRedactedReason.
func New(cfg Config, opts ...Option) *Converter {
	if cfg.RedactedReason == "" {
		cfg.RedactedReason = DefaultRedactedReason
	}
	c := &Converter{cfg: cfg, sink: nopSink{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = New(DefaultConfig())

// Config returns a copy of the bound configuration.
func (c *Converter) Config() Config {
	if c == nil {
		return defaultConverter.cfg
	}
	return c.cfg
}

// Wrap erases a classified error. Wrapping a *DynamicError returns it
// unchanged. Wrap returns nil for a nil r; a nil pointer (or other nil
// value) held in r takes the catch-all path.
func (c *Converter) Wrap(r Reportable) *DynamicError {
	if c == nil {
		c = defaultConverter
	}
	if r == nil {
		return nil
	}
	if d, ok := r.(*DynamicError); ok && d != nil {
		return d
	}
	if isNilValue(r) {
		return c.erase(c.catchAll(nilValue(r)), true)
	}
	return c.erase(r, false)
}

// Convert erases any error into a DynamicError. It returns nil for nil.
//
// Resolution:
//  1. a nil pointer (or other nil value) stored in err takes the catch-all
//     path as a 500;
//  2. a *DynamicError anywhere in the chain is returned unchanged, so an
//     error that was converted once and then wrapped with more context is
//     never erased or recorded again;
//  3. an error whose top layer is a *StatusError takes the catch-all path;
//  4. a Reportable error is erased as is;
//  5. anything else takes the catch-all path, using the outermost attached
//     status or 500.
func (c *Converter) Convert(err error) *DynamicError {
	if c == nil {
		c = defaultConverter
	}
	if err == nil {
		return nil
	}
	if isNilValue(err) {
		return c.erase(c.catchAll(nilValue(err)), true)
	}
	var d *DynamicError
	if errors.As(err, &d) && d != nil {
		return d
	}
	if _, attached := err.(*StatusError); !attached {
		if r, ok := err.(Reportable); ok {
			return c.erase(r, false)
		}
	}
	return c.erase(c.catchAll(err), true)
}

func (c *Converter) catchAll(err error) *catchAll {
	ca := &catchAll{err: err, status: http.StatusInternalServerError}
	if !c.cfg.CatchAll {
		ca.redacted = true
		ca.reason = c.cfg.RedactedReason
		return ca
	}
	if st, ok := StatusOf(err); ok {
		ca.status = st
	}
	if c.cfg.Redact {
		ca.redacted = true
		ca.reason = c.cfg.RedactedReason
	}
	return ca
}

func (c *Converter) erase(r Reportable, catchAll bool) *DynamicError {
	d := &DynamicError{inner: r, typeName: typeNameOf(r), catchAll: catchAll}
	if c.cfg.Instrument {
		c.record(d)
	}
	return d
}

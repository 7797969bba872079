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

// Package logsink provides zerolog-backed httperr.Sink implementations.
package logsink

import (
	"io"
	"strings"
	"time"

	"dirpx.dev/httperr"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// Field names written for every record.
const (
	FieldStatus   = "status"
	FieldType     = "error_type"
	FieldCatchAll = "catch_all"
	FieldService  = "service"
)

// Message is the log message of every record.
const Message = "http error"

// Config controls the zerolog output.
type Config struct {
	// Format is "json" (default) or "console".
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=json console"`
	// NoColor disables colors in console output.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
	// Timestamp adds a time field to every record.
	Timestamp bool `yaml:"timestamp" mapstructure:"timestamp"`
	// Service, when set, is added to every record.
	Service string `yaml:"service" mapstructure:"service"`
}

var _ httperr.Sink = (*Zerolog)(nil)

// Zerolog records every DynamicError construction as an error-level event.
type Zerolog struct {
	Logger zerolog.Logger
}

// New returns a Zerolog sink writing to w.
func New(w io.Writer, cfg Config) *Zerolog {
	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: time.RFC3339}
	}
	zc := zerolog.New(w).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Service != "" {
		zc = zc.Str(FieldService, cfg.Service)
	}
	return &Zerolog{Logger: zc.Logger()}
}

// Record implements httperr.Sink. The error field holds the full,
// unredacted message. Event.Fields are written before the standard fields.
func (z *Zerolog) Record(e httperr.Event) error {
	ev := z.Logger.Error()
	if len(e.Fields) > 0 {
		ev = ev.Fields(e.Fields)
	}
	ev.Int(FieldStatus, e.Status).
		Str(FieldType, e.Type).
		Bool(FieldCatchAll, e.CatchAll).
		Str(zerolog.ErrorFieldName, e.Message).
		Msg(Message)
	return nil
}

// NewAsync returns a Zerolog sink that writes through a diode ring buffer
// of size records, so a slow writer drops records instead of blocking
// request handling. onDrop, if set, receives the number of dropped records.
//
// The returned Closer flushes the buffer and must be closed on shutdown.
func NewAsync(w io.Writer, size int, cfg Config, onDrop func(missed int)) (*Zerolog, io.Closer) {
	if size <= 0 {
		size = 1000
	}
	dw := diode.NewWriter(w, size, 10*time.Millisecond, func(missed int) {
		if onDrop != nil {
			onDrop(missed)
		}
	})
	return New(dw, cfg), dw
}

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

// Event is the record handed to a Sink when a DynamicError is constructed.
type Event struct {
	// Status is the final, resolved status (attachments included).
	Status int
	// Message is the full error message. It is never redacted.
	Message string
	// Type is the dynamic type of the erased error.
	Type string
	// CatchAll is true for errors that went through the catch-all path.
	CatchAll bool
	// Fields holds extra structured data added by an EventHook.
	Fields map[string]any
}

// EventHook lets an error type shape its own log record. LogEvent receives
// the record built by the Converter and returns the one handed to the Sink;
// it may rewrite Message, add Fields or drop the record by returning
// ok == false. It does not affect the rendered response.
//
// For catch-all errors the hook is looked up on the wrapped error, after
// attachment layers are stripped.
type EventHook interface {
	LogEvent(e Event) (out Event, ok bool)
}

// Sink records error occurrences. Record is called once per DynamicError
// construction, on the request goroutine; implementations backed by slow
// storage should buffer and drop rather than block.
//
// Errors returned by Record are ignored.
type Sink interface {
	Record(e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event) error

// Record calls f(e).
func (f SinkFunc) Record(e Event) error { return f(e) }

type nopSink struct{}

func (nopSink) Record(Event) error { return nil }

// record hands d to the sink. Failures, including panics, never reach the
// request path.
func (c *Converter) record(d *DynamicError) {
	defer func() { _ = recover() }()
	e := Event{
		Status:   d.Status(),
		Message:  d.Error(),
		Type:     d.typeName,
		CatchAll: d.catchAll,
	}
	if h, ok := hookOf(d); ok {
		var keep bool
		if e, keep = h.LogEvent(e); !keep {
			return
		}
	}
	_ = c.sink.Record(e)
}

func hookOf(d *DynamicError) (EventHook, bool) {
	var v any = d.inner
	if ca, ok := d.inner.(*catchAll); ok {
		v = stripStatus(ca.err)
	}
	h, ok := v.(EventHook)
	return h, ok
}

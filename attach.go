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

import "errors"

// StatusError carries an HTTP status retrofitted onto an unclassified error.
//
// It is transparent for display and for errors.Is / errors.As: Error returns
// the wrapped message unchanged and Unwrap returns the wrapped error.
//
// StatusError is intentionally not Reportable. An attached status only
// changes the status code of a catch-all error, never its redaction.
type StatusError struct {
	err    error
	status int
}

// Error returns the message of the wrapped error.
func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.err.Error()
}

// Unwrap returns the wrapped error.
func (e *StatusError) Unwrap() error { return e.err }

// AttachedStatus returns the attached HTTP status.
func (e *StatusError) AttachedStatus() int { return e.status }

// WithStatus attaches an HTTP status to err. If err is nil, WithStatus
// returns nil.
//
// Attachment layers at the top of err are collapsed, so attaching twice
// leaves a single layer holding the last status:
//
//	err = httperr.WithStatus(err, http.StatusNotFound)
//	err = httperr.WithStatus(err, http.StatusGone) // status is now 410
//
// An attachment hidden under other context (fmt.Errorf("...: %w", err)) is
// left in place; StatusOf returns the outermost attachment, so the last
// write still wins.
func WithStatus(err error, status int) error {
	if err == nil {
		return nil
	}
	return &StatusError{err: stripStatus(err), status: status}
}

// StatusOf returns the outermost status attached to err with WithStatus.
func StatusOf(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.status, true
	}
	return 0, false
}

// stripStatus removes attachment layers from the top of err.
func stripStatus(err error) error {
	for {
		se, ok := err.(*StatusError)
		if !ok || se == nil {
			return err
		}
		err = se.err
	}
}

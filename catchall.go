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

// catchAll adapts an unclassified error to Reportable.
type catchAll struct {
	err      error
	status   int
	redacted bool
	reason   string
}

func (c *catchAll) Error() string { return c.err.Error() }

func (c *catchAll) Unwrap() error { return c.err }

func (c *catchAll) Status() int { return c.status }

// Reason returns the redacted text when redaction applies, the full message
// otherwise.
func (c *catchAll) Reason() string {
	if c.redacted {
		return c.reason
	}
	return c.err.Error()
}

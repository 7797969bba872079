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

// Package code provides machine-readable error codes for rendered responses.
//
// A code is a short, lowercase, underscore-separated identifier such as
// "not_found" or "internal". Structured renderers put it next to the HTTP
// status so clients can branch on something more stable than message text.
//
// Codes are derived from the HTTP status by default (FromStatus). A
// classified error can pick its own code by implementing Coder; catch-all
// errors always use the derived code.
package code

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

// Package render provides structured Renderers for httperr.
//
// JSON writes {"status", "code", "message"} and Problem writes an RFC 7807
// problem document. Both use protojson over structpb values, take the code
// from package code and honor RetryAfter on classified errors.
//
// Renderers are zero-size values and are selected by type parameter:
//
//	resp := httperr.Render[render.JSON](err)
package render

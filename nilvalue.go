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
	"reflect"
)

// nilValueError replaces an error interface holding a nil pointer, map,
// slice, func or chan. Calling methods on such a value usually panics.
type nilValueError struct {
	typ string
}

func (e *nilValueError) Error() string {
	return "httperr: nil " + e.typ + " returned as error"
}

func nilValue(v any) error {
	return &nilValueError{typ: fmt.Sprintf("%T", v)}
}

func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

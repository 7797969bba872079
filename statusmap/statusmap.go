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

package statusmap

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/httperr/code"
	"google.golang.org/grpc/codes"
)

// ErrInvalidRule is wrapped by every error New returns.
var ErrInvalidRule = errors.New("statusmap: invalid rule")

// Mapper resolves gRPC codes for rendered HTTP errors.
type Mapper interface {
	// GRPCCode returns the gRPC code for an HTTP status and error code.
	// c may be code.Empty.
	GRPCCode(status int, c code.Code) codes.Code

	// Explain describes which tier resolved GRPCCode(status, c).
	Explain(status int, c code.Code) string
}

// New builds an immutable Mapper from the library defaults and opts.
//
// Errors indicate an override for a status outside 100..999, a class outside
// 1..9 or a code that is not canonical.
func New(opts ...Option) (Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	byCode := make(map[code.Code]codes.Code, len(b.codeOverride))
	for raw, g := range b.codeOverride {
		c, err := code.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: code override %q: %w", ErrInvalidRule, raw, err)
		}
		byCode[c] = g
	}
	for st := range b.statusOverride {
		if st < 100 || st > 999 {
			return nil, fmt.Errorf("%w: status override %d out of range", ErrInvalidRule, st)
		}
	}
	for cl := range b.class {
		if cl < 1 || cl > 9 {
			return nil, fmt.Errorf("%w: status class %d out of range", ErrInvalidRule, cl)
		}
	}

	defaults := make(map[int]codes.Code, len(defaultGRPC))
	for k, v := range defaultGRPC {
		defaults[k] = v
	}

	return &mapper{
		codeOverride:   freezeCodes(byCode),
		statusOverride: freezeStatuses(b.statusOverride),
		defaults:       defaults,
		class:          freezeStatuses(b.class),
		fallback:       b.fallback,
	}, nil
}

// Default returns a Mapper holding only the library defaults.
func Default() Mapper {
	m, _ := New()
	return m
}

type mapper struct {
	codeOverride   map[code.Code]codes.Code
	statusOverride map[int]codes.Code
	defaults       map[int]codes.Code
	class          map[int]codes.Code
	fallback       codes.Code
}

func (m *mapper) GRPCCode(status int, c code.Code) codes.Code {
	g, _ := m.resolve(status, c)
	return g
}

// resolve returns the code and the tier that produced it.
func (m *mapper) resolve(status int, c code.Code) (codes.Code, string) {
	if c != code.Empty {
		if g, ok := m.codeOverride[c]; ok {
			return g, "code-override"
		}
	}
	if g, ok := m.statusOverride[status]; ok {
		return g, "status-override"
	}
	if g, ok := m.defaults[status]; ok {
		return g, "default"
	}
	if status >= 100 && status <= 999 {
		if g, ok := m.class[status/100]; ok {
			return g, "class"
		}
	}
	return m.fallback, "fallback"
}

// Explain output looks like:
//
//	status=503 code="unavailable"
//	grpc: source=default -> UNAVAILABLE(14)
func (m *mapper) Explain(status int, c code.Code) string {
	g, src := m.resolve(status, c)
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "status=%d code=%q\n", status, c)
	_, _ = fmt.Fprintf(&b, "grpc: source=%s -> %s(%d)", src, strings.ToUpper(g.String()), int(g))
	return b.String()
}

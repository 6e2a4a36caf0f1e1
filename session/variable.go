// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

// Variable is the single binding shape spec.md §3 describes for user
// variables, constants, and synthetic temporaries alike: either an
// already-resolved literal value, or an unresolved source expression
// resolved lazily and then cached.
//
// Temporaries created by NewTemp reuse this same shape, but the
// reducer always resolves them synchronously via SetTempValue before
// they can be read back — the Source field exists on a temp only
// transiently between NewTemp and the matching SetTempValue/Source
// call. Deferred, evaluate-on-demand argument text is a different
// concern entirely: a higher-order built-in's Special parameters carry
// their raw text straight through as a session.Arg (see DESIGN.md's
// eval entry), never round-tripping through a Variable at all.
type Variable struct {
	Name     string
	Resolved bool
	Value    float64
	Source   string
}

func newLiteral(name string, value float64) *Variable {
	return &Variable{Name: name, Resolved: true, Value: value}
}

func newUnresolved(name, source string) *Variable {
	return &Variable{Name: name, Source: source}
}

package vdom

import (
	"fmt"
	"strconv"
)

// Value is any style or attribute value. The engine depends only on a
// deterministic string form: two values are equal iff their canonical
// strings are equal, so equal-looking but distinct values never cause
// spurious writes to the live output.
type Value interface {
	CanonicalString() string
}

// Str is a plain string value.
type Str string

// CanonicalString implements Value.
func (s Str) CanonicalString() string { return string(s) }

// Int is an integer value.
type Int int

// CanonicalString implements Value.
func (i Int) CanonicalString() string { return strconv.Itoa(int(i)) }

// Float is a floating point value.
type Float float64

// CanonicalString implements Value.
func (f Float) CanonicalString() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

// Bool is a boolean value.
type Bool bool

// CanonicalString implements Value.
func (b Bool) CanonicalString() string {
	if b {
		return "true"
	}
	return "false"
}

// Px is a CSS pixel length.
type Px float64

// CanonicalString implements Value.
func (p Px) CanonicalString() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64) + "px"
}

// Pct is a CSS percentage length.
type Pct float64

// CanonicalString implements Value.
func (p Pct) CanonicalString() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64) + "%"
}

// Color is an RGBA color value.
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Hex creates a color value that canonicalizes to the given hex literal.
func Hex(s string) Str { return Str(s) }

// CanonicalString implements Value.
func (c Color) CanonicalString() string {
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B,
		strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Valuef formats into a Str value.
func Valuef(format string, args ...any) Str {
	return Str(fmt.Sprintf(format, args...))
}

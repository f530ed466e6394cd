package vdom

import "testing"

func TestCanonicalStrings(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"str", Str("red"), "red"},
		{"int", Int(42), "42"},
		{"float", Float(1.5), "1.5"},
		{"float whole", Float(2), "2"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"px", Px(10), "10px"},
		{"px fractional", Px(1.5), "1.5px"},
		{"pct", Pct(50), "50%"},
		{"rgb", RGB(255, 0, 128), "rgb(255, 0, 128)"},
		{"rgba", Color{R: 1, G: 2, B: 3, A: 0.5}, "rgba(1, 2, 3, 0.5)"},
		{"hex", Hex("#fff"), "#fff"},
		{"valuef", Valuef("%dem", 2), "2em"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.CanonicalString(); got != tt.want {
				t.Errorf("CanonicalString() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Distinct value types with equal canonical strings must compare equal
// for diffing purposes.
func TestCanonicalEquivalence(t *testing.T) {
	if Str("10px").CanonicalString() != Px(10).CanonicalString() {
		t.Error("Str(10px) and Px(10) should canonicalize identically")
	}
	if Str("42").CanonicalString() != Int(42).CanonicalString() {
		t.Error("Str(42) and Int(42) should canonicalize identically")
	}
}

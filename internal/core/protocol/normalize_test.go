package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		keepDigits bool
		want       string
	}{
		{"lowercase and trim", "  Wild Blueberries  ", false, "wild blueberries"},
		{"strip parenthetical", "Apples (organic, 2 lbs)", false, "apples"},
		{"nested parenthetical", "Figs (dried (unsweetened))", false, "figs"},
		{"punctuation to space", "sweet-potato, diced", false, "sweet potato diced"},
		{"digits dropped", "2 carrots", false, "carrots"},
		{"digits kept", "2 carrots", true, "2 carrots"},
		{"collapse whitespace", "green    onion", false, "green onion"},
		{"unmatched close paren", "lemon) juice", false, "lemon juice"},
		{"empty", "   ", false, ""},
		{"only punctuation", "!!!", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input, tc.keepDigits))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		keepDigits := rapid.Bool().Draw(t, "keepDigits")

		once := Normalize(input, keepDigits)
		twice := Normalize(once, keepDigits)
		assert.Equal(t, once, twice)
	})
}

func TestNormalizeCharset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		out := Normalize(input, false)

		for i := 0; i < len(out); i++ {
			b := out[i]
			ok := (b >= 'a' && b <= 'z') || b == ' '
			assert.True(t, ok, "unexpected byte %q in %q", b, out)
		}
		assert.NotContains(t, out, "  ")
	})
}

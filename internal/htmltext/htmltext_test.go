// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoqueryStripper(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"nested inline", "<p>Hello <b>world</b></p>", "Hello world"},
		{"surrounding whitespace", "  \n<div>  Harbour at dusk </div>\n", "Harbour at dusk"},
		{"plain text", "No markup here", "No markup here"},
		{"entities decoded", "<p>Fish &amp; chips</p>", "Fish & chips"},
		{"non ascii kept", "<p>Café São Paulo</p>", "Café São Paulo"},
		{"empty", "", ""},
		{"only tags", "<br/><p></p>", ""},
	}
	var s GoqueryStripper
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.StripHTML(tt.markup))
		})
	}
}

func TestStripFunc(t *testing.T) {
	var s Stripper = StripFunc(func(m string) string { return "[" + m + "]" })
	assert.Equal(t, "[x]", s.StripHTML("x"))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package era

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindYear(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantYear int
		wantOK   bool
	}{
		{"trailing year", "Main Street, 1923", 1923, true},
		{"no year", "Untitled Study", 0, false},
		{"nineteenth century", "Harbour view 1890", 1890, true},
		{"twenty first century", "Parade (2004)", 2004, true},
		{"lower bound", "1800 survey", 1800, true},
		{"upper bound", "Time capsule 2099", 2099, true},
		{"first of several", "Bridge 1950, rebuilt 1972", 1950, true},
		{"skips out of range before in range", "Map 1750 copied 1820", 1820, true},
		{"too early", "Letter, 1750", 0, false},
		{"too late", "Forecast 2105", 0, false},
		{"three digits", "Lot 192", 0, false},
		{"five digits", "Negative 19234", 0, false},
		{"embedded in letters", "A1923B", 0, false},
		{"underscore joined", "scan_1923", 0, false},
		{"accented letter before", "é1923", 0, false},
		{"accented letter after", "1923é", 0, false},
		{"non latin letters", "Фото1923", 0, false},
		{"superscript digit after", "1923²", 0, false},
		{"non latin punctuation", "写真「1923」", 1923, true},
		{"rejected then standalone", "é1923 and 1931", 1931, true},
		{"arabic-indic digits are not a year", "\u0661\u0669\u0662\u0663", 0, false},
		{"hyphenated range", "1914-1918 memorial", 1914, true},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindYear(tt.input)
			assert.Equal(t, tt.wantOK, ok, "FindYear(%q) ok", tt.input)
			assert.Equal(t, tt.wantYear, got, "FindYear(%q) year", tt.input)
		})
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		year int
		ok   bool
		want string
	}{
		{1985, true, "1980s"},
		{1890, true, "1890s"},
		{2004, true, "2000s"},
		{1899, true, "1890s"},
		{1800, true, "1800s"},
		{2099, true, "2090s"},
		{0, false, Unknown},
		{1985, false, Unknown},
	}
	for _, tt := range tests {
		got := Derive(tt.year, tt.ok)
		if got != tt.want {
			t.Errorf("Derive(%d, %v) = %q, want %q", tt.year, tt.ok, got, tt.want)
		}
	}
}

// Every year the extractor can return maps to a decade inside the same range.
func TestLabelMatchesFoundYear(t *testing.T) {
	for y := 1800; y <= 2099; y++ {
		got, ok := FindYear("Photo " + strconv.Itoa(y))
		if !ok || got != y {
			t.Fatalf("FindYear missed %d", y)
		}
		want := strconv.Itoa(y-y%10) + "s"
		if Label(got) != want {
			t.Fatalf("Label(%d) = %q, want %q", got, Label(got), want)
		}
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/archive-timeline/internal/htmltext"
	"github.com/pdiddy/archive-timeline/internal/httputil"
)

const sampleItemJSON = `{
  "id": "https://archive.example/iiif/item/42/manifest",
  "metadata": [
    {"label": {"en": ["Date"]}, "value": {"en": ["1923"]}},
    {"label": {"en": ["description"]}, "value": {"en": ["<p>Hello <b>world</b></p>"]}},
    {"label": {"en": ["description"]}, "value": {"en": ["<p>Second</p>"]}}
  ],
  "items": [
    {
      "items": [
        {
          "items": [
            {"body": {"id": "https://archive.example/iiif/42/full/full/0/default.jpg"}},
            {"body": {"id": "https://archive.example/iiif/42/other.jpg"}}
          ]
        }
      ]
    },
    {"items": [{"items": [{"body": {"id": "https://archive.example/iiif/43.jpg"}}]}]}
  ]
}`

var stripper = htmltext.GoqueryStripper{}

func mustParse(t *testing.T, s string) *Item {
	t.Helper()
	it, err := ParseItem([]byte(s))
	require.NoError(t, err)
	return it
}

func TestExtract_Complete(t *testing.T) {
	f := Extract(mustParse(t, sampleItemJSON), stripper)

	assert.Equal(t, "Hello world", f.Description)
	assert.Equal(t, "https://archive.example/iiif/42/full/full/0/default.jpg", f.ImageURL)
	assert.NoError(t, f.ImageErr)
	assert.True(t, f.Complete())
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no metadata", `{}`, ""},
		{"no description label", `{"metadata": [{"label": {"en": ["Title"]}, "value": {"en": ["x"]}}]}`, ""},
		{"label must be exact", `{"metadata": [{"label": {"en": ["description", "summary"]}, "value": {"en": ["x"]}}]}`, ""},
		{"label case sensitive", `{"metadata": [{"label": {"en": ["Description"]}, "value": {"en": ["x"]}}]}`, ""},
		{"only english label", `{"metadata": [{"label": {"fr": ["description"]}, "value": {"en": ["x"]}}]}`, ""},
		{"first value string", `{"metadata": [{"label": {"en": ["description"]}, "value": {"en": ["<i>a</i>", "b"]}}]}`, "a"},
		{"trimmed", `{"metadata": [{"label": {"en": ["description"]}, "value": {"en": ["  <p> spaced </p>\n"]}}]}`, "spaced"},
		{"first match wins even if empty", `{"metadata": [
			{"label": {"en": ["description"]}, "value": {"en": []}},
			{"label": {"en": ["description"]}, "value": {"en": ["later"]}}
		]}`, ""},
		{"missing value", `{"metadata": [{"label": {"en": ["description"]}}]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Description(mustParse(t, tt.doc), stripper))
		})
	}
}

func TestDescription_UsesStripper(t *testing.T) {
	var got string
	s := htmltext.StripFunc(func(m string) string {
		got = m
		return "  stripped  "
	})
	doc := mustParse(t, `{"metadata": [{"label": {"en": ["description"]}, "value": {"en": ["<b>raw</b>"]}}]}`)

	assert.Equal(t, "stripped", Description(doc, s))
	assert.Equal(t, "<b>raw</b>", got)
}

func TestImageURL_MissingLevels(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		level string
	}{
		{"no items", `{"metadata": []}`, LevelCanvas},
		{"empty items", `{"items": []}`, LevelCanvas},
		{"no annotation pages", `{"items": [{}]}`, LevelAnnotationPage},
		{"empty annotation pages", `{"items": [{"items": []}]}`, LevelAnnotationPage},
		{"no annotations", `{"items": [{"items": [{"items": []}]}]}`, LevelAnnotation},
		{"no body", `{"items": [{"items": [{"items": [{}]}]}]}`, LevelBody},
		{"body without id", `{"items": [{"items": [{"items": [{"body": {"type": "Image"}}]}]}]}`, LevelBody},
		{"canvas not an object", `{"items": ["canvas"]}`, LevelAnnotationPage},
		{"annotation pages not an array", `{"items": [{"items": {"id": "p"}}]}`, LevelAnnotationPage},
		{"annotation not an object", `{"items": [{"items": [{"items": [7]}]}]}`, LevelBody},
		{"body id not a string", `{"items": [{"items": [{"items": [{"body": {"id": 5}}]}]}]}`, LevelBody},
		{"no fallback to sibling canvas", `{"items": [{"items": []}, {"items": [{"items": [{"body": {"id": "x"}}]}]}]}`, LevelAnnotationPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := ImageURL(mustParse(t, tt.doc))
			assert.Equal(t, "", url)
			require.ErrorIs(t, err, ErrMissingLevel)

			var le *LevelError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.level, le.Level)
		})
	}
}

func TestImageURL_NilItem(t *testing.T) {
	_, err := ImageURL(nil)
	assert.ErrorIs(t, err, ErrMissingLevel)
	assert.Equal(t, "", Description(nil, stripper))
}

func TestParseItem_Malformed(t *testing.T) {
	_, err := ParseItem([]byte(`{"metadata": [`))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = ParseItem([]byte(`["not", "an", "object"]`))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestParseItem_ToleratesOddShapes(t *testing.T) {
	it := mustParse(t, `{
		"metadata": [
			{"label": {"en": ["Date"]}, "value": {"en": [1923]}},
			{"label": "Photographer", "value": "Unknown"},
			42,
			{"label": {"en": ["description"]}, "value": {"en": ["<p>Tram at the depot</p>"]}}
		],
		"items": [{"items": [{"items": [{"body": {"id": "img/tram.jpg"}}]}]}]
	}`)
	f := Extract(it, stripper)

	assert.Equal(t, "Tram at the depot", f.Description)
	assert.Equal(t, "img/tram.jpg", f.ImageURL)
	assert.True(t, f.Complete())
	assert.Len(t, it.Metadata, 1)
}

func TestParseItem_NonArrayFieldsAreAbsent(t *testing.T) {
	it := mustParse(t, `{"metadata": "wrong shape", "items": {"id": "x"}}`)
	f := Extract(it, stripper)

	assert.Equal(t, "", f.Description)
	assert.Equal(t, "", f.ImageURL)
	assert.ErrorIs(t, f.ImageErr, ErrMissingLevel)
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	ok := httputil.FetchFunc(func(_ context.Context, url string) ([]byte, error) {
		assert.Equal(t, "https://archive.example/42", url)
		return []byte(sampleItemJSON), nil
	})
	it, err := Fetch(ctx, ok, "https://archive.example/42")
	require.NoError(t, err)
	assert.Len(t, it.Metadata, 3)

	down := httputil.FetchFunc(func(context.Context, string) ([]byte, error) {
		return nil, errors.New("connection refused")
	})
	_, err = Fetch(ctx, down, "u")
	assert.ErrorIs(t, err, ErrFetch)
	assert.NotErrorIs(t, err, ErrDecode)

	garbage := httputil.FetchFunc(func(context.Context, string) ([]byte, error) {
		return []byte("<html>not json</html>"), nil
	})
	_, err = Fetch(ctx, garbage, "u")
	assert.ErrorIs(t, err, ErrDecode)
	assert.NotErrorIs(t, err, ErrFetch)
}

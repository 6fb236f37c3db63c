package sitecrawl_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MarshalJSON_preserves_field_order(t *testing.T) {
	t.Parallel()

	rec := sitecrawl.Record{
		{Name: "url", Value: "https://example.com/?a=1&b=2"},
		{Name: "title", Value: "<Café>"},
		{Name: "count", Value: 3},
		{Name: "missing", Value: nil},
	}

	b, err := sitecrawl.MarshalJSONValue(rec)
	require.NoError(t, err)

	assert.Equal(t, `{"url":"https://example.com/?a=1&b=2","title":"<Café>","count":3,"missing":null}`, string(b))
}

func TestRecord_Get(t *testing.T) {
	t.Parallel()

	rec := sitecrawl.Record{{Name: "title", Value: "T"}}

	v, ok := rec.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "T", v)

	_, ok = rec.Get("url")
	assert.False(t, ok)
}

type point struct{ X, Y int }

func TestCoerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "string", in: "text", want: "text"},
		{name: "bool", in: true, want: true},
		{name: "int", in: 7, want: 7},
		{name: "float", in: 1.5, want: 1.5},
		{name: "string slice", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "string map", in: map[string]any{"k": 1}, want: map[string]any{"k": 1}},
		{name: "struct becomes text", in: point{1, 2}, want: "{1 2}"},
		{name: "duration becomes text", in: 2 * time.Second, want: "2s"},
		{name: "error becomes text", in: errors.New("bad"), want: "bad"},
		{name: "NaN becomes text", in: math.NaN(), want: "NaN"},
		{name: "int-keyed map becomes text", in: map[int]string{1: "a"}, want: "map[1:a]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sitecrawl.Coerce(tt.in))
		})
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "T", sitecrawl.FormatValue("T"))
	assert.Equal(t, "null", sitecrawl.FormatValue(nil))
	assert.Equal(t, "3", sitecrawl.FormatValue(3))
	assert.Equal(t, `["a","b"]`, sitecrawl.FormatValue([]string{"a", "b"}))
	assert.Equal(t, "true", sitecrawl.FormatValue(true))
}

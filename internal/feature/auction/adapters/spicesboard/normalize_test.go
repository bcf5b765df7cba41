package spicesboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "slash separators", raw: "25/11/2025", want: "2025-11-25", wantOK: true},
		{name: "dash separators", raw: "25-11-2025", want: "2025-11-25", wantOK: true},
		{name: "dot separators with short year", raw: "5.3.24", want: "2024-03-05", wantOK: true},
		{name: "mixed separators", raw: "5-3/2024", want: "2024-03-05", wantOK: true},
		{name: "surrounding whitespace", raw: "  25/11/2025  ", want: "2025-11-25", wantOK: true},
		{name: "single digit day and month", raw: "1/2/2023", want: "2023-02-01", wantOK: true},
		{name: "empty", raw: "", wantOK: false},
		{name: "whitespace only", raw: "   ", wantOK: false},
		{name: "two components", raw: "25/11", wantOK: false},
		{name: "four components", raw: "25/11/20/25", wantOK: false},
		{name: "empty component", raw: "25//2025", wantOK: false},
		{name: "plain text", raw: "auction cancelled", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeNumber(t *testing.T) {
	t.Parallel()

	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{name: "plain integer", raw: "42", want: f(42)},
		{name: "decimal", raw: "2801.50", want: f(2801.5)},
		{name: "thousands separators", raw: "1,23,456", want: f(123456)},
		{name: "zero stays zero", raw: "0", want: f(0)},
		{name: "whitespace around value", raw: " 17 ", want: f(17)},
		{name: "empty is absent", raw: "", want: nil},
		{name: "blank is absent", raw: "   ", want: nil},
		{name: "dash is absent", raw: "-", want: nil},
		{name: "text is absent", raw: "N/A", want: nil},
		{name: "infinity is absent", raw: "Inf", want: nil},
		{name: "nan is absent", raw: "NaN", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeNumber(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got, "missing values must be nil, never 0 or NaN")
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestNormalizeInt(t *testing.T) {
	t.Parallel()

	got := NormalizeInt("12")
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(12), *got)
	}
	assert.Nil(t, NormalizeInt(""))
	assert.Nil(t, NormalizeInt("x"))
}

package lexscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Span
	}{
		{
			name: "no strings",
			src:  "local x = 1",
			want: nil,
		},
		{
			name: "double quoted",
			src:  `local s = "hello"`,
			want: []Span{{Start: 10, End: 16}},
		},
		{
			name: "single quoted",
			src:  `local s = 'hello'`,
			want: []Span{{Start: 10, End: 16}},
		},
		{
			name: "escaped quote stays inside",
			src:  `local s = "a\"b"`,
			want: []Span{{Start: 10, End: 15}},
		},
		{
			name: "unterminated string extends to end",
			src:  `local s = "abc`,
			want: []Span{{Start: 10, End: 13}},
		},
		{
			name: "long bracket level zero",
			src:  `local s = [[multi]]`,
			want: []Span{{Start: 10, End: 18}},
		},
		{
			name: "long bracket level two",
			src:  `local s = [==[a]=]b]==]`,
			want: []Span{{Start: 10, End: 22}},
		},
		{
			name: "lone bracket is not a string",
			src:  `local t = a[1]`,
			want: nil,
		},
		{
			name: "bracket with equals but no second bracket",
			src:  `local ok = a [= b`,
			want: nil,
		},
		{
			name: "two adjacent strings are disjoint",
			src:  `f("a", 'b')`,
			want: []Span{{Start: 2, End: 4}, {Start: 7, End: 9}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := Scan([]byte(tt.src))
			assert.Equal(t, tt.want, spans.Strings)
		})
	}
}

func TestScanComments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Span
	}{
		{
			name: "line comment to newline",
			src:  "local x = 1 -- note\nlocal y = 2",
			want: []Span{{Start: 12, End: 18}},
		},
		{
			name: "line comment to end of buffer",
			src:  "-- trailing",
			want: []Span{{Start: 0, End: 10}},
		},
		{
			name: "block comment",
			src:  "--[[ a\nb ]] local x = 1",
			want: []Span{{Start: 0, End: 10}},
		},
		{
			name: "block comment with level",
			src:  "--[=[ a ]] b ]=] x",
			want: []Span{{Start: 0, End: 15}},
		},
		{
			name: "dashes inside string are not a comment",
			src:  `local s = "a -- b"`,
			want: nil,
		},
		{
			name: "unterminated block comment",
			src:  "--[[ never closed",
			want: []Span{{Start: 0, End: 16}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := Scan([]byte(tt.src))
			assert.Equal(t, tt.want, spans.Comments)
		})
	}
}

func TestExcluded(t *testing.T) {
	src := []byte(`local s = "str" -- comment`)
	spans := Scan(src)

	assert.False(t, spans.Excluded(0), "code region")
	assert.True(t, spans.Excluded(11), "inside string")
	assert.True(t, spans.Excluded(10), "opening quote")
	assert.True(t, spans.Excluded(14), "closing quote")
	assert.False(t, spans.Excluded(15), "space between string and comment")
	assert.True(t, spans.Excluded(16), "comment start")
	assert.True(t, spans.Excluded(len(src)-1), "comment end")
}

func TestCommentDetectionConsultsStrings(t *testing.T) {
	src := []byte("local s = \"--\" -- real\nreturn s")
	spans := Scan(src)

	require.Len(t, spans.Strings, 1)
	require.Len(t, spans.Comments, 1)
	assert.Equal(t, Span{Start: 10, End: 13}, spans.Strings[0])
	assert.Equal(t, Span{Start: 15, End: 21}, spans.Comments[0])
}

func TestLineColumn(t *testing.T) {
	src := []byte("abc\ndef\nghi")

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{6, 2, 3},
		{8, 3, 1},
	}

	for _, tt := range tests {
		line, col := LineColumn(src, tt.offset)
		assert.Equal(t, tt.wantLine, line, "line at offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "column at offset %d", tt.offset)
	}
}

func TestScanLargeBuffer(t *testing.T) {
	// A pathological buffer full of quotes must not loop forever.
	src := []byte(strings.Repeat(`"x" `, 10000))
	spans := Scan(src)
	assert.Len(t, spans.Strings, 10000)
}

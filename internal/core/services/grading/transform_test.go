package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformForCompiler(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"array shorthand", "[2,3,4]", "2 3 4"},
		{"lines kept", "[1,2]\n[3, 4]", "1 2\n3 4"},
		{"hash removed", "ab#cd", "abcd"},
		{"whitespace collapsed", "  1   2\t3  ", "1 2 3"},
		{"empty", "", ""},
		{"empty line kept", "1\n\n2", "1\n\n2"},
		{"plain text", "hello world", "hello world"},
		{"hash before brace", "#{", "{"},
		{"comma then spaces", "a,   ,b", "a b"},
		{"count then array", "5\n[1,2,3,4,5]", "5\n1 2 3 4 5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TransformForCompiler(tc.in))
		})
	}
}

func TestTransformForCompilerProperties(t *testing.T) {
	inputs := []string{"[1,2,3]", "a # b", "x,,y", "[[]]", "1\n[2,3]\n#", "  spaced   out  "}

	for _, in := range inputs {
		out := TransformForCompiler(in)
		assert.NotContains(t, out, "[", in)
		assert.NotContains(t, out, "]", in)
		assert.NotContains(t, out, ",", in)
		assert.NotContains(t, out, "#", in)
		assert.Equal(t, strings.Count(in, "\n"), strings.Count(out, "\n"), in)
		for _, line := range strings.Split(out, "\n") {
			assert.Equal(t, strings.TrimSpace(line), line)
			assert.NotContains(t, line, "  ")
		}
	}
}

func TestTransformForDisplay(t *testing.T) {
	assert.Equal(t, `a" "b`, TransformForDisplay("a#b"))
	assert.Equal(t, `" "" "`, TransformForDisplay("##"))
	assert.Equal(t, "[1,2]", TransformForDisplay("[1,2]"))
	assert.Equal(t, "", TransformForDisplay(""))
	assert.Equal(t, `" "{`, TransformForDisplay("#{"))
}

func TestNormalizeAndCompare(t *testing.T) {
	t.Run("surrounding whitespace and case ignored", func(t *testing.T) {
		assert.True(t, NormalizeAndCompare("  Hello\n", "hello"))
		assert.True(t, NormalizeAndCompare("YES", " yes "))
		assert.True(t, NormalizeAndCompare(" Hello \n", "hello"))
	})

	t.Run("extra characters do not match", func(t *testing.T) {
		assert.False(t, NormalizeAndCompare("Hello", "Hellow"))
	})

	t.Run("internal whitespace is significant", func(t *testing.T) {
		assert.False(t, NormalizeAndCompare("1  2", "1 2"))
		assert.False(t, NormalizeAndCompare("1\r\n2", "1\n2"))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{{"A", "a"}, {"3", "3.0"}, {" x", "X "}}
		for _, p := range pairs {
			assert.Equal(t, NormalizeAndCompare(p[0], p[1]), NormalizeAndCompare(p[1], p[0]))
		}
	})
}

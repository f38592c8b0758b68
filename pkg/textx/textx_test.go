package textx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/pkg/textx"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", textx.SanitizeText("  hello  "))
	assert.Equal(t, "a\tb\nc", textx.SanitizeText("a\tb\nc"))
	assert.Equal(t, "ab", textx.SanitizeText("a\x00\x07b"))
	assert.Equal(t, "", textx.SanitizeText("\x01\x02"))
}

func TestCharCount_Runes(t *testing.T) {
	assert.Equal(t, 0, textx.CharCount(""))
	assert.Equal(t, 5, textx.CharCount("hello"))
	// 5 runes, 7 bytes
	assert.Equal(t, 5, textx.CharCount("héllö"))
	assert.Equal(t, 2, textx.CharCount("日本"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, textx.WordCount(""))
	assert.Equal(t, 0, textx.WordCount("   \n\t"))
	assert.Equal(t, 3, textx.WordCount("one two three"))
	assert.Equal(t, 3, textx.WordCount("  one\ntwo\tthree  "))
}

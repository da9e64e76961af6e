package segment

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestSentences_SplitsOnTerminalPunctuation(t *testing.T) {
	text := "Mitochondria produce most of the cell's energy supply. " +
		"Ribosomes assemble proteins from amino acid building blocks! " +
		"Do all cells share the same basic organelle structure? " +
		"The answer depends on the organism being studied."

	got := Sentences(text)
	assert.Len(t, got, 4)
	assert.Equal(t, "Mitochondria produce most of the cell's energy supply", got[0])
	assert.Equal(t, "Ribosomes assemble proteins from amino acid building blocks", got[1])
}

func TestSentences_PreservesDocumentOrder(t *testing.T) {
	text := "The first sentence talks about biology concepts. " +
		"The second sentence covers chemistry reactions. " +
		"The third sentence describes physics principles."

	got := Sentences(text)
	assert.Len(t, got, 3)
	assert.Contains(t, got[0], "first")
	assert.Contains(t, got[1], "second")
	assert.Contains(t, got[2], "third")
}

func TestSentences_FiltersLowQualityCandidates(t *testing.T) {
	text := "Too short. " + // fails length
		"ab cd ef gh ij kl mn op. " + // no 3-letter alphabetic run
		"1234567 890123 4567 8901 234. " + // digit-heavy
		"Photosynthesis converts carbon dioxide and water into glucose. " +
		strings.Repeat("word ", 120) + "end."

	got := Sentences(text)
	assert.Len(t, got, 1)
	assert.Contains(t, got[0], "Photosynthesis")
}

func TestSentences_FilterInvariants(t *testing.T) {
	text := "A tiny one. Plants absorb sunlight through their leaves every day. " +
		"Energy 12 34 56 78 90 12 34 flows. " +
		"Water evaporates from oceans and returns as rainfall."

	for _, s := range Sentences(text) {
		assert.GreaterOrEqual(t, len(strings.Fields(s)), 3)
		assert.Greater(t, len(s), 20)
		assert.Less(t, len(s), 500)
		digits := 0
		for _, r := range s {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		assert.Less(t, digits*2, len(s))
	}
}

func TestAcceptable(t *testing.T) {
	assert.True(t, Acceptable("Plants absorb sunlight through their leaves"))
	assert.False(t, Acceptable("short words here"))                    // too short overall
	assert.False(t, Acceptable("exactly twenty chars"))                // length must exceed 20
	assert.False(t, Acceptable(strings.Repeat("a", 501)))              // too long, single word anyway
	assert.False(t, Acceptable("11111111111 222222222222 3333333 ab")) // digit-dominated
}

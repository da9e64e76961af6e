// Package textsalvage pulls best-effort readable text out of an arbitrary
// byte buffer, typically a PDF, without parsing the format. It only looks for
// the uncompressed text-drawing regions a simple PDF carries; compressed
// streams, fonts and encodings are out of scope.
package textsalvage

import (
	"regexp"
	"strings"
)

const (
	// primaryMinLength is the cutoff below which the BT..ET harvest is
	// considered a failure and the whole-buffer scan takes over.
	primaryMinLength = 100

	// resultMinLength is the cutoff below which the cleaned result is
	// considered unusable and the sentinel is returned instead.
	resultMinLength = 50
)

// Insufficient is returned when neither extraction strategy produced enough
// readable text. Callers should treat it as a signal to ask for pasted text.
const Insufficient = "Could not extract enough readable text from this document. Please paste the text directly instead."

var (
	textRegionRe = regexp.MustCompile(`(?s)BT\s*(.*?)\s*ET`)
	parenTextRe  = regexp.MustCompile(`\((.*?)\)`)
	alphaRunRe   = regexp.MustCompile(`[A-Za-z]{3,}(?:\s[A-Za-z]{3,})*`)
	escapeSeqRe  = regexp.MustCompile(`\\[nrt]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Salvage decodes the buffer one byte per character and extracts whatever
// readable text it can find. The primary strategy harvests parenthesized
// string operands inside BT..ET text regions; if that yields fewer than 100
// characters, a whole-buffer scan for alphabetic runs is used instead. A
// result still shorter than 50 characters after cleaning is replaced with the
// Insufficient sentinel rather than surfaced as garbage.
func Salvage(data []byte) string {
	decoded := decodeLatin1(data)

	text := harvestTextRegions(decoded)
	if len(text) < primaryMinLength {
		text = strings.Join(alphaRunRe.FindAllString(decoded, -1), " ")
	}

	text = clean(text)
	if len(text) < resultMinLength {
		return Insufficient
	}
	return text
}

// decodeLatin1 maps each byte to the rune with the same value, preserving the
// byte positions of the BT/ET markers.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// harvestTextRegions concatenates the contents of every parenthesized group
// found inside every BT..ET region, separated by single spaces.
func harvestTextRegions(decoded string) string {
	var parts []string
	for _, region := range textRegionRe.FindAllStringSubmatch(decoded, -1) {
		for _, group := range parenTextRe.FindAllStringSubmatch(region[1], -1) {
			parts = append(parts, group[1])
		}
	}
	return strings.Join(parts, " ")
}

func clean(text string) string {
	text = escapeSeqRe.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, `\`, "")
	text = strings.ReplaceAll(text, "(", "")
	text = strings.ReplaceAll(text, ")", "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

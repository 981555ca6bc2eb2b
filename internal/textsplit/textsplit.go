// Package textsplit provides the tokenization primitives shared by the
// analysis engines. Every engine segments text the same way so that
// per-sentence indexes line up across detector, humanizer and breakdown
// output.
package textsplit

import (
	"regexp"
	"strings"
	"unicode"
)

var alphaWordRe = regexp.MustCompile(`\b[a-z]+\b`)

// minSentenceLen filters out fragments left over from abbreviations and
// stray punctuation.
const minSentenceLen = 10

// Sentences splits text into sentences, dropping fragments of 10
// characters or fewer.
func Sentences(text string) []string {
	var out []string
	for _, s := range RawSentences(text) {
		if len(s) > minSentenceLen {
			out = append(out, s)
		}
	}
	return out
}

// RawSentences splits text into sentences keeping every non-empty
// fragment regardless of length.
func RawSentences(text string) []string {
	var out []string
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		b.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Consume the rest of a terminator run (e.g. "?!" or "...") so
		// it stays attached to the current sentence.
		for i+1 < len(runes) && isTerminator(runes[i+1]) {
			i++
			b.WriteRune(runes[i])
		}
		// Only a following whitespace ends the sentence; "3.14" stays whole.
		if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			flush(&b, &out)
		}
	}
	flush(&b, &out)
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func flush(b *strings.Builder, out *[]string) {
	s := strings.TrimSpace(b.String())
	if s != "" {
		*out = append(*out, s)
	}
	b.Reset()
}

// Words splits text on whitespace, keeping punctuation attached.
func Words(text string) []string {
	return strings.Fields(text)
}

// AlphaWords returns the lowercase alphabetic tokens of text, used for
// vocabulary richness and entropy estimates.
func AlphaWords(text string) []string {
	return alphaWordRe.FindAllString(strings.ToLower(text), -1)
}

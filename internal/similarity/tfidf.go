package similarity

import (
	"math"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`\b\w\w+\b`)

// vectorizer builds L2-normalized TF-IDF vectors over word 1- to
// 3-grams, skipping stop words. IDF weights are fitted per call over
// the documents passed to fitTransform, with smoothing so unseen
// corpus sizes never divide by zero.
type vectorizer struct {
	ngramMin  int
	ngramMax  int
	stopWords map[string]bool
}

func newVectorizer() *vectorizer {
	return &vectorizer{
		ngramMin:  1,
		ngramMax:  3,
		stopWords: getStopWords(),
	}
}

// tokenize lowercases, extracts word tokens of two or more characters
// and removes stop words.
func (v *vectorizer) tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if !v.stopWords[t] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// ngrams expands tokens into space-joined n-grams for every n in the
// configured range.
func (v *vectorizer) ngrams(tokens []string) []string {
	var grams []string
	for n := v.ngramMin; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

// fitTransform fits IDF weights over docs and returns one sparse
// TF-IDF vector per document. Documents with no usable terms get an
// empty vector rather than an error.
func (v *vectorizer) fitTransform(docs []string) []map[string]float64 {
	counts := make([]map[string]float64, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tf := make(map[string]float64)
		for _, gram := range v.ngrams(v.tokenize(doc)) {
			tf[gram]++
		}
		counts[i] = tf
		for gram := range tf {
			df[gram]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for gram, d := range df {
		idf[gram] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make([]map[string]float64, len(docs))
	for i, tf := range counts {
		vec := make(map[string]float64, len(tf))
		var norm float64
		for gram, count := range tf {
			w := count * idf[gram]
			vec[gram] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for gram := range vec {
				vec[gram] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors
}

// cosine returns the cosine similarity of two L2-normalized vectors.
func cosine(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for gram, wa := range a {
		if wb, ok := b[gram]; ok {
			dot += wa * wb
		}
	}
	return dot
}

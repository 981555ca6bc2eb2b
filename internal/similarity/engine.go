// Package similarity scores text overlap against a reference corpus
// using TF-IDF cosine similarity, plus stock-phrase and internal
// repetition heuristics that work without any corpus at all.
package similarity

import (
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/textsplit"
)

// flagThreshold is the cosine similarity above which a reference
// document is reported as a match.
const flagThreshold = 0.3

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Engine compares text against an in-memory reference corpus. Safe for
// concurrent use; Analyze works on a snapshot of the corpus so
// AddReference never blocks a running analysis.
type Engine struct {
	mu     sync.RWMutex
	corpus []models.CorpusEntry
	vec    *vectorizer
}

// NewEngine creates an Engine with an empty corpus.
func NewEngine() *Engine {
	return &Engine{vec: newVectorizer()}
}

// AddReference adds a document to the comparison corpus. An empty
// source is recorded as "Unknown".
func (e *Engine) AddReference(text, source string) {
	if source == "" {
		source = "Unknown"
	}
	e.mu.Lock()
	e.corpus = append(e.corpus, models.CorpusEntry{Text: text, Source: source})
	e.mu.Unlock()
}

// References returns a copy of the current corpus.
func (e *Engine) References() []models.CorpusEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.CorpusEntry, len(e.corpus))
	copy(out, e.corpus)
	return out
}

// Analyze scores text for overlap on a 0-100 scale. With a non-empty
// corpus the score is driven by the closest reference document;
// otherwise stock phrases and internal repetition carry it. Empty
// input returns a zero result.
func (e *Engine) Analyze(text string) models.SimilarityResult {
	result := models.SimilarityResult{
		Matches:       []models.CorpusMatch{},
		CommonPhrases: []models.PhraseMatch{},
	}
	if strings.TrimSpace(text) == "" {
		result.Details = "Empty text provided"
		return result
	}

	corpus := e.References()
	sentences := textsplit.RawSentences(text)

	if len(corpus) > 0 {
		result.CorpusScore, result.Matches = e.corpusScore(preprocess(text), corpus)
	}
	result.CommonPhrases = detectCommonPhrases(text)
	result.InternalSimilarity = e.internalSimilarity(sentences)

	phraseCount := float64(len(result.CommonPhrases))
	if len(corpus) > 0 {
		result.Score = math.Min(100, result.CorpusScore*0.7+phraseCount*5)
	} else {
		result.Score = math.Min(100, phraseCount*10+result.InternalSimilarity*0.3)
	}
	return result
}

// preprocess lowercases, strips punctuation and collapses whitespace.
func preprocess(text string) string {
	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// corpusScore fits TF-IDF jointly over the corpus plus the query and
// returns the best match score with every reference above threshold.
func (e *Engine) corpusScore(text string, corpus []models.CorpusEntry) (float64, []models.CorpusMatch) {
	docs := make([]string, 0, len(corpus)+1)
	for _, entry := range corpus {
		docs = append(docs, entry.Text)
	}
	docs = append(docs, text)

	vectors := e.vec.fitTransform(docs)
	query := vectors[len(vectors)-1]

	matches := []models.CorpusMatch{}
	var maxSim float64
	for i, entry := range corpus {
		sim := cosine(query, vectors[i])
		if sim > flagThreshold {
			matches = append(matches, models.CorpusMatch{
				Source:     entry.Source,
				Similarity: sim,
				MatchIndex: i,
			})
		}
		if sim > maxSim {
			maxSim = sim
		}
	}
	return maxSim * 100, matches
}

func detectCommonPhrases(text string) []models.PhraseMatch {
	lower := strings.ToLower(text)
	found := []models.PhraseMatch{}
	for _, p := range commonPhrases {
		if n := len(p.re.FindAllString(lower, -1)); n > 0 {
			found = append(found, models.PhraseMatch{Pattern: p.pattern, Count: n})
		}
	}
	return found
}

// internalSimilarity is the mean pairwise cosine similarity over all
// sentence pairs, scaled to 0-100. High values indicate the document
// repeats itself.
func (e *Engine) internalSimilarity(sentences []string) float64 {
	if len(sentences) < 2 {
		return 0
	}
	vectors := e.vec.fitTransform(sentences)
	var sum float64
	var pairs int
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			sum += cosine(vectors[i], vectors[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs) * 100
}

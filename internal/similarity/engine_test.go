package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmptyText(t *testing.T) {
	e := NewEngine()
	result := e.Analyze("   ")
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, "Empty text provided", result.Details)
	assert.Empty(t, result.Matches)
}

func TestIdenticalReferenceScoresNearOne(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog near the quiet riverbank every single morning."
	e := NewEngine()
	e.AddReference(text, "original essay")

	result := e.Analyze(text)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "original essay", result.Matches[0].Source)
	assert.Equal(t, 0, result.Matches[0].MatchIndex)
	assert.GreaterOrEqual(t, result.Matches[0].Similarity, 0.99)
	assert.GreaterOrEqual(t, result.CorpusScore, 99.0)
}

func TestUnrelatedReferenceNotFlagged(t *testing.T) {
	e := NewEngine()
	e.AddReference("Photosynthesis converts sunlight into chemical energy inside chloroplasts.", "biology notes")

	result := e.Analyze("Stock markets rallied sharply after the central bank cut interest rates yesterday.")

	assert.Empty(t, result.Matches)
	assert.Less(t, result.CorpusScore, 30.0)
}

func TestEmptyCorpusUsesPhrasesAndRepetition(t *testing.T) {
	e := NewEngine()
	text := "In conclusion, this plays a crucial role. On the other hand, results vary."
	result := e.Analyze(text)

	assert.NotEmpty(t, result.CommonPhrases)
	// Without a corpus the score is phrase count * 10 + internal * 0.3.
	assert.Greater(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
}

func TestDetectCommonPhrases(t *testing.T) {
	phrases := detectCommonPhrases("In conclusion, it is widely known that education plays a key role. In conclusion, we agree.")
	counts := make(map[string]int)
	for _, p := range phrases {
		counts[p.Pattern] = p.Count
	}
	assert.Equal(t, 2, counts[`in (conclusion|summary)`])
	assert.Equal(t, 1, counts[`(plays|play) (a |an )?(important|crucial|vital|key) role`])
	assert.Equal(t, 1, counts[`it (is|has been) (widely )?(known|accepted|believed)`])
}

func TestInternalSimilarity(t *testing.T) {
	e := NewEngine()

	repetitive := []string{
		"The committee approved the annual budget proposal today.",
		"The committee approved the annual budget proposal today.",
	}
	varied := []string{
		"The committee approved the annual budget proposal today.",
		"Migrating birds navigate using the earth's magnetic field.",
	}

	assert.InDelta(t, 100.0, e.internalSimilarity(repetitive), 0.5)
	assert.Less(t, e.internalSimilarity(varied), 10.0)
	assert.Equal(t, 0.0, e.internalSimilarity([]string{"just one sentence."}))
}

func TestDegenerateVocabulary(t *testing.T) {
	e := NewEngine()
	e.AddReference("!!! ??? ...", "noise")
	// Nothing tokenizes; score degrades to zero instead of erroring.
	result := e.Analyze("??? !!!")
	assert.Equal(t, 0.0, result.CorpusScore)
	assert.Empty(t, result.Matches)
}

func TestVectorizerTokenize(t *testing.T) {
	v := newVectorizer()
	tokens := v.tokenize("The quick brown fox is on the hill")
	assert.Equal(t, []string{"quick", "brown", "fox", "hill"}, tokens)
}

func TestVectorizerNgrams(t *testing.T) {
	v := newVectorizer()
	grams := v.ngrams([]string{"alpha", "beta", "gamma"})
	assert.ElementsMatch(t, []string{
		"alpha", "beta", "gamma",
		"alpha beta", "beta gamma",
		"alpha beta gamma",
	}, grams)
}

func TestConcurrentAddAndAnalyze(t *testing.T) {
	e := NewEngine()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			e.AddReference("Concurrent reference document number with some body text.", "src")
		}
	}()
	for i := 0; i < 50; i++ {
		e.Analyze("Some query text that keeps the reader busy during writes.")
	}
	<-done
	assert.Len(t, e.References(), 50)
}

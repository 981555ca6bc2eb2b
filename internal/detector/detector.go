// Package detector scores how likely a text is to be machine-generated
// using lexical and statistical signals. It needs no model or network
// access; everything is computed from the text itself.
package detector

import (
	"math"
	"sort"
	"strings"

	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/textsplit"
)

const maxSentenceAnalysis = 20

// Detector analyzes text for machine-writing patterns. It is stateless
// and safe for concurrent use.
type Detector struct{}

// New creates a Detector.
func New() *Detector {
	return &Detector{}
}

// Analyze scores text on a 0-100 scale where higher means more likely
// machine-generated. Empty input returns a zero score.
func (d *Detector) Analyze(text string) models.AnalysisResult {
	if strings.TrimSpace(text) == "" {
		return models.AnalysisResult{
			Score:       0,
			Indicators:  []models.Indicator{},
			Sentences:   []models.SentenceAnalysis{},
			Explanation: []string{"Empty text provided"},
		}
	}

	sentences := textsplit.Sentences(text)

	features := models.FeatureVector{
		TransitionDensity:  wordDensity(text, transitionWords),
		FillerDensity:      fillerDensity(text),
		HedgeDensity:       wordDensity(text, hedgeWords),
		SentenceUniformity: sentenceUniformity(sentences),
		Predictability:     estimatePredictability(text),
		Burstiness:         burstiness(sentences),
		VocabularyRichness: vocabularyRichness(text),
	}

	result := models.AnalysisResult{
		Indicators: buildIndicators(features),
		Sentences:  analyzeSentences(sentences),
		Features:   features,
	}

	// Each feature is normalized to 0-100 before weighting. Burstiness
	// and vocabulary richness invert: low values are the machine tell.
	normalized := map[string]float64{
		"transition": math.Min(100, features.TransitionDensity*15),
		"filler":     math.Min(100, features.FillerDensity*20),
		"hedge":      math.Min(100, features.HedgeDensity*15),
		"uniformity": features.SentenceUniformity,
		"burstiness": 100 - features.Burstiness,
		"vocabulary": (1 - features.VocabularyRichness) * 100,
	}
	weights := map[string]float64{
		"transition": 0.15,
		"filler":     0.15,
		"hedge":      0.10,
		"uniformity": 0.25,
		"burstiness": 0.20,
		"vocabulary": 0.15,
	}
	// Sum in a fixed order so floating-point rounding is deterministic;
	// map iteration order varies between runs.
	weightKeys := make([]string, 0, len(weights))
	for k := range weights {
		weightKeys = append(weightKeys, k)
	}
	sort.Strings(weightKeys)
	var score float64
	for _, k := range weightKeys {
		score += normalized[k] * weights[k]
	}
	result.Score = math.Min(100, math.Max(0, score))
	result.Explanation = buildExplanation(result.Score, features)
	return result
}

// wordDensity counts tokens found in the given set per 100 words.
// Trailing punctuation is stripped so "Furthermore," still matches.
func wordDensity(text string, set map[string]struct{}) float64 {
	words := textsplit.Words(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}
	count := 0
	for _, w := range words {
		if _, ok := set[strings.TrimRight(w, ".,;:!?")]; ok {
			count++
		}
	}
	return float64(count) / float64(len(words)) * 100
}

// fillerDensity counts distinct filler phrases present per 100 words.
func fillerDensity(text string) float64 {
	wordCount := len(textsplit.Words(text))
	if wordCount == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	count := 0
	for _, phrase := range fillerPhrases {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return float64(count) / float64(wordCount) * 100
}

// sentenceUniformity measures how consistent sentence lengths are. A
// low coefficient of variation means uniform structure, which reads as
// machine-like. Returns 50 when there is too little data to judge.
func sentenceUniformity(sentences []string) float64 {
	if len(sentences) < 3 {
		return 50
	}
	lengths := make([]float64, len(sentences))
	for i, s := range sentences {
		lengths[i] = float64(len(textsplit.Words(s)))
	}
	m := mean(lengths)
	if m == 0 {
		return 50
	}
	cv := stdDev(lengths) / m * 100
	return math.Max(0, 100-cv*2)
}

// estimatePredictability is a word-frequency entropy proxy for
// perplexity. More repetitive word choice scores higher.
func estimatePredictability(text string) float64 {
	words := textsplit.Words(strings.ToLower(text))
	if len(words) < 10 {
		return 50
	}
	freq := make(map[string]int)
	for _, w := range words {
		freq[w]++
	}
	total := float64(len(words))
	// Sum in a fixed order so floating-point rounding is deterministic;
	// map iteration order varies between runs.
	keys := make([]string, 0, len(freq))
	for w := range freq {
		keys = append(keys, w)
	}
	sort.Strings(keys)
	var entropy float64
	for _, w := range keys {
		p := float64(freq[w]) / total
		entropy -= p * math.Log2(p)
	}
	maxEntropy := 1.0
	if len(freq) > 1 {
		maxEntropy = math.Log2(float64(len(freq)))
	}
	if maxEntropy <= 0 {
		return 50
	}
	return entropy / maxEntropy * 100
}

// burstiness measures variation in sentence complexity, where
// complexity is mean word length scaled by log sentence length. Human
// writing mixes simple and complex sentences; machines flatten out.
func burstiness(sentences []string) float64 {
	if len(sentences) < 3 {
		return 50
	}
	var complexities []float64
	for _, s := range sentences {
		words := textsplit.Words(s)
		if len(words) == 0 {
			continue
		}
		var totalLen float64
		for _, w := range words {
			totalLen += float64(len(w))
		}
		avgWordLen := totalLen / float64(len(words))
		complexities = append(complexities, avgWordLen*math.Log(float64(len(words))+1))
	}
	if len(complexities) == 0 {
		return 50
	}
	m := mean(complexities)
	if m == 0 {
		return 50
	}
	return math.Min(100, stdDev(complexities)/m*100*2)
}

// vocabularyRichness is the type-token ratio over alphabetic words.
func vocabularyRichness(text string) float64 {
	words := textsplit.AlphaWords(text)
	if len(words) == 0 {
		return 0.5
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return float64(len(unique)) / float64(len(words))
}

func buildIndicators(f models.FeatureVector) []models.Indicator {
	indicators := []models.Indicator{}
	if f.TransitionDensity > 3 {
		indicators = append(indicators, models.Indicator{
			Type:        "High transition word density",
			Severity:    severityAbove(f.TransitionDensity, 5),
			Explanation: "AI tends to use many formal transition words",
		})
	}
	if f.FillerDensity > 2 {
		indicators = append(indicators, models.Indicator{
			Type:        "Filler phrase usage",
			Severity:    severityAbove(f.FillerDensity, 4),
			Explanation: "Common AI padding phrases detected",
		})
	}
	if f.SentenceUniformity > 70 {
		indicators = append(indicators, models.Indicator{
			Type:        "Uniform sentence structure",
			Severity:    severityAbove(f.SentenceUniformity, 80),
			Explanation: "Sentences are too similar in length - humans vary more",
		})
	}
	if f.Burstiness < 30 {
		severity := "medium"
		if f.Burstiness <= 20 {
			severity = "high"
		}
		indicators = append(indicators, models.Indicator{
			Type:        "Low burstiness",
			Severity:    severity,
			Explanation: "Human writing has more variation in complexity (burstiness)",
		})
	}
	if f.VocabularyRichness < 0.4 {
		indicators = append(indicators, models.Indicator{
			Type:        "Limited vocabulary variety",
			Severity:    "low",
			Explanation: "AI often uses a more limited, formal vocabulary",
		})
	}
	return indicators
}

func severityAbove(value, threshold float64) string {
	if value >= threshold {
		return "high"
	}
	return "medium"
}

// analyzeSentences scores the first 20 sentences individually for
// formal construction patterns and transition-word openers.
func analyzeSentences(sentences []string) []models.SentenceAnalysis {
	analysis := []models.SentenceAnalysis{}
	for i, sentence := range sentences {
		if i >= maxSentenceAnalysis {
			break
		}
		lower := strings.ToLower(sentence)
		score := 0.0
		flags := []string{}
		for _, pattern := range formalConstructions {
			if pattern.MatchString(lower) {
				score += 20
				flags = append(flags, "Formal construction pattern")
			}
		}
		for _, word := range transitionList {
			if strings.HasPrefix(lower, word) {
				score += 15
				flags = append(flags, "Starts with transition word")
				break
			}
		}
		display := sentence
		if runes := []rune(display); len(runes) > 100 {
			display = string(runes[:100]) + "..."
		}
		analysis = append(analysis, models.SentenceAnalysis{
			Index:   i,
			Text:    display,
			AIScore: math.Min(100, score),
			Flags:   flags,
		})
	}
	return analysis
}

func buildExplanation(score float64, f models.FeatureVector) []string {
	var explanations []string
	switch {
	case score < 30:
		explanations = append(explanations, "This text shows characteristics typical of human writing.")
	case score < 50:
		explanations = append(explanations, "This text has some AI-like patterns but also human characteristics.")
	case score < 70:
		explanations = append(explanations, "This text shows several patterns common in AI-generated content.")
	default:
		explanations = append(explanations, "This text has strong indicators of AI-generated content.")
	}
	if f.Burstiness < 30 {
		explanations = append(explanations,
			"The writing has very consistent complexity throughout. "+
				"Human writing typically varies more - some sentences simple, some complex.")
	}
	if f.SentenceUniformity > 70 {
		explanations = append(explanations,
			"Sentences are very similar in length. "+
				"Try varying your sentence structure for a more natural flow.")
	}
	return explanations
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

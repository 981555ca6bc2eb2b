package humanizer

import (
	"fmt"
	"strings"

	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/textsplit"
)

// averageSentenceWords is the length a sentence is compared against
// for the uniform-length penalty.
const averageSentenceWords = 15

var personalPronouns = []string{"i ", "i'", "my ", "me ", "we ", "our ", "us "}

var contractions = []string{"n't", "'re", "'ve", "'ll", "'m", "'s"}

var informalMarkers = []string{"actually", "basically", "honestly", "look,", "well,", "so,"}

// sentenceInfo carries the per-sentence views the rules match against.
type sentenceInfo struct {
	text  string
	lower string
	words []string // lower-cased
}

// breakdownRule pairs a trait detector with the points each detected
// occurrence contributes. Negative points mark the trait AI-like,
// positive human-like.
type breakdownRule struct {
	points int
	detect func(s sentenceInfo) []models.BreakdownNote
}

// breakdownRules is applied in order; note order in the result follows
// table order.
var breakdownRules = []breakdownRule{
	{-15, detectTransitionStart},
	{-20, detectFillers},
	{-10, detectFormalPhrases},
	{-10, detectPassive},
	{-5, detectUniformLength},
	{20, detectQuestion},
	{15, detectPersonalVoice},
	{10, detectContraction},
	{10, detectShortSentence},
	{10, detectConversational},
}

// Breakdown diagnoses the first 15 sentences one by one, running each
// scoring rule in turn and tallying its points into a signed score.
// Negative scores read as AI-like, positive as human-like.
func Breakdown(text string) []models.SentenceBreakdown {
	sentences := textsplit.Sentences(text)
	breakdown := []models.SentenceBreakdown{}

	for i, sentence := range sentences {
		if i >= maxSuggestionSentences {
			break
		}
		lower := strings.ToLower(sentence)
		info := sentenceInfo{
			text:  sentence,
			lower: lower,
			words: textsplit.Words(lower),
		}
		b := models.SentenceBreakdown{
			Index:           i + 1,
			Sentence:        sentence,
			WordCount:       len(info.words),
			AIIndicators:    []models.BreakdownNote{},
			HumanIndicators: []models.BreakdownNote{},
		}

		for _, rule := range breakdownRules {
			notes := rule.detect(info)
			b.Score += rule.points * len(notes)
			if rule.points < 0 {
				b.AIIndicators = append(b.AIIndicators, notes...)
			} else {
				b.HumanIndicators = append(b.HumanIndicators, notes...)
			}
		}

		b.Assessment, b.AssessmentText = assess(b.Score)
		breakdown = append(breakdown, b)
	}
	return breakdown
}

func detectTransitionStart(s sentenceInfo) []models.BreakdownNote {
	if len(s.words) == 0 {
		return nil
	}
	first := strings.TrimRight(s.words[0], ".,;:")
	alts, ok := lookupTransition(first)
	if !ok {
		return nil
	}
	return []models.BreakdownNote{{
		Type:   "Formal transition",
		Detail: fmt.Sprintf("Starts with '%s' - very common in AI writing", s.words[0]),
		Fix:    "Try: " + strings.Join(alts, ", "),
	}}
}

func detectFillers(s sentenceInfo) []models.BreakdownNote {
	var notes []models.BreakdownNote
	for _, r := range fillerSuggestions {
		if strings.Contains(s.lower, r.formal) {
			notes = append(notes, models.BreakdownNote{
				Type:   "Filler phrase",
				Detail: fmt.Sprintf("Contains '%s' - adds words without meaning", r.formal),
				Fix:    "Replace with: " + r.alternatives[0],
			})
		}
	}
	return notes
}

func detectFormalPhrases(s sentenceInfo) []models.BreakdownNote {
	var notes []models.BreakdownNote
	for _, pair := range formalToCasual {
		if strings.Contains(s.lower, pair.formal) {
			notes = append(notes, models.BreakdownNote{
				Type:   "Overly formal",
				Detail: fmt.Sprintf("Uses '%s' - unnecessarily complex", pair.formal),
				Fix:    fmt.Sprintf("Simpler: '%s'", pair.casual),
			})
		}
	}
	return notes
}

func detectPassive(s sentenceInfo) []models.BreakdownNote {
	if !passivePatterns[0].MatchString(s.lower) {
		return nil
	}
	return []models.BreakdownNote{{
		Type:   "Passive voice",
		Detail: "Passive construction detected",
		Fix:    "Convert to active voice: [Subject] [verb] [object]",
	}}
}

func detectUniformLength(s sentenceInfo) []models.BreakdownNote {
	diff := len(s.words) - averageSentenceWords
	if diff <= -3 || diff >= 3 {
		return nil
	}
	return []models.BreakdownNote{{
		Type:   "Uniform length",
		Detail: fmt.Sprintf("%d words - very average length", len(s.words)),
		Fix:    "Vary your sentence lengths for natural rhythm",
	}}
}

func detectQuestion(s sentenceInfo) []models.BreakdownNote {
	if !strings.Contains(s.text, "?") {
		return nil
	}
	return []models.BreakdownNote{{
		Type:   "Question",
		Detail: "Contains a question - shows engagement",
	}}
}

func detectPersonalVoice(s sentenceInfo) []models.BreakdownNote {
	for _, pronoun := range personalPronouns {
		if strings.Contains(s.lower, pronoun) {
			return []models.BreakdownNote{{
				Type:   "Personal voice",
				Detail: "Uses personal pronouns - shows individual perspective",
			}}
		}
	}
	return nil
}

func detectContraction(s sentenceInfo) []models.BreakdownNote {
	for _, c := range contractions {
		if strings.Contains(s.lower, c) {
			return []models.BreakdownNote{{
				Type:   "Contraction",
				Detail: "Uses contractions - natural speech pattern",
			}}
		}
	}
	return nil
}

func detectShortSentence(s sentenceInfo) []models.BreakdownNote {
	if len(s.words) > 6 {
		return nil
	}
	return []models.BreakdownNote{{
		Type:   "Short sentence",
		Detail: fmt.Sprintf("Only %d words - creates impact", len(s.words)),
	}}
}

func detectConversational(s sentenceInfo) []models.BreakdownNote {
	for _, expr := range informalMarkers {
		if strings.Contains(s.lower, expr) {
			return []models.BreakdownNote{{
				Type:   "Conversational",
				Detail: fmt.Sprintf("Uses '%s' - conversational tone", expr),
			}}
		}
	}
	return nil
}

func assess(score int) (string, string) {
	switch {
	case score < -20:
		return "strongly_ai", "This sentence has strong AI patterns"
	case score < 0:
		return "slightly_ai", "This sentence has some AI-like elements"
	case score > 20:
		return "strongly_human", "This sentence feels natural and human"
	case score > 0:
		return "slightly_human", "This sentence has good human elements"
	default:
		return "neutral", "This sentence is neutral"
	}
}

package humanizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/textsplit"
)

var passivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(is|are|was|were|been|being)\s+\w+ed\b`),
	regexp.MustCompile(`(has|have|had)\s+been\s+\w+ed\b`),
}

// suggestForSentence diagnoses one sentence and proposes fixes. The
// second return is false when there is nothing to suggest.
func (h *Humanizer) suggestForSentence(sentence string, index int) (models.SentenceSuggestion, bool) {
	var suggestions []models.Suggestion
	improved := sentence

	words := textsplit.Words(strings.ToLower(sentence))
	if len(words) > 0 {
		first := strings.TrimRight(words[0], ".,;:")
		if alts, ok := lookupTransition(first); ok {
			suggestions = append(suggestions, models.Suggestion{
				Issue:       fmt.Sprintf("Starts with formal transition '%s'", first),
				Fix:         "Try: " + strings.Join(alts, ", "),
				Explanation: "Formal transitions can make writing sound robotic",
			})
			alt := alts[h.intn(len(alts))]
			improved = upperFirst(alt) + sentence[len(first):]
		}
	}

	lower := strings.ToLower(sentence)
	for _, r := range fillerSuggestions {
		if strings.Contains(lower, r.formal) {
			suggestions = append(suggestions, models.Suggestion{
				Issue:       fmt.Sprintf("Contains filler phrase: '%s'", r.formal),
				Fix:         "Try: " + strings.Join(r.alternatives, ", "),
				Explanation: "This phrase adds words without adding meaning",
			})
		}
	}

	switch {
	case len(words) > 35:
		suggestions = append(suggestions, models.Suggestion{
			Issue:       "Very long sentence",
			Fix:         "Consider breaking into 2-3 shorter sentences",
			Explanation: "Long sentences can be hard to follow. Vary your length.",
		})
	case len(words) < 5 && index > 0:
		suggestions = append(suggestions, models.Suggestion{
			Issue:       "Very short sentence",
			Fix:         "This is fine! Short sentences add punch.",
			Explanation: "Mixing short and long sentences creates rhythm.",
		})
	}

	for _, re := range passivePatterns {
		if re.MatchString(lower) {
			suggestions = append(suggestions, models.Suggestion{
				Issue:       "Possible passive voice",
				Fix:         "Try active voice: Subject + Verb + Object",
				Explanation: "Active voice is usually clearer and more engaging",
			})
			break
		}
	}

	if len(suggestions) == 0 {
		return models.SentenceSuggestion{}, false
	}
	s := models.SentenceSuggestion{
		Index:       index,
		Original:    sentence,
		Suggestions: suggestions,
	}
	if improved != sentence {
		s.Improved = improved
	}
	return s, true
}

func lookupTransition(word string) ([]string, bool) {
	for _, r := range transitionAlternatives {
		if r.formal == word {
			return r.alternatives, true
		}
	}
	return nil, false
}

// generalTips maps the statistical features onto writing advice.
func generalTips(f models.FeatureVector) []models.Tip {
	tips := []models.Tip{}
	if f.SentenceUniformity > 70 {
		tips = append(tips, models.Tip{
			Title: "Vary Your Sentence Length",
			Tip: "Your sentences are similar in length. Mix it up! " +
				"Use some short punchy sentences. Then follow with longer, " +
				"more detailed explanations when needed.",
			Example: "Before: \"The data shows clear patterns. The results indicate growth. " +
				"The analysis reveals trends.\"\n" +
				"After: \"The data speaks. Clear patterns emerge - growth, trends, " +
				"undeniable progress that the numbers can't hide.\"",
		})
	}
	if f.Burstiness < 30 {
		tips = append(tips, models.Tip{
			Title: "Add Complexity Variation",
			Tip: "Your writing has consistent complexity throughout. " +
				"Humans naturally write with \"bursts\" - simple ideas followed " +
				"by complex analysis, then back to simple.",
			Example: "Try: Start with a simple statement. Then dive deep into details. " +
				"Then come back up for air with another simple point.",
		})
	}
	if f.TransitionDensity > 3 {
		tips = append(tips, models.Tip{
			Title: "Reduce Formal Transitions",
			Tip: "You're using many formal transition words (furthermore, moreover, etc.). " +
				"These are fine in academic writing, but too many sounds robotic.",
			Example: "Instead of \"Furthermore, the study shows...\" try \"The study also shows...\" " +
				"or just \"Plus, ...\"",
		})
	}
	return tips
}

// learningPoints are fixed educational takeaways shown with every
// analysis.
func learningPoints() []models.LearningPoint {
	return []models.LearningPoint{
		{
			Concept: "Sentence Rhythm",
			Explanation: "Good writing has rhythm. Read your work aloud. " +
				"Does it flow naturally? Does it sound like YOU talking?",
			Exercise: "Read one paragraph aloud. Mark sentences that feel awkward. " +
				"Rewrite those in your own voice.",
		},
		{
			Concept: "Show Your Thinking",
			Explanation: "AI writes \"correctly\" but impersonally. Your unique perspective, " +
				"uncertainties, and personal examples make writing human.",
			Exercise: "Add one personal example or opinion to each main point. " +
				"Use \"I think\" or \"In my experience\" where appropriate.",
		},
		{
			Concept: "Imperfection is Human",
			Explanation: "Perfectly structured prose can feel artificial. " +
				"Real writing has character - informal asides, questions, " +
				"even occasional rule-breaking.",
			Exercise: "Add a rhetorical question. Use a sentence fragment for emphasis. " +
				"Include a personal aside in parentheses.",
		},
	}
}

// beforeAfterExamples rewrites up to the first three sentences and
// keeps the ones that actually changed.
func (h *Humanizer) beforeAfterExamples(sentences []string) []models.RewriteExample {
	examples := []models.RewriteExample{}
	for i, sentence := range sentences {
		if i >= 3 {
			break
		}
		rewrite := h.humanizeSentence(sentence)
		if rewrite == sentence {
			continue
		}
		examples = append(examples, models.RewriteExample{
			Before:      sentence,
			After:       rewrite,
			Explanation: explainChanges(sentence, rewrite),
		})
	}
	return examples
}

// humanizeSentence applies the transition and filler substitutions to
// a single sentence.
func (h *Humanizer) humanizeSentence(sentence string) string {
	result := sentence

	words := textsplit.Words(result)
	if len(words) > 0 {
		first := strings.TrimRight(strings.ToLower(words[0]), ".,;:")
		if alts, ok := lookupTransition(first); ok {
			alt := alts[h.intn(len(alts))]
			result = upperFirst(alt) + result[len(words[0]):]
		}
	}

	lower := strings.ToLower(result)
	for _, r := range fillerSuggestions {
		if strings.Contains(lower, r.formal) {
			alt := r.alternatives[h.intn(len(r.alternatives))]
			re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(r.formal))
			result = re.ReplaceAllString(result, alt)
			break
		}
	}
	return result
}

func explainChanges(original, rewritten string) string {
	origWords := textsplit.Words(strings.ToLower(original))
	newWords := textsplit.Words(strings.ToLower(rewritten))
	if len(origWords) > 0 && len(newWords) > 0 && origWords[0] != newWords[0] {
		return fmt.Sprintf("Changed opening from '%s' to '%s'", origWords[0], newWords[0])
	}
	return "Simplified phrasing for more natural flow"
}

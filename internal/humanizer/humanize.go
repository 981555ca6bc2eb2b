// Package humanizer rewrites machine-sounding prose into a more
// conversational register and explains every edit it makes. It is an
// educational tool: alongside the rewritten text it produces
// suggestions, per-sentence diagnoses and practice exercises.
package humanizer

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/textsplit"
)

const (
	maxSuggestionSentences = 15
	longSentenceWords      = 40
)

// Humanizer runs the rewrite pipeline. Randomness comes from the
// injected source so callers can seed for reproducible output. The
// source is mutex-guarded, so one Humanizer is safe to share across
// goroutines.
type Humanizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Humanizer. A nil rng gets a time-seeded source.
func New(rng *rand.Rand) *Humanizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Humanizer{rng: rng}
}

// intn draws from the rng under the lock. rand.Rand is not safe for
// concurrent use and the worker shares one Humanizer across handlers.
func (h *Humanizer) intn(n int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rng.Intn(n)
}

func (h *Humanizer) coinFlip() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rng.Float64() > 0.5
}

// Humanize rewrites text through the full pipeline and builds the
// suggestion, tip and example material from the statistical analysis.
// Empty input returns an empty result, not an error.
func (h *Humanizer) Humanize(text string, analysis models.AnalysisResult) models.HumanizeResult {
	result := models.HumanizeResult{
		Suggestions:         []models.SentenceSuggestion{},
		GeneralTips:         []models.Tip{},
		LearningPoints:      []models.LearningPoint{},
		BeforeAfterExamples: []models.RewriteExample{},
		Changes:             []models.ChangeRecord{},
	}
	if strings.TrimSpace(text) == "" {
		return result
	}

	sentences := textsplit.Sentences(text)

	for i, sentence := range sentences {
		if i >= maxSuggestionSentences {
			break
		}
		if s, ok := h.suggestForSentence(sentence, i); ok {
			result.Suggestions = append(result.Suggestions, s)
		}
	}
	result.GeneralTips = generalTips(analysis.Features)
	result.LearningPoints = learningPoints()
	result.BeforeAfterExamples = h.beforeAfterExamples(sentences)
	result.HumanizedText, result.Changes = h.rewrite(text)
	return result
}

// rewrite runs the six-pass rewrite pipeline over the whole text and
// returns the rewritten text with one change record per edit.
func (h *Humanizer) rewrite(text string) (string, []models.ChangeRecord) {
	changes := []models.ChangeRecord{}
	out := text

	// Pass 1: formal phrases become casual ones, everywhere.
	for _, pair := range formalToCasual {
		if !strings.Contains(strings.ToLower(out), pair.formal) {
			continue
		}
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(pair.formal))
		out = re.ReplaceAllString(out, pair.casual)
		changes = append(changes, models.ChangeRecord{
			Type:        "phrase_replacement",
			Original:    pair.formal,
			Replacement: pair.casual,
			Reason:      "Replaced formal phrase with simpler alternative",
		})
	}

	// Pass 2: formal transitions at sentence starts.
	for _, r := range transitionAlternatives {
		re := regexp.MustCompile(`(?i)(^|[.!?]\s+)(` + regexp.QuoteMeta(r.formal) + `)(\s|,)`)
		if !re.MatchString(out) {
			continue
		}
		alt := r.alternatives[h.intn(len(r.alternatives))]
		out = re.ReplaceAllString(out, "${1}"+alt+"${3}")
		changes = append(changes, models.ChangeRecord{
			Type:        "transition_replacement",
			Original:    r.formal,
			Replacement: alt,
			Reason:      "Replaced formal transition with natural alternative",
		})
	}

	// Pass 3: filler phrases. Only the first filler found is replaced;
	// the suggestion pass flags the rest for the writer to handle.
	for _, r := range fillerSuggestions {
		if !strings.Contains(strings.ToLower(out), r.formal) {
			continue
		}
		alt := r.alternatives[h.intn(len(r.alternatives))]
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(r.formal))
		out = re.ReplaceAllString(out, alt)
		changes = append(changes, models.ChangeRecord{
			Type:        "filler_removal",
			Original:    r.formal,
			Replacement: alt,
			Reason:      "Removed filler phrase that adds no meaning",
		})
		break
	}

	// Pass 4: break up runs of sentences opening with "The"/"This".
	sentences := textsplit.Sentences(out)
	varied := make([]string, 0, len(sentences))
	consecutive := 0
	for _, sentence := range sentences {
		modified := sentence
		lower := strings.ToLower(sentence)
		if strings.HasPrefix(lower, "the ") || strings.HasPrefix(lower, "this ") {
			consecutive++
			if consecutive >= 2 && h.coinFlip() {
				starter := humanStarters[h.intn(len(humanStarters))]
				modified = starter + " " + lowerFirst(sentence)
				changes = append(changes, models.ChangeRecord{
					Type:        "variety_addition",
					Original:    clip(sentence, 30) + "...",
					Replacement: clip(modified, 40) + "...",
					Reason:      "Added variety to avoid repetitive sentence starts",
				})
				consecutive = 0
			}
		} else {
			consecutive = 0
		}
		varied = append(varied, modified)
	}

	// Pass 5: split very long sentences near their midpoint.
	final := make([]string, 0, len(varied))
	for _, sentence := range varied {
		first, second, ok := splitLongSentence(sentence)
		if !ok {
			final = append(final, sentence)
			continue
		}
		final = append(final, first, second)
		changes = append(changes, models.ChangeRecord{
			Type:        "sentence_split",
			Original:    clip(sentence, 40) + "...",
			Replacement: clip(first, 20) + "... | " + clip(second, 20) + "...",
			Reason:      "Split long sentence for better readability",
		})
	}
	out = strings.Join(final, " ")

	// Pass 6: question-free texts get one rhetorical question.
	if len(final) > 5 && !strings.Contains(out, "?") {
		pos := 3
		if pos > len(final)-1 {
			pos = len(final) - 1
		}
		question := rhetoricalQuestions[h.intn(len(rhetoricalQuestions))]
		final = append(final[:pos], append([]string{question}, final[pos:]...)...)
		out = strings.Join(final, " ")
		changes = append(changes, models.ChangeRecord{
			Type:        "question_addition",
			Original:    "(no questions)",
			Replacement: question,
			Reason:      "Added rhetorical question to engage reader (human writers ask questions)",
		})
	}

	return out, changes
}

// splitLongSentence breaks a sentence of more than 40 words at the
// first conjunction found near the midpoint. The first part gets a
// terminating period, the second a capital letter.
func splitLongSentence(sentence string) (first, second string, ok bool) {
	words := textsplit.Words(sentence)
	if len(words) <= longSentenceWords {
		return "", "", false
	}
	mid := len(words) / 2
	splitIndex := 0
	for _, sw := range splitWords {
		idx := indexOf(words, sw)
		if idx > mid-10 && idx < mid+10 {
			splitIndex = idx
			break
		}
	}
	if splitIndex <= 0 {
		return "", "", false
	}
	first = strings.Join(words[:splitIndex], " ")
	second = upperFirst(strings.Join(words[splitIndex:], " "))
	if !strings.HasSuffix(first, ".") {
		first += "."
	}
	return first, second, true
}

func indexOf(words []string, target string) int {
	for i, w := range words {
		if w == target {
			return i
		}
	}
	return -1
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// clip truncates s to at most n runes.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

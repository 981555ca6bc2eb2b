package humanizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/textsplit"
)

var personalStarters = []string{
	"I find it interesting that",
	"What strikes me here is that",
	"In my view,",
	"I've noticed that",
}

var contrastStarters = []string{
	"However, it's worth considering that",
	"That said,",
	"On the other hand,",
	"Yet we should also note that",
}

// fillerExerciseMarkers pick out sentences worth rewriting in the
// filler-removal exercise.
var fillerExerciseMarkers = []string{
	"it is important to", "it should be noted", "in order to",
	"due to the fact", "it is worth", "at this point in time",
	"for the purpose of", "in the event that",
}

// Exercises builds practice exercises tailored to the text. Which
// exercises appear depends on what the text contains; a question-free
// text gets a question exercise, passive voice triggers the active
// voice one, and so on.
func (h *Humanizer) Exercises(text string, analysis models.AnalysisResult) []models.Exercise {
	exercises := []models.Exercise{}
	sentences := textsplit.Sentences(text)
	if len(sentences) == 0 {
		return exercises
	}

	exercises = append(exercises, models.Exercise{
		ID:         "personal_voice",
		Title:      "Add Your Personal Voice",
		Difficulty: "Easy",
		Instruction: "Rewrite this sentence as if you're explaining it to a friend. " +
			"Use \"I think\", \"I noticed\", or share a personal observation.",
		OriginalSentence: sentences[0],
		Hints: []string{
			"Start with \"I\" or \"In my view\"",
			"Add why YOU find this interesting or important",
			"Include a personal example if relevant",
		},
		ExampleRewrite: h.personalRewrite(sentences[0]),
		LearningGoal:   "Human writing includes personal perspective. AI writes objectively but impersonally.",
	})

	if len(sentences) >= 3 {
		exercises = append(exercises, models.Exercise{
			ID:         "sentence_variety",
			Title:      "Create Rhythm with Variety",
			Difficulty: "Medium",
			Instruction: "Rewrite these 3 sentences with different lengths: " +
				"one short (under 8 words), one medium (10-15 words), one longer (20+ words).",
			OriginalSentence: strings.Join(sentences[:3], " "),
			Hints: []string{
				"Short sentences create impact: \"This matters.\"",
				"Medium sentences explain: \"The research shows interesting patterns in the data.\"",
				"Longer sentences can explore complexity with multiple clauses",
			},
			ExampleRewrite: "Short: 'This matters.' | " +
				"Medium: 'The data reveals a clear pattern here.' | " +
				"Long: 'When we consider all the factors involved, including the historical context " +
				"and current trends, a more nuanced picture emerges.'",
			LearningGoal: "Humans naturally vary sentence length. AI tends toward uniformity.",
		})
	}

	if filler := findFillerSentence(sentences); filler != "" {
		exercises = append(exercises, models.Exercise{
			ID:         "remove_filler",
			Title:      "Cut the Fluff",
			Difficulty: "Easy",
			Instruction: "Rewrite this sentence removing unnecessary filler phrases. " +
				"Say the same thing in fewer words.",
			OriginalSentence: filler,
			Hints: []string{
				"\"It is important to note that\" → just state it",
				"\"In order to\" → \"to\"",
				"\"Due to the fact that\" → \"because\"",
			},
			ExampleRewrite: stripFillers(filler),
			LearningGoal:   "Concise writing is clearer. Filler phrases are AI padding.",
		})
	}

	if passive := findPassiveSentence(sentences); passive != "" {
		exercises = append(exercises, models.Exercise{
			ID:         "active_voice",
			Title:      "Make It Active",
			Difficulty: "Medium",
			Instruction: "Convert this passive voice sentence to active voice. " +
				"Identify WHO is doing the action and lead with that.",
			OriginalSentence: passive,
			Hints: []string{
				"Find the real subject (who/what is doing the action)",
				"Structure: Subject → Verb → Object",
				"\"The ball was thrown by John\" → \"John threw the ball\"",
			},
			ExampleRewrite: "Identify the actor and restructure: [Subject] [action verb] [object]",
			LearningGoal:   "Active voice is more engaging and direct. Passive voice can sound robotic.",
		})
	}

	if !strings.Contains(text, "?") && len(sentences) > 3 {
		sample := sentences[0]
		if len(sentences) > 2 {
			sample = sentences[2]
		}
		exercises = append(exercises, models.Exercise{
			ID:         "add_question",
			Title:      "Engage with Questions",
			Difficulty: "Easy",
			Instruction: "Add a rhetorical question somewhere in your text to engage the reader. " +
				"Questions show you're thinking, not just stating facts.",
			OriginalSentence: sample,
			Hints: []string{
				"Ask \"why\" something matters",
				"Challenge an assumption: \"But is this always true?\"",
				"Invite reflection: \"What does this mean for us?\"",
			},
			ExampleRewrite: "After stating a fact, ask: \"But why does this matter?\" or \"What does this tell us?\"",
			LearningGoal:   "Human writers ask questions. It shows curiosity and engages readers.",
		})
	}

	if len(sentences) >= 2 {
		contrast := contrastStarters[h.intn(len(contrastStarters))]
		exercises = append(exercises, models.Exercise{
			ID:         "add_contrast",
			Title:      "Show Both Sides",
			Difficulty: "Hard",
			Instruction: "Take your main point and add a contrasting perspective or nuance. " +
				"Real analysis considers multiple angles.",
			OriginalSentence: sentences[0],
			Hints: []string{
				"Use \"however\", \"on the other hand\", \"yet\"",
				"Acknowledge limitations: \"This is true, but...\"",
				"Show complexity: \"While X is important, Y also matters\"",
			},
			ExampleRewrite: fmt.Sprintf("%s %s [add your contrasting point here].", sentences[0], contrast),
			LearningGoal:   "Nuanced thinking shows depth. AI often presents one-sided statements.",
		})
	}

	return exercises
}

func (h *Humanizer) personalRewrite(sentence string) string {
	starter := personalStarters[h.intn(len(personalStarters))]
	return starter + " " + lowerFirst(sentence)
}

func findFillerSentence(sentences []string) string {
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, marker := range fillerExerciseMarkers {
			if strings.Contains(lower, marker) {
				return sentence
			}
		}
	}
	if len(sentences) > 0 {
		return sentences[0]
	}
	return ""
}

// stripFillers applies every formal and filler substitution to one
// sentence as an example rewrite.
func stripFillers(sentence string) string {
	result := sentence
	for _, pair := range formalToCasual {
		result = replaceInsensitive(result, pair.formal, pair.casual)
	}
	for _, r := range fillerSuggestions {
		result = replaceInsensitive(result, r.formal, r.alternatives[0])
	}
	return result
}

func replaceInsensitive(text, phrase, with string) string {
	if !strings.Contains(strings.ToLower(text), phrase) {
		return text
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))
	return re.ReplaceAllString(text, with)
}

func findPassiveSentence(sentences []string) string {
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, re := range passivePatterns {
			if re.MatchString(lower) {
				return sentence
			}
		}
	}
	return ""
}

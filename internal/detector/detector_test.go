package detector

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAnalyzeEmptyText(t *testing.T) {
	d := New()
	for _, text := range []string{"", "   ", "\n\t"} {
		result := d.Analyze(text)
		if result.Score != 0 {
			t.Errorf("Analyze(%q).Score = %f, want 0", text, result.Score)
		}
		if len(result.Explanation) != 1 || result.Explanation[0] != "Empty text provided" {
			t.Errorf("Analyze(%q).Explanation = %v, want [Empty text provided]", text, result.Explanation)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	d := New()
	text := "Furthermore, it is important to note that the results were significant. " +
		"The study was conducted over several months. " +
		"Moreover, the data suggests that further research is needed."
	first := d.Analyze(text)
	second := d.Analyze(text)
	if !reflect.DeepEqual(first, second) {
		t.Error("Analyze is not deterministic for identical input")
	}
}

func TestTransitionDensity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool // density > 0
	}{
		{"bare transition word", "Furthermore the plan worked well.", true},
		{"transition with trailing comma", "Furthermore, the plan worked well.", true},
		{"no transitions", "The plan worked well for everyone involved.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordDensity(tt.text, transitionWords)
			if (got > 0) != tt.want {
				t.Errorf("wordDensity(%q) = %f, want >0: %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFillerDensity(t *testing.T) {
	text := "It is important to note that needless to say this works."
	if got := fillerDensity(text); got <= 0 {
		t.Errorf("fillerDensity = %f, want > 0 for two filler phrases", got)
	}
	if got := fillerDensity("Plain text with no padding at all."); got != 0 {
		t.Errorf("fillerDensity = %f, want 0", got)
	}
}

func TestSentenceUniformity(t *testing.T) {
	// Three sentences of exactly ten words each: zero variance.
	uniform := []string{
		"one two three four five six seven eight nine ten.",
		"one two three four five six seven eight nine ten.",
		"one two three four five six seven eight nine ten.",
	}
	if got := sentenceUniformity(uniform); got < 99.9 {
		t.Errorf("sentenceUniformity(uniform) = %f, want ~100", got)
	}
	varied := []string{
		"Short one here now.",
		"This sentence is quite a lot longer than the first one by a wide margin indeed.",
		"Medium length sentence sits in between them.",
	}
	if got := sentenceUniformity(varied); got >= 99 {
		t.Errorf("sentenceUniformity(varied) = %f, want well below uniform", got)
	}
	if got := sentenceUniformity([]string{"only one sentence here."}); got != 50 {
		t.Errorf("sentenceUniformity(short input) = %f, want 50", got)
	}
}

func TestBurstinessDefaults(t *testing.T) {
	if got := burstiness(nil); got != 50 {
		t.Errorf("burstiness(nil) = %f, want 50", got)
	}
	if got := burstiness([]string{"one.", "two."}); got != 50 {
		t.Errorf("burstiness(two sentences) = %f, want 50", got)
	}
}

func TestVocabularyRichness(t *testing.T) {
	if got := vocabularyRichness("the the the the"); got != 0.25 {
		t.Errorf("vocabularyRichness(repeated) = %f, want 0.25", got)
	}
	if got := vocabularyRichness("alpha beta gamma delta"); got != 1.0 {
		t.Errorf("vocabularyRichness(distinct) = %f, want 1.0", got)
	}
	if got := vocabularyRichness("12345 !!!"); got != 0.5 {
		t.Errorf("vocabularyRichness(no alpha words) = %f, want 0.5", got)
	}
}

func TestEstimatePredictability(t *testing.T) {
	if got := estimatePredictability("too few words here"); got != 50 {
		t.Errorf("estimatePredictability(short) = %f, want 50", got)
	}
	repetitive := strings.Repeat("the cat sat on the mat ", 5)
	diverse := "every single word in this particular sentence differs from all other tokens nearby today"
	if estimatePredictability(repetitive) >= estimatePredictability(diverse) {
		t.Error("repetitive text should score lower normalized entropy than diverse text")
	}
}

func TestSentenceFlagging(t *testing.T) {
	text := "Furthermore, it is important to note that this plays a crucial role."
	result := New().Analyze(text)

	if result.Features.TransitionDensity <= 0 {
		t.Error("expected nonzero transition density")
	}
	if result.Features.FillerDensity <= 0 {
		t.Error("expected nonzero filler density")
	}
	if len(result.Sentences) != 1 {
		t.Fatalf("got %d sentence analyses, want 1", len(result.Sentences))
	}
	flags := result.Sentences[0].Flags
	var formal, transition bool
	for _, f := range flags {
		switch f {
		case "Formal construction pattern":
			formal = true
		case "Starts with transition word":
			transition = true
		}
	}
	if !formal || !transition {
		t.Errorf("flags = %v, want formal construction and transition start", flags)
	}
	if result.Sentences[0].AIScore <= 0 {
		t.Error("expected positive per-sentence score")
	}
}

func TestScoreBounds(t *testing.T) {
	texts := []string{
		"Short note.",
		"Furthermore, it is important to note that the data suggests patterns. " +
			"Moreover, it is worth mentioning that results typically align. " +
			"Additionally, one can argue that the approach is generally sound.",
		"I grabbed coffee, tripped over the dog, and somehow still made the 8am train!",
	}
	d := New()
	for _, text := range texts {
		score := d.Analyze(text).Score
		if score < 0 || score > 100 {
			t.Errorf("score %f out of [0,100] for %q", score, text)
		}
	}
}

func TestIndicatorSeverity(t *testing.T) {
	// Dense transitions should surface the transition indicator.
	text := "Furthermore thus hence therefore moreover likewise the end came."
	result := New().Analyze(text)
	found := false
	for _, ind := range result.Indicators {
		if ind.Type == "High transition word density" {
			found = true
			if ind.Severity != "high" {
				t.Errorf("severity = %q, want high for extreme density", ind.Severity)
			}
		}
	}
	if !found {
		t.Errorf("indicators = %v, missing transition density indicator", result.Indicators)
	}
}

func TestSentenceDisplayTruncationKeepsValidUTF8(t *testing.T) {
	long := strings.Repeat("é", 120)
	analysis := analyzeSentences([]string{long})
	if len(analysis) != 1 {
		t.Fatalf("analyzeSentences returned %d entries, want 1", len(analysis))
	}
	display := analysis[0].Text
	if !utf8.ValidString(display) {
		t.Errorf("display text is not valid UTF-8: %q", display)
	}
	if !strings.HasSuffix(display, "...") {
		t.Errorf("display text %q not truncated with ellipsis", display)
	}
	if got := utf8.RuneCountInString(display); got != 103 {
		t.Errorf("display rune count = %d, want 103 (100 + ellipsis)", got)
	}
}

package humanizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombar/writelens/internal/models"
)

func exerciseIDs(exercises []models.Exercise) []string {
	ids := make([]string, 0, len(exercises))
	for _, e := range exercises {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestExercisesEmptyText(t *testing.T) {
	assert.Empty(t, newSeeded(1).Exercises("", models.AnalysisResult{}))
}

func TestExercisesFullSet(t *testing.T) {
	text := "It is important to note that the report was reviewed by several senior colleagues. " +
		"The first draft covered only the raw numbers from last quarter. " +
		"The second draft added context around the regional differences. " +
		"The final version landed somewhere in between both extremes."
	exercises := newSeeded(4).Exercises(text, models.AnalysisResult{})

	ids := exerciseIDs(exercises)
	assert.Contains(t, ids, "personal_voice")
	assert.Contains(t, ids, "sentence_variety")
	assert.Contains(t, ids, "remove_filler")
	assert.Contains(t, ids, "active_voice")
	assert.Contains(t, ids, "add_question")
	assert.Contains(t, ids, "add_contrast")
}

func TestExercisesSkipQuestionWhenPresent(t *testing.T) {
	text := "Does the report hold up under scrutiny from the committee? " +
		"The first draft covered only the raw numbers from last quarter. " +
		"The second draft added context around the regional differences. " +
		"The final version landed somewhere in between both extremes."
	ids := exerciseIDs(newSeeded(4).Exercises(text, models.AnalysisResult{}))
	assert.NotContains(t, ids, "add_question")
}

func TestExercisesSkipActiveVoiceWithoutPassive(t *testing.T) {
	text := "The team ships code every Friday afternoon without fail. " +
		"Everyone reviews at least one change before lunch arrives."
	ids := exerciseIDs(newSeeded(4).Exercises(text, models.AnalysisResult{}))
	assert.NotContains(t, ids, "active_voice")
}

func TestRemoveFillerExampleRewrite(t *testing.T) {
	text := "It is important to note that we use caching in order to reduce latency overall. " +
		"The platform keeps the hot keys resident in memory. " +
		"The cold path falls back to the database layer."
	exercises := newSeeded(4).Exercises(text, models.AnalysisResult{})

	var rewrite string
	for _, e := range exercises {
		if e.ID == "remove_filler" {
			rewrite = e.ExampleRewrite
		}
	}
	require.NotEmpty(t, rewrite)
	assert.NotContains(t, rewrite, "it is important to note")
	assert.NotContains(t, rewrite, "in order to")
}

func TestPersonalRewriteLowercasesOriginal(t *testing.T) {
	h := newSeeded(6)
	rewrite := h.personalRewrite("The metrics improved steadily.")
	assert.Contains(t, rewrite, "the metrics improved steadily.")
}

func TestCompare(t *testing.T) {
	original := "The first sentence stays the same. The second sentence will change."
	humanized := "The first sentence stays the same. Look, the second sentence did change."
	result := Compare(original, humanized)

	require.Len(t, result.Comparisons, 2)
	assert.False(t, result.Comparisons[0].Changed)
	assert.True(t, result.Comparisons[1].Changed)
	assert.Equal(t, 1, result.Comparisons[0].Index)
	assert.Equal(t, 2, result.Comparisons[1].Index)
	assert.Equal(t, 11, result.OriginalWordCount)
	assert.Equal(t, 12, result.HumanizedWordCount)
	assert.Equal(t, 2, result.TotalSentencesOriginal)
	assert.Equal(t, 2, result.TotalSentencesHumanized)
}

func TestCompareIdenticalTexts(t *testing.T) {
	text := "Nothing in this block was touched at all. Every sentence matches exactly."
	result := Compare(text, text)
	for _, row := range result.Comparisons {
		assert.False(t, row.Changed)
	}
}

func TestCompareUnevenLengths(t *testing.T) {
	original := "Only one sentence lives here today."
	humanized := "Only one sentence lives here today. A second sentence appeared during rewriting."
	result := Compare(original, humanized)

	require.Len(t, result.Comparisons, 2)
	assert.Equal(t, "", result.Comparisons[1].Original)
	assert.True(t, result.Comparisons[1].Changed)
}

package humanizer

import (
	"github.com/zombar/writelens/internal/models"
	"github.com/zombar/writelens/internal/textsplit"
)

const maxComparisonRows = 20

// Compare builds side-by-side rows pairing original and rewritten
// sentences by position, up to 20 rows. When one side runs out its
// cell is left empty and the row still counts as changed.
func Compare(original, humanized string) models.ComparisonResult {
	origSentences := textsplit.Sentences(original)
	humanSentences := textsplit.Sentences(humanized)

	rows := len(origSentences)
	if len(humanSentences) > rows {
		rows = len(humanSentences)
	}
	if rows > maxComparisonRows {
		rows = maxComparisonRows
	}

	comparisons := []models.ComparisonRow{}
	for i := 0; i < rows; i++ {
		var orig, human string
		if i < len(origSentences) {
			orig = origSentences[i]
		}
		if i < len(humanSentences) {
			human = humanSentences[i]
		}
		comparisons = append(comparisons, models.ComparisonRow{
			Index:     i + 1,
			Original:  orig,
			Humanized: human,
			Changed:   orig != human,
		})
	}

	return models.ComparisonResult{
		Comparisons:             comparisons,
		OriginalWordCount:       len(textsplit.Words(original)),
		HumanizedWordCount:      len(textsplit.Words(humanized)),
		TotalSentencesOriginal:  len(origSentences),
		TotalSentencesHumanized: len(humanSentences),
	}
}

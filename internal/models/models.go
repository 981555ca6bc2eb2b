package models

import "time"

// Report bundles every engine's output for one submitted text
type Report struct {
	ID         string              `json:"id"`
	Text       string              `json:"text"`
	AI         AnalysisResult      `json:"ai"`
	Similarity SimilarityResult    `json:"similarity"`
	Humanize   HumanizeResult      `json:"humanize"`
	Breakdown  []SentenceBreakdown `json:"breakdown"`
	Exercises  []Exercise          `json:"exercises"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// AnalysisResult is the outcome of statistical AI-likelihood scoring
type AnalysisResult struct {
	Score       float64            `json:"score"` // 0-100, higher = more likely machine-generated
	Indicators  []Indicator        `json:"indicators"`
	Sentences   []SentenceAnalysis `json:"sentence_analysis"`
	Features    FeatureVector      `json:"statistical_features"`
	Explanation []string           `json:"explanation"`
}

// FeatureVector holds the raw statistical features computed from a text
type FeatureVector struct {
	TransitionDensity  float64 `json:"transition_density"`
	FillerDensity      float64 `json:"filler_density"`
	HedgeDensity       float64 `json:"hedge_density"`
	SentenceUniformity float64 `json:"sentence_uniformity"`
	Predictability     float64 `json:"predictability_estimate"`
	Burstiness         float64 `json:"burstiness"`
	VocabularyRichness float64 `json:"vocabulary_richness"` // 0-1 type-token ratio
}

// Indicator flags one machine-writing pattern found in a text
type Indicator struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"` // low, medium, high
	Explanation string `json:"explanation"`
}

// SentenceAnalysis scores a single sentence for machine-writing patterns
type SentenceAnalysis struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"` // truncated to 100 chars for display
	AIScore float64  `json:"ai_score"`
	Flags   []string `json:"flags"`
}

// CorpusEntry is one reference document in the similarity corpus
type CorpusEntry struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// SimilarityResult is the outcome of corpus and self-similarity analysis
type SimilarityResult struct {
	Score              float64       `json:"score"` // 0-100
	Matches            []CorpusMatch `json:"matches"`
	CorpusScore        float64       `json:"corpus_score"`
	InternalSimilarity float64       `json:"internal_similarity"`
	CommonPhrases      []PhraseMatch `json:"common_phrases"`
	Details            string        `json:"details,omitempty"`
}

// CorpusMatch records one reference document similar to the query text
type CorpusMatch struct {
	Source     string  `json:"source"`
	Similarity float64 `json:"similarity"` // cosine, 0-1
	MatchIndex int     `json:"match_index"`
}

// PhraseMatch records occurrences of one stock academic phrase pattern
type PhraseMatch struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// ChangeRecord logs a single edit made by the rewrite pipeline
type ChangeRecord struct {
	Type        string `json:"type"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Reason      string `json:"reason"`
}

// HumanizeResult is the complete output of the rewrite pipeline
type HumanizeResult struct {
	Suggestions         []SentenceSuggestion `json:"suggestions"`
	GeneralTips         []Tip                `json:"general_tips"`
	LearningPoints      []LearningPoint      `json:"learning_points"`
	BeforeAfterExamples []RewriteExample     `json:"before_after_examples"`
	HumanizedText       string               `json:"humanized_text"`
	Changes             []ChangeRecord       `json:"changes"`
}

// SentenceSuggestion carries display-only rewrite advice for one sentence
type SentenceSuggestion struct {
	Index       int          `json:"index"`
	Original    string       `json:"original"`
	Improved    string       `json:"improved,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Suggestion is a single issue/fix pair with its rationale
type Suggestion struct {
	Issue       string `json:"issue"`
	Fix         string `json:"fix"`
	Explanation string `json:"explanation"`
}

// Tip is a general writing tip derived from the statistical features
type Tip struct {
	Title   string `json:"title"`
	Tip     string `json:"tip"`
	Example string `json:"example"`
}

// LearningPoint is an educational takeaway with a practice exercise
type LearningPoint struct {
	Concept     string `json:"concept"`
	Explanation string `json:"explanation"`
	Exercise    string `json:"exercise"`
}

// RewriteExample shows a before/after pair with an explanation of the edit
type RewriteExample struct {
	Before      string `json:"before"`
	After       string `json:"after"`
	Explanation string `json:"explanation"`
}

// BreakdownNote explains one AI-like or human-like trait of a sentence
type BreakdownNote struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
	Fix    string `json:"fix,omitempty"`
}

// SentenceBreakdown diagnoses one sentence as AI-like or human-like
type SentenceBreakdown struct {
	Index           int             `json:"index"` // 1-based
	Sentence        string          `json:"sentence"`
	WordCount       int             `json:"word_count"`
	AIIndicators    []BreakdownNote `json:"ai_indicators"`
	HumanIndicators []BreakdownNote `json:"human_indicators"`
	Score           int             `json:"score"` // negative = AI-like, positive = human-like
	Assessment      string          `json:"assessment"`
	AssessmentText  string          `json:"assessment_text"`
}

// Exercise is a templated writing exercise generated from the analyzed text
type Exercise struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Difficulty       string   `json:"difficulty"` // Easy, Medium, Hard
	Instruction      string   `json:"instruction"`
	OriginalSentence string   `json:"original_sentence"`
	Hints            []string `json:"hints"`
	ExampleRewrite   string   `json:"example_rewrite"`
	LearningGoal     string   `json:"learning_goal"`
}

// ComparisonRow pairs an original sentence with its humanized counterpart
type ComparisonRow struct {
	Index     int    `json:"index"` // 1-based
	Original  string `json:"original"`
	Humanized string `json:"humanized"`
	Changed   bool   `json:"changed"`
}

// ComparisonResult is a side-by-side diff of original and humanized text
type ComparisonResult struct {
	Comparisons             []ComparisonRow `json:"comparisons"`
	OriginalWordCount       int             `json:"original_word_count"`
	HumanizedWordCount      int             `json:"humanized_word_count"`
	TotalSentencesOriginal  int             `json:"total_sentences_original"`
	TotalSentencesHumanized int             `json:"total_sentences_humanized"`
}

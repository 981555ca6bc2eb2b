package similarity

import "regexp"

// commonPhrase pairs a compiled pattern with its source expression so
// results can report which pattern matched.
type commonPhrase struct {
	pattern string
	re      *regexp.Regexp
}

// commonPhrases are stock academic expressions that frequently appear
// in copied or boilerplate prose. Matched against lowercased text.
var commonPhrases = compilePhrases([]string{
	`according to (the )?(research|study|findings)`,
	`it (is|has been) (widely )?(known|accepted|believed)`,
	`in (this|the) (context|regard|respect)`,
	`(plays|play) (a |an )?(important|crucial|vital|key) role`,
	`in (recent|modern) (years|times)`,
	`(has|have) (become|been) (increasingly|more)`,
	`it (is|can be) (argued|said|noted) that`,
	`(first|second|third)(ly)?[,\s]`,
	`in (conclusion|summary)`,
	`on the other hand`,
	`as (a |)result`,
	`due to (the fact|this)`,
})

func compilePhrases(patterns []string) []commonPhrase {
	out := make([]commonPhrase, len(patterns))
	for i, p := range patterns {
		out[i] = commonPhrase{pattern: p, re: regexp.MustCompile(p)}
	}
	return out
}

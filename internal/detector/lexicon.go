package detector

import "regexp"

// transitionWords are formal connectives that machine-generated prose
// leans on far more heavily than human writing does.
var transitionWords = map[string]struct{}{
	"furthermore":  {},
	"moreover":     {},
	"additionally": {},
	"consequently": {},
	"nevertheless": {},
	"subsequently": {},
	"accordingly":  {},
	"hence":        {},
	"thus":         {},
	"therefore":    {},
	"likewise":     {},
	"similarly":    {},
}

// transitionList mirrors transitionWords for ordered prefix checks.
var transitionList = []string{
	"furthermore", "moreover", "additionally", "consequently",
	"nevertheless", "subsequently", "accordingly", "hence",
	"thus", "therefore", "likewise", "similarly",
}

// fillerPhrases are padding expressions that add no information.
var fillerPhrases = []string{
	"it is important to note",
	"it is worth mentioning",
	"in this context",
	"in other words",
	"to put it simply",
	"as mentioned earlier",
	"as previously stated",
	"it goes without saying",
	"needless to say",
	"for the most part",
}

// hedgeWords soften claims without committing to them.
var hedgeWords = map[string]struct{}{
	"somewhat":      {},
	"relatively":    {},
	"generally":     {},
	"typically":     {},
	"usually":       {},
	"often":         {},
	"perhaps":       {},
	"possibly":      {},
	"likely":        {},
	"essentially":   {},
	"basically":     {},
	"fundamentally": {},
}

// formalConstructions match impersonal sentence frames common in
// machine-generated text. Applied to lowercased sentences.
var formalConstructions = []*regexp.Regexp{
	regexp.MustCompile(`it is .+ that`),
	regexp.MustCompile(`there (is|are) .+ that`),
	regexp.MustCompile(`this (suggests|indicates|demonstrates|shows) that`),
	regexp.MustCompile(`(one|we) (can|could|may|might) (argue|say|suggest)`),
}

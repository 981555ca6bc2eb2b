package humanizer

// replacement maps a formal expression to its casual alternatives.
// Tables are ordered slices, not maps, so pipeline passes apply in a
// fixed order and produce a stable change log.
type replacement struct {
	formal       string
	alternatives []string
}

// transitionAlternatives offer casual substitutes for formal
// connectives at sentence starts.
var transitionAlternatives = []replacement{
	{"furthermore", []string{"also", "plus", "and", "what's more"}},
	{"moreover", []string{"besides", "also", "and"}},
	{"additionally", []string{"also", "plus", "another thing is"}},
	{"consequently", []string{"so", "because of this", "as a result"}},
	{"nevertheless", []string{"still", "even so", "but"}},
	{"subsequently", []string{"then", "after that", "next"}},
	{"accordingly", []string{"so", "therefore"}},
	{"hence", []string{"so", "that's why"}},
	{"thus", []string{"so", "this means"}},
	{"therefore", []string{"so", "that's why", "because of this"}},
	{"likewise", []string{"similarly", "in the same way", "also"}},
	{"however", []string{"but", "still", "yet", "though"}},
}

// fillerSuggestions offer shorter stand-ins for padding phrases.
var fillerSuggestions = []replacement{
	{"it is important to note", []string{"Note that", "Keep in mind", "Remember", "One key point:"}},
	{"it is worth mentioning", []string{"Also", "Interestingly", "Here's something else:"}},
	{"in other words", []string{"Put simply", "Basically", "This means"}},
	{"as mentioned earlier", []string{"As I said", "Going back to", "Earlier I mentioned"}},
	{"it goes without saying", []string{"Obviously", "Clearly", "Of course"}},
	{"in this context", []string{"Here", "In this case", "With this"}},
}

// casualPair maps one formal phrase to exactly one plain alternative.
type casualPair struct {
	formal string
	casual string
}

// formalToCasual lists formal phrases replaced wholesale across the
// text, in application order.
var formalToCasual = []casualPair{
	{"utilize", "use"},
	{"implement", "put in place"},
	{"facilitate", "help"},
	{"subsequent", "later"},
	{"prior to", "before"},
	{"in order to", "to"},
	{"due to the fact that", "because"},
	{"at this point in time", "now"},
	{"in the event that", "if"},
	{"for the purpose of", "to"},
	{"with regard to", "about"},
	{"in regard to", "about"},
	{"pertaining to", "about"},
	{"in light of", "because of"},
	{"on the basis of", "based on"},
	{"in spite of the fact that", "although"},
	{"a large number of", "many"},
	{"a significant amount of", "much"},
	{"the vast majority of", "most"},
	{"plays a crucial role", "is key"},
	{"plays an important role", "matters"},
	{"it is evident that", "clearly"},
	{"it is apparent that", "clearly"},
	{"there is no doubt that", "certainly"},
	{"it should be noted that", "note that"},
	{"it is interesting to note that", "interestingly"},
}

// humanStarters are conversational openers injected to break up
// repetitive sentence starts.
var humanStarters = []string{
	"Here's the thing:",
	"What's interesting is",
	"The key point?",
	"Simply put,",
	"Look,",
	"Think about it:",
	"Here's what matters:",
	"The reality is",
	"Let's be clear:",
	"Consider this:",
}

// rhetoricalQuestions are injected into question-free texts.
var rhetoricalQuestions = []string{
	"What does this mean in practice?",
	"Why does this matter?",
	"So what's the takeaway?",
	"But here's the real question:",
}

// splitWords are the conjunctions long sentences are broken at.
var splitWords = []string{"and", "but", "which", "that", "because", "while", "although"}

// sentenceVarietyTips rotate through exercise hints about openers.
var sentenceVarietyTips = []string{
	"Try starting with an action: 'Running through the data revealed...'",
	"Use a question: 'What does this mean for...?'",
	"Start with 'I' or 'We' to make it personal",
	"Begin with a short, punchy statement",
	"Try an example: 'Take the case of...'",
	"Use contrast: 'Unlike X, this Y...'",
}

package nlp

// Category is a builtin intent classifier: substring patterns plus
// exact-token keywords.
type Category struct {
	Patterns []string
	Keywords []string
}

// BuiltinCategories are the intent categories every workflow gets for free.
// Custom per-workflow intents compete against these on the same scale.
var BuiltinCategories = map[string]Category{
	"greeting": {
		Patterns: []string{"hi", "hello", "hey", "good morning", "good evening", "greetings", "howdy"},
		Keywords: []string{"hi", "hello", "hey", "morning", "evening", "greet"},
	},
	"goodbye": {
		Patterns: []string{"bye", "goodbye", "see you", "farewell", "take care", "catch you later"},
		Keywords: []string{"bye", "goodbye", "farewell", "later", "leave"},
	},
	"thanks": {
		Patterns: []string{"thank", "thanks", "thank you", "appreciate", "grateful", "thx"},
		Keywords: []string{"thank", "appreciate", "grateful"},
	},
	"yes": {
		Patterns: []string{"yes", "yeah", "yep", "sure", "okay", "ok", "correct", "right", "affirmative", "absolutely"},
		Keywords: []string{"yes", "yeah", "sure", "ok", "correct", "right"},
	},
	"no": {
		Patterns: []string{"no", "nope", "nah", "not really", "never", "negative", "disagree"},
		Keywords: []string{"no", "nope", "not", "never", "negative"},
	},
	"help": {
		Patterns: []string{"help", "assist", "support", "stuck", "confused", "need help", "don't understand"},
		Keywords: []string{"help", "assist", "support", "stuck", "confused"},
	},
	"order": {
		Patterns: []string{"order", "buy", "purchase", "get", "want to buy", "i want", "looking for"},
		Keywords: []string{"order", "buy", "purchase", "want", "get"},
	},
	"cancel": {
		Patterns: []string{"cancel", "stop", "abort", "quit", "exit", "end", "terminate"},
		Keywords: []string{"cancel", "stop", "abort", "quit", "exit"},
	},
	"confirm": {
		Patterns: []string{"confirm", "proceed", "continue", "go ahead", "lets do it"},
		Keywords: []string{"confirm", "proceed", "continue", "ahead"},
	},
}

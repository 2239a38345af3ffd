// Package nlp is the bounded heuristic classifier behind question nodes:
// substring/keyword scoring for builtin intent categories, token-set Jaccard
// similarity for workflow-trained intents, and regex-driven entity
// extraction. It is deliberately not a statistical model.
package nlp

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// IntentUnknown is returned when no category scores above the threshold.
const IntentUnknown = "unknown"

// scoreThreshold is the floor a winning score must clear; at or below it
// the message stays "unknown".
const scoreThreshold = 0.3

// Registry supplies the trained example phrases for a workflow's custom
// intents, keyed by intent name. Implementations are expected to cache.
type Registry interface {
	Examples(ctx context.Context, workflowID uuid.UUID) (map[string][]string, error)
}

// Result is one classification outcome.
type Result struct {
	Intent     string
	Score      float64
	Confidence float64
	// Entities maps a category (plural: "emails", "numbers", ...) to every
	// match found, in message order. Absent categories are omitted.
	Entities map[string][]string
	Tokens   []string
}

// Classifier scores messages against builtin and per-workflow categories.
type Classifier struct {
	registry   Registry
	categories map[string]Category
}

// NewClassifier builds a classifier on the builtin categories. registry may
// be nil when no workflow-trained intents exist.
func NewClassifier(registry Registry) *Classifier {
	return &Classifier{
		registry:   registry,
		categories: BuiltinCategories,
	}
}

// Classify normalizes the message, scores every candidate category and
// extracts entities. The best intent wins only if it clears the score
// threshold; otherwise the result is "unknown".
func (c *Classifier) Classify(ctx context.Context, message string, workflowID uuid.UUID) (*Result, error) {
	normalized := strings.ToLower(strings.TrimSpace(message))
	tokens := strings.Fields(normalized)

	bestIntent := IntentUnknown
	bestScore := 0.0

	// Deterministic iteration: map order must not decide ties.
	for _, name := range sortedKeys(c.categories) {
		score := c.categoryScore(normalized, tokens, c.categories[name])
		if score > bestScore {
			bestScore = score
			bestIntent = name
		}
	}

	if c.registry != nil && workflowID != uuid.Nil {
		custom, err := c.registry.Examples(ctx, workflowID)
		if err != nil {
			return nil, err
		}
		for _, name := range sortedKeys(custom) {
			score := maxJaccard(tokens, custom[name])
			if score > bestScore {
				bestScore = score
				bestIntent = name
			}
		}
	}

	if bestScore <= scoreThreshold {
		bestIntent = IntentUnknown
	}

	entities := ExtractEntities(message)

	return &Result{
		Intent:     bestIntent,
		Score:      bestScore,
		Confidence: confidence(bestIntent, entities, tokens),
		Entities:   entities,
		Tokens:     tokens,
	}, nil
}

// categoryScore sums pattern-length/message-length for each substring hit
// plus 0.1 per exact-token keyword hit, boosts by 1.2 when anything matched
// and clamps to [0,1].
func (c *Classifier) categoryScore(message string, tokens []string, cat Category) float64 {
	if len(message) == 0 {
		return 0
	}

	score := 0.0
	matches := 0

	for _, pattern := range cat.Patterns {
		if strings.Contains(message, strings.ToLower(pattern)) {
			score += float64(len(pattern)) / float64(len(message))
			matches++
		}
	}

	for _, keyword := range cat.Keywords {
		for _, tok := range tokens {
			if tok == keyword {
				score += 0.1
				matches++
				break
			}
		}
	}

	if matches > 0 {
		score *= 1.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// maxJaccard returns the highest Jaccard similarity between the message's
// token set and any trained example's token set.
func maxJaccard(tokens []string, examples []string) float64 {
	best := 0.0
	for _, example := range examples {
		if sim := jaccard(tokens, strings.Fields(strings.ToLower(example))); sim > best {
			best = sim
		}
	}
	return best
}

func jaccard(a, b []string) float64 {
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// confidence is a flat 0.2 for unknown intents; otherwise a 0.6 base plus
// up to 0.2 for extracted entity categories and 0.1 for longer messages,
// capped at 1.0.
func confidence(intent string, entities map[string][]string, tokens []string) float64 {
	if intent == IntentUnknown {
		return 0.2
	}
	conf := 0.6
	entityBoost := 0.05 * float64(len(entities))
	if entityBoost > 0.2 {
		entityBoost = 0.2
	}
	conf += entityBoost
	if len(tokens) > 3 {
		conf += 0.1
	}
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package resolver

import (
	"testing"

	"chatbot-flow-be/pkg/engine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transition(trigger engine.TriggerType, value string, priority int) engine.Transition {
	return engine.Transition{
		ID:       uuid.New(),
		ToNodeID: uuid.New(),
		Trigger:  trigger,
		Value:    value,
		Priority: priority,
	}
}

func TestResolveTriggerMatching(t *testing.T) {
	tests := []struct {
		name       string
		transition engine.Transition
		input      Input
		wantMatch  bool
	}{
		{
			name:       "intent match",
			transition: transition(engine.TriggerIntent, "greeting", 0),
			input:      Input{Message: "hello", Intent: "greeting"},
			wantMatch:  true,
		},
		{
			name:       "intent mismatch",
			transition: transition(engine.TriggerIntent, "goodbye", 0),
			input:      Input{Message: "hello", Intent: "greeting"},
			wantMatch:  false,
		},
		{
			name:       "empty intent never matches",
			transition: transition(engine.TriggerIntent, "", 0),
			input:      Input{Message: "whatever", Intent: ""},
			wantMatch:  false,
		},
		{
			name:       "keyword is case insensitive substring",
			transition: transition(engine.TriggerKeyword, "Pizza", 0),
			input:      Input{Message: "I want a PIZZA now"},
			wantMatch:  true,
		},
		{
			name:       "keyword absent",
			transition: transition(engine.TriggerKeyword, "pizza", 0),
			input:      Input{Message: "I want sushi"},
			wantMatch:  false,
		},
		{
			name:       "empty keyword never matches",
			transition: transition(engine.TriggerKeyword, "", 0),
			input:      Input{Message: "anything"},
			wantMatch:  false,
		},
		{
			name:       "button click exact ignoring case and space",
			transition: transition(engine.TriggerButtonClick, "opt_a", 0),
			input:      Input{Message: "  OPT_A  "},
			wantMatch:  true,
		},
		{
			name:       "button click partial does not match",
			transition: transition(engine.TriggerButtonClick, "opt_a", 0),
			input:      Input{Message: "opt_a please"},
			wantMatch:  false,
		},
		{
			name: "condition true",
			transition: engine.Transition{
				ID:        uuid.New(),
				ToNodeID:  uuid.New(),
				Trigger:   engine.TriggerCondition,
				Condition: "age >= 18",
			},
			input:     Input{Context: map[string]string{"age": "21"}},
			wantMatch: true,
		},
		{
			name: "condition false",
			transition: engine.Transition{
				ID:        uuid.New(),
				ToNodeID:  uuid.New(),
				Trigger:   engine.TriggerCondition,
				Condition: "age >= 18",
			},
			input:     Input{Context: map[string]string{"age": "16"}},
			wantMatch: false,
		},
		{
			name:       "auto always matches",
			transition: transition(engine.TriggerAuto, "", 0),
			input:      Input{},
			wantMatch:  true,
		},
		{
			name:       "unknown trigger never matches",
			transition: transition(engine.TriggerType("webhook"), "x", 0),
			input:      Input{Message: "x"},
			wantMatch:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve([]engine.Transition{tt.transition}, tt.input, nil)
			if tt.wantMatch {
				require.NotNil(t, got)
				assert.Equal(t, tt.transition.ID, got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	keyword := transition(engine.TriggerKeyword, "pizza", 10)
	auto := transition(engine.TriggerAuto, "", 5)

	// Transitions arrive pre-sorted by priority descending.
	got := Resolve([]engine.Transition{keyword, auto}, Input{Message: "pizza please"}, nil)
	require.NotNil(t, got)
	assert.Equal(t, keyword.ID, got.ID)

	// When the higher-priority edge does not match, the walk continues.
	got = Resolve([]engine.Transition{keyword, auto}, Input{Message: "sushi please"}, nil)
	require.NotNil(t, got)
	assert.Equal(t, auto.ID, got.ID)
}

func TestResolveNoMatchReturnsNil(t *testing.T) {
	transitions := []engine.Transition{
		transition(engine.TriggerKeyword, "pizza", 10),
		transition(engine.TriggerIntent, "greeting", 5),
	}
	got := Resolve(transitions, Input{Message: "sushi", Intent: "unknown"}, nil)
	assert.Nil(t, got)
}

func TestResolveDeterministic(t *testing.T) {
	transitions := []engine.Transition{
		transition(engine.TriggerKeyword, "yes", 3),
		transition(engine.TriggerKeyword, "yes", 3),
	}
	in := Input{Message: "yes"}

	first := Resolve(transitions, in, nil)
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		again := Resolve(transitions, in, nil)
		require.NotNil(t, again)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestResolveConditionEvalErrorFallsThrough(t *testing.T) {
	broken := engine.Transition{
		ID:        uuid.New(),
		ToNodeID:  uuid.New(),
		Trigger:   engine.TriggerCondition,
		Condition: "missing_var >= 18",
	}
	auto := transition(engine.TriggerAuto, "", 0)

	var reported []engine.Transition
	got := Resolve([]engine.Transition{broken, auto}, Input{Context: map[string]string{}}, func(tr engine.Transition, err error) {
		reported = append(reported, tr)
		assert.Error(t, err)
	})

	// The broken edge is skipped, not fatal; the next edge still matches.
	require.NotNil(t, got)
	assert.Equal(t, auto.ID, got.ID)
	require.Len(t, reported, 1)
	assert.Equal(t, broken.ID, reported[0].ID)
}

package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    map[string][]string
	}{
		{
			name:    "email",
			message: "reach me at alice@example.com please",
			want:    map[string][]string{CategoryEmails: {"alice@example.com"}},
		},
		{
			name:    "url",
			message: "docs live at https://example.com/docs now",
			want:    map[string][]string{CategoryURLs: {"https://example.com/docs"}},
		},
		{
			name:    "person from cue",
			message: "Hi, my name is Alice Smith",
			want:    map[string][]string{CategoryPeople: {"Alice Smith"}},
		},
		{
			name:    "place from cue",
			message: "I live in Berlin",
			want:    map[string][]string{CategoryPlaces: {"Berlin"}},
		},
		{
			name:    "organization by suffix",
			message: "I ordered from Acme Corp yesterday",
			want: map[string][]string{
				CategoryOrganizations: {"Acme Corp"},
				CategoryPlaces:        {"Acme Corp"},
				CategoryDates:         {"yesterday"},
			},
		},
		{
			name:    "bare number",
			message: "I need 3 tickets",
			want:    map[string][]string{CategoryNumbers: {"3"}},
		},
		{
			name:    "amount with currency",
			message: "it costs $49.99 total",
			want: map[string][]string{
				CategoryAmounts: {"$49.99"},
				CategoryNumbers: {"49.99"},
			},
		},
		{
			name:    "iso date",
			message: "book it for 2026-09-15",
			want: map[string][]string{
				CategoryDates:   {"2026-09-15"},
				CategoryNumbers: {"2026", "09", "15"},
			},
		},
		{
			name:    "nothing",
			message: "just chatting",
			want:    map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEntities(tt.message)
			for category, values := range tt.want {
				assert.Equal(t, values, got[category], "category %s", category)
			}
			for category := range got {
				_, expected := tt.want[category]
				assert.True(t, expected, "unexpected category %s: %v", category, got[category])
			}
		})
	}
}

func TestExtractEntitiesPhoneSuppressesNumbers(t *testing.T) {
	got := ExtractEntities("call 555-123-4567 about order 42")

	assert.Equal(t, []string{"555-123-4567"}, got[CategoryPhones])
	// The phone digits must not leak into the bare-number category.
	assert.Equal(t, []string{"42"}, got[CategoryNumbers])
}

func TestExtractEntitiesDedupes(t *testing.T) {
	got := ExtractEntities("mail alice@example.com or alice@example.com")
	assert.Equal(t, []string{"alice@example.com"}, got[CategoryEmails])
}

func TestSingular(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{CategoryEmails, "email"},
		{CategoryPhones, "phone"},
		{CategoryNumbers, "number"},
		{CategoryAmounts, "amount"},
		{CategoryDates, "date"},
		{CategoryURLs, "url"},
		{CategoryPeople, "person"},
		{CategoryPlaces, "place"},
		{CategoryOrganizations, "organization"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Singular(tt.category))
	}
}

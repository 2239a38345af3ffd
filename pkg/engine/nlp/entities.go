package nlp

import (
	"regexp"
	"strings"
)

// Entity category keys. Every category is list-valued; callers wanting a
// single value take the first element (see Singular for the variable key).
const (
	CategoryEmails        = "emails"
	CategoryPhones        = "phones"
	CategoryURLs          = "urls"
	CategoryNumbers       = "numbers"
	CategoryAmounts       = "amounts"
	CategoryDates         = "dates"
	CategoryPeople        = "people"
	CategoryPlaces        = "places"
	CategoryOrganizations = "organizations"
)

var (
	emailRe  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe  = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	urlRe    = regexp.MustCompile(`https?://[^\s]+`)
	numberRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	amountRe = regexp.MustCompile(`[$€£]\s?\d+(?:[.,]\d+)?|\b\d+(?:[.,]\d+)?\s?(?:dollars|usd|euros|eur|pounds|gbp)\b`)
	dateRe   = regexp.MustCompile(`(?i)\b(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2}|(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?|(?:today|tomorrow|yesterday|tonight))\b`)

	personCueRe = regexp.MustCompile(`(?i)\b(?:my name is|i am|i'm|this is|call me)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	placeCueRe  = regexp.MustCompile(`\b(?:in|at|from|to|near)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	orgSuffixRe = regexp.MustCompile(`\b([A-Z][A-Za-z&]*(?:\s+[A-Z][A-Za-z&]*)*\s+(?:Inc|Corp|Ltd|LLC|GmbH|Co)\.?)(?:\b|$)`)
	orgCueRe    = regexp.MustCompile(`(?i)\b(?:work at|working at|employed by|company called)\s+([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)?)`)
)

// ExtractEntities pulls structured values out of the raw (non-normalized)
// message. Extraction is independent of intent classification. Categories
// with no matches are omitted entirely.
func ExtractEntities(message string) map[string][]string {
	entities := make(map[string][]string)

	put := func(category string, values []string) {
		values = dedupe(values)
		if len(values) > 0 {
			entities[category] = values
		}
	}

	put(CategoryEmails, emailRe.FindAllString(message, -1))
	put(CategoryURLs, urlRe.FindAllString(message, -1))

	// Phone candidates overlap plain number runs; strip matched phones
	// before scanning for bare numerics.
	phones := trimAll(phoneRe.FindAllString(message, -1))
	put(CategoryPhones, phones)
	remainder := message
	for _, p := range phones {
		remainder = strings.Replace(remainder, p, " ", 1)
	}
	put(CategoryNumbers, numberRe.FindAllString(remainder, -1))

	put(CategoryAmounts, amountRe.FindAllString(message, -1))
	put(CategoryDates, dateRe.FindAllString(message, -1))
	put(CategoryPeople, captureGroups(personCueRe, message))
	put(CategoryPlaces, captureGroups(placeCueRe, message))

	orgs := captureGroups(orgSuffixRe, message)
	orgs = append(orgs, captureGroups(orgCueRe, message)...)
	put(CategoryOrganizations, orgs)

	return entities
}

// Singular maps an entity category to the session variable key its first
// value is stored under, so templates can say {{email}} rather than
// {{emails}}.
func Singular(category string) string {
	switch category {
	case CategoryPeople:
		return "person"
	case CategoryOrganizations:
		return "organization"
	default:
		return strings.TrimSuffix(category, "s")
	}
}

func captureGroups(re *regexp.Regexp, message string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(message, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

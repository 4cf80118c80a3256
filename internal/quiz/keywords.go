package quiz

import "strings"

// KeywordTable maps a lower-cased result category to the care-type
// substrings that count as a match for it.
type KeywordTable map[string][]string

// DefaultKeywords is content, not logic: edit entries here without touching
// the filter.
var DefaultKeywords = KeywordTable{
	"independent living":        {"independent"},
	"independent_living":        {"independent"},
	"assisted living":           {"assisted"},
	"assisted_living":           {"assisted"},
	"memory care":               {"memory", "dementia", "alzheimer"},
	"memory_care":               {"memory", "dementia", "alzheimer"},
	"hybrid care / high acuity": {"hybrid", "high acuity", "skilled", "nursing"},
	"hybrid_care":               {"hybrid", "high acuity", "skilled", "nursing"},
	"high_acuity":               {"hybrid", "high acuity", "skilled", "nursing"},
	"respite care":              {"respite"},
	"respite_care":              {"respite"},
}

// Keywords returns the match keywords for category. Unknown categories
// match on the category text itself.
func (t KeywordTable) Keywords(category string) []string {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		return nil
	}
	if kw, ok := t[key]; ok {
		return kw
	}
	return []string{key}
}

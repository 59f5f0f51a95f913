package priority

import (
	"regexp"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

// Score thresholds for the tentative priority.
const (
	highScoreThreshold = 3
	lowScoreCeiling    = 0
	verboseLength      = 200
)

// severityRule adds weight when its pattern matches. Rules marked
// caseSensitive run against the original text, the rest against the
// lowercase copy.
type severityRule struct {
	name          string
	weight        int
	pattern       *regexp.Regexp
	caseSensitive bool
}

var severityRules = []severityRule{
	{name: "urgency", weight: 2, pattern: regexp.MustCompile(`\b(?:urgent|emergency|immediate|asap)`)},
	{name: "danger", weight: 2, pattern: regexp.MustCompile(`\b(?:dangerous|hazard|risk|safety)`)},
	{name: "vulnerable", weight: 1, pattern: regexp.MustCompile(`\b(?:child(?:ren)?|elderly|hospital|school)`)},
	{name: "broad_impact", weight: 1, pattern: regexp.MustCompile(`\b(?:many|multiple|entire|all|everyone|whole)\b`)},
	{name: "duration", weight: 1, pattern: regexp.MustCompile(`\bsince\s+\d+\s+(?:hours?|days?|weeks?)\b`)},
	{name: "damage", weight: 1, pattern: regexp.MustCompile(`\b(?:damage[ds]?|destroy(?:ed|s)?)\b`)},
	{name: "emphasis", weight: 1, pattern: regexp.MustCompile(`[A-Z]{4,}|!!`), caseSensitive: true},
	{name: "sentence", weight: 1, pattern: regexp.MustCompile(`[A-Z][^.!?]*\.`), caseSensitive: true},
	{name: "water_infrastructure", weight: 2, pattern: regexp.MustCompile(`\b(?:major\s+leak(?:s|age)?|pipes?|water)\b`)},
}

// severity is the accumulated score and the rules that contributed.
type severity struct {
	score int
	rules []string
}

func scoreSeverity(t normalizedText) severity {
	var s severity

	for _, r := range severityRules {
		subject := t.lower
		if r.caseSensitive {
			subject = t.original
		}
		if r.pattern.MatchString(subject) {
			s.score += r.weight
			s.rules = append(s.rules, r.name)
		}
	}

	if t.length() > verboseLength {
		s.score++
		s.rules = append(s.rules, "verbose")
	}

	return s
}

func tentativePriority(score int) domain.Priority {
	switch {
	case score >= highScoreThreshold:
		return domain.PriorityHigh
	case score <= lowScoreCeiling:
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

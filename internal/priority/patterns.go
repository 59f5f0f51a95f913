package priority

import (
	"regexp"
	"strings"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

// namedPattern pairs a compiled pattern with the name reported when it fires.
type namedPattern struct {
	name    string
	pattern *regexp.Regexp
}

// gap allows up to two intervening words ("burst water main", "live power wire").
const gap = `(?:[\w'-]+\s+){0,2}`

func mustPattern(name, expr string) namedPattern {
	return namedPattern{name: name, pattern: regexp.MustCompile(`(?i)` + expr)}
}

// trivialTokens are greeting or smoke-test submissions.
var trivialTokens = map[string]struct{}{
	"hello": {},
	"hi":    {},
	"test":  {},
	"hey":   {},
	"abc":   {},
	"xyz":   {},
}

const minMeaningfulLength = 5

var shortAlnum = regexp.MustCompile(`^[a-z0-9]{1,3}$`)

func isTrivial(t normalizedText) bool {
	if _, ok := trivialTokens[t.lower]; ok {
		return true
	}
	return t.length() < minMeaningfulLength || shortAlnum.MatchString(t.lower)
}

// shoutedMarkers are matched case-sensitively against the original text.
var shoutedMarkers = []string{"URGENT", "EMERGENCY"}

func shoutedUrgency(original string) (string, bool) {
	for _, marker := range shoutedMarkers {
		if strings.Contains(original, marker) {
			return marker, true
		}
	}
	return "", false
}

// emergencyPatterns maps a category to its ordered emergency patterns.
// The first match wins.
var emergencyPatterns = map[string][]namedPattern{
	domain.CategoryWater: {
		mustPattern("burst_pipe", `\bburst\s+`+gap+`(?:pipe|main|line)s?\b`),
		mustPattern("pipe_burst", `\b(?:pipe|main)s?\s+`+gap+`burst\b`),
		mustPattern("flooding", `\bflood(?:s|ed|ing)?\b`),
		mustPattern("no_water_supply", `\bno\s+(?:[\w'-]+\s+)?water\b`),
		mustPattern("water_supply_cut", `\bwater\s+(?:supply\s+)?(?:cut|stopped|disrupted|unavailable)\b`),
		mustPattern("contamination", `\bcontaminat(?:ed|ion|ing)\b`),
		mustPattern("severe_leak", `\b(?:severe|major|massive|huge|heavy)\s+`+gap+`leak(?:s|age|ing)?\b`),
		mustPattern("sewage_overflow", `\bsewage\s+`+gap+`(?:overflow(?:s|ed|ing)?|backup|back(?:ed|ing)?\s+up|spill(?:s|ed|ing)?)\b`),
		mustPattern("overflowing_sewage", `\b(?:overflow(?:s|ed|ing)?|backed\s+up)\s+`+gap+`sewage\b`),
		mustPattern("discolored_water", `\b(?:discolou?red|brown|muddy|yellow|rusty|dirty)\s+(?:[\w'-]+\s+)?water\b`),
		mustPattern("foul_odor", `\b(?:foul|bad|rotten|strange)\s+(?:smell|odou?r)\b`),
		mustPattern("water_smells", `\bwater\s+`+gap+`(?:smells?|stinks?)\b`),
	},
	domain.CategoryEnergy: {
		mustPattern("exposed_wire", `\b(?:exposed|live|fallen|hanging|dangling|snapped|loose)\s+`+gap+`(?:wires?|cables?|lines?)\b`),
		mustPattern("wire_down", `\b(?:wires?|cables?)\s+`+gap+`(?:fallen|down|exposed|hanging|snapped)\b`),
		mustPattern("electrical_hazard", `\belectric(?:al)?\s+(?:[\w'-]+\s+)?(?:shock|hazard|fire)s?\b`),
		mustPattern("electrocution", `\belectrocut(?:e|ed|ion)\b`),
		mustPattern("transformer_damage", `\b(?:transformer|pole)s?\s+`+gap+`(?:fire|blast|explo(?:ded|sion)|damaged?|burning|sparking|smoking|collapsed?)\b`),
		mustPattern("damaged_transformer", `\b(?:fire|blast|explosion|damage[ds]?)\s+(?:at|on|in|to)\s+(?:the\s+)?(?:transformer|pole)s?\b`),
		mustPattern("complete_outage", `\b(?:complete|total|full|entire)\s+`+gap+`(?:outage|blackout|power\s+cut|power\s+failure)\b`),
		mustPattern("no_electricity", `\bno\s+(?:electricity|power)\b`),
		mustPattern("fire_risk", `\bfire\s+(?:risk|hazard|danger)\b`),
		mustPattern("sparking", `\bspark(?:s|ed|ing)?\b`),
		mustPattern("burning_smoke", `\b(?:burning|smoke|smoking)\b`),
	},
}

func matchCategoryPattern(category string, t normalizedText) (string, bool) {
	for _, p := range emergencyPatterns[category] {
		if p.pattern.MatchString(t.original) {
			return p.name, true
		}
	}
	return "", false
}

// escalationOverride forces high after model consultation regardless of
// the model's answer.
var escalationOverride = mustPattern("burst_or_major_leak",
	`\bburst\s+`+gap+`(?:pipe|main)s?\b|\b(?:pipe|main)s?\s+`+gap+`burst\b|\bmajor\s+`+gap+`leak(?:s|age|ing)?\b`)

package priority

import (
	"sort"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// minKeywordMatches distinct emergency keywords short-circuit to high.
const minKeywordMatches = 2

// emergencyKeywords are matched as lowercase substrings.
var emergencyKeywords = []string{
	// general urgency
	"urgent", "emergency", "immediate", "asap", "critical", "danger", "hazard",
	"risk", "safety", "severe", "serious",
	// water
	"burst", "flood", "leak", "contaminat", "sewage", "overflow", "no water",
	"dirty water", "waterlogging",
	// energy
	"electrocut", "shock", "live wire", "exposed wire", "spark", "short circuit",
	"fire", "smoke", "blackout", "outage", "no electricity", "no power", "transformer",
	// health, safety and vulnerable people
	"injur", "hospital", "child", "elderly", "school", "disabled", "pregnant",
	"disease", "sick", "health", "death", "accident",
}

// keywordMatcher finds distinct keyword hits in one pass. It is safe for
// concurrent use.
type keywordMatcher struct {
	terms   []string
	matcher *ahocorasick.Matcher
}

func newKeywordMatcher(terms []string) *keywordMatcher {
	return &keywordMatcher{
		terms:   terms,
		matcher: ahocorasick.NewStringMatcher(terms),
	}
}

// find returns the distinct keywords contained in lower, in list order.
func (k *keywordMatcher) find(lower string) []string {
	hits := k.matcher.MatchThreadSafe([]byte(lower))

	if len(hits) == 0 {
		return nil
	}

	seen := make(map[int]struct{}, len(hits))
	indexes := make([]int, 0, len(hits))
	for _, idx := range hits {
		if idx < 0 || idx >= len(k.terms) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	found := make([]string, len(indexes))
	for i, idx := range indexes {
		found[i] = k.terms[idx]
	}
	return found
}

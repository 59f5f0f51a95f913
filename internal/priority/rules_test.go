//nolint:testpackage // Testing internal rule tables requires same package access
package priority

import (
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       domain.ClassificationInput
		original string
	}{
		{
			name:     "collapses whitespace",
			in:       domain.ClassificationInput{Text: "  Water\t\tleaking \n from   tap "},
			original: "Water leaking from tap",
		},
		{
			name:     "attachment text fills empty text",
			in:       domain.ClassificationInput{AttachmentText: " pipe  burst ", SourceKind: domain.SourceVoice},
			original: "Extracted from voice: pipe burst",
		},
		{
			name:     "attachment without source kind",
			in:       domain.ClassificationInput{Text: "   ", AttachmentText: "photo of wires"},
			original: "Extracted from text: photo of wires",
		},
		{
			name:     "text wins over attachment",
			in:       domain.ClassificationInput{Text: "Meter is broken", AttachmentText: "ignored"},
			original: "Meter is broken",
		},
		{
			name:     "placeholder when nothing provided",
			in:       domain.ClassificationInput{},
			original: placeholderText,
		},
		{
			name:     "composes decomposed characters",
			in:       domain.ClassificationInput{Text: "cafe\u0301 water"},
			original: "caf\u00e9 water",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := normalize(tt.in)
			assert.Equal(t, tt.original, got.original)
			assert.Equal(t, strings.ToLower(tt.original), got.lower)
		})
	}
}

func TestIsTrivial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		trivial bool
	}{
		{"hello", true},
		{"HELLO", true},
		{"test", true},
		{"no", true},
		{"abcd", true},
		{"a1b", true},
		{"power", false},
		{"water leak", false},
		{"ab 12", false},
	}

	for _, tt := range tests {
		got := isTrivial(normalize(domain.ClassificationInput{Text: tt.text}))
		assert.Equal(t, tt.trivial, got, "text %q", tt.text)
	}
}

func TestIsTrivial_CountsRunes(t *testing.T) {
	t.Parallel()

	// Seven runes but many more bytes.
	assert.False(t, isTrivial(normalize(domain.ClassificationInput{Text: "पानी नह"})))
}

func TestShoutedUrgency(t *testing.T) {
	t.Parallel()

	marker, ok := shoutedUrgency("Please treat as URGENT")
	assert.True(t, ok)
	assert.Equal(t, "URGENT", marker)

	_, ok = shoutedUrgency("Urgent and emergency, but not shouted")
	assert.False(t, ok)
}

func TestMatchCategoryPattern_AllowsInterveningWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category string
		text     string
		want     string
	}{
		{domain.CategoryWater, "a burst old water main on 5th street", "burst_pipe"},
		{domain.CategoryWater, "the main pipe has burst", "pipe_burst"},
		{domain.CategoryWater, "there is sewage water overflowing", "sewage_overflow"},
		{domain.CategoryWater, "brown tap water since morning", "discolored_water"},
		{domain.CategoryEnergy, "a snapped overhead power cable on the road", "exposed_wire"},
		{domain.CategoryEnergy, "complete area power outage", "complete_outage"},
	}

	for _, tt := range tests {
		got, ok := matchCategoryPattern(tt.category, normalize(domain.ClassificationInput{Text: tt.text}))
		if assert.True(t, ok, "text %q", tt.text) {
			assert.Equal(t, tt.want, got, "text %q", tt.text)
		}
	}

	_, ok := matchCategoryPattern("roads", normalize(domain.ClassificationInput{Text: "burst water main"}))
	assert.False(t, ok, "categories without patterns never match")

	_, ok = matchCategoryPattern(domain.CategoryWater, normalize(domain.ClassificationInput{Text: "burst of rain did not affect the old brick main road"}))
	assert.False(t, ok, "more than two intervening words must not match")
}

func TestKeywordMatcher_Find(t *testing.T) {
	t.Parallel()

	m := newKeywordMatcher(emergencyKeywords)

	assert.Empty(t, m.find("the bench in the park is wobbly"))
	assert.Equal(t, []string{"leak"}, m.find("leak, another leak and one more leak"))
	assert.Equal(t, []string{"danger", "hazard"}, m.find("hazard and danger"))

	found := m.find("sewage overflow near the hospital")
	assert.True(t, slices.Contains(found, "sewage"))
	assert.True(t, slices.Contains(found, "overflow"))
	assert.True(t, slices.Contains(found, "hospital"))
}

func TestKeywordMatcher_ConcurrentUse(t *testing.T) {
	t.Parallel()

	m := newKeywordMatcher(emergencyKeywords)

	inputs := []struct {
		text string
		want []string
	}{
		{"burst main causing flood", []string{"burst", "flood"}},
		{"sparks and smoke from the transformer", []string{"spark", "smoke", "transformer"}},
		{"the bench in the park is wobbly", nil},
		{"leak leak leak", []string{"leak"}},
	}

	var wg sync.WaitGroup
	for g := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				in := inputs[(g+i)%len(inputs)]
				assert.Equal(t, in.want, m.find(in.text), in.text)
			}
		}()
	}
	wg.Wait()
}

func TestScoreSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		score int
		rules []string
	}{
		{"nothing", "the streetlight near my house flickers", 0, nil},
		{"sentence", "The garbage truck skipped our street.", 1, []string{"sentence"}},
		{"water", "Water pressure is low in our building for the past 2 days", 2, []string{"water_infrastructure"}},
		{"emphasis", "meter reading WRONG again!!", 1, []string{"emphasis"}},
		{"duration", "no garbage pickup since 3 days", 1, []string{"duration"}},
		{"urgency and danger", "needs immediate action, risk to residents", 4, []string{"urgency", "danger"}},
		{
			"combined",
			"dangerous hazard affecting many children since 5 days, extensive damage to entire building.",
			2 + 1 + 1 + 1 + 1,
			[]string{"danger", "vulnerable", "broad_impact", "duration", "damage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := scoreSeverity(normalize(domain.ClassificationInput{Text: tt.text}))
			assert.Equal(t, tt.score, got.score)
			assert.Equal(t, tt.rules, got.rules)
		})
	}
}

func TestScoreSeverity_VerboseText(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("the bins ", 30)
	got := scoreSeverity(normalize(domain.ClassificationInput{Text: text}))
	require.Greater(t, len([]rune(strings.TrimSpace(text))), verboseLength)
	assert.Equal(t, 1, got.score)
	assert.Equal(t, []string{"verbose"}, got.rules)
}

func TestTentativePriority(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.PriorityLow, tentativePriority(-1))
	assert.Equal(t, domain.PriorityLow, tentativePriority(0))
	assert.Equal(t, domain.PriorityMedium, tentativePriority(1))
	assert.Equal(t, domain.PriorityMedium, tentativePriority(2))
	assert.Equal(t, domain.PriorityHigh, tentativePriority(3))
	assert.Equal(t, domain.PriorityHigh, tentativePriority(9))
}

func TestBuildPrompt_SourceMatchesNormalization(t *testing.T) {
	t.Parallel()

	in := domain.ClassificationInput{AttachmentText: "photo of wires"}
	prompt := buildPrompt(in, normalize(in))

	assert.Contains(t, prompt, "Source: text")
	assert.Contains(t, prompt, "Text: Extracted from text: photo of wires")
	assert.NotContains(t, prompt, "Extracted from attachment")
}

func TestBuildPrompt_Defaults(t *testing.T) {
	t.Parallel()

	in := domain.ClassificationInput{Text: "Streetlight off"}
	prompt := buildPrompt(in, normalize(in))

	assert.Contains(t, prompt, "Category: unspecified")
	assert.Contains(t, prompt, "Source: text")
	assert.Contains(t, prompt, "Has attachment: no")
	assert.NotContains(t, prompt, "Attachment content:")
	assert.True(t, strings.HasSuffix(prompt, "Priority:"))
}

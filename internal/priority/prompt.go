package priority

import (
	"strings"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

const promptPreamble = `You are a triage assistant for a municipal citizen-services portal that handles water and energy complaints.
Decide how quickly the complaint below must be handled.
Answer with exactly one word: high, medium, or low. Do not add punctuation or explanation.

Priority definitions:
- high: immediate danger to life, health or property, or a complete service failure affecting many people.
  Examples: "Burst water main flooding the street", "Live wire fallen near the bus stop", "Sewage overflowing into homes near the school".
- medium: a service problem that disrupts daily life but is not dangerous.
  Examples: "Water pressure is low in our building for the past 2 days", "Streetlight on our lane is not working", "Frequent short power cuts every evening".
- low: minor issues, requests, suggestions or general feedback.
  Examples: "Please repaint the water tank in the colony", "Update the billing address on my account", "Add more online payment options".
`

func buildPrompt(in domain.ClassificationInput, t normalizedText) string {
	category := in.NormalizedCategory()
	if category == "" {
		category = "unspecified"
	}
	attachment := "no"
	if in.HasAttachment() {
		attachment = "yes"
	}

	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\nComplaint:\n")
	b.WriteString("Category: " + category + "\n")
	b.WriteString("Source: " + in.SourceLabel() + "\n")
	b.WriteString("Has attachment: " + attachment + "\n")
	b.WriteString("Text: " + t.original + "\n")
	if in.HasAttachment() && strings.TrimSpace(in.Text) != "" {
		b.WriteString("Attachment content: " + collapseWhitespace(in.AttachmentText) + "\n")
	}
	b.WriteString("\nPriority:")
	return b.String()
}

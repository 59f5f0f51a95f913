// Package domain holds the complaint service's shared types.
package domain

import (
	"fmt"
	"strings"
)

// Priority is how quickly a complaint should be handled.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts exactly low, medium or high after trimming and
// lowercasing.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	default:
		return "", false
	}
}

// Rank orders priorities low < medium < high.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

func (p Priority) String() string { return string(p) }

// Valid reports whether p is one of the three tiers.
func (p Priority) Valid() bool { return p.Rank() > 0 }

// SourceKind is how the complaint content reached the portal.
type SourceKind string

const (
	SourceText  SourceKind = "text"
	SourceVoice SourceKind = "voice"
	SourceImage SourceKind = "image"
)

// Categories with dedicated emergency patterns.
const (
	CategoryWater  = "water"
	CategoryEnergy = "energy"
)

// ClassificationInput is the raw material for a priority decision.
type ClassificationInput struct {
	Text     string
	Category string
	// AttachmentText is text derived from an attachment (transcript, image description).
	AttachmentText string
	SourceKind     SourceKind
}

// HasAttachment reports whether attachment-derived text is present.
func (in ClassificationInput) HasAttachment() bool {
	return strings.TrimSpace(in.AttachmentText) != ""
}

// SourceLabel returns the source kind, defaulting to SourceText.
func (in ClassificationInput) SourceLabel() string {
	if in.SourceKind == "" {
		return string(SourceText)
	}
	return string(in.SourceKind)
}

// NormalizedCategory lowercases and trims the category tag.
func (in ClassificationInput) NormalizedCategory() string {
	return strings.ToLower(strings.TrimSpace(in.Category))
}

func (in ClassificationInput) String() string {
	return fmt.Sprintf("category=%s source=%s attachment=%t", in.NormalizedCategory(), in.SourceLabel(), in.HasAttachment())
}

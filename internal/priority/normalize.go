package priority

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

// placeholderText stands in for complaints with no text and no attachment text.
const placeholderText = "(No text content provided)"

// normalizedText keeps the original-case text for emphasis checks next to
// the lowercase copy used for case-insensitive matching.
type normalizedText struct {
	original string
	lower    string
}

func (t normalizedText) length() int {
	return utf8.RuneCountInString(t.original)
}

func normalize(in domain.ClassificationInput) normalizedText {
	text := collapseWhitespace(in.Text)

	if text == "" && in.HasAttachment() {
		text = "Extracted from " + in.SourceLabel() + ": " + collapseWhitespace(in.AttachmentText)
	}
	if text == "" {
		text = placeholderText
	}

	return normalizedText{
		original: text,
		lower:    strings.ToLower(text),
	}
}

// collapseWhitespace NFC-normalizes s, replaces every whitespace run with a
// single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// ABOUTME: Flattens markdown to plain text before chunking
// ABOUTME: Strips structural syntax, keeps prose and paragraph breaks
package rag

import (
	"regexp"
	"strings"
)

var (
	fenceLine    = regexp.MustCompile("(?m)^```.*$")
	headingMark  = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	imageLink    = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	inlineLink   = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
	emphasisMark = regexp.MustCompile(`(\*{1,3}|_{1,3}|~~)`)
	inlineCode   = regexp.MustCompile("`([^`]*)`")
	quoteMark    = regexp.MustCompile(`(?m)^>\s?`)
)

// FlattenMarkdown strips markdown syntax down to plain prose. Paragraph
// structure is preserved so the chunker can still split on blank lines.
func FlattenMarkdown(text string) string {
	out := fenceLine.ReplaceAllString(text, "")
	out = imageLink.ReplaceAllString(out, "$1")
	out = inlineLink.ReplaceAllString(out, "$1")
	out = htmlTag.ReplaceAllString(out, "")
	out = headingMark.ReplaceAllString(out, "")
	out = quoteMark.ReplaceAllString(out, "")
	out = inlineCode.ReplaceAllString(out, "$1")
	out = emphasisMark.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

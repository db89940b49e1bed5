// Package announce owns the list-announcement wording. The confirmation the
// bot sends after creating a list is later parsed back when the user replies
// "done" to it, so formatting and parsing live together in one place.
package announce

import (
	"fmt"
	"regexp"

	"github.com/PabloGalante/anota-bot/internal/domain"
)

// Headline is the first line of every list confirmation.
func Headline(listType domain.ListType, title string) string {
	return fmt.Sprintf("✅ I've created a new %s list: %q", listType, title)
}

var headlineRe = regexp.MustCompile(`new (grocery|todo|reminder|general) list: "([^"]+)"`)

// ParseHeadline recovers the list type and title from an announcement
// message. ok is false when the text does not carry the pattern.
func ParseHeadline(text string) (listType domain.ListType, title string, ok bool) {
	m := headlineRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return domain.ListType(m[1]), m[2], true
}

package digest

import (
	"fmt"
	"strings"
	"time"
)

const (
	titleLine   = "Top 10 Jobs For You — 9AM Digest"
	footerLine  = "This digest was generated based on your preferences."
	mailSubject = "My 9AM Job Digest"

	// DateLayout formats the date line, e.g. "March 4, 2026".
	DateLayout = "January 2, 2006"
)

// Render formats entries as the plain-text digest used for copying and for
// mail drafts. The output depends only on its arguments.
func Render(entries []Entry, date time.Time) string {
	lines := []string{titleLine, "Date: " + date.Format(DateLayout), ""}
	for i, e := range entries {
		lines = append(lines,
			fmt.Sprintf("%d. %s at %s", i+1, e.Title, e.Company),
			fmt.Sprintf("   Location: %s | Experience: %s | Match: %d%%", e.Location, e.Experience, e.MatchScore),
			"   Apply: "+e.ApplyURL,
			"",
		)
	}
	lines = append(lines, footerLine)
	return strings.Join(lines, "\n")
}

// MailtoURL returns a mailto link that opens a draft holding the rendered
// digest.
func MailtoURL(entries []Entry, date time.Time) string {
	return "mailto:?subject=" + encodeComponent(mailSubject) +
		"&body=" + encodeComponent(Render(entries, date))
}

// encodeComponent percent-encodes s for a mailto header value the way
// browsers' encodeURIComponent does: letters, digits and -_.!~*'() pass
// through, every other byte becomes %XX.
func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

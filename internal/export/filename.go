package export

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Filename builds the download name: sanitized owner name, template ID, and
// date. With no owner name there is nothing to sanitize, so the name falls
// back to a timestamped default.
func Filename(ownerName, templateID string, now time.Time) string {
	if strings.TrimSpace(ownerName) == "" {
		return fmt.Sprintf("resume_%d.pdf", now.UnixMilli())
	}
	return fmt.Sprintf("%s_%s_%s.pdf", sanitizeName(ownerName), templateID, now.Format("2006-01-02"))
}

// sanitizeName lowercases and maps every non-alphanumeric rune to an
// underscore.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) && r < 128 {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

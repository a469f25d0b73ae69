// Package metadata describes the analyzed video: its URL, its title, and the
// timestamp links pointing into it.
package metadata

import (
	"strconv"
	"strings"
	"unicode"
)

// Video identifies one analyzed tutorial.
type Video struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TimestampURL links to offset seconds into the video at source.
func TimestampURL(source string, offset int) string {
	return source + "&t=" + strconv.Itoa(offset)
}

// OffsetFromTimestamp extracts the offset of a link built by TimestampURL.
func OffsetFromTimestamp(link string) (int, bool) {
	i := strings.LastIndex(link, "&t=")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(link[i+3:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Slug turns a title into a file name that is safe on common filesystems.
func Slug(title string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.TrimSpace(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastDash = false
		case r == '+':
			b.WriteString("p")
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}

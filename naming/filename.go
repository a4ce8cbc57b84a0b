// Package naming composes the SEO-styled filenames the generated
// photos are delivered under.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// nonAlphanumeric matches every run of characters that may not appear
// in a slug; each run collapses into a single dash.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slug reduces free text to a dash-separated token: non-alphanumerics
// become dashes, runs collapse, edge dashes are trimmed.
func Slug(s string) string {
	return strings.Trim(nonAlphanumeric.ReplaceAllString(s, "-"), "-")
}

// Compose builds the filename for an uploaded photo from its service,
// location name and assigned date, as MM-DD-YYYY. A counter above zero
// is appended to keep files with identical inputs apart within one
// batch; the caller tracks collisions and supplies it.
func Compose(service, location string, date time.Time, counter int) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{Slug(service), Slug(location)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, date.Format("01-02-2006"))

	name := strings.Join(parts, "-")
	if counter > 0 {
		name = fmt.Sprintf("%s-%d", name, counter)
	}
	return name + ".jpg"
}

// ComposeFrame names one sampled video frame: lowercased service slug,
// two-digit 1-based sequence number and a positional suffix ("before"
// for the first frame, "after" for the last, "action-{i}" between).
func ComposeFrame(service string, index, total int) string {
	var suffix string
	switch {
	case index == 0:
		suffix = "before"
	case index == total-1:
		suffix = "after"
	default:
		suffix = fmt.Sprintf("action-%d", index)
	}
	return fmt.Sprintf("%s-%02d-%s.jpg", strings.ToLower(Slug(service)), index+1, suffix)
}

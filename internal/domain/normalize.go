package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	timePattern  = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*([AaPp][Mm])?\s*$`)
)

// Slugify derives a URL-safe slug from a title: lowercase, non-alphanumeric
// characters stripped, whitespace runs collapsed to single hyphens,
// leading/trailing hyphens trimmed.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// dateLayouts are the accepted input formats for event dates, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// NormalizeDate parses s in any accepted layout and returns it as YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("invalid date format: %q", s)
}

// NormalizeTime parses s as HH:MM (24-hour) or H:MM AM/PM and returns it as
// zero-padded 24-hour HH:MM.
func NormalizeTime(s string) (string, error) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid time format: use HH:MM or HH:MM AM/PM")
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	meridiem := strings.ToUpper(m[3])

	if minutes > 59 {
		return "", fmt.Errorf("invalid time: minutes must be between 0 and 59")
	}
	if meridiem != "" {
		if hours < 1 || hours > 12 {
			return "", fmt.Errorf("invalid time: hours must be between 1 and 12 with AM/PM")
		}
		if meridiem == "PM" && hours != 12 {
			hours += 12
		}
		if meridiem == "AM" && hours == 12 {
			hours = 0
		}
	} else if hours > 23 {
		return "", fmt.Errorf("invalid time: hours must be between 0 and 23")
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}

// cleanList trims each entry and drops empties.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}

func normalizeMode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// trimRequired trims s and records a validation message if it is empty.
func trimRequired(v *ValidationError, field, s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		v.Add(field, field+" is required")
	}
	return s
}

// requireList cleans items and records a validation message if nothing is left.
func requireList(v *ValidationError, field string, items []string) []string {
	out := cleanList(items)
	if len(out) == 0 {
		v.Add(field, "at least one "+field+" item is required")
	}
	return out
}

// applyRequired sets *dst from *src when src is non-nil, rejecting a value
// that trims to empty.
func applyRequired(v *ValidationError, field string, src *string, dst *string) {
	if src == nil {
		return
	}
	s := strings.TrimSpace(*src)
	if s == "" {
		v.Add(field, field+" cannot be empty")
		return
	}
	*dst = s
}

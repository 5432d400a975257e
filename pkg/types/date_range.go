package types

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is an inclusive span of days. A zero bound leaves that side open.
type DateRange struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// ParseDateRange reads optional YYYY-MM-DD bounds, as sent in query strings.
func ParseDateRange(from, to string) (DateRange, error) {
	var out DateRange
	if s := strings.TrimSpace(from); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			return DateRange{}, err
		}
		out.From = d
	}
	if s := strings.TrimSpace(to); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			return DateRange{}, err
		}
		out.To = d
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.To.Before(out.From) {
		return DateRange{}, fmt.Errorf("range end %s is before start %s", out.To, out.From)
	}
	return out, nil
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d Date) bool {
	if d.IsZero() {
		return r.From.IsZero() && r.To.IsZero()
	}
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && r.To.Before(d) {
		return false
	}
	return true
}

// ContainsTime reports whether the calendar day of t falls inside the range.
func (r DateRange) ContainsTime(t time.Time) bool {
	if t.IsZero() {
		return r.Contains(Date{})
	}
	return r.Contains(DateOf(t))
}

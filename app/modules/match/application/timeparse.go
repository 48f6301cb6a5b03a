package matchservice

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var errUnrecognizedTime = errors.New("unrecognized time")

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var (
	compactClock = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)
	isoDate      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// TimeParser turns client supplied match times into UTC instants. Absolute
// timestamps are tried first; anything else goes through natural-language
// rules relative to a base time.
type TimeParser struct {
	nl *when.Parser
}

// NewTimeParser creates a parser with English and common rules.
func NewTimeParser() *TimeParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &TimeParser{nl: w}
}

// Parse resolves raw against base. Natural-language input is accepted only
// when the rules recognize all of it.
func (p *TimeParser) Parse(raw string, base time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errUnrecognizedTime
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	if isoDate.MatchString(raw) {
		return time.Time{}, errUnrecognizedTime
	}

	// "932am" -> "9:32 am"
	normalized := compactClock.ReplaceAllString(strings.ToLower(raw), "$1:$2 $3")

	r, err := p.nl.Parse(normalized, base)
	if err != nil || r == nil {
		return time.Time{}, errUnrecognizedTime
	}
	if strings.TrimSpace(r.Text) != normalized {
		return time.Time{}, errUnrecognizedTime
	}
	return r.Time.UTC().Truncate(time.Minute), nil
}

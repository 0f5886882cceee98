// Package cohort turns commit timestamps into calendar cohort labels.
//
// Cohort formats use a strftime-style subset so the common "%Y" and
// "%Y-%m" formats work as users expect. Timestamps are always rendered
// in UTC.
package cohort

import (
	"fmt"
	"strings"
	"time"

	"strata/internal/errors"
)

// DefaultFormat groups commits by calendar year.
const DefaultFormat = "%Y"

// segment is a literal run or a single format verb.
type segment struct {
	literal string
	verb    byte
}

// Formatter renders cohort labels for commit timestamps.
type Formatter struct {
	format   string
	segments []segment
}

// New parses a strftime-style cohort format.
//
// Supported verbs: %Y (year), %m (month), %d (day of month),
// %j (day of year), %q (quarter, rendered as Q1..Q4), %% (literal %).
func New(format string) (*Formatter, error) {
	if format == "" {
		format = DefaultFormat
	}

	var segments []segment
	var literal strings.Builder

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			literal.WriteByte(c)
			continue
		}
		if i+1 >= len(format) {
			return nil, errors.New(errors.ConfigInvalid,
				"cohort format ends with a bare '%'", nil)
		}
		i++
		verb := format[i]
		if verb == '%' {
			literal.WriteByte('%')
			continue
		}
		switch verb {
		case 'Y', 'm', 'd', 'j', 'q':
		default:
			return nil, errors.New(errors.ConfigInvalid,
				fmt.Sprintf("unsupported cohort format verb %%%c", verb), nil)
		}
		if literal.Len() > 0 {
			segments = append(segments, segment{literal: literal.String()})
			literal.Reset()
		}
		segments = append(segments, segment{verb: verb})
	}
	if literal.Len() > 0 {
		segments = append(segments, segment{literal: literal.String()})
	}

	return &Formatter{format: format, segments: segments}, nil
}

// Label renders the cohort label for a timestamp.
func (f *Formatter) Label(t time.Time) string {
	t = t.UTC()

	var b strings.Builder
	for _, seg := range f.segments {
		if seg.verb == 0 {
			b.WriteString(seg.literal)
			continue
		}
		switch seg.verb {
		case 'Y':
			fmt.Fprintf(&b, "%04d", t.Year())
		case 'm':
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case 'd':
			fmt.Fprintf(&b, "%02d", t.Day())
		case 'j':
			fmt.Fprintf(&b, "%03d", t.YearDay())
		case 'q':
			fmt.Fprintf(&b, "Q%d", (int(t.Month())-1)/3+1)
		}
	}
	return b.String()
}

// String returns the original format string.
func (f *Formatter) String() string {
	return f.format
}

package tomldoc

import (
	"fmt"
	"time"
)

// DatetimeKind distinguishes the four TOML date and time forms.
type DatetimeKind int

const (
	OffsetDatetime DatetimeKind = iota
	LocalDatetime
	LocalDate
	LocalTime
)

func (k DatetimeKind) String() string {
	switch k {
	case OffsetDatetime:
		return "offset datetime"
	case LocalDatetime:
		return "local datetime"
	case LocalDate:
		return "local date"
	case LocalTime:
		return "local time"
	}
	return fmt.Sprintf("DatetimeKind(%d)", int(k))
}

// Datetime is a decoded TOML date and time. Local kinds are stored in
// UTC and carry no zone information.
type Datetime struct {
	Kind DatetimeKind
	Time time.Time
}

const (
	layoutDate = "2006-01-02"
	layoutTime = "15:04:05"
)

// ParseDatetime decodes any of the TOML date and time forms. The date
// and time may be separated by 'T', 't' or a space.
func ParseDatetime(s string) (Datetime, error) {
	b := []byte(s)
	if len(b) > 10 && (b[10] == 't' || b[10] == ' ') {
		b[10] = 'T'
	}
	if n := len(b); n > 0 && b[n-1] == 'z' {
		b[n-1] = 'Z'
	}
	norm := string(b)

	var (
		kind   DatetimeKind
		layout string
	)
	switch {
	case len(norm) == 10 && datePattern(norm):
		kind, layout = LocalDate, layoutDate
	case len(norm) >= 8 && timePattern(norm):
		kind, layout = LocalTime, layoutTime
	case len(norm) >= 19 && datePattern(norm[:10]) && norm[10] == 'T':
		rest := norm[11:]
		n := timeLen(rest)
		if n == 0 {
			return Datetime{}, fmt.Errorf("invalid datetime %q", s)
		}
		switch zone := rest[n:]; {
		case zone == "":
			kind, layout = LocalDatetime, layoutDate+"T"+layoutTime
		case zone == "Z" || offsetPattern(zone):
			kind, layout = OffsetDatetime, time.RFC3339Nano
		default:
			return Datetime{}, fmt.Errorf("invalid datetime %q", s)
		}
	default:
		return Datetime{}, fmt.Errorf("invalid datetime %q", s)
	}

	t, err := time.Parse(layout, norm)
	if err != nil {
		return Datetime{}, fmt.Errorf("invalid datetime %q", s)
	}
	return Datetime{Kind: kind, Time: t}, nil
}

// String returns the RFC 3339 spelling of d.
func (d Datetime) String() string {
	switch d.Kind {
	case LocalDatetime:
		return d.Time.Format("2006-01-02T15:04:05.999999999")
	case LocalDate:
		return d.Time.Format(layoutDate)
	case LocalTime:
		return d.Time.Format("15:04:05.999999999")
	}
	return d.Time.Format(time.RFC3339Nano)
}

func datePattern(s string) bool {
	return len(s) == 10 && digits(s[0:4]) && s[4] == '-' && digits(s[5:7]) && s[7] == '-' && digits(s[8:10])
}

func timePattern(s string) bool {
	return timeLen(s) == len(s)
}

// timeLen returns the length of the HH:MM:SS[.fraction] prefix of s, or
// zero if s does not start with one.
func timeLen(s string) int {
	if len(s) < 8 || !digits(s[0:2]) || s[2] != ':' || !digits(s[3:5]) || s[5] != ':' || !digits(s[6:8]) {
		return 0
	}
	n := 8
	if n < len(s) && s[n] == '.' {
		j := n + 1
		for j < len(s) && '0' <= s[j] && s[j] <= '9' {
			j++
		}
		if j == n+1 {
			return 0
		}
		n = j
	}
	return n
}

func offsetPattern(s string) bool {
	return len(s) == 6 && (s[0] == '+' || s[0] == '-') && digits(s[1:3]) && s[3] == ':' && digits(s[4:6])
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

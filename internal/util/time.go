package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeParseError reports a time expression that could not be understood.
// The original input is preserved so it can be echoed back to the user.
type TimeParseError struct {
	Input  string
	Reason string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Input, e.Reason)
}

const timeFormatHint = "expected now, 1h, 30m, 7d, 5minutes, an RFC3339 timestamp, or epoch milliseconds"

var (
	digitsRe = regexp.MustCompile(`^\d+$`)

	// Relative time grammar. Case-insensitive, optional whitespace between
	// count and unit. The unit token set is fixed; do not extend it without
	// updating ResolveTime's unit switch.
	relativeRe = regexp.MustCompile(
		`(?i)^(\d+)\s*(s|sec|secs|second|seconds|m|min|mins|minute|minutes|h|hr|hrs|hour|hours|d|day|days|w|week|weeks)$`)
)

// ResolveTime resolves a time expression against now and returns a
// second-aligned epoch-millisecond instant (Unix seconds * 1000 rather
// than UnixMilli: some Datadog endpoints reject or misinterpret
// sub-second timestamps, so the millisecond remainder is always zero).
//
// Supported formats, in precedence order:
//   - "now" (case-insensitive)
//   - all-digit literals, returned verbatim as epoch milliseconds
//   - RFC3339 timestamps (anything containing 'T' is parsed as one)
//   - relative expressions: "1h", "30m", "7d", "5 minutes", "2hrs", ...
//
// A leading minus on a relative expression is accepted and ignored:
// "-5m" and "5m" both mean five minutes ago. That is long-standing
// observed behavior and callers depend on it; a real "ahead of now"
// form would need a new spelling, not a sign fix here.
func ResolveTime(expr string, now time.Time) (int64, error) {
	expr = strings.TrimSpace(expr)

	if strings.EqualFold(expr, "now") {
		return now.Unix() * 1000, nil
	}

	if digitsRe.MatchString(expr) {
		ms, err := strconv.ParseInt(expr, 10, 64)
		if err != nil {
			return 0, &TimeParseError{Input: expr, Reason: "timestamp out of range"}
		}
		return ms, nil
	}

	// RFC3339 detection keys on the presence of 'T' only; malformed
	// strings containing one fail here rather than falling through.
	if strings.ContainsRune(expr, 'T') {
		t, err := time.Parse(time.RFC3339, expr)
		if err != nil {
			return 0, &TimeParseError{Input: expr, Reason: "not a valid RFC3339 timestamp"}
		}
		return t.Unix() * 1000, nil
	}

	stripped := strings.TrimSpace(strings.TrimPrefix(expr, "-"))
	if m := relativeRe.FindStringSubmatch(stripped); m != nil {
		value, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, &TimeParseError{Input: expr, Reason: "offset out of range"}
		}

		var seconds int64
		switch strings.ToLower(m[2]) {
		case "s", "sec", "secs", "second", "seconds":
			seconds = value
		case "m", "min", "mins", "minute", "minutes":
			seconds = value * 60
		case "h", "hr", "hrs", "hour", "hours":
			seconds = value * 3600
		case "d", "day", "days":
			seconds = value * 86400
		case "w", "week", "weeks":
			seconds = value * 7 * 86400
		}
		return (now.Unix() - seconds) * 1000, nil
	}

	return 0, &TimeParseError{Input: expr, Reason: "unrecognized format (" + timeFormatHint + ")"}
}

// ParseTimeToUnixMilli resolves a time expression against the current time.
func ParseTimeToUnixMilli(expr string) (int64, error) {
	return ResolveTime(expr, time.Now())
}

// ParseTimeToUnix resolves a time expression to epoch seconds.
func ParseTimeToUnix(expr string) (int64, error) {
	ms, err := ParseTimeToUnixMilli(expr)
	if err != nil {
		return 0, err
	}
	return ms / 1000, nil
}

package board

import "regexp"

const (
	startYear = 1955
	endYear   = 2016
)

var (
	datePattern = regexp.MustCompile(`^(\d{4})\.`)
	// A four digit run that could plausibly be a year; the range check
	// rejects the stragglers.
	yearPattern = regexp.MustCompile(`^[12][09][0-25-9][0-9]`)
)

// knownVulnerabilityTypos maps the database's malformed vulnerability
// values to the intended ones.
var knownVulnerabilityTypos = map[string]string{
	"All]": "All",
	"NZ":   "NS",
}

// ParseVulnerability normalizes the raw vulnerability column and returns
// the per-partnership vulnerability flags, north-south first. Anything
// unrecognized leaves both sides non-vulnerable.
func ParseVulnerability(raw string) (ns, ew bool) {
	if replacement, ok := knownVulnerabilityTypos[raw]; ok {
		raw = replacement
	}
	switch raw {
	case "NS":
		return true, false
	case "EW":
		return false, true
	case "All":
		return true, true
	}
	return false, false
}

// Year determines the year the board was played, or 0 when undeterminable.
// Dates, when present, are formatted "yyyy.mm.dd" and are checked first;
// otherwise the rightmost year-like number in the event name is used. The
// source holds no boards from before 1955 or after 2016, and some recorded
// years are clearly wrong, so anything outside that range is discarded.
func Year(event, date string) int {
	if m := datePattern.FindStringSubmatch(date); m != nil {
		if y := yearIn(m[1]); y != 0 {
			return y
		}
	}
	// Only the rightmost year-like number counts; if it is out of range
	// the year is unknown, not an earlier number.
	for start := len(event) - 4; start >= 0; start-- {
		if m := yearPattern.FindString(event[start:]); m != "" {
			return yearIn(m)
		}
	}
	return 0
}

func yearIn(digits string) int {
	year := 0
	for _, c := range digits {
		year = year*10 + int(c-'0')
	}
	if year < startYear || year > endYear {
		return 0
	}
	return year
}

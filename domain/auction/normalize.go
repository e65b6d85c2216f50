package auction

import (
	"regexp"
	"strings"
)

// Canonical bid tokens are "P", "X", "R" and the 35 contract bids "1C".."7N".

// normalizeBid maps recognizable malformed tokens to one or more canonical
// tokens. "AP" (all pass) never needs a four-pass reading in the source data,
// and "XXX" only ever appears as a double followed by a redouble.
var normalizeBid = map[string][]string{
	"PASS":  {"P"},
	"PAS":   {"P"},
	"AP":    {"P", "P", "P"},
	"DBL":   {"X"},
	"REDBL": {"R"},
	"XX":    {"R"},
	"XXX":   {"X", "R"},
	"S3":    {"3S"},
}

var validBids = buildValidBids()

func buildValidBids() map[string]bool {
	valid := map[string]bool{"P": true, "X": true, "R": true}
	for level := '1'; level <= '7'; level++ {
		for _, denom := range []string{"C", "D", "H", "S", "N"} {
			valid[string(level)+denom] = true
		}
	}
	return valid
}

// concatPattern extracts legal sub-tokens from concatenated or no-trump
// variant tokens, longest match first: "XX" must precede "X" so a redouble
// inside a concatenation is never split into two doubles, and "PASS" is the
// only pass spelling searched for (matching a bare "P" would resurrect noise
// like "PBN" or "PC"). Matches are emitted in input order.
var concatPattern = buildConcatPattern()

func buildConcatPattern() *regexp.Regexp {
	alternatives := []string{"XX", "PASS"}
	for level := '1'; level <= '7'; level++ {
		for _, denom := range []string{"C", "D", "H", "S", "N"} {
			alternatives = append(alternatives, string(level)+denom)
		}
	}
	alternatives = append(alternatives, "R", "X")
	return regexp.MustCompile(strings.Join(alternatives, "|"))
}

// NormalizeBids turns a raw whitespace-separated auction string into the
// list of canonical bid tokens it encodes. Matching is case-insensitive;
// alert markers (a trailing "!", a leading "=0=" wrapper) are stripped;
// recognizable misspellings are rewritten; concatenations of legal bids and
// no-trump variants are split apart. Tokens that survive none of this are
// noise and are silently dropped. The function is idempotent on its own
// output.
func NormalizeBids(raw string) []string {
	var out []string
	for _, bid := range strings.Split(raw, " ") {
		bid = strings.ToUpper(bid)
		bid = strings.TrimRight(bid, "!")
		bid = strings.TrimLeft(bid, "=0")

		if validBids[bid] {
			out = append(out, bid)
			continue
		}
		if normalized, ok := normalizeBid[bid]; ok {
			out = append(out, normalized...)
			continue
		}
		for _, sub := range concatPattern.FindAllString(bid, -1) {
			if normalized, ok := normalizeBid[sub]; ok {
				out = append(out, normalized...)
			} else {
				out = append(out, sub)
			}
		}
	}
	return out
}

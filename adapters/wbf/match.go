package wbf

import "strings"

// matchRank orders candidate matches: more matched names, then more
// matched initials, then fewer unmatched roster names, then fewer
// unmatched roster initials.
type matchRank struct {
	matchedNames      int
	matchedInitials   int
	unmatchedNames    int
	unmatchedInitials int
}

func (m matchRank) betterThan(o matchRank) bool {
	if m.matchedNames != o.matchedNames {
		return m.matchedNames > o.matchedNames
	}
	if m.matchedInitials != o.matchedInitials {
		return m.matchedInitials > o.matchedInitials
	}
	if m.unmatchedNames != o.unmatchedNames {
		return m.unmatchedNames < o.unmatchedNames
	}
	return m.unmatchedInitials < o.unmatchedInitials
}

// Normalize resolves a raw player name to the best-matching roster entry's
// key. A match needs at least one matched full name; a tie for best means
// no match. Results are memoized per raw name.
func (r *Roster) Normalize(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if key, ok := r.memo[name]; ok {
		return key
	}
	key := r.match(name)
	r.memo[name] = key
	return key
}

func (r *Roster) match(name string) string {
	var names []string
	var initials []string
	for _, component := range strings.Split(name, " ") {
		if isInitial(component) {
			initials = append(initials, strings.ToUpper(component[:1]))
		} else {
			names = append(names, strings.ToUpper(component))
		}
	}

	best := NoMatch
	var bestRank matchRank
	tied := false
	for i, e := range r.entries {
		rank := rankAgainst(e, names, initials)
		switch {
		case i == 0 || rank.betterThan(bestRank):
			best, bestRank, tied = e.key, rank, false
		case rank == bestRank:
			tied = true
		}
	}

	if bestRank.matchedNames == 0 || tied {
		return NoMatch
	}
	return best
}

// rankAgainst scores one roster entry against the query's name and initial
// components. An unmatched query initial may stand in for an unmatched
// roster name it abbreviates, counting as a matched initial.
func rankAgainst(e entry, names, initials []string) matchRank {
	matchedNames := intersect(e.names, names)
	matchedInitials := intersect(e.initials, initials)

	rank := matchRank{
		matchedNames:    size(matchedNames),
		matchedInitials: size(matchedInitials),
	}

	available := orderedRemainder(initials, matchedInitials)
	for _, rosterName := range orderedRemainder(e.names, matchedNames) {
		for i, initial := range available {
			if strings.HasPrefix(rosterName, initial) {
				rank.matchedInitials++
				matchedNames[rosterName]++
				matchedInitials[initial]++
				available = append(available[:i], available[i+1:]...)
				break
			}
		}
	}

	rank.unmatchedNames = len(orderedRemainder(e.names, matchedNames))
	rank.unmatchedInitials = len(orderedRemainder(e.initials, matchedInitials))
	return rank
}

// intersect returns the multiset intersection of the two component lists.
func intersect(a, b []string) map[string]int {
	counts := make(map[string]int, len(b))
	for _, item := range b {
		counts[item]++
	}
	out := map[string]int{}
	for _, item := range a {
		if counts[item] > 0 {
			counts[item]--
			out[item]++
		}
	}
	return out
}

// orderedRemainder lists the items of the multiset left after removing
// consumed, duplicates grouped, in first-occurrence order.
func orderedRemainder(items []string, consumed map[string]int) []string {
	counts := make(map[string]int, len(items))
	var order []string
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	var out []string
	for _, item := range order {
		for left := counts[item] - consumed[item]; left > 0; left-- {
			out = append(out, item)
		}
	}
	return out
}

func size(set map[string]int) int {
	total := 0
	for _, n := range set {
		total += n
	}
	return total
}

// Package scoring computes duplicate bridge scores under the rule set in
// force when the board was played. The only historical branch is doubled
// undertricks, which changed after 1987.
package scoring

import (
	"bridgelens/domain/bridge"
)

// Score returns the signed score earned by the declarer for taking
// tricksMade tricks in the given contract. Negative values mean the
// contract was defeated. A zero year takes the post-1987 undertrick rules.
func Score(contract bridge.Contract, tricksMade int, declarerVulnerable bool, year int) int {
	level := contract.Bid.Level
	if tricksMade < level+6 {
		return undertrickPoints((level+6)-tricksMade, contract.Doubling, declarerVulnerable, year)
	}

	score := contractPoints(level, contract.Bid.Denom, contract.Doubling)
	score += bonusPoints(level, tricksMade, score, contract.Doubling, declarerVulnerable)
	score += overtrickPoints(tricksMade-(level+6), contract.Bid.Denom, contract.Doubling, declarerVulnerable)
	return score
}

func undertrickPoints(undertricks int, doubling bridge.Doubling, vulnerable bool, year int) int {
	multiplier := 1
	if doubling == bridge.Redoubled {
		multiplier = 2
	}

	if !vulnerable {
		if doubling == bridge.Undoubled {
			return -50 * undertricks
		}
		if year != 0 && year <= 1987 {
			// Pre-1988: a flat penalty ladder for doubled undertricks.
			return -100*multiplier - 200*multiplier*(undertricks-1)
		}
		// 1988 on: tricks two and three cost 200 each, later tricks 300.
		banded := undertricks * 2 / 3
		if banded > 2 {
			banded = 2
		}
		extra := undertricks - 3
		if extra < 0 {
			extra = 0
		}
		return -100*multiplier - 200*multiplier*banded - 300*multiplier*extra
	}

	if doubling == bridge.Undoubled {
		return -100 * undertricks
	}
	return -200*multiplier - 300*multiplier*(undertricks-1)
}

func contractPoints(level int, denom bridge.Denom, doubling bridge.Doubling) int {
	multiplier := 1
	switch doubling {
	case bridge.Doubled:
		multiplier = 2
	case bridge.Redoubled:
		multiplier = 4
	}

	switch denom {
	case bridge.Clubs, bridge.Diamonds:
		return 20 * level * multiplier
	case bridge.Hearts, bridge.Spades:
		return 30 * level * multiplier
	default:
		return 30*level*multiplier + 10*multiplier
	}
}

func bonusPoints(level, tricksMade, contractPoints int, doubling bridge.Doubling, vulnerable bool) int {
	bonus := 0

	if contractPoints > 0 && contractPoints < 100 {
		bonus += 50 // partial game
	}
	if contractPoints >= 100 {
		if vulnerable {
			bonus += 500
		} else {
			bonus += 300
		}
	}

	if level == 6 && tricksMade >= 12 {
		if vulnerable {
			bonus += 750
		} else {
			bonus += 500
		}
	}
	if level == 7 && tricksMade == 13 {
		if vulnerable {
			bonus += 1500
		} else {
			bonus += 1000
		}
	}

	// Insult bonus for making a doubled or redoubled contract.
	if contractPoints > 0 {
		switch doubling {
		case bridge.Doubled:
			bonus += 50
		case bridge.Redoubled:
			bonus += 100
		}
	}

	return bonus
}

func overtrickPoints(overtricks int, denom bridge.Denom, doubling bridge.Doubling, vulnerable bool) int {
	if doubling == bridge.Undoubled {
		if denom == bridge.Clubs || denom == bridge.Diamonds {
			return 20 * overtricks
		}
		return 30 * overtricks
	}

	multiplier := 1
	if vulnerable {
		multiplier = 2
	}
	if doubling == bridge.Redoubled {
		multiplier *= 2
	}
	return 100 * overtricks * multiplier
}

package board

import "strconv"

// ClaimNone marks a board on which no claim was recorded.
const ClaimNone = -1

// ComputeClaim interprets the recorded result of a partially played board
// as a claim of the declarer's total trick count. A result that is not an
// integer between 0 and 13 is treated as absent. A result that contradicts
// the tricks already played, claiming fewer tricks than the declarer has
// already won or more than could still be won, is ErrClaim.
func ComputeClaim(result string, tricksPlayed, declarerTricks int) (int, error) {
	claim, err := strconv.Atoi(result)
	if err != nil {
		return ClaimNone, nil
	}
	if claim < 0 || claim > 13 {
		return ClaimNone, nil
	}
	if claim < declarerTricks || claim-declarerTricks > 13-tricksPlayed {
		return ClaimNone, ErrClaim
	}
	return claim, nil
}

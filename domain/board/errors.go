package board

import (
	"errors"
	"fmt"

	"bridgelens/domain/bridge"
)

// Board error kinds, the closed BoardError set. Any of these rejects the
// whole board: the record is skipped and the kind tallied. The deal kinds
// (bridge.ErrMissingDeal, bridge.ErrUnbalancedDeal, bridge.ErrInvalidCard)
// belong to this set too.
var (
	ErrBoard = errors.New("invalid board")

	ErrMissingNames          = fmt.Errorf("%w: all names are missing", ErrBoard)
	ErrClaim                 = fmt.Errorf("%w: claim of fewer tricks than already won, or more than remain", ErrBoard)
	ErrContractContradiction = fmt.Errorf("%w: contract differs from the contract deducible from the auction", ErrBoard)
	ErrDeclarerContradiction = fmt.Errorf("%w: declarer differs from the declarer deducible from the auction", ErrBoard)
	ErrLeadContradiction     = fmt.Errorf("%w: lead differs from the lead deducible from the declarer", ErrBoard)
	ErrPassContradiction     = fmt.Errorf("%w: contract is pass, play sequence is non-empty", ErrBoard)
)

// errContradiction is the internal signal raised when two independently
// supplied values for the same fact disagree. It never escapes Clean;
// each call site re-raises it as the matching board kind.
var errContradiction = errors.New("contradictory values")

// IsBoardError reports whether err belongs to the closed BoardError set.
func IsBoardError(err error) bool {
	return errors.Is(err, ErrBoard) ||
		errors.Is(err, bridge.ErrMissingDeal) ||
		errors.Is(err, bridge.ErrUnbalancedDeal) ||
		errors.Is(err, bridge.ErrInvalidCard)
}

// reconcile merges a directly supplied value with a derived one. Matching
// or one-sided values merge; disagreeing non-empty values signal a
// contradiction for the caller to re-raise with the right kind.
func reconcile(direct, derived string) (string, error) {
	if derived == "" {
		return direct, nil
	}
	if direct != "" && direct != derived {
		return "", errContradiction
	}
	return derived, nil
}

package badges

import (
	"errors"
	"fmt"
)

// ErrInvalidState is wrapped by every error caused by calling an operation
// whose precondition does not hold for the current state.
var ErrInvalidState = errors.New("badges: invalid state")

var (
	// ErrNoGrumpyCat is returned by OnShooCat when no grumpy cat is active.
	ErrNoGrumpyCat = fmt.Errorf("%w: no active grumpy cat to shoo", ErrInvalidState)

	// ErrGrumpyCatActive is returned by OnForceBadgeOpen while a grumpy cat blocks the board.
	ErrGrumpyCatActive = fmt.Errorf("%w: grumpy cat is active", ErrInvalidState)

	// ErrNoLockedBadge is returned by OnForceBadgeOpen when every regular badge is already open.
	ErrNoLockedBadge = fmt.Errorf("%w: no locked badge to open", ErrInvalidState)
)

package dlob

import (
	"cosmossdk.io/errors"
)

// Module error codes.
var (
	// ErrMissingOracle is returned when a floating-limit price or a merge
	// read needs oracle data the caller did not supply.
	ErrMissingOracle = errors.Register("dlob", 1, "missing oracle data for floating-limit price")

	// ErrUnknownMarket is returned when a mutator or reader is invoked for
	// a marketIndex that was not passed to the DLOB constructor.
	ErrUnknownMarket = errors.Register("dlob", 2, "unknown market index")
)

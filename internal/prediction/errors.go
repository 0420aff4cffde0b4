package prediction

import "errors"

var (
	// ErrInvalidOdds indicates no positive odds were available to derive probabilities
	ErrInvalidOdds = errors.New("invalid odds: no positive prices")

	// ErrNoQuotes indicates no bookmaker quoted a match-result market
	ErrNoQuotes = errors.New("no bookmaker quotes for match result")
)

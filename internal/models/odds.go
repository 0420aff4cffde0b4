package models

import (
	"math"
	"sort"
)

// Market identifies a betting market quoted for a match
type Market string

const (
	MarketHomeWin Market = "home_win"
	MarketDraw    Market = "draw"
	MarketAwayWin Market = "away_win"
	MarketBTTS    Market = "both_teams_to_score"
)

// Markets lists the supported markets in detection order
var Markets = []Market{MarketHomeWin, MarketDraw, MarketAwayWin, MarketBTTS}

// DisplayName returns the human readable market name
func (m Market) DisplayName() string {
	switch m {
	case MarketHomeWin:
		return "Home Win"
	case MarketDraw:
		return "Draw"
	case MarketAwayWin:
		return "Away Win"
	case MarketBTTS:
		return "Both Teams to Score"
	default:
		return string(m)
	}
}

// IsValid reports whether the market is one of the supported markets
func (m Market) IsValid() bool {
	switch m {
	case MarketHomeWin, MarketDraw, MarketAwayWin, MarketBTTS:
		return true
	default:
		return false
	}
}

// IsQuotable reports whether a decimal odds value can be offered by a bookmaker
func IsQuotable(odds float64) bool {
	return odds > 1.0 && !math.IsNaN(odds) && !math.IsInf(odds, 0)
}

// MarketOdds holds decimal odds keyed by market for a single bookmaker
type MarketOdds map[Market]float64

// Get returns the quoted odds for a market if present and quotable
func (o MarketOdds) Get(m Market) (float64, bool) {
	odds, ok := o[m]
	if !ok || !IsQuotable(odds) {
		return 0, false
	}
	return odds, true
}

// BookmakerOdds holds market odds keyed by bookmaker name
type BookmakerOdds map[string]MarketOdds

// Bookmakers returns the bookmakers with at least one quotable market, sorted by name
func (b BookmakerOdds) Bookmakers() []string {
	names := make([]string, 0, len(b))
	for name, odds := range b {
		for _, m := range Markets {
			if _, ok := odds.Get(m); ok {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

// Best returns the highest odds quoted for a market and the bookmaker offering it.
// Equal odds resolve to the bookmaker whose name sorts first.
func (b BookmakerOdds) Best(m Market) (float64, string, bool) {
	var (
		best      float64
		bookmaker string
		found     bool
	)
	for _, name := range b.Bookmakers() {
		odds, ok := b[name].Get(m)
		if !ok {
			continue
		}
		if !found || odds > best {
			best = odds
			bookmaker = name
			found = true
		}
	}
	return best, bookmaker, found
}

// Merge copies every market quote from other into b, overwriting existing quotes
func (b BookmakerOdds) Merge(other BookmakerOdds) {
	for name, odds := range other {
		existing, ok := b[name]
		if !ok {
			existing = make(MarketOdds, len(odds))
			b[name] = existing
		}
		for m, v := range odds {
			existing[m] = v
		}
	}
}

package models

import (
	"time"
)

// Match represents a scheduled fixture with bookmaker odds and optional team statistics
type Match struct {
	ID        string        `json:"id" validate:"required"`
	HomeTeam  string        `json:"home_team" validate:"required"`
	AwayTeam  string        `json:"away_team" validate:"required,nefield=HomeTeam"`
	League    string        `json:"league"`
	StartTime time.Time     `json:"start_time"`
	Odds      BookmakerOdds `json:"odds"`
	Stats     *MatchStats   `json:"stats,omitempty"`
}

// Key returns the identity used to merge the same fixture across sources
func (m *Match) Key() string {
	return m.HomeTeam + "-" + m.AwayTeam
}

// HasStats reports whether statistical data is attached
func (m *Match) HasStats() bool {
	return m.Stats != nil
}

// HasOdds reports whether any bookmaker quotes a market for the match
func (m *Match) HasOdds() bool {
	return m.BookmakerCount() > 0
}

// BookmakerCount returns the number of bookmakers with at least one usable quote
func (m *Match) BookmakerCount() int {
	return len(m.Odds.Bookmakers())
}

// TimeToStart returns the duration until kick-off
func (m *Match) TimeToStart() time.Duration {
	return time.Until(m.StartTime)
}

package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Summary aggregates the predictions of one refresh
type Summary struct {
	TotalMatches     int     `json:"total_matches"`
	ValueBetsFound   int     `json:"value_bets_found"`
	ProfitableBets   int     `json:"profitable_bets"`
	AvgExpectedValue float64 `json:"avg_expected_value"`
	AvgDataQuality   float64 `json:"avg_data_quality"`
}

// Snapshot is the output of a single refresh cycle
type Snapshot struct {
	ID           uuid.UUID         `json:"id"`
	Sequence     uint64            `json:"sequence"`
	Matches      []MatchPrediction `json:"matches"`
	SourceCounts map[string]int    `json:"sources"`
	Summary      Summary           `json:"summary"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Duration     time.Duration     `json:"duration_ns"`
}

// EmptySnapshot returns the snapshot served before any refresh has been applied
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Matches:      []MatchPrediction{},
		SourceCounts: map[string]int{},
	}
}

// FindMatch returns the prediction for a match ID
func (s *Snapshot) FindMatch(id string) (*MatchPrediction, bool) {
	for i := range s.Matches {
		if s.Matches[i].Match.ID == id {
			return &s.Matches[i], true
		}
	}
	return nil, false
}

// ValueBets returns every value bet in the snapshot with its match, highest expected value first
func (s *Snapshot) ValueBets() []MatchValueBet {
	var bets []MatchValueBet
	for _, mp := range s.Matches {
		for _, vb := range mp.Prediction.ValueBets {
			bets = append(bets, MatchValueBet{
				MatchID:  mp.Match.ID,
				HomeTeam: mp.Match.HomeTeam,
				AwayTeam: mp.Match.AwayTeam,
				League:   mp.Match.League,
				ValueBet: vb,
			})
		}
	}
	sortMatchValueBets(bets)
	return bets
}

// MatchValueBet is a value bet annotated with its fixture
type MatchValueBet struct {
	MatchID  string `json:"match_id"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	League   string `json:"league"`
	ValueBet
}

func sortMatchValueBets(bets []MatchValueBet) {
	sort.SliceStable(bets, func(i, j int) bool {
		return bets[i].ExpectedValue > bets[j].ExpectedValue
	})
}

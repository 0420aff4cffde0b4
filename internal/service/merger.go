package service

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchday-edge/internal/models"
)

// Merger combines bookmaker feeds into one match list and attaches statistics
type Merger struct {
	logger *logrus.Entry
}

// NewMerger creates a merger
func NewMerger(logger *logrus.Logger) *Merger {
	return &Merger{logger: logger.WithField("component", "merger")}
}

// Merge unions the feeds by home-away key. The first feed to list a fixture supplies its
// ID and kick-off; later feeds add their bookmaker odds. Statistics are attached when both
// teams are found in teams. Output keeps first-seen order.
func (m *Merger) Merge(feeds [][]models.Match, teams map[string]models.TeamStats) []models.Match {
	index := make(map[string]int)
	merged := make([]models.Match, 0)

	for _, feed := range feeds {
		for _, match := range feed {
			key := match.Key()
			if i, ok := index[key]; ok {
				existing := &merged[i]
				existing.Odds.Merge(match.Odds)
				if existing.League == "" {
					existing.League = match.League
				}
				continue
			}

			// copy the odds so merging never mutates a source's result
			odds := make(models.BookmakerOdds, len(match.Odds))
			odds.Merge(match.Odds)
			match.Odds = odds
			match.Stats = nil

			index[key] = len(merged)
			merged = append(merged, match)
		}
	}

	for i := range merged {
		merged[i].Stats = m.lookupStats(&merged[i], teams)
	}
	return merged
}

func (m *Merger) lookupStats(match *models.Match, teams map[string]models.TeamStats) *models.MatchStats {
	if len(teams) == 0 {
		return nil
	}
	home, okHome := FindTeamStats(match.HomeTeam, teams)
	away, okAway := FindTeamStats(match.AwayTeam, teams)
	if !okHome || !okAway {
		m.logger.WithFields(logrus.Fields{
			"match_id":   match.ID,
			"home_found": okHome,
			"away_found": okAway,
		}).Debug("No statistics for fixture")
		return nil
	}
	return models.NewMatchStats(home, away)
}

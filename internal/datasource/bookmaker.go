package datasource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchday-edge/internal/models"
)

// bookmakerFixture is the file layout of a bookmaker source
type bookmakerFixture struct {
	Bookmaker string     `yaml:"bookmaker"`
	Matches   []matchDTO `yaml:"matches"`
}

// matchDTO is one quoted fixture. Kick-off is either absolute (start_time) or
// relative to the fetch time (kickoff_in, a Go duration such as "2h").
type matchDTO struct {
	ID        string           `yaml:"id"`
	HomeTeam  string           `yaml:"home_team"`
	AwayTeam  string           `yaml:"away_team"`
	League    string           `yaml:"league"`
	StartTime *time.Time       `yaml:"start_time"`
	KickoffIn string           `yaml:"kickoff_in"`
	Odds      map[string]Price `yaml:"odds"`
}

// FixtureOddsSource serves bookmaker odds from a YAML fixture file
type FixtureOddsSource struct {
	name    string
	path    string
	league  string
	enabled bool
	now     func() time.Time
	logger  *logrus.Entry
}

// NewFixtureOddsSource creates a bookmaker source reading path.
// A non-empty league keeps only matches of that league.
func NewFixtureOddsSource(name, path, league string, enabled bool, logger *logrus.Logger) *FixtureOddsSource {
	return &FixtureOddsSource{
		name:    name,
		path:    path,
		league:  league,
		enabled: enabled,
		now:     time.Now,
		logger:  logger.WithFields(logrus.Fields{"component": "datasource", "source": name}),
	}
}

// Name returns the name of the data source
func (s *FixtureOddsSource) Name() string {
	return s.name
}

// IsEnabled returns whether this data source is currently enabled
func (s *FixtureOddsSource) IsEnabled() bool {
	return s.enabled
}

// FetchMatches reads the fixture file and converts every quoted match
func (s *FixtureOddsSource) FetchMatches(ctx context.Context) ([]models.Match, error) {
	if !s.enabled {
		return nil, NewSourceError(s.name, ErrCodeDisabled, "source is disabled", ErrSourceDisabled)
	}

	var fixture bookmakerFixture
	if err := readFixture(ctx, s.name, s.path, &fixture); err != nil {
		return nil, err
	}

	bookmaker := fixture.Bookmaker
	if bookmaker == "" {
		bookmaker = s.name
	}

	fetchedAt := s.now()
	matches := make([]models.Match, 0, len(fixture.Matches))
	for _, dto := range fixture.Matches {
		if s.league != "" && !strings.EqualFold(dto.League, s.league) {
			continue
		}
		match, err := s.toMatch(dto, bookmaker, fetchedAt)
		if err != nil {
			return nil, NewSourceError(s.name, ErrCodeInvalidData, fmt.Sprintf("match %s", dto.ID), err)
		}
		matches = append(matches, match)
	}

	s.logger.WithField("matches", len(matches)).Debug("Fetched bookmaker odds")
	return matches, nil
}

func (s *FixtureOddsSource) toMatch(dto matchDTO, bookmaker string, fetchedAt time.Time) (models.Match, error) {
	start := fetchedAt
	switch {
	case dto.StartTime != nil:
		start = dto.StartTime.UTC()
	case dto.KickoffIn != "":
		offset, err := time.ParseDuration(dto.KickoffIn)
		if err != nil {
			return models.Match{}, fmt.Errorf("%w: kickoff_in: %v", ErrInvalidData, err)
		}
		start = fetchedAt.Add(offset).UTC()
	}

	odds := make(models.MarketOdds, len(dto.Odds))
	for key, price := range dto.Odds {
		market := models.Market(key)
		if !market.IsValid() {
			s.logger.WithFields(logrus.Fields{"match_id": dto.ID, "market": key}).Debug("Skipping unsupported market")
			continue
		}
		odds[market] = price.Float()
	}

	return models.Match{
		ID:        dto.ID,
		HomeTeam:  strings.TrimSpace(dto.HomeTeam),
		AwayTeam:  strings.TrimSpace(dto.AwayTeam),
		League:    dto.League,
		StartTime: start,
		Odds:      models.BookmakerOdds{bookmaker: odds},
	}, nil
}

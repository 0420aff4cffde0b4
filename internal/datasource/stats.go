package datasource

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchday-edge/internal/models"
)

// statsFixture is the file layout of a statistics source
type statsFixture struct {
	Provider string                  `yaml:"provider"`
	Teams    map[string]teamStatsDTO `yaml:"teams"`
}

type teamStatsDTO struct {
	AttackStrength  float64 `yaml:"attack_strength"`
	DefenseStrength float64 `yaml:"defense_strength"`
	ExpectedGoals   struct {
		For     float64 `yaml:"for"`
		Against float64 `yaml:"against"`
	} `yaml:"expected_goals"`
	RecentForm      string  `yaml:"recent_form"`
	HomePerformance float64 `yaml:"home_performance"`
	AwayPerformance float64 `yaml:"away_performance"`
}

// FixtureStatsSource serves team statistics from a YAML fixture file
type FixtureStatsSource struct {
	name    string
	path    string
	enabled bool
	logger  *logrus.Entry
}

// NewFixtureStatsSource creates a statistics source reading path
func NewFixtureStatsSource(name, path string, enabled bool, logger *logrus.Logger) *FixtureStatsSource {
	return &FixtureStatsSource{
		name:    name,
		path:    path,
		enabled: enabled,
		logger:  logger.WithFields(logrus.Fields{"component": "datasource", "source": name}),
	}
}

// Name returns the name of the data source
func (s *FixtureStatsSource) Name() string {
	return s.name
}

// IsEnabled returns whether this data source is currently enabled
func (s *FixtureStatsSource) IsEnabled() bool {
	return s.enabled
}

// FetchTeamStats reads the fixture file and returns statistics keyed by team name
func (s *FixtureStatsSource) FetchTeamStats(ctx context.Context) (map[string]models.TeamStats, error) {
	if !s.enabled {
		return nil, NewSourceError(s.name, ErrCodeDisabled, "source is disabled", ErrSourceDisabled)
	}

	var fixture statsFixture
	if err := readFixture(ctx, s.name, s.path, &fixture); err != nil {
		return nil, err
	}

	teams := make(map[string]models.TeamStats, len(fixture.Teams))
	for name, dto := range fixture.Teams {
		teams[name] = models.TeamStats{
			AttackStrength:       dto.AttackStrength,
			DefenseStrength:      dto.DefenseStrength,
			ExpectedGoalsFor:     dto.ExpectedGoals.For,
			ExpectedGoalsAgainst: dto.ExpectedGoals.Against,
			RecentForm:           dto.RecentForm,
			HomePerformance:      dto.HomePerformance,
			AwayPerformance:      dto.AwayPerformance,
		}
	}

	s.logger.WithFields(logrus.Fields{
		"provider": fixture.Provider,
		"teams":    len(teams),
	}).Debug("Fetched team statistics")
	return teams, nil
}

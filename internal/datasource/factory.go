package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchday-edge/internal/config"
)

// Sources groups the enabled data sources of a configuration
type Sources struct {
	Odds  []OddsSource
	Stats []StatsSource
}

// Names returns every source name, bookmakers first
func (s Sources) Names() []string {
	names := make([]string, 0, len(s.Odds)+len(s.Stats))
	for _, src := range s.Odds {
		names = append(names, src.Name())
	}
	for _, src := range s.Stats {
		names = append(names, src.Name())
	}
	return names
}

// Factory creates data sources based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewOddsSource creates a bookmaker source from its configuration
func (f *Factory) NewOddsSource(cfg config.SourceConfig) (OddsSource, error) {
	if cfg.Kind != config.SourceKindBookmaker {
		return nil, fmt.Errorf("%w: %s is not a bookmaker source", ErrUnknownSource, cfg.Name)
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("fixture path is required for source %s", cfg.Name)
	}
	return NewFixtureOddsSource(cfg.Name, cfg.Path, cfg.League, cfg.Enabled, f.logger), nil
}

// NewStatsSource creates a statistics source from its configuration
func (f *Factory) NewStatsSource(cfg config.SourceConfig) (StatsSource, error) {
	if cfg.Kind != config.SourceKindStats {
		return nil, fmt.Errorf("%w: %s is not a stats source", ErrUnknownSource, cfg.Name)
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("fixture path is required for source %s", cfg.Name)
	}
	return NewFixtureStatsSource(cfg.Name, cfg.Path, cfg.Enabled, f.logger), nil
}

// ListAvailableSources returns the names of the enabled sources
func (f *Factory) ListAvailableSources() []string {
	available := make([]string, 0)
	if f.config == nil {
		return available
	}
	for _, src := range f.config.Sources {
		if src.Enabled {
			available = append(available, src.Name)
		}
	}
	return available
}

// NewSources creates all enabled data sources from configuration
func (f *Factory) NewSources() (Sources, error) {
	var sources Sources
	if f.config == nil {
		return sources, fmt.Errorf("configuration is required")
	}

	for _, srcCfg := range f.config.Sources {
		if !srcCfg.Enabled {
			f.logger.WithField("source", srcCfg.Name).Info("Skipping disabled data source")
			continue
		}

		switch srcCfg.Kind {
		case config.SourceKindBookmaker:
			src, err := f.NewOddsSource(srcCfg)
			if err != nil {
				return Sources{}, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
			}
			sources.Odds = append(sources.Odds, src)
		case config.SourceKindStats:
			src, err := f.NewStatsSource(srcCfg)
			if err != nil {
				return Sources{}, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
			}
			sources.Stats = append(sources.Stats, src)
		default:
			return Sources{}, fmt.Errorf("%w: %s has kind %q", ErrUnknownSource, srcCfg.Name, srcCfg.Kind)
		}

		f.logger.WithFields(logrus.Fields{
			"source": srcCfg.Name,
			"kind":   srcCfg.Kind,
		}).Info("Created data source")
	}

	if len(sources.Odds) == 0 {
		return Sources{}, fmt.Errorf("no enabled bookmaker sources configured")
	}

	return sources, nil
}

package service

import (
	"sort"
	"strings"

	"github.com/yourusername/matchday-edge/internal/models"
)

// clubTokens are club-type abbreviations ignored when comparing team names
var clubTokens = map[string]bool{
	"fc":  true,
	"cf":  true,
	"sc":  true,
	"afc": true,
}

// NormalizeTeamName lowercases a team name, drops club abbreviations such as "FC"
// and removes whitespace, so "Liverpool FC" and "liverpool" compare equal.
// Abbreviations are removed only as whole words.
func NormalizeTeamName(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(strings.ToLower(name)) {
		if clubTokens[token] {
			continue
		}
		b.WriteString(token)
	}
	return b.String()
}

// FindTeamStats looks up a team by normalized name. An exact normalized match wins;
// otherwise the first provider name (in sorted order) where either normalized name
// contains the other is used.
func FindTeamStats(name string, teams map[string]models.TeamStats) (models.TeamStats, bool) {
	target := NormalizeTeamName(name)
	if target == "" {
		return models.TeamStats{}, false
	}

	names := make([]string, 0, len(teams))
	for provider := range teams {
		names = append(names, provider)
	}
	sort.Strings(names)

	for _, provider := range names {
		if NormalizeTeamName(provider) == target {
			return teams[provider], true
		}
	}
	for _, provider := range names {
		candidate := NormalizeTeamName(provider)
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, target) || strings.Contains(target, candidate) {
			return teams[provider], true
		}
	}
	return models.TeamStats{}, false
}

package models

// Expected goals used when a team has no figure of its own
const (
	DefaultHomeExpectedGoals = 1.8
	DefaultAwayExpectedGoals = 1.5
)

// TeamStats is the statistical summary of one team.
// Strength and performance ratios are in [0,1]; expected goals are per match.
type TeamStats struct {
	AttackStrength       float64 `json:"attack_strength" validate:"gte=0,lte=1"`
	DefenseStrength      float64 `json:"defense_strength" validate:"gte=0,lte=1"`
	ExpectedGoalsFor     float64 `json:"expected_goals_for" validate:"gte=0"`
	ExpectedGoalsAgainst float64 `json:"expected_goals_against" validate:"gte=0"`
	RecentForm           string  `json:"recent_form" validate:"omitempty,max=10,form"`
	HomePerformance      float64 `json:"home_performance" validate:"gte=0,lte=1"`
	AwayPerformance      float64 `json:"away_performance" validate:"gte=0,lte=1"`
}

// FormPoints returns league points earned over the recent form string
func (t TeamStats) FormPoints() int {
	points := 0
	for _, r := range t.RecentForm {
		switch r {
		case 'W':
			points += 3
		case 'D':
			points++
		}
	}
	return points
}

// HeadToHead holds the pairing figures derived from both teams' statistics
type HeadToHead struct {
	ExpectedGoalsHome float64 `json:"expected_goals_home"`
	ExpectedGoalsAway float64 `json:"expected_goals_away"`
	FormHome          string  `json:"form_home"`
	FormAway          string  `json:"form_away"`
	AttackAverage     float64 `json:"attack_average"`
	DefenseAverage    float64 `json:"defense_average"`
}

// MatchStats pairs home and away team statistics for one fixture
type MatchStats struct {
	Home       TeamStats  `json:"home"`
	Away       TeamStats  `json:"away"`
	HeadToHead HeadToHead `json:"h2h"`
}

// NewMatchStats builds match statistics and derives the head-to-head figures
func NewMatchStats(home, away TeamStats) *MatchStats {
	return &MatchStats{
		Home:       home,
		Away:       away,
		HeadToHead: deriveHeadToHead(home, away),
	}
}

func deriveHeadToHead(home, away TeamStats) HeadToHead {
	xgHome := home.ExpectedGoalsFor
	if xgHome <= 0 {
		xgHome = DefaultHomeExpectedGoals
	}
	xgAway := away.ExpectedGoalsFor
	if xgAway <= 0 {
		xgAway = DefaultAwayExpectedGoals
	}
	return HeadToHead{
		ExpectedGoalsHome: xgHome,
		ExpectedGoalsAway: xgAway,
		FormHome:          home.RecentForm,
		FormAway:          away.RecentForm,
		AttackAverage:     (home.AttackStrength + away.AttackStrength) / 2,
		DefenseAverage:    (home.DefenseStrength + away.DefenseStrength) / 2,
	}
}

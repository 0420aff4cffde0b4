package prediction

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchday-edge/internal/models"
)

const sumTolerance = 1e-9

// randomOdds draws decimal odds in (1.01, 15]
func randomOdds(rng *rand.Rand) float64 {
	return 1.01 + rng.Float64()*14
}

func sampleStats() models.MatchStats {
	return *models.NewMatchStats(
		models.TeamStats{AttackStrength: 0.78, DefenseStrength: 0.65, ExpectedGoalsFor: 1.9},
		models.TeamStats{AttackStrength: 0.85, DefenseStrength: 0.71, ExpectedGoalsFor: 2.1},
	)
}

func TestImpliedProbabilitiesScenario(t *testing.T) {
	probs, err := ImpliedProbabilities(OddsTriple{Home: 3.2, Draw: 3.4, Away: 2.1}, DefaultOdds)
	require.NoError(t, err)

	rawSum := 1/3.2 + 1/3.4 + 1/2.1
	assert.InDelta(t, 1.0828, rawSum, 1e-4)
	assert.InDelta(t, (1/3.2)/rawSum, probs.Home, 1e-12)
	assert.InDelta(t, (1/3.4)/rawSum, probs.Draw, 1e-12)
	assert.InDelta(t, (1/2.1)/rawSum, probs.Away, 1e-12)
	assert.InDelta(t, 0.2886, probs.Home, 1e-3)
	assert.InDelta(t, 0.2716, probs.Draw, 1e-3)
	assert.InDelta(t, 0.4398, probs.Away, 1e-3)
	assert.InDelta(t, 1.0, probs.Sum(), sumTolerance)
}

func TestImpliedProbabilitiesSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		odds := OddsTriple{Home: randomOdds(rng), Draw: randomOdds(rng), Away: randomOdds(rng)}
		probs, err := ImpliedProbabilities(odds, DefaultOdds)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, probs.Sum(), sumTolerance, "odds %+v", odds)
		assert.True(t, probs.IsValid())
	}
}

func TestImpliedProbabilitiesDefaults(t *testing.T) {
	tests := []struct {
		name     string
		odds     OddsTriple
		expected OddsTriple
	}{
		{
			name:     "all missing",
			odds:     OddsTriple{},
			expected: OddsTriple{Home: 2.0, Draw: 3.0, Away: 2.0},
		},
		{
			name:     "draw missing",
			odds:     OddsTriple{Home: 1.8, Away: 4.5},
			expected: OddsTriple{Home: 1.8, Draw: 3.0, Away: 4.5},
		},
		{
			name:     "home missing",
			odds:     OddsTriple{Draw: 3.6, Away: 2.8},
			expected: OddsTriple{Home: 2.0, Draw: 3.6, Away: 2.8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImpliedProbabilities(tt.odds, DefaultOdds)
			require.NoError(t, err)
			want, err := ImpliedProbabilities(tt.expected, DefaultOdds)
			require.NoError(t, err)
			assert.InDelta(t, want.Home, got.Home, 1e-12)
			assert.InDelta(t, want.Draw, got.Draw, 1e-12)
			assert.InDelta(t, want.Away, got.Away, 1e-12)
		})
	}
}

func TestImpliedProbabilitiesInvalidOdds(t *testing.T) {
	probs, err := ImpliedProbabilities(OddsTriple{Home: -2, Draw: -3, Away: math.NaN()}, DefaultOdds)
	assert.ErrorIs(t, err, ErrInvalidOdds)
	assert.Equal(t, models.UniformTriple(), probs)

	// a single invalid outcome loses its mass but the rest still normalizes
	probs, err = ImpliedProbabilities(OddsTriple{Home: -2, Draw: 3, Away: 3}, DefaultOdds)
	require.NoError(t, err)
	assert.Equal(t, 0.0, probs.Home)
	assert.InDelta(t, 0.5, probs.Draw, 1e-12)
	assert.InDelta(t, 1.0, probs.Sum(), sumTolerance)
}

func TestConsensusImplied(t *testing.T) {
	odds := models.BookmakerOdds{
		"Hollywoodbets": {models.MarketHomeWin: 3.2, models.MarketDraw: 3.4, models.MarketAwayWin: 2.1},
		"Betway":        {models.MarketHomeWin: 3.1, models.MarketDraw: 3.5, models.MarketAwayWin: 2.15},
	}

	got, err := ConsensusImplied(odds, DefaultOdds)
	require.NoError(t, err)

	a, _ := ImpliedProbabilities(OddsTriple{Home: 3.2, Draw: 3.4, Away: 2.1}, DefaultOdds)
	b, _ := ImpliedProbabilities(OddsTriple{Home: 3.1, Draw: 3.5, Away: 2.15}, DefaultOdds)
	assert.InDelta(t, (a.Home+b.Home)/2, got.Home, 1e-12)
	assert.InDelta(t, (a.Draw+b.Draw)/2, got.Draw, 1e-12)
	assert.InDelta(t, (a.Away+b.Away)/2, got.Away, 1e-12)
	assert.InDelta(t, 1.0, got.Sum(), sumTolerance)
}

func TestConsensusImpliedWithoutQuotes(t *testing.T) {
	tests := []struct {
		name string
		odds models.BookmakerOdds
	}{
		{name: "no bookmakers", odds: nil},
		{name: "only btts", odds: models.BookmakerOdds{"Betway": {models.MarketBTTS: 1.7}}},
		{name: "unquotable prices", odds: models.BookmakerOdds{"Betway": {models.MarketHomeWin: 0, models.MarketDraw: 1.0, models.MarketAwayWin: -4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConsensusImplied(tt.odds, DefaultOdds)
			assert.ErrorIs(t, err, ErrNoQuotes)
			assert.Equal(t, models.UniformTriple(), got)
		})
	}
}

func TestStatisticalProbabilitiesScenario(t *testing.T) {
	probs := StatisticalProbabilities(sampleStats())

	homeStrength := 0.78 * 0.71
	awayStrength := 0.85 * 0.65
	total := homeStrength + awayStrength + 1
	assert.InDelta(t, 0.5538, homeStrength, 1e-9)
	assert.InDelta(t, 0.5525, awayStrength, 1e-9)
	assert.InDelta(t, 2.1063, total, 1e-9)

	assert.InDelta(t, homeStrength/total, probs.Home, 1e-12)
	assert.InDelta(t, awayStrength/total, probs.Away, 1e-12)
	assert.InDelta(t, 1/total, probs.Draw, 1e-12)
	assert.InDelta(t, 1.0, probs.Sum(), sumTolerance)
}

func TestStatisticalProbabilitiesSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		stats := models.NewMatchStats(
			models.TeamStats{AttackStrength: rng.Float64(), DefenseStrength: rng.Float64()},
			models.TeamStats{AttackStrength: rng.Float64(), DefenseStrength: rng.Float64()},
		)
		probs := StatisticalProbabilities(*stats)
		assert.InDelta(t, 1.0, probs.Sum(), sumTolerance)
		assert.Greater(t, probs.Draw, 0.0)
	}

	// boundary inputs
	for _, v := range []float64{0, 1} {
		stats := models.NewMatchStats(
			models.TeamStats{AttackStrength: v, DefenseStrength: v},
			models.TeamStats{AttackStrength: v, DefenseStrength: v},
		)
		assert.InDelta(t, 1.0, StatisticalProbabilities(*stats).Sum(), sumTolerance)
	}
}

func TestStatisticalProbabilitiesClampsInputs(t *testing.T) {
	stats := models.NewMatchStats(
		models.TeamStats{AttackStrength: 1.7, DefenseStrength: math.NaN()},
		models.TeamStats{AttackStrength: -0.2, DefenseStrength: 2},
	)
	probs := StatisticalProbabilities(*stats)

	// home = 1 x 1, away = 0 x 0
	assert.InDelta(t, 0.5, probs.Home, 1e-12)
	assert.InDelta(t, 0.0, probs.Away, 1e-12)
	assert.InDelta(t, 0.5, probs.Draw, 1e-12)
}

func TestBlendEndpoints(t *testing.T) {
	implied := models.ProbabilityTriple{Home: 0.2886, Draw: 0.2716, Away: 0.4398}
	statistical := StatisticalProbabilities(sampleStats())

	assert.Equal(t, implied, Blend(implied, statistical, 0))
	assert.Equal(t, statistical, Blend(implied, statistical, 1))
}

func TestBlendIsConvex(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 500; i++ {
		implied, err := ImpliedProbabilities(OddsTriple{Home: randomOdds(rng), Draw: randomOdds(rng), Away: randomOdds(rng)}, DefaultOdds)
		require.NoError(t, err)
		statistical := StatisticalProbabilities(*models.NewMatchStats(
			models.TeamStats{AttackStrength: rng.Float64(), DefenseStrength: rng.Float64()},
			models.TeamStats{AttackStrength: rng.Float64(), DefenseStrength: rng.Float64()},
		))
		w := rng.Float64()

		blended := Blend(implied, statistical, w)
		assert.InDelta(t, w*statistical.Home+(1-w)*implied.Home, blended.Home, 1e-15)
		assert.InDelta(t, 1.0, blended.Sum(), sumTolerance)
	}
}

func TestBlendClampsWeight(t *testing.T) {
	implied := models.ProbabilityTriple{Home: 0.5, Draw: 0.3, Away: 0.2}
	statistical := models.ProbabilityTriple{Home: 0.2, Draw: 0.3, Away: 0.5}

	assert.Equal(t, statistical, Blend(implied, statistical, 1.5))
	assert.Equal(t, implied, Blend(implied, statistical, -0.5))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		probs    models.ProbabilityTriple
		expected models.Outcome
	}{
		{name: "home favourite", probs: models.ProbabilityTriple{Home: 0.5, Draw: 0.3, Away: 0.2}, expected: models.OutcomeHome},
		{name: "away favourite", probs: models.ProbabilityTriple{Home: 0.2, Draw: 0.3, Away: 0.5}, expected: models.OutcomeAway},
		{name: "draw favourite", probs: models.ProbabilityTriple{Home: 0.3, Draw: 0.4, Away: 0.3}, expected: models.OutcomeDraw},
		{name: "home away tie goes home", probs: models.ProbabilityTriple{Home: 0.4, Draw: 0.2, Away: 0.4}, expected: models.OutcomeHome},
		{name: "home draw tie goes home", probs: models.ProbabilityTriple{Home: 0.4, Draw: 0.4, Away: 0.2}, expected: models.OutcomeHome},
		{name: "away draw tie goes away", probs: models.ProbabilityTriple{Home: 0.2, Draw: 0.4, Away: 0.4}, expected: models.OutcomeAway},
		{name: "three way tie goes home", probs: models.UniformTriple(), expected: models.OutcomeHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.probs))
		})
	}
}

func TestBTTSProbability(t *testing.T) {
	stats := sampleStats()
	assert.InDelta(t, (0.78*0.71+0.85*0.65)/2, BTTSProbability(&stats), 1e-12)
	assert.Equal(t, 0.5, BTTSProbability(nil))
}

func TestDetectValueBets(t *testing.T) {
	odds := models.BookmakerOdds{
		"Hollywoodbets": {models.MarketHomeWin: 3.2, models.MarketDraw: 3.4, models.MarketAwayWin: 2.1, models.MarketBTTS: 1.72},
		"Betway":        {models.MarketHomeWin: 3.0, models.MarketDraw: 3.6, models.MarketAwayWin: 2.2, models.MarketBTTS: 2.0},
	}
	probs := models.ProbabilityTriple{Home: 0.27, Draw: 0.39, Away: 0.34}

	bets := DetectValueBets(odds, probs, 0.55, 0)
	require.Len(t, bets, 2)

	// draw: 0.39 x 3.6 = 1.404, btts: 0.55 x 2.0 = 1.1
	assert.Equal(t, models.MarketDraw, bets[0].Market)
	assert.Equal(t, "Betway", bets[0].Bookmaker)
	assert.Equal(t, 3.6, bets[0].Odds)
	assert.InDelta(t, 40.4, bets[0].ExpectedValue, 1e-9)
	assert.Equal(t, "Draw", bets[0].MarketName)

	assert.Equal(t, models.MarketBTTS, bets[1].Market)
	assert.Equal(t, "Betway", bets[1].Bookmaker)
	assert.InDelta(t, 10.0, bets[1].ExpectedValue, 1e-9)
}

func TestDetectValueBetsNeverEmitsWithoutEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		odds := models.BookmakerOdds{
			"A": {models.MarketHomeWin: randomOdds(rng), models.MarketDraw: randomOdds(rng), models.MarketAwayWin: randomOdds(rng), models.MarketBTTS: randomOdds(rng)},
			"B": {models.MarketHomeWin: randomOdds(rng), models.MarketBTTS: randomOdds(rng)},
		}
		probs, _ := (models.ProbabilityTriple{Home: rng.Float64(), Draw: rng.Float64(), Away: rng.Float64()}).Normalize()
		btts := rng.Float64()

		bets := DetectValueBets(odds, probs, btts, 0)
		for j, bet := range bets {
			assert.Greater(t, bet.Probability*bet.Odds, 1.0)
			assert.InDelta(t, (bet.Probability*bet.Odds-1)*100, bet.ExpectedValue, 1e-9)
			if j > 0 {
				assert.GreaterOrEqual(t, bets[j-1].ExpectedValue, bet.ExpectedValue)
			}
		}
	}
}

func TestDetectValueBetsSkipsMissingMarkets(t *testing.T) {
	odds := models.BookmakerOdds{
		"Betway": {models.MarketDraw: 4.0, models.MarketHomeWin: 1.0},
	}
	probs := models.ProbabilityTriple{Home: 0.9, Draw: 0.05, Away: 0.05}

	assert.Empty(t, DetectValueBets(odds, probs, 0.99, 0))
}

func TestDetectValueBetsEdgeBoundary(t *testing.T) {
	// exactly break-even is not value
	odds := models.BookmakerOdds{"Betway": {models.MarketHomeWin: 2.0}}
	probs := models.ProbabilityTriple{Home: 0.5, Draw: 0.25, Away: 0.25}

	assert.Empty(t, DetectValueBets(odds, probs, 0, 0))
}

func TestDetectValueBetsMinExpectedValue(t *testing.T) {
	odds := models.BookmakerOdds{"Betway": {models.MarketHomeWin: 2.1, models.MarketAwayWin: 5.0}}
	probs := models.ProbabilityTriple{Home: 0.5, Draw: 0.25, Away: 0.25}

	// home EV 5%, away EV 25%
	bets := DetectValueBets(odds, probs, 0, 10)
	require.Len(t, bets, 1)
	assert.Equal(t, models.MarketAwayWin, bets[0].Market)
}

func TestDetectValueBetsBookmakerTie(t *testing.T) {
	odds := models.BookmakerOdds{
		"Zebrabet": {models.MarketDraw: 4.0},
		"Alphabet": {models.MarketDraw: 4.0},
	}
	probs := models.ProbabilityTriple{Home: 0.3, Draw: 0.4, Away: 0.3}

	bets := DetectValueBets(odds, probs, 0, 0)
	require.Len(t, bets, 1)
	assert.Equal(t, "Alphabet", bets[0].Bookmaker)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name       string
		hasStats   bool
		bookmakers int
		expected   float64
	}{
		{name: "nothing", hasStats: false, bookmakers: 0, expected: 0.5},
		{name: "one bookmaker", hasStats: false, bookmakers: 1, expected: 0.5},
		{name: "two bookmakers", hasStats: false, bookmakers: 2, expected: 0.7},
		{name: "stats only", hasStats: true, bookmakers: 1, expected: 0.8},
		{name: "everything is capped", hasStats: true, bookmakers: 3, expected: 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Confidence(tt.hasStats, tt.bookmakers), 1e-12)
		})
	}
}

func TestDataQuality(t *testing.T) {
	stats := sampleStats()
	withEverything := &models.Match{
		Odds:  models.BookmakerOdds{"Betway": {models.MarketHomeWin: 2.0}},
		Stats: &stats,
	}
	assert.Equal(t, 100, DataQuality(withEverything, 0.95))
	assert.Equal(t, 80, DataQuality(withEverything, 0.7))
	assert.Equal(t, 50, DataQuality(&models.Match{Odds: withEverything.Odds}, 0.5))
	assert.Equal(t, 0, DataQuality(&models.Match{}, 0.5))
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name       string
		probs      models.ProbabilityTriple
		confidence float64
		expected   []string
	}{
		{name: "confident home", probs: models.ProbabilityTriple{Home: 0.55, Draw: 0.25, Away: 0.2}, confidence: 0.95, expected: []string{"Home Win", "Both Teams to Score"}},
		{name: "confident away", probs: models.ProbabilityTriple{Home: 0.2, Draw: 0.25, Away: 0.55}, confidence: 0.8, expected: []string{"Away Win", "Both Teams to Score"}},
		{name: "no favourite", probs: models.UniformTriple(), confidence: 0.95, expected: []string{"Both Teams to Score"}},
		{name: "base confidence", probs: models.ProbabilityTriple{Home: 0.6, Draw: 0.2, Away: 0.2}, confidence: 0.5, expected: []string{"Wait for more data"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Recommendations(tt.probs, tt.confidence))
		})
	}
}

func TestSummarize(t *testing.T) {
	matches := []models.MatchPrediction{
		{Prediction: models.Prediction{DataQuality: 100, ValueBets: []models.ValueBet{{ExpectedValue: 30}, {ExpectedValue: 10}}}},
		{Prediction: models.Prediction{DataQuality: 50}},
	}

	summary := Summarize(matches)
	assert.Equal(t, 2, summary.TotalMatches)
	assert.Equal(t, 2, summary.ValueBetsFound)
	assert.Equal(t, 2, summary.ProfitableBets)
	assert.InDelta(t, 20.0, summary.AvgExpectedValue, 1e-12)
	assert.InDelta(t, 75.0, summary.AvgDataQuality, 1e-12)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, models.Summary{}, summary)
	assert.False(t, math.IsNaN(summary.AvgDataQuality))
}

package score

import (
	"testing"

	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEmptyMessage(t *testing.T) {
	d := NewDetector(0)
	result := d.Score("", nil)

	assert.False(t, result.IsScam)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, "Empty message", result.Reason)
	assert.Equal(t, core.CategoryGeneralScam, result.Category)
}

func TestScoreBenignMessage(t *testing.T) {
	d := NewDetector(0)
	result := d.Score("see you at dinner tonight", nil)

	assert.False(t, result.IsScam)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, "No scam indicators", result.Reason)
}

func TestScoreSingleCategoryBelowThreshold(t *testing.T) {
	d := NewDetector(0)
	result := d.Score("please reply urgent", nil)

	assert.False(t, result.IsScam)
	assert.InDelta(t, 0.20, result.Score, 1e-9)
	assert.Contains(t, result.Reason, "Urgent language")
}

func TestScoreReachesThreshold(t *testing.T) {
	d := NewDetector(0)
	// Urgency (0.20) plus financial keywords (0.20) lands exactly on the
	// default threshold
	result := d.Score("urgent payment needed", nil)

	assert.True(t, result.IsScam)
	assert.InDelta(t, 0.40, result.Score, 1e-9)
	assert.Equal(t, core.CategoryFinancialFraud, result.Category)
}

func TestScoreCategoryWeightCountsOnce(t *testing.T) {
	d := NewDetector(0)
	// Three urgency terms still contribute the category weight once
	result := d.Score("urgent, hurry, act fast", nil)

	assert.InDelta(t, 0.20, result.Score, 1e-9)
	assert.Contains(t, result.Reason, "Urgent language (3 keywords)")
}

func TestScoreLiteralPatternBonus(t *testing.T) {
	d := NewDetector(0)
	result := d.Score("your account has been blocked", nil)

	// Threat keywords (0.25) plus the literal blocked-account pattern (0.30)
	assert.True(t, result.IsScam)
	assert.InDelta(t, 0.55, result.Score, 1e-9)
	assert.Contains(t, result.Reason, "Threatening language")
	assert.Contains(t, result.Reason, "Scam pattern matched")
	assert.Equal(t, core.CategoryThreatBasedScam, result.Category)
}

func TestScoreClampsAtOne(t *testing.T) {
	d := NewDetector(0)
	result := d.Score(
		"urgent! your bank account has been blocked, share your otp and cvv now, "+
			"congratulations winner click here to verify your account and claim rs. 50000",
		nil)

	assert.True(t, result.IsScam)
	assert.Equal(t, 1.0, result.Score)
}

func TestScoreMonotonicInIndicators(t *testing.T) {
	d := NewDetector(0)

	weak := d.Score("urgent", nil)
	strong := d.Score("urgent otp blocked", nil)
	assert.Greater(t, strong.Score, weak.Score)
}

func TestCategoryPriority(t *testing.T) {
	d := NewDetector(0)

	tests := []struct {
		text     string
		category core.ScamCategory
	}{
		// Prize language outranks everything else
		{"congratulations, share your otp to claim", core.CategoryPrizeScam},
		// Credential requests outrank threats
		{"your account is blocked, tell me your cvv", core.CategoryCredentialTheft},
		{"account blocked, pay the fine", core.CategoryThreatBasedScam},
		{"transfer money to this upi", core.CategoryFinancialFraud},
		{"urgent do it right now", core.CategoryGeneralScam},
	}

	for _, tc := range tests {
		result := d.Score(tc.text, nil)
		assert.Equal(t, tc.category, result.Category, "text: %q", tc.text)
	}
}

func TestCustomThreshold(t *testing.T) {
	strict := NewDetector(0.9)
	result := strict.Score("urgent payment needed", nil)
	assert.False(t, result.IsScam)

	loose := NewDetector(0.1)
	result = loose.Score("urgent payment needed", nil)
	assert.True(t, result.IsScam)
}

func TestZeroThresholdFallsBackToDefault(t *testing.T) {
	d := NewDetector(0)
	require.Equal(t, DefaultThreshold, d.threshold)

	d = NewDetector(-1)
	require.Equal(t, DefaultThreshold, d.threshold)
}

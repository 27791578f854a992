package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ValueScope/internal/model"
)

func TestNarrate_BullishWithTriggers(t *testing.T) {
	got := Narrate(model.SentimentBullish, []string{"record profit", "buyback"}, "", nil)
	assert.Contains(t, got, "positive momentum")
	assert.Contains(t, got, "Record Profit, Buyback")
}

func TestNarrate_BearishWithTriggers(t *testing.T) {
	got := Narrate(model.SentimentBearish, []string{"net loss"}, "", nil)
	assert.Contains(t, got, "raises caution")
	assert.Contains(t, got, "Net Loss")
}

func TestNarrate_NeutralWithMixedEvidence(t *testing.T) {
	got := Narrate(model.SentimentNeutral, []string{"growth", "losses"}, "", nil)
	assert.Contains(t, got, "mixed signals")
	assert.Contains(t, got, "Growth, Losses")
}

func TestNarrate_NeutralWithoutEvidence(t *testing.T) {
	got := Narrate(model.SentimentNeutral, nil, "", nil)
	assert.Contains(t, got, "neutral")
	assert.NotContains(t, got, "mixed signals")
}

func TestNarrate_TriggerCap(t *testing.T) {
	evidence := []string{"one", "two", "three", "four", "five", "six"}
	got := Narrate(model.SentimentBullish, evidence, "", nil)
	assert.Contains(t, got, "Four")
	assert.NotContains(t, got, "Five")
}

func TestNarrate_FinancialLineOnlyPresentFields(t *testing.T) {
	f := &model.FinancialSnapshot{
		RevenueCr:     model.Float(1234),
		RevenueGrowth: model.Float(12.34),
		PE:            model.Float(25.67),
	}
	got := Narrate(model.SentimentBullish, []string{"growth"}, "", f)
	assert.Contains(t, got, "Latest financials:")
	assert.Contains(t, got, "revenue ₹1,234 Cr (+12.3% YoY)")
	assert.Contains(t, got, "P/E 25.7")
	assert.NotContains(t, got, "net profit")
	assert.NotContains(t, got, "market cap")
}

func TestNarrate_NilFinancials(t *testing.T) {
	got := Narrate(model.SentimentBearish, []string{"fraud"}, "", nil)
	assert.NotContains(t, got, "Latest financials")
}

func TestNarrate_Deterministic(t *testing.T) {
	f := &model.FinancialSnapshot{NetProfitCr: model.Float(500)}
	a := Narrate(model.SentimentNeutral, []string{"debt"}, "headline", f)
	b := Narrate(model.SentimentNeutral, []string{"debt"}, "headline", f)
	assert.Equal(t, a, b)
}

func TestFormatCrore(t *testing.T) {
	tests := []struct {
		cr   float64
		want string
	}{
		{0, "N/A"},
		{950, "₹950 Cr"},
		{12345, "₹12,345 Cr"},
		{250000, "₹2.50 L Cr"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCrore(tt.cr))
	}
}

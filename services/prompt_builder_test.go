package services

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aye5788/VOLAI/models"
)

func summaryRow(ticker string, price float64) models.SummaryRecord {
	p := decimal.NewFromFloat(price)
	return models.SummaryRecord{
		Ticker:     ticker,
		TradeDate:  "2026-08-26",
		StockPrice: &p,
		IV30d:      0.2815,
	}
}

func TestBuildPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	summaries := []models.SummaryRecord{summaryRow("AAPL", 245.00)}
	atm := []models.StrikeRecord{
		{
			Expiration: time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
			Strike:     decimal.NewFromInt(240),
			CallMidIV:  0.31,
			PutMidIV:   0.29,
			Delta:      0.52,
			Gamma:      0.04,
			Theta:      -0.11,
			Vega:       0.23,
		},
	}
	cores := []models.CoreRecord{
		{Ticker: "AAPL", TradeDate: "2026-08-26", Contango: 0.2915, Slope: 2.327968, Deriv: 0.0651},
	}

	prompt := pb.Build("AAPL", validPrice(245.00), summaries, atm, cores)

	// Role framing and closing instructions.
	assert.Contains(t, prompt, "expert options trader")
	assert.Contains(t, prompt, "AAPL")
	assert.Contains(t, prompt, "diagonal spread strategy")
	assert.Contains(t, prompt, "current price of 245.00")

	// Rendered table values survive serialization.
	assert.Contains(t, prompt, "2026-09-18")
	assert.Contains(t, prompt, "240.00")
	assert.Contains(t, prompt, "0.2915")
	assert.Contains(t, prompt, "2.327968")
}

func TestBuildPromptSectionOrder(t *testing.T) {
	pb := NewPromptBuilder()
	prompt := pb.Build("SPY", validPrice(500), []models.SummaryRecord{summaryRow("SPY", 500)}, nil, nil)

	iSummaries := indexOf(t, prompt, "1) Summaries Data:")
	iATM := indexOf(t, prompt, "2) ATM Options")
	iCores := indexOf(t, prompt, "3) Core Data:")
	assert.Less(t, iSummaries, iATM)
	assert.Less(t, iATM, iCores)
}

func TestBuildPromptPlaceholders(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.Build("TSLA", validPrice(300), []models.SummaryRecord{summaryRow("TSLA", 300)}, nil, nil)

	assert.Contains(t, prompt, "No ATM data")
	assert.Contains(t, prompt, "No Core Data")
}

func TestBuildPromptAbsentPrice(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.Build("NVDA", decimal.NullDecimal{},
		[]models.SummaryRecord{{Ticker: "NVDA", TradeDate: "2026-08-26"}}, nil, nil)

	assert.Contains(t, prompt, "current price of n/a")
}

func TestBuildPromptDeterministic(t *testing.T) {
	pb := NewPromptBuilder()
	summaries := []models.SummaryRecord{summaryRow("AAPL", 245.00)}

	first := pb.Build("AAPL", validPrice(245.00), summaries, nil, nil)
	second := pb.Build("AAPL", validPrice(245.00), summaries, nil, nil)

	assert.Equal(t, first, second)
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "missing %q", needle)
	return idx
}

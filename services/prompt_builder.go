package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/aye5788/VOLAI/models"
)

// Placeholders substituted into the prompt when a table is empty.
const (
	noATMData  = "No ATM data"
	noCoreData = "No Core Data"
)

// PromptBuilder serializes the fetched record sets into the fixed-structure
// narrative prompt consumed by the interpretation service.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build assembles the analysis prompt for a ticker: role framing, the three
// rendered tables, and the closing instruction block asking for
// ticker-specific numeric analysis.
func (pb *PromptBuilder) Build(ticker string, price decimal.NullDecimal,
	summaries []models.SummaryRecord, atm []models.StrikeRecord, cores []models.CoreRecord) string {

	priceText := "n/a"
	if price.Valid {
		priceText = price.Decimal.StringFixed(2)
	}

	atmText := noATMData
	if len(atm) > 0 {
		atmText = renderATMTable(atm)
	}
	coresText := noCoreData
	if len(cores) > 0 {
		coresText = renderCoresTable(cores)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert options trader. Below is specific ORATS data for %s:\n\n", ticker)
	fmt.Fprintf(&b, "1) Summaries Data:\n%s\n\n", renderSummariesTable(summaries))
	fmt.Fprintf(&b, "2) ATM Options for the Next Two Months:\n%s\n\n", atmText)
	fmt.Fprintf(&b, "3) Core Data:\n%s\n\n", coresText)
	fmt.Fprintf(&b, "Based on these specific numbers, please provide a detailed interpretation. "+
		"Instead of general educational remarks, analyze what these exact values indicate for %s's "+
		"diagonal spread strategy. For example, discuss:\n", ticker)
	fmt.Fprintf(&b, "- What does the current price of %s relative to the selected ATM strikes imply?\n", priceText)
	b.WriteString("- How do the specific implied volatility numbers (callMidIv and putMidIv) and Greeks " +
		"(delta, gamma, theta, vega) influence the strategy?\n")
	b.WriteString("- What do the core data values such as contango, slope, and deriv tell us about the " +
		"term structure and skew?\n")
	b.WriteString("- Provide actionable insights based on these exact output values, including potential " +
		"trade adjustments or strategy recommendations.\n\n")
	b.WriteString("Please be as specific as possible in your analysis using the provided data.")

	return b.String()
}

func newTextTable(out *strings.Builder, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	return table
}

func renderSummariesTable(summaries []models.SummaryRecord) string {
	out := &strings.Builder{}
	table := newTextTable(out, []string{
		"ticker", "tradeDate", "stockPrice", "annActDiv", "iv30d", "iv60d", "iv90d", "orFcst20d",
	})
	for _, rec := range summaries {
		priceCell := "n/a"
		if rec.StockPrice != nil {
			priceCell = rec.StockPrice.StringFixed(2)
		}
		table.Append([]string{
			rec.Ticker,
			rec.TradeDate,
			priceCell,
			formatFloat(rec.AnnActDiv),
			formatFloat(rec.IV30d),
			formatFloat(rec.IV60d),
			formatFloat(rec.IV90d),
			formatFloat(rec.OrFcst20d),
		})
	}
	table.Render()
	return out.String()
}

func renderATMTable(atm []models.StrikeRecord) string {
	out := &strings.Builder{}
	table := newTextTable(out, []string{
		"expiration", "strike", "callMidIv", "putMidIv", "delta", "gamma", "theta", "vega",
	})
	for _, rec := range atm {
		table.Append([]string{
			rec.ExpirationDay(),
			rec.Strike.StringFixed(2),
			formatFloat(rec.CallMidIV),
			formatFloat(rec.PutMidIV),
			formatFloat(rec.Delta),
			formatFloat(rec.Gamma),
			formatFloat(rec.Theta),
			formatFloat(rec.Vega),
		})
	}
	table.Render()
	return out.String()
}

func renderCoresTable(cores []models.CoreRecord) string {
	out := &strings.Builder{}
	table := newTextTable(out, []string{
		"ticker", "tradeDate", "priorCls", "pxAtmIv", "contango",
		"atmIvM1", "dtExM1", "atmIvM2", "dtExM2", "slope", "deriv",
	})
	for _, rec := range cores {
		table.Append([]string{
			rec.Ticker,
			rec.TradeDate,
			formatFloat(rec.PriorCls),
			formatFloat(rec.PxAtmIV),
			formatFloat(rec.Contango),
			formatFloat(rec.AtmIvM1),
			formatFloat(rec.DtExM1),
			formatFloat(rec.AtmIvM2),
			formatFloat(rec.DtExM2),
			formatFloat(rec.Slope),
			formatFloat(rec.Deriv),
		})
	}
	table.Render()
	return out.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

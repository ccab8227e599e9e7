package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/aye5788/VOLAI/interfaces"
	"github.com/aye5788/VOLAI/models"
	"github.com/aye5788/VOLAI/services"
)

// AnalysisController handles ticker analysis HTTP requests.
type AnalysisController struct {
	marketData     interfaces.MarketDataService
	interpretation interfaces.InterpretationService
	chainAnalysis  *services.ChainAnalysisService
	promptBuilder  *services.PromptBuilder
	logger         *logrus.Logger

	// now is swappable so tests can pin the near-term window boundary.
	now func() time.Time
}

// NewAnalysisController creates a new analysis controller.
func NewAnalysisController(marketData interfaces.MarketDataService, interpretation interfaces.InterpretationService) *AnalysisController {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &AnalysisController{
		marketData:     marketData,
		interpretation: interpretation,
		chainAnalysis:  services.NewChainAnalysisService(),
		promptBuilder:  services.NewPromptBuilder(),
		logger:         logger,
		now:            time.Now,
	}
}

// HandleAnalyzeTicker runs the full analysis pipeline for one ticker:
// summaries, near-term ATM strike selection, core analytics, and the AI
// interpretation of the combined data.
// GET /api/v1/analysis/:ticker
func (ac *AnalysisController) HandleAnalyzeTicker(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Ticker is required",
		})
		return
	}

	ctx := c.Request.Context()

	// Quote summaries are mandatory: without them there is no current
	// price and nothing downstream is attempted.
	summaries, err := ac.marketData.GetSummaries(ctx, ticker)
	if err != nil {
		ac.logger.WithError(err).WithField("ticker", ticker).Error("Summaries fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch summary data",
			"details": err.Error(),
		})
		return
	}
	if len(summaries) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "No summary data returned. Check your ticker or API token.",
		})
		return
	}

	result := models.TickerAnalysis{
		Ticker:       ticker,
		Summaries:    summaries,
		CurrentPrice: extractCurrentPrice(summaries),
		GeneratedAt:  ac.now().UTC(),
	}
	if !result.CurrentPrice.Valid {
		result.Warnings = append(result.Warnings, "No 'stockPrice' in summaries; ATM selection skipped")
	}

	// Strikes and cores degrade to empty tables; only the summaries
	// query above is fatal.
	strikes, err := ac.marketData.GetStrikes(ctx, ticker)
	if err != nil {
		ac.logger.WithError(err).WithField("ticker", ticker).Warn("Strikes fetch failed")
		result.Warnings = append(result.Warnings, "Failed to fetch strikes data")
		strikes = nil
	}

	normalized, err := ac.chainAnalysis.NormalizeExpirations(strikes)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	windowed := ac.chainAnalysis.FilterNearTerm(normalized, ac.now().UTC())
	result.ATMOptions = ac.chainAnalysis.SelectNearestATM(windowed, result.CurrentPrice)

	cores, err := ac.marketData.GetCores(ctx, ticker)
	if err != nil {
		ac.logger.WithError(err).WithField("ticker", ticker).Warn("Cores fetch failed")
		result.Warnings = append(result.Warnings, "Failed to fetch core data")
		cores = nil
	}
	result.Cores = cores

	prompt := ac.promptBuilder.Build(ticker, result.CurrentPrice, summaries, result.ATMOptions, cores)

	interpretation, err := ac.interpretation.Interpret(ctx, prompt)
	if err != nil {
		ac.logger.WithError(err).WithField("ticker", ticker).Error("Interpretation failed")
		result.InterpretationError = "Error with OpenAI API: " + err.Error()
	} else {
		result.Interpretation = interpretation
	}

	c.JSON(http.StatusOK, result)
}

// extractCurrentPrice pulls the stock price from the first summary row.
// A missing or non-positive price counts as absent.
func extractCurrentPrice(summaries []models.SummaryRecord) decimal.NullDecimal {
	if len(summaries) == 0 || summaries[0].StockPrice == nil || !summaries[0].StockPrice.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *summaries[0].StockPrice, Valid: true}
}

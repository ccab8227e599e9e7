package interfaces

import (
	"context"

	"github.com/aye5788/VOLAI/models"
)

// MarketDataService defines the interface for options market data queries.
// The three queries are independent; each returns a possibly-empty slice.
type MarketDataService interface {
	GetSummaries(ctx context.Context, ticker string) ([]models.SummaryRecord, error)
	GetStrikes(ctx context.Context, ticker string) ([]models.StrikeRecord, error)
	GetCores(ctx context.Context, ticker string) ([]models.CoreRecord, error)
}

// InterpretationService defines the interface for AI-generated trading
// commentary on an assembled market-data prompt.
type InterpretationService interface {
	Interpret(ctx context.Context, prompt string) (string, error)
}

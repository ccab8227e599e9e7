package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataEnvelope is the common shape of ORATS datav2 responses:
// a single "data" array of flat records.
type DataEnvelope[T any] struct {
	Data []T `json:"data"`
}

// SummaryRecord represents one row of the ORATS summaries endpoint.
// Only StockPrice is consumed by downstream logic; the remaining fields
// are carried for display and for the narrative prompt.
type SummaryRecord struct {
	Ticker     string           `json:"ticker"`
	TradeDate  string           `json:"tradeDate"`
	StockPrice *decimal.Decimal `json:"stockPrice"`
	AnnActDiv  float64          `json:"annActDiv"`
	IV30d      float64          `json:"iv30d"`
	IV60d      float64          `json:"iv60d"`
	IV90d      float64          `json:"iv90d"`
	OrFcst20d  float64          `json:"orFcst20d"`
	UpdatedAt  string           `json:"updatedAt"`
}

// StrikeRecord represents one row of the ORATS strikes endpoint.
// The provider has shipped the expiration under both "expiration" and
// "expirDate"; both raw fields are decoded and normalized into
// Expiration (see services.NormalizeExpirations).
type StrikeRecord struct {
	Ticker        string          `json:"ticker"`
	ExpirationRaw string          `json:"expiration,omitempty"`
	ExpirDateRaw  string          `json:"expirDate,omitempty"`
	Strike        decimal.Decimal `json:"strike"`
	CallMidIV     float64         `json:"callMidIv"`
	PutMidIV      float64         `json:"putMidIv"`
	Delta         float64         `json:"delta"`
	Gamma         float64         `json:"gamma"`
	Theta         float64         `json:"theta"`
	Vega          float64         `json:"vega"`

	// Expiration is the normalized expiration date (UTC midnight).
	// Zero until normalization has run.
	Expiration time.Time `json:"expiration_date"`
}

// ExpirationDay returns the normalized expiration formatted as YYYY-MM-DD.
func (r StrikeRecord) ExpirationDay() string {
	return r.Expiration.Format("2006-01-02")
}

// CoreRecord represents one row of the ORATS cores endpoint, restricted
// to the fixed field list requested by the market data client. The
// term-structure values are consumed opaquely (rendered, not computed on).
type CoreRecord struct {
	Ticker      string  `json:"ticker"`
	TradeDate   string  `json:"tradeDate"`
	PriorCls    float64 `json:"priorCls"`
	PxAtmIV     float64 `json:"pxAtmIv"`
	Contango    float64 `json:"contango"`
	AtmIvM1     float64 `json:"atmIvM1"`
	AtmFitIvM1  float64 `json:"atmFitIvM1"`
	AtmFcstIvM1 float64 `json:"atmFcstIvM1"`
	DtExM1      float64 `json:"dtExM1"`
	AtmIvM2     float64 `json:"atmIvM2"`
	AtmFitIvM2  float64 `json:"atmFitIvM2"`
	AtmFcstIvM2 float64 `json:"atmFcstIvM2"`
	DtExM2      float64 `json:"dtExM2"`
	Slope       float64 `json:"slope"`
	Deriv       float64 `json:"deriv"`
}

// TickerAnalysis is the full result of one analysis run for a ticker.
// All data is request-scoped; nothing outlives the run.
type TickerAnalysis struct {
	Ticker              string              `json:"ticker"`
	CurrentPrice        decimal.NullDecimal `json:"current_price"`
	Summaries           []SummaryRecord     `json:"summaries"`
	ATMOptions          []StrikeRecord      `json:"atm_options"`
	Cores               []CoreRecord        `json:"cores"`
	Interpretation      string              `json:"interpretation,omitempty"`
	InterpretationError string              `json:"interpretation_error,omitempty"`
	Warnings            []string            `json:"warnings,omitempty"`
	GeneratedAt         time.Time           `json:"generated_at"`
}

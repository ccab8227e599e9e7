package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/aye5788/VOLAI/models"
)

// nearTermDays is the horizon of the near-term expiration window.
const nearTermDays = 60

// atmBandFraction is the tight ATM candidate band around the current price.
var atmBandFraction = decimal.NewFromFloat(0.05)

// expirationLayouts are the date formats ORATS has shipped, tried in order.
var expirationLayouts = []string{"2006-01-02", time.RFC3339}

// ChainAnalysisService shapes a raw strikes chain into the per-expiration
// nearest-ATM selection.
type ChainAnalysisService struct {
	logger *logrus.Logger
}

// NewChainAnalysisService creates a new chain analysis service.
func NewChainAnalysisService() *ChainAnalysisService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &ChainAnalysisService{logger: logger}
}

// NormalizeExpirations resolves each record's expiration date, preferring
// the "expiration" column and falling back to "expirDate". Records where
// neither parses are dropped. If a non-empty chain yields no usable
// expirations at all, an error is returned alongside the empty result so
// the caller can surface the schema problem instead of silently showing
// nothing.
func (s *ChainAnalysisService) NormalizeExpirations(strikes []models.StrikeRecord) ([]models.StrikeRecord, error) {
	if len(strikes) == 0 {
		return nil, nil
	}

	normalized := make([]models.StrikeRecord, 0, len(strikes))
	for _, rec := range strikes {
		exp, ok := parseExpiration(rec.ExpirationRaw)
		if !ok {
			exp, ok = parseExpiration(rec.ExpirDateRaw)
		}
		if !ok {
			continue
		}
		rec.Expiration = exp
		normalized = append(normalized, rec)
	}

	if len(normalized) == 0 {
		return nil, fmt.Errorf("strikes data missing 'expiration' or 'expirDate'")
	}

	return normalized, nil
}

// parseExpiration parses a raw expiration value to a UTC-midnight date.
func parseExpiration(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range expirationLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FilterNearTerm returns the subsequence of strikes expiring between today
// and today+60 days, both ends inclusive. The input is not mutated and
// relative order is preserved.
func (s *ChainAnalysisService) FilterNearTerm(strikes []models.StrikeRecord, today time.Time) []models.StrikeRecord {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, nearTermDays)

	windowed := make([]models.StrikeRecord, 0, len(strikes))
	for _, rec := range strikes {
		if rec.Expiration.Before(today) || rec.Expiration.After(horizon) {
			continue
		}
		windowed = append(windowed, rec)
	}
	return windowed
}

// SelectNearestATM selects, per expiration date, the single strike closest
// to the current price. Candidates are first restricted to strikes within
// 5% of the current price; if that band is empty the entire window is used
// instead, so a non-empty window always yields a selection. Ties go to the
// earlier record, and output groups appear in first-occurrence order.
func (s *ChainAnalysisService) SelectNearestATM(windowed []models.StrikeRecord, price decimal.NullDecimal) []models.StrikeRecord {
	if !price.Valid || len(windowed) == 0 {
		return nil
	}
	current := price.Decimal
	if !current.IsPositive() {
		return nil
	}

	band := current.Mul(atmBandFraction)
	candidates := make([]models.StrikeRecord, 0, len(windowed))
	for _, rec := range windowed {
		if rec.Strike.Sub(current).Abs().Cmp(band) <= 0 {
			candidates = append(candidates, rec)
		}
	}
	if len(candidates) == 0 {
		candidates = windowed
	}

	type nearest struct {
		index int
		dist  decimal.Decimal
	}

	order := make([]string, 0, len(candidates))
	best := make(map[string]nearest, len(candidates))
	for i, rec := range candidates {
		day := rec.ExpirationDay()
		dist := rec.Strike.Sub(current).Abs()
		prev, seen := best[day]
		if !seen {
			order = append(order, day)
			best[day] = nearest{index: i, dist: dist}
			continue
		}
		// Strictly closer only: equal distance keeps the first occurrence.
		if dist.LessThan(prev.dist) {
			best[day] = nearest{index: i, dist: dist}
		}
	}

	selected := make([]models.StrikeRecord, 0, len(order))
	for _, day := range order {
		selected = append(selected, candidates[best[day].index])
	}

	s.logger.WithFields(logrus.Fields{
		"window":     len(windowed),
		"candidates": len(candidates),
		"selected":   len(selected),
	}).Debug("Selected nearest-ATM strikes")

	return selected
}

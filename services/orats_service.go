package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aye5788/VOLAI/models"
)

// coreFields is the fixed field list requested from the cores endpoint.
const coreFields = "ticker,tradeDate,priorCls,pxAtmIv,contango,atmIvM1,atmFitIvM1,atmFcstIvM1,dtExM1," +
	"atmIvM2,atmFitIvM2,atmFcstIvM2,dtExM2,slope,deriv"

// OratsDataService fetches options market data from the ORATS datav2 API.
type OratsDataService struct {
	token   string
	baseURL string
	logger  *logrus.Logger
	client  *http.Client
}

// NewOratsDataService creates a new ORATS data service.
func NewOratsDataService(token string) *OratsDataService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &OratsDataService{
		token:   token,
		baseURL: "https://api.orats.io/datav2",
		logger:  logger,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (s *OratsDataService) SetBaseURL(baseURL string) {
	s.baseURL = strings.TrimRight(baseURL, "/")
}

// GetSummaries fetches the quote summary rows for a ticker.
func (s *OratsDataService) GetSummaries(ctx context.Context, ticker string) ([]models.SummaryRecord, error) {
	body, err := s.get(ctx, "summaries", ticker, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[models.SummaryRecord](s.logger, "summaries", body), nil
}

// GetStrikes fetches the option strikes chain for a ticker.
func (s *OratsDataService) GetStrikes(ctx context.Context, ticker string) ([]models.StrikeRecord, error) {
	body, err := s.get(ctx, "strikes", ticker, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[models.StrikeRecord](s.logger, "strikes", body), nil
}

// GetCores fetches the core analytics rows for a ticker, restricted to
// the fixed term-structure field list.
func (s *OratsDataService) GetCores(ctx context.Context, ticker string) ([]models.CoreRecord, error) {
	body, err := s.get(ctx, "cores", ticker, url.Values{"fields": {coreFields}})
	if err != nil {
		return nil, err
	}
	return decodeData[models.CoreRecord](s.logger, "cores", body), nil
}

// get performs one GET against an ORATS endpoint and returns the raw body.
// The token travels as a query parameter and is never logged.
func (s *OratsDataService) get(ctx context.Context, endpoint, ticker string, extra url.Values) ([]byte, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	params := url.Values{}
	params.Set("token", s.token)
	params.Set("ticker", ticker)
	for key, vals := range extra {
		for _, v := range vals {
			params.Add(key, v)
		}
	}

	reqURL := fmt.Sprintf("%s/%s?%s", s.baseURL, endpoint, params.Encode())

	s.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"ticker":   ticker,
	}).Debug("Fetching ORATS data")

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ORATS %s error %d: %s", endpoint, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	return body, nil
}

// decodeData unwraps the {"data": [...]} envelope. A body that cannot be
// decoded into records yields an empty slice rather than an error; callers
// decide whether emptiness is fatal.
func decodeData[T any](logger *logrus.Logger, endpoint string, body []byte) []T {
	var envelope models.DataEnvelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.WithError(err).WithField("endpoint", endpoint).Warn("Unparseable response, treating as empty")
		return nil
	}
	return envelope.Data
}

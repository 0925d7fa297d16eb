package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	m "cryptoforecast/data/models"
	c "cryptoforecast/service/api"
)

// public
const (
	BaseUrlDefault = "https://api.coingecko.com/api/v3"
)

// private
const (
	// default query parameters
	defaultCurrency = "usd"
	defaultDays     = 365
	defaultTimeout  = time.Second * 30

	// api request elements
	vsCurrency = "vs_currency"
	days       = "days"
)

type CoinGeckoClient struct {
	*c.Client
}

// UnexpectedStatusError is returned when the provider answers with anything but 200.
type UnexpectedStatusError struct {
	Symbol     string
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("error getting data for %s: status %d", e.Symbol, e.StatusCode)
}

type marketChartResponse struct {
	Prices []m.RawPrice `json:"prices"`
}

func GetClient(baseUrl string) (*CoinGeckoClient, error) {
	client, err := c.ClientFactory(baseUrl, defaultTimeout)
	if err != nil {
		return nil, err
	}
	return &CoinGeckoClient{client}, nil
}

// https://docs.coingecko.com/reference/coins-id-market-chart
func (cgc *CoinGeckoClient) GetMarketChart(ctx context.Context, asset m.Asset) ([]m.RawPrice, error) {
	if cgc == nil {
		panic("coingecko client has not been set.")
	}

	endpoint := buildMarketChartPath(asset.ProviderId)

	response, err := cgc.Connection.Request(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("error requesting market chart for %s: %w", asset.Symbol, err)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, &UnexpectedStatusError{Symbol: asset.Symbol, StatusCode: response.StatusCode()}
	}

	return parseMarketChart(response.Body())
}

func buildMarketChartPath(providerId string) *url.URL {
	endpoint := &url.URL{}
	endpoint.Path = fmt.Sprintf("coins/%s/market_chart", url.PathEscape(providerId))

	query := endpoint.Query()
	query.Set(vsCurrency, defaultCurrency)
	query.Set(days, fmt.Sprint(defaultDays))
	endpoint.RawQuery = query.Encode()

	return endpoint
}

func parseMarketChart(body []byte) ([]m.RawPrice, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %w", err)
	}

	if _, ok := raw["prices"]; !ok {
		return nil, fmt.Errorf("error parsing market chart, response has no prices field")
	}

	var res marketChartResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("error unmarshaling prices: %w", err)
	}

	return res.Prices, nil
}

package models

// Asset maps a ticker symbol to the identifier the market data provider uses for it.
type Asset struct {
	Symbol     string
	ProviderId string
}

// DefaultAssets are the coins tracked on every run.
func DefaultAssets() []Asset {
	return []Asset{
		{Symbol: "BTC", ProviderId: "bitcoin"},
		{Symbol: "ETH", ProviderId: "ethereum"},
		{Symbol: "ADA", ProviderId: "cardano"},
	}
}

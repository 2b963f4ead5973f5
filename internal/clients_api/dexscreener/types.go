package dexscreener

// Token identifies one side of a trading pair.
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Liquidity is the pool liquidity breakdown. The API omits the whole
// object for pairs without liquidity data.
type Liquidity struct {
	USD   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// Volume is the traded volume breakdown for a pair.
type Volume struct {
	H24  float64 `json:"h24"`
	Buy  float64 `json:"buy"`
	Sell float64 `json:"sell"`
}

// Pair is one tradable pair record returned by the search endpoint.
type Pair struct {
	ChainID     string     `json:"chainId"`
	DexID       string     `json:"dexId"`
	URL         string     `json:"url"`
	PairAddress string     `json:"pairAddress"`
	BaseToken   Token      `json:"baseToken"`
	QuoteToken  Token      `json:"quoteToken"`
	PriceUsd    string     `json:"priceUsd"`
	Fdv         float64    `json:"fdv"`
	Liquidity   *Liquidity `json:"liquidity"`
	Volume      Volume     `json:"volume"`
}

// SearchResponse is the body of /latest/dex/search.
type SearchResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	Pairs         []Pair `json:"pairs"`
}

// FeedToken is one token record from the latest-tokens feed.
type FeedToken struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	ChainID  string `json:"chainId"`
	DexID    string `json:"dexId"`
	PriceUsd string `json:"priceUsd"`
}

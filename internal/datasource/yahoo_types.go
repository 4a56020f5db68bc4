package datasource

// --- Yahoo Finance API response types ---

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta       yfChartMeta  `json:"meta"`
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfChartMeta struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

type yfIndicators struct {
	Quote []yfOHLCV `json:"quote"`
}

// All arrays are pointer slices: Yahoo emits null for halted/missing bars.
type yfOHLCV struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

type yfQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yfQuoteSummaryResult `json:"result"`
		Error  *yfError               `json:"error"`
	} `json:"quoteSummary"`
}

type yfQuoteSummaryResult struct {
	Price         *yfPrice         `json:"price"`
	SummaryDetail *yfSummaryDetail `json:"summaryDetail"`
}

type yfPrice struct {
	ShortName string     `json:"shortName"`
	LongName  string     `json:"longName"`
	MarketCap yfRawValue `json:"marketCap"`
}

// MaxSupply stays a pointer: Yahoo omits the field entirely for uncapped
// assets, and "absent" must remain distinct from "present and zero".
type yfSummaryDetail struct {
	Volume24Hr        yfRawValue  `json:"volume24Hr"`
	CirculatingSupply yfRawValue  `json:"circulatingSupply"`
	MaxSupply         *yfRawValue `json:"maxSupply"`
	FiftyTwoWeekHigh  yfRawValue  `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow   yfRawValue  `json:"fiftyTwoWeekLow"`
}

type yfRawValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type yfSearchResponse struct {
	News []yfSearchNews `json:"news"`
}

type yfSearchNews struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Link      string `json:"link"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

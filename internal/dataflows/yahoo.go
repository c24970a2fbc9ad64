package dataflows

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"

	"github.com/dyike/DealFlowGo/internal/models"
)

const quoteSummaryBaseURL = "https://query1.finance.yahoo.com/v10/finance"

// ExchangeNames maps Yahoo exchange codes and names to display-friendly
// names. Unrecognized values pass through unchanged. The table is a package
// var so deployments trading on uncovered exchanges can extend it.
var ExchangeNames = map[string]string{
	"NMS":      "NASDAQ",
	"NGM":      "NASDAQ",
	"NasdaqGS": "NASDAQ",
	"NasdaqGM": "NASDAQ",
	"NasdaqCM": "NASDAQ",
	"NYQ":      "NYSE",
	"NYSE":     "NYSE",
	"TOR":      "TSX",
	"TSX":      "TSX",
	"Toronto":  "TSX",
	"VAN":      "TSX-V",
	"LSE":      "LSE",
	"LON":      "LSE",
	"FRA":      "Frankfurt",
	"PAR":      "Euronext Paris",
	"HKG":      "HKEX",
	"JPX":      "Tokyo",
	"TYO":      "Tokyo",
	"ASX":      "ASX",
}

// CurrencySymbols maps ISO currency codes to display symbols. USD and CAD
// both use a bare dollar sign since TSX prices are understood to be CAD.
// Unrecognized codes fall back to "CODE " as a prefix.
var CurrencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"GBP": "£",
	"EUR": "€",
	"JPY": "¥",
	"HKD": "HK$",
	"AUD": "A$",
	"CHF": "CHF ",
}

// ExchangeDisplay resolves an exchange code through ExchangeNames.
func ExchangeDisplay(code string) string {
	if name, ok := ExchangeNames[code]; ok {
		return name
	}
	return code
}

// CurrencySymbol resolves a currency code through CurrencySymbols.
func CurrencySymbol(code string) string {
	if sym, ok := CurrencySymbols[code]; ok {
		return sym
	}
	return code + " "
}

// YahooClient fetches quotes, company profiles and price history from Yahoo
// Finance. Calls are attempted exactly once and never cached; a memo run
// wants live data.
type YahooClient struct {
	client *resty.Client
}

// NewYahooClient creates a new Yahoo Finance client.
func NewYahooClient(config *Config) *YahooClient {
	client := resty.New()
	client.SetBaseURL(quoteSummaryBaseURL)
	client.SetTimeout(time.Duration(config.HTTPTimeoutSeconds) * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; DealFlowGo/1.0)")

	return &YahooClient{client: client}
}

// GetSnapshot assembles the full market snapshot for a ticker: quote, one
// year of daily closes with the derived return, and the company profile.
// Quote or history failures fail the whole snapshot; a profile failure only
// leaves those fields unset.
func (yc *YahooClient) GetSnapshot(ticker string) (*models.MarketSnapshot, error) {
	q, err := equity.Get(ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", ticker, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}

	history, err := yc.getHistory(ticker, 365)
	if err != nil {
		return nil, err
	}

	snapshot := &models.MarketSnapshot{
		Ticker:         ticker,
		Exchange:       ExchangeDisplay(q.FullExchangeName),
		Currency:       q.CurrencyID,
		CurrencySymbol: CurrencySymbol(q.CurrencyID),
		History:        history,
	}

	if q.RegularMarketPrice > 0 {
		snapshot.Price = models.Float(q.RegularMarketPrice)
	}
	if q.MarketCap > 0 {
		snapshot.MarketCap = models.Float(float64(q.MarketCap))
	}
	if q.FiftyTwoWeekLow > 0 {
		snapshot.FiftyTwoWeekLow = models.Float(q.FiftyTwoWeekLow)
	}
	if q.FiftyTwoWeekHigh > 0 {
		snapshot.FiftyTwoWeekHigh = models.Float(q.FiftyTwoWeekHigh)
	}
	if q.TrailingPE > 0 {
		snapshot.PERatio = models.Float(q.TrailingPE)
	}
	if q.ForwardPE > 0 {
		snapshot.ForwardPE = models.Float(q.ForwardPE)
	}
	if q.TrailingAnnualDividendYield > 0 {
		snapshot.DividendYield = models.Float(normalizeYield(q.TrailingAnnualDividendYield))
	}
	if q.RegularMarketTime > 0 {
		t := time.Unix(int64(q.RegularMarketTime), 0)
		snapshot.LastTradeTime = &t
	}

	snapshot.YearReturn = deriveYearReturn(history)

	// Profile data is nice-to-have; leave the fields unset on failure.
	if profile, err := yc.getProfile(ticker); err == nil {
		snapshot.Sector = profile.Sector
		snapshot.Industry = profile.Industry
		snapshot.Employees = profile.Employees
		snapshot.Beta = profile.Beta
		snapshot.Revenue = profile.Revenue
		snapshot.ProfitMargin = profile.ProfitMargin
	}

	return snapshot, nil
}

// getHistory fetches daily closes for a rolling window, oldest first.
func (yc *YahooClient) getHistory(ticker string, days int) ([]models.PricePoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var history []models.PricePoint
	for iter.Next() {
		bar := iter.Bar()
		history = append(history, models.PricePoint{
			Date:  time.Unix(int64(bar.Timestamp), 0),
			Close: bar.Close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get historical data for %s: %w", ticker, err)
	}

	return history, nil
}

// deriveYearReturn computes the percentage return between the first and last
// closes. Fewer than two data points yields no return at all.
func deriveYearReturn(history []models.PricePoint) *float64 {
	if len(history) < 2 {
		return nil
	}

	first := history[0].Close
	last := history[len(history)-1].Close
	if first.IsZero() {
		return nil
	}

	ret := last.Sub(first).Div(first).Mul(decimal.NewFromInt(100))
	return models.Float(ret.InexactFloat64())
}

// companyProfile is the subset of the Yahoo quoteSummary modules the
// snapshot consumes.
type companyProfile struct {
	Sector       string
	Industry     string
	Employees    *int64
	Beta         *float64
	Revenue      *float64
	ProfitMargin *float64
}

// rawValue is Yahoo's {raw, fmt} number wrapper.
type rawValue struct {
	Raw float64 `json:"raw"`
}

// quoteSummaryResponse mirrors the quoteSummary envelope for the modules we
// request.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector            string `json:"sector"`
				Industry          string `json:"industry"`
				FullTimeEmployees int64  `json:"fullTimeEmployees"`
			} `json:"assetProfile"`
			SummaryDetail struct {
				Beta rawValue `json:"beta"`
			} `json:"summaryDetail"`
			FinancialData struct {
				TotalRevenue  rawValue `json:"totalRevenue"`
				ProfitMargins rawValue `json:"profitMargins"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// getProfile fetches sector, industry, headcount and the summary financial
// ratios finance-go does not expose.
func (yc *YahooClient) getProfile(ticker string) (*companyProfile, error) {
	resp, err := yc.client.R().
		SetQueryParam("modules", "assetProfile,summaryDetail,financialData").
		Get("/quoteSummary/" + ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", ticker, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var summary quoteSummaryResponse
	if err := json.Unmarshal(resp.Body(), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no profile data for %s", ticker)
	}

	result := summary.QuoteSummary.Result[0]
	profile := &companyProfile{
		Sector:   result.AssetProfile.Sector,
		Industry: result.AssetProfile.Industry,
	}
	if result.AssetProfile.FullTimeEmployees > 0 {
		profile.Employees = models.Int64(result.AssetProfile.FullTimeEmployees)
	}
	if result.SummaryDetail.Beta.Raw != 0 {
		profile.Beta = models.Float(result.SummaryDetail.Beta.Raw)
	}
	if result.FinancialData.TotalRevenue.Raw > 0 {
		profile.Revenue = models.Float(result.FinancialData.TotalRevenue.Raw)
	}
	if result.FinancialData.ProfitMargins.Raw != 0 {
		profile.ProfitMargin = models.Float(result.FinancialData.ProfitMargins.Raw)
	}

	return profile, nil
}

// normalizeYield folds percent-style yields (e.g. 1.56 meaning 1.56%) into
// fractional form so downstream formatting can always multiply by 100.
func normalizeYield(yield float64) float64 {
	if yield > 1 {
		return yield / 100
	}
	return yield
}

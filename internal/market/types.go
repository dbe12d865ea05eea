// Package market holds the pair-level data model shared by every venue
// adapter: symbols, market metadata, order book levels, and the snapshot
// produced per (venue, symbol) each tick.
package market

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxOrderBookDepth is the top-N levels retained per side (spec §3, N=20).
const MaxOrderBookDepth = 20

// Symbol is a normalized BASE/QUOTE pair, e.g. "BTC/USDT".
type Symbol string

// NewSymbol normalizes base/quote into canonical form and validates BASE≠QUOTE.
func NewSymbol(base, quote string) (Symbol, error) {
	b := strings.ToUpper(strings.TrimSpace(base))
	q := strings.ToUpper(strings.TrimSpace(quote))
	if b == "" || q == "" {
		return "", errEmptySymbolPart
	}
	if b == q {
		return "", errSameBaseQuote
	}
	return Symbol(b + "/" + q), nil
}

// Base returns the base asset of the symbol.
func (s Symbol) Base() string {
	parts := strings.SplitN(string(s), "/", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[0]
}

// Quote returns the quote asset of the symbol.
func (s Symbol) Quote() string {
	parts := strings.SplitN(string(s), "/", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// IsUSDTQuoted reports whether the symbol is quoted in USDT.
func (s Symbol) IsUSDTQuoted() bool {
	return strings.HasSuffix(string(s), "/USDT")
}

// MarketMeta is the per-venue, per-symbol metadata cached for the process
// lifetime once loadMarkets first succeeds (spec §3, §4.2).
type MarketMeta struct {
	Active         bool
	Spot           bool
	MakerFee       decimal.Decimal
	TakerFee       decimal.Decimal
	MinAmount      decimal.Decimal
	MaxAmount      decimal.Decimal
	MinPrice       decimal.Decimal
	MaxPrice       decimal.Decimal
	MinCost        decimal.Decimal
	MaxCost        decimal.Decimal
	PricePrecision int
	AmountPrecision int
}

// HasMinAmount reports whether a minimum amount limit is present (non-nil
// in a duck-typed API; here represented by a non-zero value).
func (m MarketMeta) HasMinAmount() bool { return !m.MinAmount.IsZero() }
func (m MarketMeta) HasMaxAmount() bool { return !m.MaxAmount.IsZero() }
func (m MarketMeta) HasMinCost() bool   { return !m.MinCost.IsZero() }
func (m MarketMeta) HasMaxCost() bool   { return !m.MaxCost.IsZero() }

// Level is a single order-book price/amount pair.
type Level struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// Ticker is the price block of a PairSnapshot.
type Ticker struct {
	Last      decimal.Decimal
	Bid       decimal.Decimal
	Ask       decimal.Decimal
	Spread    decimal.Decimal
	Volume    decimal.Decimal
	ChangePct decimal.Decimal
}

// OrderBook is the top-N levels of both sides for a symbol on a venue.
type OrderBook struct {
	Bids []Level // non-increasing price
	Asks []Level // non-decreasing price
}

// BestBid returns the highest bid, or false if the side is empty.
func (ob OrderBook) BestBid() (Level, bool) {
	if len(ob.Bids) == 0 {
		return Level{}, false
	}
	return ob.Bids[0], true
}

// BestAsk returns the lowest ask, or false if the side is empty.
func (ob OrderBook) BestAsk() (Level, bool) {
	if len(ob.Asks) == 0 {
		return Level{}, false
	}
	return ob.Asks[0], true
}

// Fees is the trading fee block sourced from MarketMeta, plus the
// zero-by-design transfer fee fields (spec §4.4, §9 open question 1).
type Fees struct {
	Maker      decimal.Decimal
	Taker      decimal.Decimal
	Withdrawal *decimal.Decimal // nil: unset by design
	Deposit    decimal.Decimal  // fixed 0
	Network    decimal.Decimal  // fixed 0
}

// Limits mirrors MarketMeta's min/max fields for a PairSnapshot.
type Limits struct {
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
	MinCost   decimal.Decimal
	MaxCost   decimal.Decimal
}

// Precision mirrors MarketMeta's precision fields.
type Precision struct {
	Price  int
	Amount int
}

// PairSnapshot is the per-(venue,symbol) result produced by the Pair
// Fetcher each tick (spec §3, §4.4).
type PairSnapshot struct {
	Symbol    Symbol
	Venue     string
	Price     Ticker
	OrderBook OrderBook
	Fees      Fees
	Limits    Limits
	Precision Precision
}

// AllData is the mapping Symbol -> (venue -> PairSnapshot) restricted to
// successful snapshots, built fresh each tick (spec §3).
type AllData map[Symbol]map[string]PairSnapshot

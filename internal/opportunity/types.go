// Package opportunity implements the pure cross-venue spread-scanning
// algorithm: given a tick's AllData, it walks every ordered venue pair per
// symbol and emits ranked, fee- and slippage-adjusted opportunities.
package opportunity

import (
	"github.com/shopspring/decimal"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
)

// Fees is the wire-format trading fee block of an Opportunity.
type Fees struct {
	TradingAbs decimal.Decimal `json:"tradingAbs"`
	NetworkAbs decimal.Decimal `json:"networkAbs"`
	TakerBuy   decimal.Decimal `json:"takerBuy"`
	TakerSell  decimal.Decimal `json:"takerSell"`
}

// Slippage is the wire-format slippage block of an Opportunity.
type Slippage struct {
	BuyAbs  decimal.Decimal `json:"buyAbs"`
	SellAbs decimal.Decimal `json:"sellAbs"`
}

// SideLimits is one side's admission limits, echoed for client display.
type SideLimits struct {
	MinAmount decimal.Decimal `json:"minAmount"`
	MaxAmount decimal.Decimal `json:"maxAmount"`
	MinCost   decimal.Decimal `json:"minCost"`
	MaxCost   decimal.Decimal `json:"maxCost"`
}

// Limits bundles both sides' admission limits.
type Limits struct {
	Buy  SideLimits `json:"buy"`
	Sell SideLimits `json:"sell"`
}

// Estimates carries the confidence score.
type Estimates struct {
	ConfidenceScore decimal.Decimal `json:"confidenceScore"`
}

// Risk is the risk block: all fields are clamped to non-negative.
type Risk struct {
	MarketVolatility decimal.Decimal `json:"marketVolatility"`
	ExecutionRisk    decimal.Decimal `json:"executionRisk"`
	LiquidityRisk    decimal.Decimal `json:"liquidityRisk"`
	FeeRisk          decimal.Decimal `json:"feeRisk"`
}

// Opportunity is the wire-format record for one (symbol, buyVenue,
// sellVenue) triple that survived every admission gate.
type Opportunity struct {
	Symbol         market.Symbol   `json:"symbol"`
	BuyExchange    string          `json:"buyExchange"`
	SellExchange   string          `json:"sellExchange"`
	BuyPrice       decimal.Decimal `json:"buyPrice"`
	SellPrice      decimal.Decimal `json:"sellPrice"`
	BuyEffective   decimal.Decimal `json:"buyEffective"`
	SellEffective  decimal.Decimal `json:"sellEffective"`
	Quantity       decimal.Decimal `json:"quantity"`
	Volume24h      decimal.Decimal `json:"volume24h"`
	SpreadAbs      decimal.Decimal `json:"spreadAbs"`
	SpreadPct      decimal.Decimal `json:"spreadPct"`
	RawSpreadPct   decimal.Decimal `json:"rawSpreadPct"`
	Fees           Fees            `json:"fees"`
	Slippage       Slippage        `json:"slippage"`
	NetProfitAbs   decimal.Decimal `json:"netProfitAbs"`
	NetProfitPct   decimal.Decimal `json:"netProfitPct"`
	Liquidity      decimal.Decimal `json:"liquidity"`
	BuyLiquidity   decimal.Decimal `json:"buyLiquidity"`
	SellLiquidity  decimal.Decimal `json:"sellLiquidity"`
	Limits         Limits          `json:"limits"`
	Estimates      Estimates       `json:"estimates"`
	Risk           Risk            `json:"risk"`
	Ts             int64           `json:"ts"`
}

// Counters holds the debug-mode diagnostic totals (spec §4.6, ARB_DEBUG).
type Counters struct {
	PairsChecked          int
	PairsMissingOB        int
	PairsInsufficientFill int
	PairsBelowSpread      int
	PairsBelowNotional    int
	PairsLimitsFail       int
}

// Thresholds bundles the Opportunity Engine's tunable inputs (spec §6).
type Thresholds struct {
	TradeSizeUSDT   decimal.Decimal
	MinRawSpreadPct decimal.Decimal
	MinTradeUSDT    decimal.Decimal
}

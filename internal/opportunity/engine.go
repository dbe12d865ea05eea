package opportunity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

var (
	zero      = decimal.Zero
	hundred   = decimal.NewFromInt(100)
	oneTenth  = decimal.NewFromFloat(0.1)
	minGross  = decimal.NewFromFloat(1e-9)
	fiveDec   = decimal.NewFromInt(5)
	tenDec    = decimal.NewFromInt(10)
	pointZero2 = decimal.NewFromFloat(0.02)
	pointNine  = decimal.NewFromFloat(0.9)
)

// walkResult is the outcome of walking one side of an order book for a
// target base-unit quantity.
type walkResult struct {
	filled       decimal.Decimal
	cost         decimal.Decimal
	effective    decimal.Decimal
	slippageAbs  decimal.Decimal
	topLevelSeen bool
}

// walkBook consumes levels in order until target is filled or the side
// exhausts, per §4.6 step 3.
func walkBook(levels []market.Level, target decimal.Decimal) walkResult {
	if len(levels) == 0 || target.LessThanOrEqual(zero) {
		return walkResult{}
	}
	remaining := target
	filled := zero
	cost := zero
	for _, lvl := range levels {
		if remaining.LessThanOrEqual(zero) {
			break
		}
		take := lvl.Amount
		if take.GreaterThan(remaining) {
			take = remaining
		}
		filled = filled.Add(take)
		cost = cost.Add(lvl.Price.Mul(take))
		remaining = remaining.Sub(take)
	}
	if filled.LessThanOrEqual(zero) {
		return walkResult{}
	}
	effective := cost.Div(filled)
	slippage := effective.Sub(levels[0].Price).Abs()
	return walkResult{
		filled:       filled,
		cost:         cost,
		effective:    effective,
		slippageAbs:  slippage,
		topLevelSeen: true,
	}
}

// Compute implements the pure Opportunity Engine (spec §4.6): for each
// symbol and each ordered pair of distinct venues, walk both order books,
// apply the spread/notional/limits gates, and emit a ranked opportunity
// list. Iteration is alphabetical over symbols and registry order over
// venues so results are deterministic and reproducible across ticks.
func Compute(data market.AllData, thresholds Thresholds, debug bool) ([]Opportunity, Counters) {
	var counters Counters
	symbols := make([]market.Symbol, 0, len(data))
	for sym := range data {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	now := time.Now().Unix()
	var out []Opportunity

	for _, sym := range symbols {
		byVenue := data[sym]
		for _, buyID := range venue.All {
			buySnap, ok := byVenue[string(buyID)]
			if !ok {
				continue
			}
			for _, sellID := range venue.All {
				if sellID == buyID {
					continue
				}
				sellSnap, ok := byVenue[string(sellID)]
				if !ok {
					continue
				}
				counters.PairsChecked++

				opp, reject := evaluate(sym, buySnap, sellSnap, thresholds, now)
				switch reject {
				case rejectMissingOB:
					counters.PairsMissingOB++
				case rejectInsufficientFill:
					counters.PairsInsufficientFill++
				case rejectBelowSpread:
					counters.PairsBelowSpread++
				case rejectBelowNotional:
					counters.PairsBelowNotional++
				case rejectLimitsFail:
					counters.PairsLimitsFail++
				case rejectNone:
					out = append(out, opp)
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SpreadPct.GreaterThan(out[j].SpreadPct)
	})

	_ = debug // counters are always accumulated; caller decides whether to log them
	return out, counters
}

type rejectKind int

const (
	rejectNone rejectKind = iota
	rejectMissingOB
	rejectInsufficientFill
	rejectBelowSpread
	rejectBelowNotional
	rejectLimitsFail
)

func evaluate(sym market.Symbol, buy, sell market.PairSnapshot, th Thresholds, now int64) (Opportunity, rejectKind) {
	buyAskLvl, ok := buy.OrderBook.BestAsk()
	if !ok {
		return Opportunity{}, rejectMissingOB
	}
	sellBidLvl, ok := sell.OrderBook.BestBid()
	if !ok {
		return Opportunity{}, rejectMissingOB
	}
	buyAsk := buyAskLvl.Price
	sellBid := sellBidLvl.Price
	if buyAsk.LessThanOrEqual(zero) {
		return Opportunity{}, rejectMissingOB
	}

	// step 2: intended quantity in base units
	qInt := th.TradeSizeUSDT.Div(buyAsk)

	// step 3: order-book walk on both sides
	buyWalk := walkBook(buy.OrderBook.Asks, qInt)
	sellWalk := walkBook(sell.OrderBook.Bids, qInt)
	if !buyWalk.topLevelSeen || !sellWalk.topLevelSeen {
		return Opportunity{}, rejectInsufficientFill
	}

	// step 4: effective quantity
	qEff := decimal.Min(buyWalk.filled, sellWalk.filled)
	if qEff.LessThanOrEqual(zero) {
		return Opportunity{}, rejectInsufficientFill
	}

	buyEff := buyWalk.effective
	sellEff := sellWalk.effective

	// step 5: raw spread
	spreadAbs := sellEff.Sub(buyEff)
	spreadPct := spreadAbs.Div(buyEff).Mul(hundred)
	if spreadPct.LessThanOrEqual(th.MinRawSpreadPct) {
		return Opportunity{}, rejectBelowSpread
	}
	// rawSpreadPct is the top-of-book spread, kept alongside the
	// effective-price spreadPct for interpretability (see DESIGN.md open
	// question 2).
	rawSpreadPctVal := sell.Price.Bid.Sub(buy.Price.Ask).Div(buy.Price.Ask).Mul(hundred)

	// step 6: notional floor
	notionalBuy := buyEff.Mul(qEff)
	if notionalBuy.LessThan(th.MinTradeUSDT) {
		return Opportunity{}, rejectBelowNotional
	}

	// step 7: trading fees
	takerBuy := buy.Fees.Taker
	takerSell := sell.Fees.Taker
	feesAbs := qEff.Mul(buyEff).Mul(takerBuy).Add(qEff.Mul(sellEff).Mul(takerSell))

	// step 9: profit
	gross := spreadAbs.Mul(qEff)
	net := gross.Sub(feesAbs)
	netPct := zero
	denom := buyEff.Mul(qEff)
	if denom.GreaterThan(zero) {
		netPct = net.Div(denom).Mul(hundred)
	}

	// step 10: liquidity
	buyLiq := sumAmounts(buy.OrderBook.Asks)
	sellLiq := sumAmounts(sell.OrderBook.Bids)
	avail := decimal.Min(buyLiq, sellLiq)

	// step 11: limits admission
	sellNotional := sellEff.Mul(qEff)
	if !withinLimits(qEff, buy.Limits.MinAmount, buy.Limits.MaxAmount) ||
		!withinLimits(qEff, sell.Limits.MinAmount, sell.Limits.MaxAmount) ||
		!withinLimits(notionalBuy, buy.Limits.MinCost, buy.Limits.MaxCost) ||
		!withinLimits(sellNotional, sell.Limits.MinCost, sell.Limits.MaxCost) {
		return Opportunity{}, rejectLimitsFail
	}

	// step 12: risk block
	marketVolatility := buy.Price.ChangePct.Sub(sell.Price.ChangePct).Abs()
	executionRisk := buyWalk.slippageAbs.Add(sellWalk.slippageAbs).Round(8)
	var liquidityRisk decimal.Decimal
	if qEff.GreaterThan(avail) {
		liquidityRisk = decimal.NewFromInt(1)
	} else {
		denom := qEff.Mul(fiveDec)
		if denom.GreaterThan(zero) {
			liquidityRisk = decimal.Max(zero, decimal.NewFromInt(1).Sub(avail.Div(denom)))
		}
	}
	feeRisk := feesAbs.Div(decimal.Max(gross, minGross))

	// step 13: confidence score
	slipSum := buyWalk.slippageAbs.Add(sellWalk.slippageAbs)
	slipRatio := zero
	if buyEff.GreaterThan(zero) {
		slipRatio = slipSum.Div(buyEff)
	}
	slipScore := decimal.Max(zero, decimal.NewFromInt(1).Sub(decimal.Min(slipRatio, pointZero2)))
	liqDenom := qEff.Mul(tenDec)
	liqScore := decimal.NewFromInt(1)
	if liqDenom.GreaterThan(zero) {
		liqScore = decimal.Min(decimal.NewFromInt(1), avail.Div(liqDenom))
	}
	feeRatio := zero
	if gross.GreaterThan(zero) {
		feeRatio = feesAbs.Div(gross)
	}
	feeScore := decimal.Max(zero, decimal.NewFromInt(1).Sub(decimal.Min(feeRatio, pointNine)))
	confidence := slipScore.Mul(decimal.NewFromFloat(0.5)).
		Add(liqScore.Mul(decimal.NewFromFloat(0.3))).
		Add(feeScore.Mul(decimal.NewFromFloat(0.2))).
		Round(3)

	opp := Opportunity{
		Symbol:        sym,
		BuyExchange:   buy.Venue,
		SellExchange:  sell.Venue,
		BuyPrice:      buy.Price.Ask,
		SellPrice:     sell.Price.Bid,
		BuyEffective:  buyEff,
		SellEffective: sellEff,
		Quantity:      qEff,
		Volume24h:     decimal.Min(buy.Price.Volume, sell.Price.Volume),
		SpreadAbs:     spreadAbs,
		SpreadPct:     spreadPct,
		RawSpreadPct:  rawSpreadPctVal,
		Fees: Fees{
			TradingAbs: feesAbs,
			NetworkAbs: zero,
			TakerBuy:   takerBuy,
			TakerSell:  takerSell,
		},
		Slippage: Slippage{
			BuyAbs:  buyWalk.slippageAbs,
			SellAbs: sellWalk.slippageAbs,
		},
		NetProfitAbs:  net,
		NetProfitPct:  netPct,
		Liquidity:     avail,
		BuyLiquidity:  buyLiq,
		SellLiquidity: sellLiq,
		Limits: Limits{
			Buy: SideLimits{
				MinAmount: buy.Limits.MinAmount,
				MaxAmount: buy.Limits.MaxAmount,
				MinCost:   buy.Limits.MinCost,
				MaxCost:   buy.Limits.MaxCost,
			},
			Sell: SideLimits{
				MinAmount: sell.Limits.MinAmount,
				MaxAmount: sell.Limits.MaxAmount,
				MinCost:   sell.Limits.MinCost,
				MaxCost:   sell.Limits.MaxCost,
			},
		},
		Estimates: Estimates{ConfidenceScore: confidence},
		Risk: Risk{
			MarketVolatility: decimal.Max(zero, marketVolatility),
			ExecutionRisk:    decimal.Max(zero, executionRisk),
			LiquidityRisk:    decimal.Max(zero, liquidityRisk),
			FeeRisk:          decimal.Max(zero, feeRisk),
		},
		Ts: now,
	}
	return opp, rejectNone
}

func sumAmounts(levels []market.Level) decimal.Decimal {
	sum := zero
	for _, l := range levels {
		sum = sum.Add(l.Amount)
	}
	return sum
}

// withinLimits reports whether v satisfies [min,max] when the corresponding
// limit is present; an absent (zero-value) limit does not constrain.
func withinLimits(v, min, max decimal.Decimal) bool {
	if !min.IsZero() && v.LessThan(min) {
		return false
	}
	if !max.IsZero() && v.GreaterThan(max) {
		return false
	}
	return true
}

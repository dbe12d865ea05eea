package opportunity

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func level(price, amount string) market.Level {
	return market.Level{Price: dec(price), Amount: dec(amount)}
}

func snapshot(venue string, ask, askAmt, bid, bidAmt, taker string) market.PairSnapshot {
	return market.PairSnapshot{
		Symbol: "BTC/USDT",
		Venue:  venue,
		Price: market.Ticker{
			Last: dec(ask),
			Bid:  dec(bid),
			Ask:  dec(ask),
		},
		OrderBook: market.OrderBook{
			Asks: []market.Level{level(ask, askAmt)},
			Bids: []market.Level{level(bid, bidAmt)},
		},
		Fees: market.Fees{Taker: dec(taker)},
	}
}

func thresholds() Thresholds {
	return Thresholds{
		TradeSizeUSDT:   dec("1000"),
		MinRawSpreadPct: dec("0"),
		MinTradeUSDT:    dec("1"),
	}
}

func TestCompute_SimpleProfitableSpread(t *testing.T) {
	data := market.AllData{
		"BTC/USDT": {
			"binance": snapshot("binance", "100", "50", "99", "50", "0.001"),
			"kucoin":  snapshot("kucoin", "99", "50", "102", "50", "0.001"),
		},
	}

	opps, counters := Compute(data, thresholds(), false)
	if counters.PairsChecked != 2 {
		t.Fatalf("expected 2 ordered pairs checked, got %d", counters.PairsChecked)
	}
	if len(opps) == 0 {
		t.Fatal("expected at least one opportunity")
	}

	best := opps[0]
	if best.BuyExchange != "binance" || best.SellExchange != "kucoin" {
		t.Fatalf("expected buy binance / sell kucoin, got buy=%s sell=%s", best.BuyExchange, best.SellExchange)
	}
	if !best.SpreadPct.GreaterThan(decimal.Zero) {
		t.Fatalf("expected positive spreadPct, got %s", best.SpreadPct)
	}
	if !best.NetProfitAbs.GreaterThan(decimal.Zero) {
		t.Fatalf("expected positive net profit, got %s", best.NetProfitAbs)
	}
}

func TestCompute_NoSelfArbitrage(t *testing.T) {
	data := market.AllData{
		"BTC/USDT": {
			"binance": snapshot("binance", "100", "50", "99", "50", "0.001"),
		},
	}
	opps, counters := Compute(data, thresholds(), false)
	if len(opps) != 0 {
		t.Fatalf("expected no opportunities with a single venue, got %d", len(opps))
	}
	if counters.PairsChecked != 0 {
		t.Fatalf("expected zero ordered pairs with only one venue present, got %d", counters.PairsChecked)
	}
}

func TestCompute_BelowSpreadThresholdRejected(t *testing.T) {
	data := market.AllData{
		"BTC/USDT": {
			"binance": snapshot("binance", "100", "50", "99", "50", "0.001"),
			"kucoin":  snapshot("kucoin", "100", "50", "100.01", "50", "0.001"),
		},
	}
	th := thresholds()
	th.MinRawSpreadPct = dec("5")
	opps, counters := Compute(data, th, false)
	if len(opps) != 0 {
		t.Fatalf("expected spread below threshold to be rejected, got %d opportunities", len(opps))
	}
	if counters.PairsBelowSpread == 0 {
		t.Fatal("expected pairsBelowSpread to be incremented")
	}
}

func TestCompute_MissingOrderBookSkipped(t *testing.T) {
	data := market.AllData{
		"BTC/USDT": {
			"binance": {Symbol: "BTC/USDT", Venue: "binance"},
			"kucoin":  snapshot("kucoin", "99", "50", "102", "50", "0.001"),
		},
	}
	opps, counters := Compute(data, thresholds(), false)
	if len(opps) != 0 {
		t.Fatalf("expected empty order book to yield no opportunities, got %d", len(opps))
	}
	if counters.PairsMissingOB == 0 {
		t.Fatal("expected pairsMissingOB to be incremented")
	}
}

func TestCompute_SortedBySpreadPctDescending(t *testing.T) {
	data := market.AllData{
		"BTC/USDT": {
			"binance": snapshot("binance", "100", "50", "99", "50", "0"),
			"kucoin":  snapshot("kucoin", "99", "50", "110", "50", "0"),
			"bybit":   snapshot("bybit", "99", "50", "104", "50", "0"),
		},
	}
	opps, _ := Compute(data, thresholds(), false)
	for i := 1; i < len(opps); i++ {
		if opps[i-1].SpreadPct.LessThan(opps[i].SpreadPct) {
			t.Fatalf("opportunities not sorted descending by spreadPct at index %d", i)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	data := market.AllData{
		"BTC/USDT": {
			"binance": snapshot("binance", "100", "50", "99", "50", "0.001"),
			"kucoin":  snapshot("kucoin", "99", "50", "102", "50", "0.001"),
		},
		"ETH/USDT": {
			"binance": snapshot("binance", "50", "50", "49", "50", "0.001"),
			"kucoin":  snapshot("kucoin", "49", "50", "51", "50", "0.001"),
		},
	}
	first, _ := Compute(data, thresholds(), false)
	second, _ := Compute(data, thresholds(), false)
	if len(first) != len(second) {
		t.Fatalf("non-deterministic result count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Symbol != second[i].Symbol || !first[i].SpreadPct.Equal(second[i].SpreadPct) {
			t.Fatalf("non-deterministic ordering at index %d", i)
		}
	}
}

func TestWalkBook_ExhaustsSide(t *testing.T) {
	levels := []market.Level{
		level("100", "1"),
		level("101", "1"),
	}
	res := walkBook(levels, dec("3"))
	if !res.filled.Equal(dec("2")) {
		t.Fatalf("expected filled=2 when side exhausts, got %s", res.filled)
	}
}

func TestWalkBook_PartialFillWithinFirstLevel(t *testing.T) {
	levels := []market.Level{
		level("100", "5"),
	}
	res := walkBook(levels, dec("2"))
	if !res.effective.Equal(dec("100")) {
		t.Fatalf("expected effective price 100 for a single-level fill, got %s", res.effective)
	}
	if !res.slippageAbs.IsZero() {
		t.Fatalf("expected zero slippage within a single level, got %s", res.slippageAbs)
	}
}

func TestCompute_SlippageAcrossLevelsReflectedInEffectivePrice(t *testing.T) {
	data := market.AllData{
		"BTC/USDT": {
			"binance": {
				Symbol: "BTC/USDT",
				Venue:  "binance",
				Price:  market.Ticker{Last: dec("100"), Bid: dec("99"), Ask: dec("100")},
				OrderBook: market.OrderBook{
					Asks: []market.Level{level("100", "5"), level("102", "5")},
					Bids: []market.Level{level("99", "50")},
				},
				Fees: market.Fees{Taker: dec("0")},
			},
			"kucoin": snapshot("kucoin", "99", "50", "110", "50", "0"),
		},
	}
	th := thresholds()
	th.TradeSizeUSDT = dec("1000") // qInt = 1000/100 = 10, exhausts the 5@100 level

	opps, counters := Compute(data, th, false)
	if counters.PairsInsufficientFill != 0 {
		t.Fatalf("expected the buy side to fill across two levels, got pairsInsufficientFill=%d", counters.PairsInsufficientFill)
	}
	if len(opps) == 0 {
		t.Fatal("expected an opportunity once both levels are walked")
	}
	opp := opps[0]
	if !opp.BuyEffective.GreaterThan(dec("100")) {
		t.Fatalf("expected buy effective price above the top-of-book ask once the second level is consumed, got %s", opp.BuyEffective)
	}
	if !opp.Slippage.BuyAbs.GreaterThan(decimal.Zero) {
		t.Fatalf("expected positive buy-side slippage once the walk crosses levels, got %s", opp.Slippage.BuyAbs)
	}
}

func TestCompute_QuantityAboveMaxAmountRejected(t *testing.T) {
	buy := snapshot("binance", "100", "50", "99", "50", "0")
	buy.Limits.MaxAmount = dec("1") // qInt = 1000/100 = 10, exceeds this
	sell := snapshot("kucoin", "99", "50", "110", "50", "0")

	data := market.AllData{
		"BTC/USDT": {
			"binance": buy,
			"kucoin":  sell,
		},
	}
	opps, counters := Compute(data, thresholds(), false)
	if len(opps) != 0 {
		t.Fatalf("expected the quantity limit to reject the pair, got %d opportunities", len(opps))
	}
	if counters.PairsLimitsFail == 0 {
		t.Fatal("expected pairsLimitsFail to be incremented")
	}
}

func TestCompute_NotionalBelowMinCostRejected(t *testing.T) {
	buy := snapshot("binance", "100", "50", "99", "50", "0")
	buy.Limits.MinCost = dec("100000") // far above the 1000 USDT trade size
	sell := snapshot("kucoin", "99", "50", "110", "50", "0")

	data := market.AllData{
		"BTC/USDT": {
			"binance": buy,
			"kucoin":  sell,
		},
	}
	opps, counters := Compute(data, thresholds(), false)
	if len(opps) != 0 {
		t.Fatalf("expected the buy-side minCost limit to reject the pair, got %d opportunities", len(opps))
	}
	if counters.PairsLimitsFail == 0 {
		t.Fatal("expected pairsLimitsFail to be incremented")
	}
}

package venue

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/market"
)

// ParseLevels converts a REST depth response's [[price, amount], ...]
// string-pair rows into Levels, skipping zero-amount rows. Most venues'
// spot depth endpoints share this exact wire shape.
func ParseLevels(raw [][]string, maxDepth int) ([]market.Level, error) {
	levels := make([]market.Level, 0, len(raw))
	for _, row := range raw {
		if len(row) < 2 {
			continue
		}
		price, err := decimal.NewFromString(row[0])
		if err != nil {
			return nil, fmt.Errorf("venue: parse level price %q: %w", row[0], err)
		}
		amount, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, fmt.Errorf("venue: parse level amount %q: %w", row[1], err)
		}
		if amount.IsZero() {
			continue
		}
		levels = append(levels, market.Level{Price: price, Amount: amount})
		if len(levels) >= maxDepth {
			break
		}
	}
	return levels, nil
}

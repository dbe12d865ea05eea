package market

import "errors"

var (
	errEmptySymbolPart = errors.New("market: base and quote must be non-empty")
	errSameBaseQuote   = errors.New("market: base and quote must differ")
)

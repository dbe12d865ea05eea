package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Pair Fetcher errors
	CodeUnsupportedVenue:     "Venue is not in the supported registry",
	CodeMarketsUnavailable:   "Markets cache has no data for this venue",
	CodeUnknownSymbol:        "Symbol is not listed on this venue",
	CodeInactiveMarket:       "Market is not currently active",
	CodeNotSpot:              "Market is not a spot market",
	CodeTickerUnavailable:    "Ticker fetch failed",
	CodeOrderBookUnavailable: "Order book fetch failed",
	CodeEmptyOrderBookSide:   "Order book side has no levels",
	CodeNonPositivePrice:     "Order book level has a non-positive price",

	// Circuit breaker errors
	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}

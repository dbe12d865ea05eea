package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Pair Fetcher error codes (spec §4.4 / §7 taxonomy)
const (
	CodeUnsupportedVenue    Code = "UNSUPPORTED_VENUE"
	CodeMarketsUnavailable  Code = "MARKETS_UNAVAILABLE"
	CodeUnknownSymbol       Code = "UNKNOWN_SYMBOL"
	CodeInactiveMarket      Code = "INACTIVE_MARKET"
	CodeNotSpot             Code = "NOT_SPOT"
	CodeTickerUnavailable   Code = "TICKER_UNAVAILABLE"
	CodeOrderBookUnavailable Code = "ORDER_BOOK_UNAVAILABLE"
	CodeEmptyOrderBookSide  Code = "EMPTY_ORDER_BOOK_SIDE"
	CodeNonPositivePrice    Code = "NON_POSITIVE_PRICE"
)

// Circuit breaker errors, kept from the teacher for the per-venue breaker.
const (
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)

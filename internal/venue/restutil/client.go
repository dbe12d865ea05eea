// Package restutil builds the shared instrumented REST client used by the
// venues without a dedicated SDK in the dependency pack (gate, bitget,
// mexc), reusing internal/httpclient's instrumented transport.
package restutil

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dennis-owusu/Arbitrage-Bot/internal/httpclient"
	"github.com/dennis-owusu/Arbitrage-Bot/internal/venue"
)

// NewClient builds an instrumented client scoped to a single venue's base URL.
func NewClient(providerName, baseURL string, timeout time.Duration) (httpclient.Client, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName(providerName),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithHeaders(map[string]string{"Accept": "application/json"}),
	)
	if err != nil {
		return nil, fmt.Errorf("restutil: build client for %s: %w", providerName, err)
	}
	return client, nil
}

// HTTPError turns a non-2xx response into an error, classifying a 429 into
// venue.ErrRateLimited so Guard's one-retry-after-1000ms policy (spec §4.1)
// actually triggers instead of dropping the pair on the first rate limit.
func HTTPError(op string, resp *httpclient.Response) error {
	if resp == nil {
		return fmt.Errorf("%s: no response", op)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return venue.ErrRateLimited
	}
	return fmt.Errorf("%s: http %d: %s", op, resp.StatusCode, resp.String())
}

package scan

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "scan_scheduler"

// tickMetrics holds the OTEL counters mirroring the Opportunity Engine's
// debug counters (spec §4.6), so the ambient Prometheus/OTEL stack has
// something concrete to scrape when ARB_DEBUG=true rather than only a log
// line.
type tickMetrics struct {
	pairsChecked           metric.Int64Counter
	pairsMissingOB         metric.Int64Counter
	pairsInsufficientFill  metric.Int64Counter
	pairsBelowSpread       metric.Int64Counter
	pairsBelowNotional     metric.Int64Counter
	pairsLimitsFail        metric.Int64Counter
	opportunitiesPublished metric.Int64Counter
}

func newTickMetrics() (*tickMetrics, error) {
	meter := otel.Meter(meterName)
	var err error

	m := &tickMetrics{}

	m.pairsChecked, err = meter.Int64Counter(
		"scan_pairs_checked_total",
		metric.WithDescription("Venue pairs evaluated by the opportunity engine"),
	)
	if err != nil {
		return nil, err
	}

	m.pairsMissingOB, err = meter.Int64Counter(
		"scan_pairs_missing_orderbook_total",
		metric.WithDescription("Pairs rejected for a missing order book side"),
	)
	if err != nil {
		return nil, err
	}

	m.pairsInsufficientFill, err = meter.Int64Counter(
		"scan_pairs_insufficient_fill_total",
		metric.WithDescription("Pairs rejected because one side's order-book walk filled nothing"),
	)
	if err != nil {
		return nil, err
	}

	m.pairsBelowSpread, err = meter.Int64Counter(
		"scan_pairs_below_spread_total",
		metric.WithDescription("Pairs rejected below the minimum raw spread threshold"),
	)
	if err != nil {
		return nil, err
	}

	m.pairsBelowNotional, err = meter.Int64Counter(
		"scan_pairs_below_notional_total",
		metric.WithDescription("Pairs rejected below the minimum trade notional"),
	)
	if err != nil {
		return nil, err
	}

	m.pairsLimitsFail, err = meter.Int64Counter(
		"scan_pairs_limits_fail_total",
		metric.WithDescription("Pairs rejected by venue amount/notional limits"),
	)
	if err != nil {
		return nil, err
	}

	m.opportunitiesPublished, err = meter.Int64Counter(
		"scan_opportunities_published_total",
		metric.WithDescription("Opportunities published to the snapshot store per tick"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

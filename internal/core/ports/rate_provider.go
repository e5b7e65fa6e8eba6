package ports

import (
	"context"
	"time"
)

// RateProvider is the currency collaborator: it returns the UZS-per-USD
// exchange rate valid on the given accounting date. Used only by order total
// recalculation.
type RateProvider interface {
	Rate(ctx context.Context, date time.Time) (float64, error)
}

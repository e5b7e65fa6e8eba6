// Package rates supplies the USD to UZS exchange rate used to derive order
// totals. The engine treats the rate source as a collaborator; this
// implementation serves a fixed rate taken from configuration, which is how
// deployments pin the accounting rate for a billing period.
package rates

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/pkg/errs"
)

// StaticProvider returns the configured exchange rate for every date.
type StaticProvider struct {
	rate float64
}

// NewStaticProvider creates a provider pinned to the given rate.
// The rate must be positive.
func NewStaticProvider(rate float64) (*StaticProvider, error) {
	if rate <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("exchange rate is invalid",
			fmt.Errorf("%f is not greater than 0", rate))
	}
	return &StaticProvider{rate: rate}, nil
}

// Rate returns the configured rate regardless of the value date.
func (p *StaticProvider) Rate(_ context.Context, _ time.Time) (float64, error) {
	return p.rate, nil
}

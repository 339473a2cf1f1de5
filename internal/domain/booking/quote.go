package booking

import (
	"time"

	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

// Quote is the ephemeral price breakdown returned to clients. It is computed
// on demand and never persisted.
type Quote struct {
	CanCompute  bool    `json:"canCompute"`
	Currency    string  `json:"currency"`
	Rate        float64 `json:"rate"`
	Units       float64 `json:"units"`
	UnitLabel   string  `json:"unitLabel"`
	PerDogTotal float64 `json:"perDogTotal"`
	DogsCount   int     `json:"dogsCount"`
	Total       float64 `json:"total"`
}

// BuildQuote composes the unit calculator, a resolved rate, and money rounding
// into a full price breakdown for the given number of dogs.
//
// The per-dog subtotal is rounded before it is multiplied by the dog count;
// reversing that order produces different totals and breaks parity with what
// clients are shown line by line.
func BuildQuote(serviceType ServiceType, start, end time.Time, dogsCount int, rate float64, currency string) (Quote, error) {
	if !serviceType.IsValid() {
		return Quote{}, domain.NewValidationError("invalid inputs: unrecognized service type")
	}
	if !end.After(start) {
		return Quote{}, domain.NewValidationError("invalid inputs: pick-up must be after drop-off")
	}
	if rate <= 0 {
		return Quote{}, domain.NewNoRateError(serviceType.String())
	}

	if dogsCount < 0 {
		dogsCount = 0
	}

	units := UnitsFor(serviceType, start, end)
	perDogTotal := RoundMoney(units * rate)
	total := RoundMoney(perDogTotal * float64(dogsCount))

	return Quote{
		CanCompute:  true,
		Currency:    currency,
		Rate:        rate,
		Units:       units,
		UnitLabel:   serviceType.UnitLabel(),
		PerDogTotal: perDogTotal,
		DogsCount:   dogsCount,
		Total:       total,
	}, nil
}

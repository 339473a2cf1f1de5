package rate

// Rate is a per-unit price for one service type. Read-only from the core's
// perspective; rows are maintained out of band.
type Rate struct {
	ServiceType string
	Amount      float64
	Currency    string
}

// IsValid reports whether the rate can be used for pricing. Zero and negative
// rates are configuration errors, never free services.
func (r Rate) IsValid() bool {
	return r.Amount > 0
}

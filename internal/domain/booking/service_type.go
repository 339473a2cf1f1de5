package booking

import "fmt"

// ServiceType identifies which boarding product a booking is for.
type ServiceType string

const (
	ServiceBoarding ServiceType = "boarding"
	ServiceDaycare  ServiceType = "daycare"
	ServiceDropIn   ServiceType = "drop_in"
	ServiceWalk     ServiceType = "walk"
)

// IsValid returns true if the service type is recognized.
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceBoarding, ServiceDaycare, ServiceDropIn, ServiceWalk:
		return true
	}
	return false
}

// UnitLabel returns the billing-unit label shown on quotes.
func (s ServiceType) UnitLabel() string {
	switch s {
	case ServiceBoarding:
		return "nights"
	case ServiceDaycare:
		return "days"
	case ServiceDropIn:
		return "drop-in"
	default:
		return "walk"
	}
}

// String returns the string representation of the service type.
func (s ServiceType) String() string {
	return string(s)
}

// ParseServiceType converts a string to a ServiceType, returning an error if invalid.
func ParseServiceType(s string) (ServiceType, error) {
	st := ServiceType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid service type: %s", s)
	}
	return st, nil
}

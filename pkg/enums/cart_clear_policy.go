package enums

import "fmt"

// CartClearPolicy names the trigger that empties the cart after the
// external hand-off has been initiated.
type CartClearPolicy string

const (
	// ClearOnConfirmedUnload keeps the cart until the client observes an
	// order-confirmed flag on navigation away.
	ClearOnConfirmedUnload CartClearPolicy = "on-confirmed-unload"
	// ClearAfterHandoffDelay clears the cart a fixed short delay after the
	// messaging channel was opened.
	ClearAfterHandoffDelay CartClearPolicy = "after-handoff-delay"
)

var validCartClearPolicies = []CartClearPolicy{
	ClearOnConfirmedUnload,
	ClearAfterHandoffDelay,
}

// String implements fmt.Stringer.
func (p CartClearPolicy) String() string {
	return string(p)
}

// IsValid reports whether the policy is recognized.
func (p CartClearPolicy) IsValid() bool {
	for _, candidate := range validCartClearPolicies {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseCartClearPolicy converts a raw string into a CartClearPolicy.
func ParseCartClearPolicy(value string) (CartClearPolicy, error) {
	for _, candidate := range validCartClearPolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart clear policy %q", value)
}

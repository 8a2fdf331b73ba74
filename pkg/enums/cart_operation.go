package enums

import "fmt"

// CartOperation names a ledger mutation.
type CartOperation string

const (
	CartOperationAdd         CartOperation = "add"
	CartOperationRemove      CartOperation = "remove"
	CartOperationSetQuantity CartOperation = "set_quantity"
)

var validCartOperations = []CartOperation{
	CartOperationAdd,
	CartOperationRemove,
	CartOperationSetQuantity,
}

// String implements fmt.Stringer.
func (c CartOperation) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartOperation.
func (c CartOperation) IsValid() bool {
	for _, candidate := range validCartOperations {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartOperation converts raw input into a CartOperation.
func ParseCartOperation(value string) (CartOperation, error) {
	for _, candidate := range validCartOperations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart operation %q", value)
}

// OperationOutcome is the result label recorded for a ledger mutation.
type OperationOutcome string

const (
	OperationOutcomeSuccess OperationOutcome = "success"
	OperationOutcomeNoop    OperationOutcome = "noop"
	OperationOutcomeFailure OperationOutcome = "failure"
)

// String implements fmt.Stringer.
func (o OperationOutcome) String() string {
	return string(o)
}

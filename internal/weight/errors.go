package weight

import (
	"errors"
	"fmt"
)

var ErrInvalidWeight = errors.New("invalid weight")

// InvalidWeightError describes a violated precondition of a weight operation.
// The particle is left untouched whenever it is returned.
type InvalidWeightError struct {
	Op            string
	Reason        string
	Weight        float64
	WeightSurvive float64
	Alive         bool
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("%s: %s: %v (weight=%g weight_survive=%g alive=%t)",
		e.Op, e.Reason, ErrInvalidWeight, e.Weight, e.WeightSurvive, e.Alive)
}

func (e *InvalidWeightError) Unwrap() error {
	return ErrInvalidWeight
}

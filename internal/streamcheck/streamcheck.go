// Package streamcheck runs classic statistical tests against random streams:
// Pearson chi-square for one- and two-dimensional uniformity and the
// correlation between two streams.
package streamcheck

import (
	"errors"
	"fmt"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
)

var (
	ErrTooFewSamples = errors.New("too few samples")
	ErrOutOfRange    = errors.New("value outside [0, 1)")
)

// minExpectedPerBin keeps the chi-square approximation valid.
const minExpectedPerBin = 5

type Result struct {
	Test      string
	Statistic float64
	PValue    float64
	Samples   int
}

// Passed reports whether the null hypothesis survives at significance alpha.
func (r Result) Passed(alpha float64) bool {
	return r.PValue >= alpha
}

func (r Result) String() string {
	return fmt.Sprintf("%s: statistic=%.4f p=%.4f n=%d", r.Test, r.Statistic, r.PValue, r.Samples)
}

// Uniformity tests values against the uniform law on [0,1) with the given number of bins.
func Uniformity(values []float64, bins int) (Result, error) {
	if bins < 2 {
		return Result{}, fmt.Errorf("uniformity: %w: need at least 2 bins, got %d", ErrTooFewSamples, bins)
	}
	if len(values) < bins*minExpectedPerBin {
		return Result{}, fmt.Errorf("uniformity: %w: %d values for %d bins", ErrTooFewSamples, len(values), bins)
	}

	observed := make([]float64, bins)
	for _, v := range values {
		i, err := bin(v, bins)
		if err != nil {
			return Result{}, fmt.Errorf("uniformity: %w", err)
		}
		observed[i]++
	}

	return chiSquare("uniformity", observed, len(values)), nil
}

// Serial tests non-overlapping consecutive pairs for uniformity on the unit square.
func Serial(values []float64, bins int) (Result, error) {
	if bins < 2 {
		return Result{}, fmt.Errorf("serial: %w: need at least 2 bins, got %d", ErrTooFewSamples, bins)
	}
	pairs := len(values) / 2
	if pairs < bins*bins*minExpectedPerBin {
		return Result{}, fmt.Errorf("serial: %w: %d pairs for %d cells", ErrTooFewSamples, pairs, bins*bins)
	}

	observed := make([]float64, bins*bins)
	for i := 0; i < pairs; i++ {
		x, err := bin(values[2*i], bins)
		if err != nil {
			return Result{}, fmt.Errorf("serial: %w", err)
		}
		y, err := bin(values[2*i+1], bins)
		if err != nil {
			return Result{}, fmt.Errorf("serial: %w", err)
		}
		observed[x*bins+y]++
	}

	return chiSquare("serial", observed, pairs), nil
}

// Correlation tests two equally long streams for linear dependence.
// Under independence sqrt(n)*rho is approximately standard normal; the p-value is two-sided.
func Correlation(a, b []float64) (Result, error) {
	if len(a) != len(b) {
		return Result{}, fmt.Errorf("correlation: length mismatch %d != %d", len(a), len(b))
	}
	if len(a) < 3 {
		return Result{}, fmt.Errorf("correlation: %w: %d values", ErrTooFewSamples, len(a))
	}

	rho := stat.Correlation(a, b, nil)
	if math.IsNaN(rho) {
		return Result{}, fmt.Errorf("correlation: undefined for constant input")
	}
	z := rho * math.Sqrt(float64(len(a)))

	return Result{
		Test:      "correlation",
		Statistic: rho,
		PValue:    2 * distuv.UnitNormal.Survival(math.Abs(z)),
		Samples:   len(a),
	}, nil
}

func chiSquare(test string, observed []float64, n int) Result {
	expected := float64(n) / float64(len(observed))

	var statistic float64
	for _, o := range observed {
		d := o - expected
		statistic += d * d / expected
	}

	dist := distuv.ChiSquared{K: float64(len(observed) - 1)}
	return Result{
		Test:      test,
		Statistic: statistic,
		PValue:    dist.Survival(statistic),
		Samples:   n,
	}
}

func bin(v float64, bins int) (int, error) {
	if !(v >= 0 && v < 1) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, v)
	}
	i := int(v * float64(bins))
	if i == bins {
		i--
	}
	return i, nil
}

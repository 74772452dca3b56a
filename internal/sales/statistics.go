package sales

import (
	"math"
	"sort"

	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// Summarize computes the mean, median and population standard deviation of series.
// The input is not reordered.
func Summarize(series domain.RawSeries) (domain.SummaryStatistics, error) {
	n := len(series)
	if n == 0 {
		return domain.SummaryStatistics{}, apierrors.NewEmptyInputError("summarize")
	}

	sorted := make([]float64, n)
	var sum float64
	for i, v := range series {
		sorted[i] = float64(v)
		sum += float64(v)
	}
	sort.Float64s(sorted)
	mean := sum / float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var sumsq float64
	for _, v := range sorted {
		d := v - mean
		sumsq += d * d
	}

	return domain.SummaryStatistics{
		Mean:              mean,
		Median:            median,
		StandardDeviation: math.Sqrt(sumsq / float64(n)),
	}, nil
}

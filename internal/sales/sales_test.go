package sales

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// referenceSeries is the worked example used throughout these tests.
var referenceSeries = domain.RawSeries{100, 150, 90, 90}

func TestGenerator_Generate(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		min     int
		max     int
		wantErr error
	}{
		{name: "reference parameters", count: DefaultCount, min: DefaultMin, max: DefaultMax},
		{name: "single value range", count: 10, min: 7, max: 7},
		{name: "negative range", count: 5, min: -10, max: -1},
		{name: "full int range", count: 50, min: math.MinInt, max: math.MaxInt},
		{name: "range wider than max int", count: 50, min: -10, max: math.MaxInt},
		{name: "zero count", count: 0, min: 50, max: 200, wantErr: apierrors.ErrInvalidArgument},
		{name: "negative count", count: -3, min: 50, max: 200, wantErr: apierrors.ErrInvalidArgument},
		{name: "min above max", count: 10, min: 201, max: 200, wantErr: apierrors.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := NewSeededGenerator(1).Generate(tt.count, tt.min, tt.max)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, series)
				return
			}

			require.NoError(t, err)
			assert.Len(t, series, tt.count)
			for _, v := range series {
				assert.GreaterOrEqual(t, v, tt.min)
				assert.LessOrEqual(t, v, tt.max)
			}
		})
	}
}

func TestGenerator_SeedIsReproducible(t *testing.T) {
	a, err := NewSeededGenerator(42).Generate(50, 50, 200)
	require.NoError(t, err)
	b, err := NewSeededGenerator(42).Generate(50, 50, 200)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewSeededGenerator(43).Generate(50, 50, 200)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerator_CoversBothBounds(t *testing.T) {
	series, err := NewSeededGenerator(7).Generate(2000, 1, 3)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, v := range series {
		seen[v] = true
	}
	assert.True(t, seen[1])
	assert.True(t, seen[3])
}

func TestBuildRecords_ReferenceScenario(t *testing.T) {
	records, err := BuildRecords(referenceSeries)
	require.NoError(t, err)

	want := domain.RecordSet{
		{Day: 1, Sales: 100, GrowthRate: 0},
		{Day: 2, Sales: 150, GrowthRate: 50},
		{Day: 3, Sales: 90, GrowthRate: -40},
		{Day: 4, Sales: 90, GrowthRate: 0},
	}
	require.Len(t, records, len(want))
	for i := range want {
		assert.Equal(t, want[i].Day, records[i].Day)
		assert.Equal(t, want[i].Sales, records[i].Sales)
		assert.InDelta(t, want[i].GrowthRate, records[i].GrowthRate, 1e-9)
	}
}

func TestBuildRecords_Properties(t *testing.T) {
	gen := NewSeededGenerator(99)
	for run := 0; run < 20; run++ {
		series, err := gen.Generate(DefaultCount, DefaultMin, DefaultMax)
		require.NoError(t, err)

		records, err := BuildRecords(series)
		require.NoError(t, err)
		require.Len(t, records, len(series))

		assert.Equal(t, 0.0, records[0].GrowthRate)
		for i, r := range records {
			assert.Equal(t, i+1, r.Day)
			assert.Equal(t, series[i], r.Sales)
			if i > 0 {
				want := float64(series[i]-series[i-1]) / float64(series[i-1]) * 100
				assert.InDelta(t, want, r.GrowthRate, 1e-9)
			}
		}
	}
}

func TestBuildRecords_EdgeCases(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		records, err := BuildRecords(nil)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("single day", func(t *testing.T) {
		records, err := BuildRecords(domain.RawSeries{0})
		require.NoError(t, err)
		assert.Equal(t, domain.RecordSet{{Day: 1, Sales: 0}}, records)
	})

	t.Run("zero previous day fails fast", func(t *testing.T) {
		records, err := BuildRecords(domain.RawSeries{100, 0, 50})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apierrors.ErrDivisionByZero))
		assert.Contains(t, err.Error(), "day 3")
		assert.Nil(t, records)
	})

	t.Run("zero on last day is fine", func(t *testing.T) {
		records, err := BuildRecords(domain.RawSeries{100, 0})
		require.NoError(t, err)
		assert.InDelta(t, -100.0, records[1].GrowthRate, 1e-9)
	})
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		series domain.RawSeries
		want   domain.SummaryStatistics
	}{
		{
			name:   "reference scenario",
			series: referenceSeries,
			want:   domain.SummaryStatistics{Mean: 107.5, Median: 95, StandardDeviation: math.Sqrt(618.75)},
		},
		{
			name:   "odd count median",
			series: domain.RawSeries{3, 1, 2},
			want:   domain.SummaryStatistics{Mean: 2, Median: 2, StandardDeviation: math.Sqrt(2.0 / 3.0)},
		},
		{
			name:   "single value",
			series: domain.RawSeries{120},
			want:   domain.SummaryStatistics{Mean: 120, Median: 120, StandardDeviation: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Summarize(tt.series)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Mean, got.Mean, 1e-9)
			assert.InDelta(t, tt.want.Median, got.Median, 1e-9)
			assert.InDelta(t, tt.want.StandardDeviation, got.StandardDeviation, 1e-9)
		})
	}

	t.Run("reference std rounds to 24.87", func(t *testing.T) {
		got, err := Summarize(referenceSeries)
		require.NoError(t, err)
		assert.InDelta(t, 24.87, got.StandardDeviation, 0.005)
	})
}

func TestSummarize_EmptyInput(t *testing.T) {
	_, err := Summarize(domain.RawSeries{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierrors.ErrEmptyInput))
}

func TestSummarize_IsPureAndIdempotent(t *testing.T) {
	series := domain.RawSeries{5, 3, 9, 1}
	original := series.Clone()

	first, err := Summarize(series)
	require.NoError(t, err)
	second, err := Summarize(series)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, original, series)
}

func TestAnnotate(t *testing.T) {
	t.Run("reference scenario is all low", func(t *testing.T) {
		records, err := BuildRecords(referenceSeries)
		require.NoError(t, err)

		for _, r := range Annotate(records, DefaultCategoryThreshold) {
			assert.Equal(t, domain.CategoryLow, r.Category)
		}
	})

	t.Run("boundary is strict", func(t *testing.T) {
		records := domain.RecordSet{{Day: 1, Sales: 150}, {Day: 2, Sales: 151}}
		got := Annotate(records, DefaultCategoryThreshold)

		require.Len(t, got, 2)
		assert.Equal(t, domain.CategoryLow, got[0].Category)
		assert.Equal(t, domain.CategoryHigh, got[1].Category)
		assert.Equal(t, records[1], got[1].DailyRecord)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		records := domain.RecordSet{{Day: 1, Sales: 200}}
		before := append(domain.RecordSet(nil), records...)
		Annotate(records, 10)
		assert.Equal(t, before, records)
	})
}

func TestFilterAbove(t *testing.T) {
	records, err := BuildRecords(referenceSeries)
	require.NoError(t, err)

	t.Run("reference scenario", func(t *testing.T) {
		got := FilterAbove(records, 95)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Day)
		assert.Equal(t, 100, got[0].Sales)
		assert.Equal(t, 2, got[1].Day)
		assert.Equal(t, 150, got[1].Sales)
	})

	t.Run("threshold equal to sales is excluded", func(t *testing.T) {
		assert.Empty(t, FilterAbove(records, 150))
	})

	t.Run("no match is empty not nil", func(t *testing.T) {
		got := FilterAbove(records, 1000)
		assert.NotNil(t, got)
		assert.Len(t, got, 0)
	})
}

func TestFilterAbove_Properties(t *testing.T) {
	series, err := NewSeededGenerator(5).Generate(DefaultCount, DefaultMin, DefaultMax)
	require.NoError(t, err)
	records, err := BuildRecords(series)
	require.NoError(t, err)

	for _, threshold := range []float64{0, 49, 50, 99.5, 100, 150, 199, 200, 250} {
		above := FilterAbove(records, threshold)

		complement := 0
		for _, r := range records {
			if float64(r.Sales) <= threshold {
				complement++
			}
		}
		assert.Equal(t, len(records), len(above)+complement, "threshold %v", threshold)

		for i, r := range above {
			assert.Greater(t, float64(r.Sales), threshold)
			if i > 0 {
				assert.Less(t, above[i-1].Day, r.Day)
			}
		}
	}
}

func TestRecordSet_Windows(t *testing.T) {
	series, err := NewSeededGenerator(3).Generate(DefaultCount, DefaultMin, DefaultMax)
	require.NoError(t, err)
	records, err := BuildRecords(series)
	require.NoError(t, err)

	head := records.Head(15)
	require.Len(t, head, 15)
	assert.Equal(t, 1, head[0].Day)
	assert.Equal(t, 15, head[14].Day)

	tail := records.Tail(30)
	require.Len(t, tail, 30)
	assert.Equal(t, 71, tail[0].Day)
	assert.Equal(t, 100, tail[29].Day)

	short := records[:4]
	assert.Len(t, short.Head(15), 4)
	assert.Len(t, short.Tail(30), 4)
	assert.Empty(t, short.Head(0))
}

package sales

import "salespulse/pkg/contracts/domain"

// DefaultCategoryThreshold separates High from Low sales days.
const DefaultCategoryThreshold = 150

// Categorize labels a single sales value. Values equal to threshold are Low.
func Categorize(sales int, threshold float64) domain.Category {
	if float64(sales) > threshold {
		return domain.CategoryHigh
	}
	return domain.CategoryLow
}

// Annotate returns a categorized copy of records; records itself is untouched.
func Annotate(records domain.RecordSet, threshold float64) []domain.CategorizedRecord {
	out := make([]domain.CategorizedRecord, len(records))
	for i, r := range records {
		out[i] = domain.CategorizedRecord{
			DailyRecord: r,
			Category:    Categorize(r.Sales, threshold),
		}
	}
	return out
}

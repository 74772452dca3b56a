package sales

import "salespulse/pkg/contracts/domain"

// DefaultFilterThreshold is the threshold offered before the caller picks one.
const DefaultFilterThreshold = 100

// FilterAbove returns the records whose sales strictly exceed threshold, in day order.
// An empty, non-nil result means no record qualified.
func FilterAbove(records domain.RecordSet, threshold float64) domain.RecordSet {
	out := make(domain.RecordSet, 0, len(records))
	for _, r := range records {
		if float64(r.Sales) > threshold {
			out = append(out, r)
		}
	}
	return out
}

package services

// Request is one dashboard menu action. The set of implementations is closed.
type Request interface {
	// Action names the request for logs, spans and metrics
	Action() string
	isRequest()
}

// Response is the result of a dispatched request, one of the
// salespulse/pkg/contracts/api response types.
type Response interface{}

// GenerateRequest replaces the session's series with a freshly generated one
type GenerateRequest struct{}

// StatisticsRequest summarizes the current series
type StatisticsRequest struct{}

// HeadRequest shows the first rows of the record set
type HeadRequest struct{}

// TailRequest shows the last rows of the record set
type TailRequest struct{}

// FilterRequest selects the records whose sales exceed Threshold
type FilterRequest struct {
	Threshold float64 `json:"threshold" validate:"min=0"`
}

// CategorizeRequest labels the first rows of the record set High or Low
type CategorizeRequest struct{}

// ExportRequest writes the record set to the export directory.
// An empty Format means csv.
type ExportRequest struct {
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

func (GenerateRequest) Action() string   { return "generate" }
func (StatisticsRequest) Action() string { return "statistics" }
func (HeadRequest) Action() string       { return "head" }
func (TailRequest) Action() string       { return "tail" }
func (FilterRequest) Action() string     { return "filter" }
func (CategorizeRequest) Action() string { return "categorize" }
func (ExportRequest) Action() string     { return "export" }

func (GenerateRequest) isRequest()   {}
func (StatisticsRequest) isRequest() {}
func (HeadRequest) isRequest()       {}
func (TailRequest) isRequest()       {}
func (FilterRequest) isRequest()     {}
func (CategorizeRequest) isRequest() {}
func (ExportRequest) isRequest()     {}

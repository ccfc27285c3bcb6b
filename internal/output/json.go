package output

import (
	"time"

	"github.com/manav03panchal/recall/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// RecordOutput represents a record in JSON output.
// Index is the display index; archived records have none.
type RecordOutput struct {
	Index     *int   `json:"index,omitempty"`
	ID        int    `json:"id"`
	CreatedAt string `json:"created_at"`
	Kind      string `json:"kind"`
	Title     string `json:"title,omitempty"`
	Body      string `json:"body"`
	Active    bool   `json:"active"`
}

// NewRecordOutput creates a RecordOutput. A negative index is omitted.
func NewRecordOutput(index int, r *model.Record) *RecordOutput {
	out := &RecordOutput{
		ID:        r.ID,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		Kind:      string(r.Kind),
		Title:     r.Title,
		Body:      r.Body,
		Active:    r.Active,
	}
	if index >= 0 {
		i := index
		out.Index = &i
	}
	return out
}

// RecordsResponse represents a listing in JSON.
type RecordsResponse struct {
	Notes      []*RecordOutput `json:"notes"`
	ShownCount int             `json:"shown_count"`
	TotalCount int             `json:"total_count"`
}

// RecordResponse represents a single-record result in JSON.
type RecordResponse struct {
	Status string        `json:"status"`
	Note   *RecordOutput `json:"note"`
}

// ImportResponse represents the import command output in JSON.
type ImportResponse struct {
	Status   string          `json:"status"`
	Imported int             `json:"imported"`
	Notes    []*RecordOutput `json:"notes"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Category   string `json:"category"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintEntries outputs a listing. total is the size of the unfiltered listing.
func (j *JSONFormatter) PrintEntries(entries []Entry, total int) error {
	outputs := make([]*RecordOutput, len(entries))
	for i, e := range entries {
		outputs[i] = NewRecordOutput(e.Index, e.Record)
	}
	return j.JSON(RecordsResponse{
		Notes:      outputs,
		ShownCount: len(entries),
		TotalCount: total,
	})
}

// PrintRecord outputs one record with a status such as "created" or "archived".
func (j *JSONFormatter) PrintRecord(status string, index int, r *model.Record) error {
	return j.JSON(RecordResponse{
		Status: status,
		Note:   NewRecordOutput(index, r),
	})
}

// PrintImported outputs the imported records.
func (j *JSONFormatter) PrintImported(records []*model.Record) error {
	outputs := make([]*RecordOutput, len(records))
	for i, r := range records {
		outputs[i] = NewRecordOutput(-1, r)
	}
	return j.JSON(ImportResponse{
		Status:   "imported",
		Imported: len(records),
		Notes:    outputs,
	})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(category, errMsg, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Category:   category,
		Error:      errMsg,
		Suggestion: suggestion,
	})
}

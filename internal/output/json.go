package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/duewatch/internal/alert"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to the given writer as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) // best-effort; if writer fails, nothing we can do
}

// BatchResult represents the outcome of a single operation within a batch.
type BatchResult struct {
	ID    int    `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// BucketSummary is the machine-readable form of one alert bucket. Task
// texts are only included when the bucket is small enough to show inline.
type BucketSummary struct {
	Kind      alert.Kind   `json:"kind"`
	Title     string       `json:"title"`
	Count     int          `json:"count"`
	Dismissed bool         `json:"dismissed"`
	Tasks     []InlineTask `json:"tasks,omitempty"`
}

// InlineTask is a task reference shown under an alert banner.
type InlineTask struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// SummarizeAlerts converts all buckets, dismissed ones included, in display order.
func SummarizeAlerts(a alert.Alerts) []BucketSummary {
	buckets := a.Buckets()
	out := make([]BucketSummary, 0, len(buckets))
	for _, b := range buckets {
		s := BucketSummary{Kind: b.Kind, Title: b.Kind.Title(), Count: b.Count(), Dismissed: b.Dismissed}
		if b.Inline() {
			for _, t := range b.Tasks {
				s.Tasks = append(s.Tasks, InlineTask{ID: t.ID, Text: t.Text})
			}
		}
		out = append(out, s)
	}
	return out
}

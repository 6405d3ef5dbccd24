package format

import "time"

// Record is one message received by the CLI before it becomes a line.
type Record struct {
	Message string    `json:"message"`
	Subject string    `json:"subject,omitempty"`
	Time    time.Time `json:"time"`
}

const DefaultTemplate = "{{ .Message }}"

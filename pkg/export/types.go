// Package export parses chat-history export files into a common participant
// roster shape. Two formats are recognized: a structured JSON export and an
// HTML export. Both extractors produce a Result (export date, participant map
// keyed by deduplication key, mention set) that the Aggregate folds together
// across files.
package export

import (
	"time"
)

// PlaceholderBio fills the bio field of every record; neither export format
// carries biography data.
const PlaceholderBio = "N/A"

// ParticipantRecord is one deduplicated participant who authored at least one
// message. Display fields keep their original case; only the deduplication
// key is case-folded.
type ParticipantRecord struct {
	ExportDate string `json:"export_date"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Bio        string `json:"bio"`
}

// Result is the uniform output of both extractors: one processed file's
// participants and mentions.
type Result struct {
	ExportDate   string
	Participants map[string]ParticipantRecord
	Mentions     map[string]bool
}

func newResult(exportDate string) Result {
	return Result{
		ExportDate:   exportDate,
		Participants: make(map[string]ParticipantRecord),
		Mentions:     make(map[string]bool),
	}
}

// nowUTC returns the current UTC time in RFC3339, the default export date
// when a document does not carry one.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Package render turns an aggregated roster into its presentation form: an
// inline chunked text listing for small rosters, or an xlsx workbook for
// large ones.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rosterbot/rosterbot/pkg/export"
)

const (
	// ListThreshold is the participant count at which output switches from
	// the inline listing to a spreadsheet.
	ListThreshold = 50

	// MessageLimit is the transport's maximum message size in characters.
	MessageLimit = 4096

	// ChunkMargin is headroom subtracted from MessageLimit when chunking.
	ChunkMargin = 50

	// SpreadsheetName is the suggested filename for the workbook payload.
	SpreadsheetName = "users.xlsx"

	noNamePlaceholder = "(no name)"
)

// Mode selects the presentation form.
type Mode string

const (
	ModeInline      Mode = "inline"
	ModeSpreadsheet Mode = "spreadsheet"
)

// Plan is the rendered output of one finished session.
type Plan struct {
	Mode Mode

	// Chunks holds the inline listing split at line boundaries, each chunk
	// within the transport limit. Set when Mode is ModeInline.
	Chunks []string

	// Workbook holds the xlsx bytes and Filename the suggested download
	// name. Set when Mode is ModeSpreadsheet.
	Workbook []byte
	Filename string
}

// Present renders the aggregate: an inline listing below ListThreshold
// participants, a spreadsheet at or above it.
func Present(agg *export.Aggregate) (Plan, error) {
	rows := SortedRows(agg)

	if len(rows) < ListThreshold {
		return Plan{
			Mode:   ModeInline,
			Chunks: ChunkLines(inlineListing(rows), MessageLimit),
		}, nil
	}

	workbook, err := WorkbookBytes(rows)
	if err != nil {
		return Plan{}, fmt.Errorf("building workbook: %w", err)
	}
	return Plan{
		Mode:     ModeSpreadsheet,
		Workbook: workbook,
		Filename: SpreadsheetName,
	}, nil
}

// SortedRows returns the aggregate's participant records ordered ascending by
// the case-folded tuple (username, firstName, lastName); empty strings sort
// first. The order is deterministic for a given roster.
func SortedRows(agg *export.Aggregate) []export.ParticipantRecord {
	rows := make([]export.ParticipantRecord, 0, len(agg.Participants))
	for _, rec := range agg.Participants {
		rows = append(rows, rec)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if u1, u2 := export.Fold(a.Username), export.Fold(b.Username); u1 != u2 {
			return u1 < u2
		}
		if f1, f2 := export.Fold(a.FirstName), export.Fold(b.FirstName); f1 != f2 {
			return f1 < f2
		}
		return export.Fold(a.LastName) < export.Fold(b.LastName)
	})

	return rows
}

// inlineListing builds the small-roster text form: a numbered section of
// participants with usernames, then a labeled section of those without.
func inlineListing(rows []export.ParticipantRecord) string {
	var withUsername, noUsername []string
	for _, rec := range rows {
		if username := strings.TrimSpace(rec.Username); username != "" {
			withUsername = append(withUsername, "@"+username)
			continue
		}
		name := strings.TrimSpace(strings.Join(strings.Fields(rec.FirstName+" "+rec.LastName), " "))
		if name == "" {
			name = noNamePlaceholder
		}
		noUsername = append(noUsername, name)
	}

	var lines []string
	lines = append(lines, "Participants (username):")
	if len(withUsername) == 0 {
		lines = append(lines, "- (no usernames found in the export)")
	} else {
		for i, handle := range withUsername {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, handle))
		}
	}

	if len(noUsername) > 0 {
		lines = append(lines, "", "Participants without username (by export name):")
		for _, name := range noUsername {
			lines = append(lines, "- "+name)
		}
	}

	return strings.Join(lines, "\n")
}

// Package session implements the host-facing upload protocol: an ordered,
// capped buffer of export files that can be reset, appended to, and finished.
// Finishing runs the whole extraction pipeline over the buffered files.
package session

import (
	"fmt"
	"strings"

	rberrors "github.com/rosterbot/rosterbot/pkg/errors"
	"github.com/rosterbot/rosterbot/pkg/export"
)

// MaxFiles caps the number of files one session may buffer.
const MaxFiles = 10

// Format identifies one of the two recognized export formats.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// DetectFormat routes a filename to its declared export format by suffix.
// Suffixes other than .json and .html are rejected.
func DetectFormat(filename string) (Format, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(lower, ".html"):
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%q: %w", filename, rberrors.ErrUnsupportedFormat)
}

// File is one buffered upload.
type File struct {
	Name string
	Data []byte
}

// Session owns one caller's file buffer for the duration of its lifecycle.
// A Session holds no global state and is not safe for concurrent use; a host
// running sessions concurrently guards each one with its own lock.
type Session struct {
	files []File
}

// New returns a session with an empty buffer.
func New() *Session {
	return &Session{}
}

// Len returns the number of buffered files.
func (s *Session) Len() int {
	return len(s.files)
}

// Add appends one file to the buffer. It rejects additions past MaxFiles and
// unrecognized suffixes, leaving the buffer unchanged in both cases.
func (s *Session) Add(name string, data []byte) error {
	if len(s.files) >= MaxFiles {
		return rberrors.ErrBufferFull
	}
	if _, err := DetectFormat(name); err != nil {
		return err
	}
	s.files = append(s.files, File{Name: name, Data: data})
	return nil
}

// Reset empties the buffer.
func (s *Session) Reset() {
	s.files = nil
}

// Finish runs the extraction pipeline over the buffered files in upload
// order and clears the buffer regardless of per-file outcomes. A file that
// fails to parse is counted in the aggregate's Failed counter and excluded
// from the merge; it never aborts the remaining files. An empty aggregate is
// a valid outcome, not an error.
func (s *Session) Finish() (*export.Aggregate, error) {
	if len(s.files) == 0 {
		return nil, rberrors.ErrNoFiles
	}
	files := s.files
	s.files = nil

	agg := export.NewAggregate()
	for _, f := range files {
		res, err := extract(f)
		if err != nil {
			agg.AddFailure()
			continue
		}
		agg.Add(res)
	}
	return agg, nil
}

// extract routes one file's bytes to the extractor its name declares.
func extract(f File) (export.Result, error) {
	format, err := DetectFormat(f.Name)
	if err != nil {
		return export.Result{}, err
	}
	switch format {
	case FormatJSON:
		return export.ExtractJSON(f.Data)
	default:
		return export.ExtractHTML(f.Data)
	}
}

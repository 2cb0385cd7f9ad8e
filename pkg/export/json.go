package export

import (
	"encoding/json"
	"fmt"
	"strings"
)

// jsonExport mirrors the top level of a structured chat export.
type jsonExport struct {
	ExportDate string          `json:"export_date"`
	Messages   json.RawMessage `json:"messages"`
}

// jsonMessage mirrors one message record. Author fields arrive under several
// names and identifier fields arrive as strings or numbers depending on the
// exporting client, so everything decodes through flexString.
type jsonMessage struct {
	From         flexString  `json:"from"`
	Actor        flexString  `json:"actor"`
	Sender       flexString  `json:"sender"`
	FromID       flexString  `json:"from_id"`
	ActorID      flexString  `json:"actor_id"`
	SenderID     flexString  `json:"sender_id"`
	Username     flexString  `json:"username"`
	FromUsername flexString  `json:"from_username"`
	FirstName    flexString  `json:"first_name"`
	LastName     flexString  `json:"last_name"`
	Text         messageText `json:"text"`
}

// flexString decodes a JSON string, number, or null into a string. Any other
// shape contributes the empty string; field decoding is deliberately lenient
// because export files in the wild mix value types freely.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = flexString(num.String())
		return nil
	}
	*s = ""
	return nil
}

// messageText is the text field's tagged variant: a plain string or a list of
// segments, each segment a string or an object carrying its own text
// sub-field. The variant is resolved to one flat string at decode time;
// non-text segments contribute nothing.
type messageText string

func (t *messageText) UnmarshalJSON(b []byte) error {
	var plain string
	if err := json.Unmarshal(b, &plain); err == nil {
		*t = messageText(plain)
		return nil
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(b, &segments); err != nil {
		*t = ""
		return nil
	}

	var joined strings.Builder
	for _, seg := range segments {
		var s string
		if err := json.Unmarshal(seg, &s); err == nil {
			joined.WriteString(s)
			continue
		}
		var obj struct {
			Text flexString `json:"text"`
		}
		if err := json.Unmarshal(seg, &obj); err == nil {
			joined.WriteString(strings.TrimSpace(string(obj.Text)))
		}
	}
	*t = messageText(joined.String())
	return nil
}

// ExtractJSON parses a structured chat export and returns its participant
// roster and mention set.
//
// Bytes that are not a JSON document at all are a format error. A document
// that parses but lacks a message list is a valid empty export. Individual
// malformed message entries are skipped, never fatal.
func ExtractJSON(raw []byte) (Result, error) {
	var doc jsonExport
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Result{}, fmt.Errorf("parsing structured export: %w", err)
	}

	exportDate := strings.TrimSpace(doc.ExportDate)
	if exportDate == "" {
		exportDate = nowUTC()
	}
	res := newResult(exportDate)

	var rawMessages []json.RawMessage
	if err := json.Unmarshal(doc.Messages, &rawMessages); err != nil {
		return res, nil
	}

	for _, rawMsg := range rawMessages {
		var m jsonMessage
		if err := json.Unmarshal(rawMsg, &m); err != nil {
			continue
		}

		// Mentions count even when the message's author is untrackable.
		for token := range ScanMentions(string(m.Text)) {
			res.Mentions[token] = true
		}

		fromName := firstNonEmpty(string(m.From), string(m.Actor), string(m.Sender))
		fromID := firstNonEmpty(string(m.FromID), string(m.ActorID), string(m.SenderID))
		username := firstNonEmpty(string(m.Username), string(m.FromUsername))
		firstName := strings.TrimSpace(string(m.FirstName))
		lastName := strings.TrimSpace(string(m.LastName))

		if firstName == "" && lastName == "" && fromName != "" {
			firstName, lastName = SplitName(fromName)
		}

		// Nothing identifiable at all: skip, don't fail.
		if fromID == "" && username == "" && firstName == "" && lastName == "" && fromName == "" {
			continue
		}

		if IsDeletedAccount(fromName, fromID) {
			continue
		}

		res.Participants[BuildKey(fromID, username, firstName, lastName)] = ParticipantRecord{
			ExportDate: exportDate,
			Username:   username,
			FirstName:  firstName,
			LastName:   lastName,
			Bio:        PlaceholderBio,
		}
	}

	return res, nil
}

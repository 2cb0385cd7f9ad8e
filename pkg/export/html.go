package export

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Structural selectors for the HTML export layout.
const (
	authorNameClass = "from_name"
	bodyTextClass   = "text"
)

// ExtractHTML parses an HTML chat export and returns its participant roster
// and mention set. Invalid UTF-8 sequences in the input are replaced rather
// than rejected.
//
// The markup carries no machine-readable linkage between an author block and
// a body block, so author names and body texts are collected in two
// independent passes over the document. A mention therefore cannot be
// attributed to the message it appeared in; only the per-file union of
// mentions is produced, which is all downstream aggregation needs.
func ExtractHTML(raw []byte) (Result, error) {
	text := strings.ToValidUTF8(string(raw), "�")
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return Result{}, fmt.Errorf("parsing markup export: %w", err)
	}

	// This format carries no document-level export date.
	res := newResult(nowUTC())

	// The checks are independent: an element carrying both class tokens is
	// seen by both passes.
	walk(doc, func(n *html.Node) {
		if hasClass(n, authorNameClass) {
			name := strings.TrimSpace(renderedText(n))
			if name != "" && !IsDeletedAccount(name, "") {
				firstName, lastName := SplitName(name)
				res.Participants[BuildKey("", "", firstName, lastName)] = ParticipantRecord{
					ExportDate: res.ExportDate,
					FirstName:  firstName,
					LastName:   lastName,
					Bio:        PlaceholderBio,
				}
			}
		}
		if hasClass(n, bodyTextClass) {
			for token := range ScanMentions(renderedText(n)) {
				res.Mentions[token] = true
			}
		}
	})

	return res, nil
}

// walk visits every node in the tree in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// hasClass reports whether n is an element carrying the given class token.
func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, token := range strings.Fields(attr.Val) {
			if token == class {
				return true
			}
		}
	}
	return false
}

// renderedText concatenates the text nodes under n in document order.
func renderedText(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}

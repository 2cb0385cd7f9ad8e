package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<!DOCTYPE html>
<html><body>
  <div class="message">
    <div class="from_name">Alice Smith</div>
    <div class="text">morning everyone, cc @bob_builder</div>
  </div>
  <div class="message">
    <div class="from_name">alice smith</div>
    <div class="text bold">second message</div>
  </div>
  <div class="message">
    <div class="from_name">Deleted Account</div>
    <div class="text">should not appear</div>
  </div>
  <div class="message">
    <div class="from_name">  </div>
    <div class="text">authorless, mentions @carol_agent</div>
  </div>
</body></html>`

func TestExtractHTML_RosterAndMentions(t *testing.T) {
	res, err := ExtractHTML([]byte(sampleHTML))
	require.NoError(t, err)

	// "Alice Smith" and "alice smith" collapse onto one case-folded name key;
	// the deleted account and the empty name never produce records.
	require.Len(t, res.Participants, 1)
	rec, ok := res.Participants["n:alice|smith"]
	require.True(t, ok)
	assert.Equal(t, "", rec.Username, "this format carries no usernames")
	assert.Equal(t, "alice", rec.FirstName, "last seen wins")
	assert.Equal(t, "N/A", rec.Bio)

	assert.Equal(t, map[string]bool{"bob_builder": true, "carol_agent": true}, res.Mentions)
}

func TestExtractHTML_ClassTokenMatching(t *testing.T) {
	doc := `<html><body>
	  <div class="text_header">not a body: @not_counted</div>
	  <div class="body text">is a body: @is_counted</div>
	</body></html>`

	res, err := ExtractHTML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"is_counted": true}, res.Mentions)
}

func TestExtractHTML_ElementCarryingBothClasses(t *testing.T) {
	doc := `<html><body>
	  <div class="from_name text">Erin Vole says hi to @whole_team</div>
	</body></html>`

	res, err := ExtractHTML([]byte(doc))
	require.NoError(t, err)

	// Both passes see the element: it yields a record and a mention.
	_, ok := res.Participants["n:erin|vole says hi to @whole_team"]
	assert.True(t, ok)
	assert.True(t, res.Mentions["whole_team"])
}

func TestExtractHTML_NestedMarkupInsideElements(t *testing.T) {
	doc := `<html><body>
	  <div class="from_name">Dana <b>von</b> Richter</div>
	  <div class="text">hi <a href="#">@linked_handle</a>!</div>
	</body></html>`

	res, err := ExtractHTML([]byte(doc))
	require.NoError(t, err)

	rec, ok := res.Participants["n:dana|von richter"]
	require.True(t, ok)
	assert.Equal(t, "Dana", rec.FirstName)
	assert.Equal(t, "von Richter", rec.LastName)
	assert.True(t, res.Mentions["linked_handle"])
}

func TestExtractHTML_InvalidUTF8Replaced(t *testing.T) {
	doc := append([]byte(`<html><body><div class="from_name">Bob`), 0xff, 0xfe)
	doc = append(doc, []byte(`</div></body></html>`)...)

	res, err := ExtractHTML(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Participants)
}

func TestExtractHTML_EmptyDocument(t *testing.T) {
	res, err := ExtractHTML([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, res.Participants)
	assert.Empty(t, res.Mentions)
	assert.NotEmpty(t, res.ExportDate, "export date defaults to current time")
}

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchive/internal/config"
	"searchive/internal/enrich"
)

func testUser() *enrich.User {
	return &enrich.User{
		ID:          1,
		DisplayName: "Alice",
		Slug:        "alice",
		URL:         "https://stackexchange.com/users/99/alice",
	}
}

func testQuestion() *enrich.Question {
	owner := testUser()
	q := &enrich.Question{
		PostView: enrich.PostView{
			ID:           10,
			Body:         "<p>question body</p>",
			BodySource:   "question body",
			CreationDate: "2019-01-02T03:04:05",
			Score:        5,
			Owner:        owner,
		},
		Title: "How do I frobnicate?",
		Tags:  []string{"foo", "bar"},
		Slug:  "how-do-i-frobnicate",
		Path:  "questions/10/how-do-i-frobnicate",
	}
	a := &enrich.Answer{
		PostView: enrich.PostView{
			ID:           11,
			Body:         "<p>answer body</p>",
			BodySource:   "answer body",
			CreationDate: "2019-01-03T00:00:00",
			Score:        3,
			Owner:        owner,
		},
		Question: q,
		Path:     "questions/10/how-do-i-frobnicate#answer-11",
	}
	q.Answers = []*enrich.Answer{a}
	return q
}

func historyRenderer(outDir string) *Renderer {
	return New(&config.Config{OutDir: outDir, BodyMode: config.BodyModeHistory, IndexOrder: config.IndexOrderByScore})
}

func TestQuestionPageRoundTrip(t *testing.T) {
	q := testQuestion()
	page := historyRenderer(".").QuestionPage(q)

	assert.True(t, strings.HasPrefix(page, "## How do I frobnicate?\n\n"))
	assert.Contains(t, page, "- posted by: [Alice](https://stackexchange.com/users/99/alice) on 2019-01-02\n")
	assert.Contains(t, page, "- tagged: `foo`, `bar`\n")
	assert.Contains(t, page, "- score: 5\n")
	assert.Contains(t, page, "\nquestion body\n")
	assert.Contains(t, page, "## Answer 11\n")
	assert.Contains(t, page, "- score: 3\n")
	assert.Contains(t, page, "\nanswer body\n")
	assert.NotContains(t, page, "accepted")
	assert.NotContains(t, page, "No Answers")
	assert.True(t, strings.HasSuffix(page, "All content is licensed under the [CC BY-SA 3.0 license](https://creativecommons.org/licenses/by-sa/3.0/).\n"))
}

func TestQuestionPageAnswerOrdering(t *testing.T) {
	q := testQuestion()
	mk := func(id, score int) *enrich.Answer {
		return &enrich.Answer{
			PostView: enrich.PostView{ID: id, Score: score, BodySource: "x", Owner: testUser(), CreationDate: "2019-01-01T00:00:00"},
			Question: q,
		}
	}
	// maintained order only guarantees score; render applies the id tiebreak
	q.Answers = []*enrich.Answer{mk(13, 7), mk(12, 7), mk(11, 2)}

	page := historyRenderer(".").QuestionPage(q)
	i12 := strings.Index(page, "## Answer 12")
	i13 := strings.Index(page, "## Answer 13")
	i11 := strings.Index(page, "## Answer 11")
	require.True(t, i12 >= 0 && i13 >= 0 && i11 >= 0)
	assert.Less(t, i12, i13)
	assert.Less(t, i13, i11)
}

func TestQuestionPageAcceptedMarker(t *testing.T) {
	q := testQuestion()
	q.Answers[0].IsAccepted = true
	q.AcceptedAnswer = q.Answers[0]

	page := historyRenderer(".").QuestionPage(q)
	assert.Contains(t, page, "- ✓ accepted\n")
}

func TestQuestionPageNoAnswers(t *testing.T) {
	q := testQuestion()
	q.Answers = nil

	page := historyRenderer(".").QuestionPage(q)
	assert.Contains(t, page, "## No Answers\n\nThere were no answers to this question.\n")
	assert.NotContains(t, page, "## Answer ")
}

func TestBodyTextModes(t *testing.T) {
	view := &enrich.PostView{
		Body:       `<p>rendered</p>`,
		BodySource: "source text",
	}

	history := historyRenderer(".")
	assert.Equal(t, "source text", history.bodyText(view))

	current := New(&config.Config{BodyMode: config.BodyModeCurrent})
	assert.Equal(t, "<p>rendered</p>", current.bodyText(view))
}

func TestBodyTextReferenceLinkFallback(t *testing.T) {
	view := &enrich.PostView{
		Body:       "<p>rendered</p>",
		BodySource: "see [this][1] and [that][2]\n\n [1]: http://a\n [2]: http://b",
	}
	got := historyRenderer(".").bodyText(view)
	assert.Equal(t, "<p>rendered</p>", got)
}

func TestHasAmbiguousReferenceLinks(t *testing.T) {
	assert.True(t, HasAmbiguousReferenceLinks("x][y [z"))
	assert.False(t, HasAmbiguousReferenceLinks("no links here"))
	assert.False(t, HasAmbiguousReferenceLinks("inline [link](http://a) only"))
	// the space-prefixed bracket must come after the ][
	assert.False(t, HasAmbiguousReferenceLinks(" [a] then ]["))
}

func TestIndexPageOrders(t *testing.T) {
	q1 := testQuestion()
	q2 := testQuestion()
	q2.ID = 20
	q2.Title = "Second question"
	q2.Score = 9
	q2.Path = "questions/20/second-question"
	site := &enrich.Site{Questions: []*enrich.Question{q1, q2}}

	byScore := historyRenderer(".").IndexPage(site)
	assert.True(t, strings.HasPrefix(byScore, "## All Questions\n\n"))
	assert.Less(t,
		strings.Index(byScore, "questions/20/second-question"),
		strings.Index(byScore, "questions/10/how-do-i-frobnicate"))
	assert.Contains(t, byScore, " - [Second question](../questions/20/second-question)\n")

	byID := New(&config.Config{BodyMode: config.BodyModeHistory, IndexOrder: config.IndexOrderByID}).IndexPage(site)
	assert.Less(t,
		strings.Index(byID, "questions/10/how-do-i-frobnicate"),
		strings.Index(byID, "questions/20/second-question"))
}

func TestWriteSite(t *testing.T) {
	outDir := t.TempDir()
	q := testQuestion()
	site := &enrich.Site{Questions: []*enrich.Question{q}}

	require.NoError(t, historyRenderer(outDir).WriteSite(site))

	page, err := os.ReadFile(filepath.Join(outDir, "questions", "10", "how-do-i-frobnicate.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "## Answer 11")

	index, err := os.ReadFile(filepath.Join(outDir, "questions", "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "(../questions/10/how-do-i-frobnicate)")
}

// Package render serializes the enriched graph to the static archive:
// one markdown page per question plus an index page.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"searchive/internal/config"
	"searchive/internal/enrich"
	"searchive/internal/utils"
)

const licenseFooter = "\n\n---\n\nAll content is licensed under the [CC BY-SA 3.0 license](https://creativecommons.org/licenses/by-sa/3.0/).\n"

type Renderer struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// WriteSite writes every question page and the index under the output
// directory, overwriting existing files.
func (r *Renderer) WriteSite(site *enrich.Site) error {
	log.Debug().Msg("generating markdown for question pages")

	questionsDir := filepath.Join(r.cfg.OutDir, "questions")
	if err := os.MkdirAll(questionsDir, 0o755); err != nil {
		return err
	}

	for _, q := range site.Questions {
		log.Debug().Str("path", q.Path).Msg("writing question page")

		dir := filepath.Join(questionsDir, fmt.Sprintf("%d", q.ID))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		page := r.QuestionPage(q)
		if err := os.WriteFile(filepath.Join(dir, q.Slug+".md"), []byte(page), 0o644); err != nil {
			return err
		}
	}

	log.Debug().Msg("generating questions index page")
	index := r.IndexPage(site)
	return os.WriteFile(filepath.Join(questionsDir, "index.md"), []byte(index), 0o644)
}

// QuestionPage renders one question document: title, metadata, body, then
// each answer by descending score (ties by ascending id), then the
// licensing footer.
func (r *Renderer) QuestionPage(q *enrich.Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", q.Title)
	fmt.Fprintf(&b, "- posted by: [%s](%s) on %s\n", q.Owner.DisplayName, q.Owner.URL, datePart(q.CreationDate))
	fmt.Fprintf(&b, "- tagged: %s\n", tagList(q.Tags))
	fmt.Fprintf(&b, "- score: %d\n", q.Score)
	if q.CommentCount > 0 {
		fmt.Fprintf(&b, "- comments: %d\n", q.CommentCount)
	}
	fmt.Fprintf(&b, "\n%s\n\n", r.bodyText(&q.PostView))

	if len(q.Answers) > 0 {
		answers := make([]*enrich.Answer, len(q.Answers))
		copy(answers, q.Answers)
		sort.Slice(answers, func(i, j int) bool {
			if answers[i].Score != answers[j].Score {
				return answers[i].Score > answers[j].Score
			}
			return answers[i].ID < answers[j].ID
		})
		for _, a := range answers {
			fmt.Fprintf(&b, "\n## Answer %d\n\n", a.ID)
			fmt.Fprintf(&b, "- posted by: [%s](%s) on %s\n", a.Owner.DisplayName, a.Owner.URL, datePart(a.CreationDate))
			fmt.Fprintf(&b, "- score: %d\n", a.Score)
			if a.IsAccepted {
				b.WriteString("- ✓ accepted\n")
			}
			if a.CommentCount > 0 {
				fmt.Fprintf(&b, "- comments: %d\n", a.CommentCount)
			}
			fmt.Fprintf(&b, "\n%s\n\n", r.bodyText(&a.PostView))
		}
	} else {
		b.WriteString("## No Answers\n\nThere were no answers to this question.\n")
	}

	b.WriteString(licenseFooter)
	return b.String()
}

// IndexPage renders the question index in the configured order.
func (r *Renderer) IndexPage(site *enrich.Site) string {
	questions := make([]*enrich.Question, len(site.Questions))
	copy(questions, site.Questions)

	switch r.cfg.IndexOrder {
	case config.IndexOrderByScore:
		sort.Slice(questions, func(i, j int) bool {
			if questions[i].Score != questions[j].Score {
				return questions[i].Score > questions[j].Score
			}
			return questions[i].ID < questions[j].ID
		})
	default:
		sort.Slice(questions, func(i, j int) bool {
			return questions[i].ID < questions[j].ID
		})
	}

	var b strings.Builder
	b.WriteString("## All Questions\n\n")
	for _, q := range questions {
		fmt.Fprintf(&b, " - [%s](../%s)\n", q.Title, q.Path)
	}
	return b.String()
}

// bodyText picks the text a page embeds for a post. History mode prefers
// the reconstructed source, unless it trips the reference-link heuristic,
// in which case the rendered HTML body is safer to embed.
func (r *Renderer) bodyText(view *enrich.PostView) string {
	if r.cfg.BodyMode == config.BodyModeHistory {
		if !HasAmbiguousReferenceLinks(view.BodySource) {
			return view.BodySource
		}
		log.Debug().Int("post", view.ID).Msg("body source has ambiguous reference links, using rendered body")
	}
	return utils.SanitizeHTML(view.Body)
}

// HasAmbiguousReferenceLinks reports whether text looks like it contains
// reference-style markdown links that may not survive reconstruction from
// raw history text. This is a heuristic substring check, not a parser.
func HasAmbiguousReferenceLinks(text string) bool {
	idx := strings.Index(text, "][")
	return idx >= 0 && strings.Contains(text[idx:], " [")
}

func datePart(creationDate string) string {
	date, _, _ := strings.Cut(creationDate, "T")
	return date
}

func tagList(tags []string) string {
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = "`" + tag + "`"
	}
	return strings.Join(quoted, ", ")
}

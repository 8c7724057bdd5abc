// Package enrich reconstructs the object graph of a dump from its flat
// tables: question/answer partition, ownership, accepted answers, tag
// index, slugs and paths, and the per-post body source. The pass takes
// loaded tables as input and returns a new graph; nothing mutates the
// table maps after loading.
package enrich

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"searchive/internal/config"
	"searchive/internal/jsonl"
	"searchive/internal/models"
	"searchive/internal/utils"
)

// User is an owner that appears on at least one post, plus the Community
// pseudo-user.
type User struct {
	ID          int
	DisplayName string
	Slug        string
	URL         string
}

// PostView carries the fields questions and answers share.
type PostView struct {
	ID           int
	Body         string
	BodySource   string
	CreationDate string
	Score        int
	Owner        *User
	Edited       bool
	CommentCount int
}

type Question struct {
	PostView
	Title          string
	Tags           []string
	Slug           string
	Path           string
	AcceptedAnswer *Answer
	Answers        []*Answer
}

type Answer struct {
	PostView
	Question   *Question
	IsAccepted bool
	Path       string
}

// Site is the enriched graph for one run.
type Site struct {
	Questions     []*Question // table order
	QuestionsByID map[int]*Question
	AnswersByID   map[int]*Answer
	Users         map[int]*User
	Tags          map[string][]*Question
	TagNames      []string // first-seen order
}

// Tables holds the loaded dump tables plus the path of the history table,
// which is streamed rather than loaded.
type Tables struct {
	Users       map[int]*models.User
	Posts       map[int]*models.Post
	PostOrder   []int
	Comments    map[int]*models.Comment
	HistoryPath string
}

// LoadTables reads Users, Posts and Comments from dataDir. When the Posts
// table is absent it falls back to PostsWithDeleted, dropping every record
// that carries a DeletionDate.
func LoadTables(dataDir string) (*Tables, error) {
	log.Debug().Msg("loading jsonl tables")

	users, err := jsonl.LoadTable(jsonl.TablePath(dataDir, "Users"),
		func(u *models.User) int { return u.ID })
	if err != nil {
		return nil, err
	}

	posts := make(map[int]*models.Post)
	var order []int
	addPost := func(p *models.Post) error {
		posts[p.ID] = p
		order = append(order, p.ID)
		return nil
	}

	err = jsonl.StreamTable(jsonl.TablePath(dataDir, "Posts"), addPost)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Msg("Posts table missing, falling back to PostsWithDeleted")
		err = jsonl.StreamTable(jsonl.TablePath(dataDir, "PostsWithDeleted"),
			func(p *models.Post) error {
				if p.DeletionDate != nil {
					return nil
				}
				return addPost(p)
			})
	}
	if err != nil {
		return nil, err
	}

	comments, err := jsonl.LoadTable(jsonl.TablePath(dataDir, "Comments"),
		func(c *models.Comment) int { return c.ID })
	if err != nil {
		return nil, err
	}

	return &Tables{
		Users:       users,
		Posts:       posts,
		PostOrder:   order,
		Comments:    comments,
		HistoryPath: jsonl.TablePath(dataDir, "PostHistory"),
	}, nil
}

// Build runs the enrichment passes in dependency order and returns the
// finished graph. A dangling accepted-answer reference is logged and left
// nil; a dangling answer parent aborts the build.
func Build(cfg *config.Config, tables *Tables) (*Site, error) {
	log.Debug().Msg("enriching data structures")

	community, ok := tables.Users[models.CommunityUserID]
	if !ok {
		return nil, fmt.Errorf("enrich: dump has no Community user (Id %d)", models.CommunityUserID)
	}

	site := &Site{
		QuestionsByID: make(map[int]*Question),
		AnswersByID:   make(map[int]*Answer),
		Users:         make(map[int]*User),
		Tags:          make(map[string][]*Question),
	}
	site.Users[models.CommunityUserID] = &User{
		ID:          community.ID,
		DisplayName: community.DisplayName,
	}

	commentCounts := make(map[int]int, len(tables.Comments))
	for _, c := range tables.Comments {
		commentCounts[c.PostID]++
	}

	// First pass creates every node; cross-references are wired by id
	// lookup afterwards.
	for _, id := range tables.PostOrder {
		post := tables.Posts[id]
		view, err := buildView(site, tables, post, commentCounts[id])
		if err != nil {
			return nil, err
		}
		switch post.PostTypeID {
		case models.PostTypeQuestion:
			q := &Question{
				PostView: view,
				Title:    post.Title,
				Tags:     post.Tags,
				Answers:  []*Answer{},
			}
			q.Slug = utils.Slugify(q.Title, utils.PostFallback(q.ID))
			q.Path = fmt.Sprintf("questions/%d/%s", q.ID, q.Slug)
			site.Questions = append(site.Questions, q)
			site.QuestionsByID[q.ID] = q
		case models.PostTypeAnswer:
			site.AnswersByID[post.ID] = &Answer{PostView: view}
		}
	}

	for _, id := range tables.PostOrder {
		post := tables.Posts[id]
		if post.PostTypeID != models.PostTypeQuestion {
			continue
		}
		q := site.QuestionsByID[id]
		if post.AcceptedAnswerID != nil {
			q.AcceptedAnswer = site.AnswersByID[*post.AcceptedAnswerID]
			if q.AcceptedAnswer == nil {
				log.Error().Int("question", q.ID).Int("answer", *post.AcceptedAnswerID).
					Msg("failed to find accepted answer")
			}
		}
		for _, tag := range q.Tags {
			if _, seen := site.Tags[tag]; !seen {
				site.TagNames = append(site.TagNames, tag)
			}
			site.Tags[tag] = append(site.Tags[tag], q)
		}
	}

	for _, id := range tables.PostOrder {
		post := tables.Posts[id]
		if post.PostTypeID != models.PostTypeAnswer {
			continue
		}
		a := site.AnswersByID[id]
		if post.ParentID == nil {
			return nil, fmt.Errorf("enrich: answer %d has no parent question", a.ID)
		}
		q, ok := site.QuestionsByID[*post.ParentID]
		if !ok {
			return nil, fmt.Errorf("enrich: answer %d references missing question %d", a.ID, *post.ParentID)
		}
		a.Question = q
		a.IsAccepted = q.AcceptedAnswer == a
		a.Path = fmt.Sprintf("questions/%d/%s#answer-%d", q.ID, q.Slug, a.ID)
		q.Answers = append(q.Answers, a)
		sort.SliceStable(q.Answers, func(i, j int) bool {
			return q.Answers[i].Score > q.Answers[j].Score
		})
	}

	for _, user := range site.Users {
		raw := tables.Users[user.ID]
		user.Slug = utils.Slugify(user.DisplayName, utils.UserFallback(user.ID))
		if raw.AccountID != nil {
			user.URL = fmt.Sprintf("https://stackexchange.com/users/%d/%s", *raw.AccountID, user.Slug)
		} else {
			user.URL = fmt.Sprintf("https://stackexchange.com/users/-1/%d-%s", user.ID, user.Slug)
		}
	}

	if cfg.BodyMode == config.BodyModeHistory {
		if err := replayHistory(site, tables.HistoryPath); err != nil {
			return nil, err
		}
	}

	return site, nil
}

func buildView(site *Site, tables *Tables, post *models.Post, comments int) (PostView, error) {
	view := PostView{
		ID:           post.ID,
		Body:         post.Body,
		BodySource:   post.Body,
		CreationDate: post.CreationDate,
		Score:        post.Score,
		Edited:       post.LastEditDate != nil,
		CommentCount: comments,
	}

	ownerID := models.CommunityUserID
	if post.OwnerUserID != nil {
		ownerID = *post.OwnerUserID
	}
	owner, ok := site.Users[ownerID]
	if !ok {
		raw, found := tables.Users[ownerID]
		if !found {
			return PostView{}, fmt.Errorf("enrich: post %d owned by missing user %d", post.ID, ownerID)
		}
		owner = &User{ID: raw.ID, DisplayName: raw.DisplayName}
		site.Users[ownerID] = owner
	}
	view.Owner = owner
	return view, nil
}

// replayHistory overwrites each post's body source with the text of every
// body-rewriting history event, in table order. The dump stores events
// chronologically, so the last applied event wins.
func replayHistory(site *Site, path string) error {
	err := jsonl.StreamTable(path, func(e *models.PostHistoryEvent) error {
		if !e.RewritesBody() {
			return nil
		}
		text := utils.NormalizeNewlines(e.Text)
		if q, ok := site.QuestionsByID[e.PostID]; ok {
			q.BodySource = text
		} else if a, ok := site.AnswersByID[e.PostID]; ok {
			a.BodySource = text
		}
		// events for deleted posts have no node to update
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("PostHistory table missing, keeping current bodies")
		return nil
	}
	return err
}

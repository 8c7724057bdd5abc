package models

// Record shapes for the dump tables, one struct per table. Fields that the
// dump only sometimes carries (OwnerUserId, LastEditDate, ...) are pointers
// so that "absent" and "zero" stay distinguishable after JSON decoding.

const (
	PostTypeQuestion = 1
	PostTypeAnswer   = 2

	// CommunityUserID is the synthetic owner for posts without an
	// explicit OwnerUserId. The dump ships exactly one such user.
	CommunityUserID = -1
)

// Body-affecting post history types: initial body, edit body, rollback body.
const (
	HistoryInitialBody  = 2
	HistoryEditBody     = 5
	HistoryRollbackBody = 8
)

type User struct {
	ID           int    `json:"Id"`
	DisplayName  string `json:"DisplayName"`
	Reputation   int    `json:"Reputation"`
	CreationDate string `json:"CreationDate"`
	AccountID    *int   `json:"AccountId"`
}

type Post struct {
	ID           int      `json:"Id"`
	PostTypeID   int      `json:"PostTypeId"`
	Title        string   `json:"Title"`
	Body         string   `json:"Body"`
	CreationDate string   `json:"CreationDate"`
	Score        int      `json:"Score"`
	Tags         []string `json:"Tags"`

	OwnerUserID      *int    `json:"OwnerUserId"`
	LastEditDate     *string `json:"LastEditDate"`
	DeletionDate     *string `json:"DeletionDate"`
	AcceptedAnswerID *int    `json:"AcceptedAnswerId"`
	ParentID         *int    `json:"ParentId"`
}

type Comment struct {
	ID           int    `json:"Id"`
	PostID       int    `json:"PostId"`
	Score        int    `json:"Score"`
	Text         string `json:"Text"`
	CreationDate string `json:"CreationDate"`
	UserID       *int   `json:"UserId"`
}

type PostHistoryEvent struct {
	ID                int    `json:"Id"`
	PostID            int    `json:"PostId"`
	PostHistoryTypeID int    `json:"PostHistoryTypeId"`
	CreationDate      string `json:"CreationDate"`
	Text              string `json:"Text"`
}

// RewritesBody reports whether the event carries a full replacement of the
// post body source.
func (e *PostHistoryEvent) RewritesBody() bool {
	switch e.PostHistoryTypeID {
	case HistoryInitialBody, HistoryEditBody, HistoryRollbackBody:
		return true
	}
	return false
}

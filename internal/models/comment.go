package models

import "time"

// Comment is a reply on a thread, optionally nested under another comment
type Comment struct {
	ID        int64     `json:"commentId" db:"id"`
	ThreadID  int64     `json:"threadId" db:"thread_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	ParentID  *int64    `json:"parentId,omitempty" db:"parent_id"`
	Author    string    `json:"author" db:"author"`
	Body      string    `json:"comment" db:"body"`
	CreatedAt time.Time `json:"createDate" db:"created_at"`
	UpdatedAt time.Time `json:"modifiedDate" db:"updated_at"`

	Replies []*Comment `json:"comments"`
}

// CommentRequest is the body of POST /comments
type CommentRequest struct {
	ThreadID int64  `json:"threadId" binding:"required"`
	ParentID *int64 `json:"parentId"`
	Body     string `json:"comment" binding:"required,max=2000"`
}

// CommentUpdate is the body of PUT /comments/:id
type CommentUpdate struct {
	Body string `json:"comment" binding:"required,max=2000"`
}

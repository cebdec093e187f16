package models

import "time"

// Thread is a community post about a trip
type Thread struct {
	ID           int64     `json:"threadId" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	Author       string    `json:"author" db:"author"`
	Count        int       `json:"count" db:"view_count"`
	Heart        int       `json:"heart" db:"heart"`
	PDFPath      string    `json:"pdfPath" db:"pdf_path"`
	CommentCount int       `json:"commentCount" db:"comment_count"`
	Area         string    `json:"area" db:"area"`
	CreatedAt    time.Time `json:"createDate" db:"created_at"`
	UpdatedAt    time.Time `json:"modifiedDate" db:"updated_at"`

	// Populated per request
	LikedByCurrentUser bool `json:"likedByCurrentUser"`
}

// ThreadRequest is the body for creating or updating a thread
type ThreadRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content"`
	PDFPath string `json:"pdfPath"`
	Area    string `json:"area"`
}

// LikeResult reports the like state after a toggle
type LikeResult struct {
	Liked bool `json:"liked"`
	Heart int  `json:"heart"`
}

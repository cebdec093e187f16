package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/tour-planner-go/internal/database"
	"github.com/jengzang/tour-planner-go/internal/models"
)

const commentColumns = `id, thread_id, user_id, parent_id, author, body, created_at, updated_at`

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment and refreshes the thread's comment count
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO comments (thread_id, user_id, parent_id, author, body) VALUES (?, ?, ?, ?, ?)`,
			c.ThreadID, c.UserID, nullableID(c.ParentID), c.Author, c.Body,
		)
		if err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}
		if c.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read comment id: %w", err)
		}
		return recountComments(ctx, tx, c.ThreadID)
	})
}

// GetByID retrieves a single comment without replies
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query comment %d: %w", id, err)
	}
	defer rows.Close()

	comments, err := scanComments(rows)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, ErrNotFound
	}
	return comments[0], nil
}

// ListByThread returns every comment of a thread in creation order
func (r *CommentRepository) ListByThread(ctx context.Context, threadID int64) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE thread_id = ? ORDER BY id", threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments of thread %d: %w", threadID, err)
	}
	defer rows.Close()

	return scanComments(rows)
}

// UpdateBody replaces the text of a comment
func (r *CommentRepository) UpdateBody(ctx context.Context, id int64, body string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE comments SET body = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", body, id)
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", id, err)
	}
	return checkAffected(res)
}

// Delete removes a comment with all its replies and refreshes the thread's comment count
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		var threadID int64
		err := tx.QueryRowContext(ctx, "SELECT thread_id FROM comments WHERE id = ?", id).Scan(&threadID)
		if err != nil {
			return fmt.Errorf("failed to get comment %d: %w", id, notFound(err))
		}

		// replies go through ON DELETE CASCADE on parent_id
		if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete comment %d: %w", id, err)
		}
		return recountComments(ctx, tx, threadID)
	})
}

func recountComments(ctx context.Context, q querier, threadID int64) error {
	_, err := q.ExecContext(ctx,
		`UPDATE threads SET comment_count = (SELECT COUNT(*) FROM comments WHERE thread_id = ?) WHERE id = ?`,
		threadID, threadID)
	if err != nil {
		return fmt.Errorf("failed to recount comments of thread %d: %w", threadID, err)
	}
	return nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func scanComments(rows *sql.Rows) ([]*models.Comment, error) {
	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		var parent sql.NullInt64
		err := rows.Scan(&c.ID, &c.ThreadID, &c.UserID, &parent, &c.Author, &c.Body, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if parent.Valid {
			p := parent.Int64
			c.ParentID = &p
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

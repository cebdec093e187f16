package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/tour-planner-go/internal/database"
	"github.com/jengzang/tour-planner-go/internal/models"
)

const threadColumns = `id, user_id, title, content, author, view_count, heart, pdf_path,
	comment_count, area, created_at, updated_at`

// ThreadRepository handles database operations for threads and their likes
type ThreadRepository struct {
	db *sql.DB
}

// NewThreadRepository creates a new thread repository
func NewThreadRepository(db *sql.DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

// Create inserts a thread and fills in its ID
func (r *ThreadRepository) Create(ctx context.Context, t *models.Thread) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO threads (user_id, title, content, author, pdf_path, area) VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.Content, t.Author, t.PDFPath, t.Area,
	)
	if err != nil {
		return fmt.Errorf("failed to insert thread: %w", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read thread id: %w", err)
	}
	return nil
}

// GetByID retrieves a single thread
func (r *ThreadRepository) GetByID(ctx context.Context, id int64) (*models.Thread, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+threadColumns+" FROM threads WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query thread %d: %w", id, err)
	}
	defer rows.Close()

	threads, err := scanThreads(rows)
	if err != nil {
		return nil, err
	}
	if len(threads) == 0 {
		return nil, ErrNotFound
	}
	return &threads[0], nil
}

// List retrieves threads newest first with filtering and pagination
func (r *ThreadRepository) List(ctx context.Context, filter models.ThreadFilter) ([]models.Thread, int64, error) {
	filter.Normalize()

	var conditions []string
	var args []interface{}

	if filter.Area != "" {
		conditions = append(conditions, "area = ?")
		args = append(args, filter.Area)
	}
	if filter.Keyword != "" {
		conditions = append(conditions, "(title LIKE ? OR content LIKE ?)")
		kw := "%" + filter.Keyword + "%"
		args = append(args, kw, kw)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM threads"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count threads: %w", err)
	}

	query := "SELECT " + threadColumns + " FROM threads" + where + " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query threads: %w", err)
	}
	defer rows.Close()

	threads, err := scanThreads(rows)
	if err != nil {
		return nil, 0, err
	}
	return threads, total, nil
}

// Update overwrites the editable fields of a thread
func (r *ThreadRepository) Update(ctx context.Context, id int64, req models.ThreadRequest) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE threads SET title = ?, content = ?, pdf_path = ?, area = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		req.Title, req.Content, req.PDFPath, req.Area, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update thread %d: %w", id, err)
	}
	return checkAffected(res)
}

// Delete removes a thread. Comments and likes cascade.
func (r *ThreadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM threads WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete thread %d: %w", id, err)
	}
	return checkAffected(res)
}

// IncrementViews bumps the view counter
func (r *ThreadRepository) IncrementViews(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE threads SET view_count = view_count + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to increment views of thread %d: %w", id, err)
	}
	return checkAffected(res)
}

// IsLiked reports whether the user has liked the thread
func (r *ThreadRepository) IsLiked(ctx context.Context, threadID, userID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM thread_likes WHERE thread_id = ? AND user_id = ?", threadID, userID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query like: %w", err)
	}
	return n > 0, nil
}

// ToggleLike adds the user's like or removes it if present, keeping the heart counter in step
func (r *ThreadRepository) ToggleLike(ctx context.Context, threadID, userID int64) (models.LikeResult, error) {
	var result models.LikeResult

	err := database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM threads WHERE id = ?", threadID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to query thread: %w", err)
		}
		if exists == 0 {
			return ErrNotFound
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM thread_likes WHERE thread_id = ? AND user_id = ?", threadID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}
		removed, _ := res.RowsAffected()

		delta := -1
		if removed == 0 {
			if _, err := tx.ExecContext(ctx, "INSERT INTO thread_likes (thread_id, user_id) VALUES (?, ?)", threadID, userID); err != nil {
				return fmt.Errorf("failed to insert like: %w", err)
			}
			delta = 1
			result.Liked = true
		}

		if _, err := tx.ExecContext(ctx, "UPDATE threads SET heart = MAX(heart + ?, 0) WHERE id = ?", delta, threadID); err != nil {
			return fmt.Errorf("failed to update heart: %w", err)
		}
		return tx.QueryRowContext(ctx, "SELECT heart FROM threads WHERE id = ?", threadID).Scan(&result.Heart)
	})

	return result, err
}

func scanThreads(rows *sql.Rows) ([]models.Thread, error) {
	var threads []models.Thread
	for rows.Next() {
		var t models.Thread
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Content, &t.Author, &t.Count, &t.Heart,
			&t.PDFPath, &t.CommentCount, &t.Area, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

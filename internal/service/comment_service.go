package service

import (
	"context"

	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/repository"
	"go.uber.org/zap"
)

// CommentService handles thread comments and replies
type CommentService struct {
	comments *repository.CommentRepository
	threads  *repository.ThreadRepository
	users    *repository.UserRepository
	logger   *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(comments *repository.CommentRepository, threads *repository.ThreadRepository,
	users *repository.UserRepository, logger *zap.Logger) *CommentService {
	return &CommentService{comments: comments, threads: threads, users: users, logger: logger}
}

// Create adds a comment, or a reply when ParentID is set
func (s *CommentService) Create(ctx context.Context, caller *Claims, req models.CommentRequest) (*models.Comment, error) {
	if _, err := s.threads.GetByID(ctx, req.ThreadID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ThreadID != req.ThreadID {
			return nil, ErrParentMismatch
		}
	}

	u, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	c := &models.Comment{
		ThreadID: req.ThreadID,
		UserID:   u.ID,
		ParentID: req.ParentID,
		Author:   u.Nickname,
		Body:     req.Body,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment created", zap.Int64("comment_id", c.ID), zap.Int64("thread_id", c.ThreadID))
	return s.comments.GetByID(ctx, c.ID)
}

// Tree returns the comments of a thread as top-level comments with nested replies
func (s *CommentService) Tree(ctx context.Context, threadID int64) ([]*models.Comment, error) {
	all, err := s.comments.ListByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(all), nil
}

// BuildCommentTree nests comments under their parents, keeping input order at every level.
// Comments whose parent is missing are treated as top-level.
func BuildCommentTree(all []*models.Comment) []*models.Comment {
	byID := make(map[int64]*models.Comment, len(all))
	for _, c := range all {
		c.Replies = []*models.Comment{}
		byID[c.ID] = c
	}

	roots := []*models.Comment{}
	for _, c := range all {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}

// Update edits a comment owned by the caller
func (s *CommentService) Update(ctx context.Context, caller *Claims, id int64, req models.CommentUpdate) (*models.Comment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != caller.UserID {
		return nil, ErrForbidden
	}

	if err := s.comments.UpdateBody(ctx, id, req.Body); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, id)
}

// Delete removes a comment and its replies. Owners and admins only.
func (s *CommentService) Delete(ctx context.Context, caller *Claims, id int64) error {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != caller.UserID && !caller.IsAdmin() {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}

package service

import (
	"context"

	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/repository"
	"go.uber.org/zap"
)

// ThreadService handles community threads
type ThreadService struct {
	threads *repository.ThreadRepository
	users   *repository.UserRepository
	logger  *zap.Logger
}

// NewThreadService creates a new thread service
func NewThreadService(threads *repository.ThreadRepository, users *repository.UserRepository, logger *zap.Logger) *ThreadService {
	return &ThreadService{threads: threads, users: users, logger: logger}
}

// Create posts a thread authored by the caller
func (s *ThreadService) Create(ctx context.Context, caller *Claims, req models.ThreadRequest) (*models.Thread, error) {
	u, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	t := &models.Thread{
		UserID:  u.ID,
		Title:   req.Title,
		Content: req.Content,
		Author:  u.Nickname,
		PDFPath: req.PDFPath,
		Area:    req.Area,
	}
	if err := s.threads.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("thread created", zap.Int64("thread_id", t.ID), zap.Int64("user_id", u.ID))
	return s.threads.GetByID(ctx, t.ID)
}

// List returns a page of threads
func (s *ThreadService) List(ctx context.Context, filter models.ThreadFilter) (models.Page[models.Thread], error) {
	filter.Normalize()

	threads, total, err := s.threads.List(ctx, filter)
	if err != nil {
		return models.Page[models.Thread]{}, err
	}
	return models.NewPage(threads, total, filter.Page, filter.PageSize), nil
}

// Get reads a thread, counting the view. viewerID 0 is an anonymous reader.
func (s *ThreadService) Get(ctx context.Context, id, viewerID int64) (*models.Thread, error) {
	if err := s.threads.IncrementViews(ctx, id); err != nil {
		return nil, err
	}

	t, err := s.threads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		if t.LikedByCurrentUser, err = s.threads.IsLiked(ctx, id, viewerID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Update edits a thread owned by the caller
func (s *ThreadService) Update(ctx context.Context, caller *Claims, id int64, req models.ThreadRequest) (*models.Thread, error) {
	t, err := s.threads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != caller.UserID {
		return nil, ErrForbidden
	}

	if err := s.threads.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.threads.GetByID(ctx, id)
}

// Delete removes a thread owned by the caller. Admins may delete any thread.
func (s *ThreadService) Delete(ctx context.Context, caller *Claims, id int64) error {
	t, err := s.threads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.UserID != caller.UserID && !caller.IsAdmin() {
		return ErrForbidden
	}

	if err := s.threads.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("thread deleted", zap.Int64("thread_id", id), zap.Int64("by", caller.UserID))
	return nil
}

// ToggleLike flips the caller's like on a thread
func (s *ThreadService) ToggleLike(ctx context.Context, caller *Claims, id int64) (models.LikeResult, error) {
	return s.threads.ToggleLike(ctx, id, caller.UserID)
}

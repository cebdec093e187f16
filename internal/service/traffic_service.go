package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/pricing"
	"github.com/jengzang/tour-planner-go/internal/repository"
	"go.uber.org/zap"
)

var spendTimePattern = regexp.MustCompile(`^\d{2,}:[0-5]\d:[0-5]\d$`)

// TrafficService records the transit costs of tours
type TrafficService struct {
	repo    *repository.TrafficRepository
	planner *PlannerService
	logger  *zap.Logger
}

// NewTrafficService creates a traffic service
func NewTrafficService(repo *repository.TrafficRepository, planner *PlannerService, logger *zap.Logger) *TrafficService {
	return &TrafficService{repo: repo, planner: planner, logger: logger}
}

// Create stores one record
func (s *TrafficService) Create(ctx context.Context, req models.TrafficRequest) (*models.Traffic, error) {
	if !spendTimePattern.MatchString(req.SpendTime) {
		return nil, fmt.Errorf("%w: spendTime must be HH:MM:SS", ErrInvalidInput)
	}

	t := &models.Traffic{TourID: req.TourID, Vehicle: req.Vehicle, SpendTime: req.SpendTime, Price: req.Price}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ByTour lists the records of a tour with their total
func (s *TrafficService) ByTour(ctx context.Context, tourID int64) (models.TrafficSummary, error) {
	records, err := s.repo.ListByTour(ctx, tourID)
	if err != nil {
		return models.TrafficSummary{}, err
	}

	sum := models.TrafficSummary{TourID: tourID, Records: records}
	for _, r := range records {
		sum.Total += r.Price
	}
	return sum, nil
}

// SaveSelectedRoute stores one record per transit leg of the session's selected route
func (s *TrafficService) SaveSelectedRoute(ctx context.Context, sessionID string, tourID int64) (models.TrafficSummary, error) {
	sel, ok, err := s.planner.SelectedRoute(sessionID)
	if err != nil {
		return models.TrafficSummary{}, err
	}
	if !ok {
		return models.TrafficSummary{}, fmt.Errorf("%w: no route selected", ErrInvalidInput)
	}

	breakdown := pricing.Breakdown(sel.Steps)
	records := make([]models.Traffic, len(breakdown.Legs))
	for i, leg := range breakdown.Legs {
		records[i] = models.Traffic{TourID: tourID, Vehicle: leg.Vehicle, SpendTime: leg.SpendTime, Price: leg.Price}
	}

	if err := s.repo.CreateBatch(ctx, records); err != nil {
		return models.TrafficSummary{}, err
	}

	s.logger.Info("route traffic saved",
		zap.String("session_id", sessionID),
		zap.Int64("tour_id", tourID),
		zap.Int("legs", len(records)),
		zap.Int("total", breakdown.Total),
	)
	return models.TrafficSummary{TourID: tourID, Records: records, Total: breakdown.Total}, nil
}

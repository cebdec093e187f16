package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/tour-planner-go/internal/database"
	"github.com/jengzang/tour-planner-go/internal/models"
)

// TrafficRepository handles database operations for traffic cost records
type TrafficRepository struct {
	db *sql.DB
}

// NewTrafficRepository creates a new traffic repository
func NewTrafficRepository(db *sql.DB) *TrafficRepository {
	return &TrafficRepository{db: db}
}

// Create inserts one record
func (r *TrafficRepository) Create(ctx context.Context, t *models.Traffic) error {
	return insertTraffic(ctx, r.db, t)
}

// CreateBatch inserts all records in a single transaction
func (r *TrafficRepository) CreateBatch(ctx context.Context, records []models.Traffic) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		for i := range records {
			if err := insertTraffic(ctx, tx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByTour returns the records of a tour in insertion order
func (r *TrafficRepository) ListByTour(ctx context.Context, tourID int64) ([]models.Traffic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tour_id, vehicle, spend_time, price, created_at FROM traffic WHERE tour_id = ? ORDER BY id`,
		tourID)
	if err != nil {
		return nil, fmt.Errorf("failed to query traffic of tour %d: %w", tourID, err)
	}
	defer rows.Close()

	records := []models.Traffic{}
	for rows.Next() {
		var t models.Traffic
		if err := rows.Scan(&t.ID, &t.TourID, &t.Vehicle, &t.SpendTime, &t.Price, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan traffic: %w", err)
		}
		records = append(records, t)
	}
	return records, rows.Err()
}

func insertTraffic(ctx context.Context, q querier, t *models.Traffic) error {
	res, err := q.ExecContext(ctx,
		"INSERT INTO traffic (tour_id, vehicle, spend_time, price) VALUES (?, ?, ?, ?)",
		t.TourID, t.Vehicle, t.SpendTime, t.Price)
	if err != nil {
		return fmt.Errorf("failed to insert traffic: %w", err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read traffic id: %w", err)
	}
	return nil
}

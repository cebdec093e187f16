package models

import "time"

// Traffic is one persisted transit leg cost of a tour
type Traffic struct {
	ID        int64     `json:"trafficId" db:"id"`
	TourID    int64     `json:"tourId" db:"tour_id"`
	Vehicle   string    `json:"vehicle" db:"vehicle"`
	SpendTime string    `json:"spendTime" db:"spend_time"` // HH:MM:SS
	Price     int       `json:"price" db:"price"`
	CreatedAt time.Time `json:"createDate" db:"created_at"`
}

// TrafficRequest is the body of POST /traffic
type TrafficRequest struct {
	TourID    int64  `json:"tourId" binding:"required"`
	Vehicle   string `json:"vehicle" binding:"required"`
	SpendTime string `json:"spendTime" binding:"required"`
	Price     int    `json:"price" binding:"min=0"`
}

// TrafficSummary lists the records of a tour with their total price
type TrafficSummary struct {
	TourID  int64     `json:"tourId"`
	Records []Traffic `json:"records"`
	Total   int       `json:"total"`
}

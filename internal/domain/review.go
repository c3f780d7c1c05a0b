package domain

import "time"

type Review struct {
	ID           int64
	ListingID    int64
	ReviewerName string
	Rating       int // 1..5
	Comment      string
	CreatedAt    time.Time
}

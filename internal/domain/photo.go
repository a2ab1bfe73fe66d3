// Package domain contains the core data types for the photo journal.
// This package has no dependencies beyond google/uuid and is imported by
// every other internal package (repo, service, timeline, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// PhotoRecord is a single journal entry: one photo taken at a named location
// on a calendar day. Only the calendar day of Date is significant.
type PhotoRecord struct {
	ID           uuid.UUID `json:"id"`
	Date         time.Time `json:"date" validate:"required"`
	LocationName string    `json:"location_name" validate:"required,notblank"`
	PhotoURL     string    `json:"photo_url" validate:"required,url"`
	CreatedAt    time.Time `json:"created_at"`
}

// Photo is a PhotoRecord stripped of its location. It belongs to exactly one
// Segment.
type Photo struct {
	Date time.Time
	URL  string
}

// Photo returns the record as a Photo.
func (r PhotoRecord) Photo() Photo {
	return Photo{Date: r.Date, URL: r.PhotoURL}
}

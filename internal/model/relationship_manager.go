package model

import (
	"time"

	"github.com/google/uuid"
)

// RelationshipManager is the salesperson assigned to leads and bookings.
// RMCode is auto-generated from name initials when left blank ("Rahul Sharma"
// → "RS", then "RS01" if taken).
type RelationshipManager struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RMName    string    `gorm:"not null"`
	RMCode    string    `gorm:"uniqueIndex;not null"`
	Email     *string
	Phone     *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's pluralization (relationship_managers reads fine,
// but keep the table name explicit for the raw report queries).
func (RelationshipManager) TableName() string { return "relationship_managers" }

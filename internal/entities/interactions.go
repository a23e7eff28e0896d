package entities

import "time"

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "NOT_STARTED"
	StatusInProgress ProgressStatus = "IN_PROGRESS"
	StatusCompleted  ProgressStatus = "COMPLETED"
)

const (
	MinPercentage = 0
	MaxPercentage = 100

	MinRating = 1
	MaxRating = 5
)

// StatusForPercentage derives a progress status: 0 is NOT_STARTED, 100 is
// COMPLETED, anything in between is IN_PROGRESS. Callers validate the range.
func StatusForPercentage(percentage int) ProgressStatus {
	switch {
	case percentage <= MinPercentage:
		return StatusNotStarted
	case percentage >= MaxPercentage:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

type Progress struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;uniqueIndex:idx_progress_user_resource" json:"userId"`
	ResourceID   uint           `gorm:"not null;uniqueIndex:idx_progress_user_resource;index" json:"resourceId"`
	Status       ProgressStatus `gorm:"size:20;not null;default:'NOT_STARTED'" json:"status"`
	Percentage   int            `gorm:"not null;default:0" json:"percentage"`
	LastAccessed time.Time      `json:"lastAccessed"`
	User         *User          `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Resource     *Resource      `gorm:"foreignKey:ResourceID;constraint:OnDelete:RESTRICT" json:"resource,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (Progress) TableName() string {
	return "progress"
}

type Bookmark struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_resource" json:"userId"`
	ResourceID uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_resource;index" json:"resourceId"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Resource   *Resource `gorm:"foreignKey:ResourceID;constraint:OnDelete:RESTRICT" json:"resource,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_review_user_resource" json:"userId"`
	ResourceID uint      `gorm:"not null;uniqueIndex:idx_review_user_resource;index" json:"resourceId"`
	Rating     int       `gorm:"type:smallint;not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Resource   *Resource `gorm:"foreignKey:ResourceID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Review) TableName() string {
	return "reviews"
}

// ValidRating reports whether r is within the accepted star range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

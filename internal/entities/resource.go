package entities

import (
	"strings"
	"time"
)

type ResourceSource string

const (
	SourceCoursera    ResourceSource = "COURSERA"
	SourceEdX         ResourceSource = "EDX"
	SourceKhanAcademy ResourceSource = "KHAN_ACADEMY"
	SourceYouTube     ResourceSource = "YOUTUBE"
	SourceOther       ResourceSource = "OTHER"
)

type ResourceType string

const (
	TypeVideo    ResourceType = "VIDEO"
	TypeArticle  ResourceType = "ARTICLE"
	TypeCourse   ResourceType = "COURSE"
	TypeDocument ResourceType = "DOCUMENT"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func ParseResourceSource(s string) (ResourceSource, bool) {
	v := ResourceSource(normalizeEnum(s))
	switch v {
	case SourceCoursera, SourceEdX, SourceKhanAcademy, SourceYouTube, SourceOther:
		return v, true
	}
	return "", false
}

func ParseResourceType(s string) (ResourceType, bool) {
	v := ResourceType(normalizeEnum(s))
	switch v {
	case TypeVideo, TypeArticle, TypeCourse, TypeDocument:
		return v, true
	}
	return "", false
}

func ParseDifficulty(s string) (Difficulty, bool) {
	v := Difficulty(normalizeEnum(s))
	switch v {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return v, true
	}
	return "", false
}

// SourceFromHost maps well-known provider hosts to a ResourceSource.
func SourceFromHost(host string) ResourceSource {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	switch {
	case host == "coursera.org" || strings.HasSuffix(host, ".coursera.org"):
		return SourceCoursera
	case host == "edx.org" || strings.HasSuffix(host, ".edx.org"):
		return SourceEdX
	case host == "khanacademy.org" || strings.HasSuffix(host, ".khanacademy.org"):
		return SourceKhanAcademy
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") || host == "youtu.be":
		return SourceYouTube
	default:
		return SourceOther
	}
}

type Resource struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:500;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	URL         string         `gorm:"size:2048;not null;index" json:"url"`
	Source      ResourceSource `gorm:"size:20;not null;default:'OTHER'" json:"source"`
	Type        ResourceType   `gorm:"size:20;not null;index" json:"type"`
	Difficulty  Difficulty     `gorm:"size:20;not null;index" json:"difficulty"`
	SubjectID   uint           `gorm:"not null;index" json:"subjectId"`
	Subject     *Subject       `gorm:"foreignKey:SubjectID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"subject,omitempty"`
	Stats       *ResourceStats `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE" json:"stats,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (Resource) TableName() string {
	return "resources"
}

// ResourceStats holds aggregates recomputed by the stats refresh task.
type ResourceStats struct {
	ResourceID      uint      `gorm:"primaryKey;autoIncrement:false" json:"resourceId"`
	ReviewCount     int64     `json:"reviewCount"`
	AverageRating   float64   `json:"averageRating"`
	BookmarkCount   int64     `json:"bookmarkCount"`
	CompletionCount int64     `json:"completionCount"`
	RefreshedAt     time.Time `json:"refreshedAt"`
}

func (ResourceStats) TableName() string {
	return "resource_stats"
}

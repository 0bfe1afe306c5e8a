package model

import "time"

const (
	ContentTypeGuide  = "guide"
	ContentTypeEbook  = "ebook"
	ContentTypeCourse = "course"
)

const (
	FormatPDF = "pdf"
	FormatMP4 = "mp4"
)

// ResourceStatus is the moderation state of a library resource.
type ResourceStatus string

const (
	StatusPending  ResourceStatus = "pending"
	StatusApproved ResourceStatus = "approved"
	StatusRejected ResourceStatus = "rejected"
)

// Valid reports whether s is one of the three moderation states.
func (s ResourceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Resource represents an entry in the community library
type Resource struct {
	ID               int            `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	ContentType      string         `json:"content_type"` // "guide", "ebook" or "course"
	URL              string         `json:"url"`
	ThumbnailURL     string         `json:"thumbnail_url"`
	Category         string         `json:"category"`
	Author           string         `json:"author"`
	Format           string         `json:"format"` // "pdf" or "mp4"
	UploaderID       int            `json:"uploader_id"`
	UploaderUsername *string        `json:"uploader_username,omitempty"` // From LEFT JOIN, nil if uploader gone
	Status           ResourceStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// CreateResourceRequest is used for uploading a new resource.
// Uploader and status are never taken from the body.
type CreateResourceRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	ContentType  string `json:"content_type" binding:"required,oneof=guide ebook course"`
	URL          string `json:"url" binding:"required,url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Category     string `json:"category"`
	Author       string `json:"author"`
	Format       string `json:"format" binding:"required,oneof=pdf mp4"`
}

// ModerateResourceRequest is the body for PATCH /resources/:id/status
type ModerateResourceRequest struct {
	Status ResourceStatus `json:"status" binding:"required"`
}

// ResourceFilters contains the optional query parameters for listing
// resources. Status is only honored for admin callers.
type ResourceFilters struct {
	Search      *string
	ContentType *string
	Category    *string
	Status      *string
}

package entities

import "time"

// DefaultAnnouncementCategory is applied when a request omits the category.
const DefaultAnnouncementCategory = "general"

type Announcement struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnnouncementPatch carries a partial update. Nil fields are left untouched.
type AnnouncementPatch struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
	IsPinned *bool   `json:"isPinned,omitempty"`
}

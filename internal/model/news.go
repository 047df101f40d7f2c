package model

import "time"

// NewsType classifies a news item.
type NewsType string

const (
	NewsTypeCrime          NewsType = "crime"
	NewsTypeInfrastructure NewsType = "infrastructure"
	NewsTypeHazard         NewsType = "hazard"
	NewsTypeSocial         NewsType = "social"
)

// IsValid checks if the news type is one of the known values.
func (t NewsType) IsValid() bool {
	switch t {
	case NewsTypeCrime, NewsTypeInfrastructure, NewsTypeHazard, NewsTypeSocial:
		return true
	}
	return false
}

// NewsItem represents a geotagged news record.
// NewsSource is the creating user's name and never changes after creation.
// Coordinates holds the point in well-known text ("POINT (1 2)") or nil
// when the item carries no location.
type NewsItem struct {
	ID          int64     `json:"id"`
	NewsSource  string    `json:"news_source"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Coordinates *string   `json:"coordinates,omitempty"`
	Type        NewsType  `json:"type"`
	Date        time.Time `json:"date"`
	URL         string    `json:"url"`
	ProcessedAt time.Time `json:"processed_at"`
}

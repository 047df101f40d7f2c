package dto

import (
	"time"

	"github.com/geonews/geonews/internal/model"
)

// newsDateLayout is the wire format for the news date field.
const newsDateLayout = "2006-01-02"

// NewsRequest represents the request body for creating or updating a
// news item. The same shape is used for both: an update overwrites all
// client-settable fields. The news source is never part of the payload.
type NewsRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Coordinates *string `json:"coordinates,omitempty"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	URL         string  `json:"url"`
}

// ParseDate parses the date field ("2006-01-02").
func (r *NewsRequest) ParseDate() (time.Time, error) {
	return time.Parse(newsDateLayout, r.Date)
}

// NewsResponse represents a news item in API responses.
type NewsResponse struct {
	ID          int64     `json:"id"`
	NewsSource  string    `json:"news_source"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Coordinates *string   `json:"coordinates,omitempty"`
	Type        string    `json:"type"`
	Date        string    `json:"date"`
	URL         string    `json:"url"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ToNewsResponse converts a NewsItem model to NewsResponse DTO.
func ToNewsResponse(item *model.NewsItem) *NewsResponse {
	return &NewsResponse{
		ID:          item.ID,
		NewsSource:  item.NewsSource,
		Title:       item.Title,
		Description: item.Description,
		Coordinates: item.Coordinates,
		Type:        string(item.Type),
		Date:        item.Date.Format(newsDateLayout),
		URL:         item.URL,
		ProcessedAt: item.ProcessedAt,
	}
}

// ToNewsListResponse converts a slice of NewsItem models to DTOs.
func ToNewsListResponse(items []*model.NewsItem) []NewsResponse {
	out := make([]NewsResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *ToNewsResponse(item))
	}
	return out
}

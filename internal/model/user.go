// Package model defines domain entities for the application.
package model

// User represents a registered account that can publish news items.
// Name doubles as the news_source value on every item the user creates.
type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
}

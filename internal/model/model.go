// Package model defines data structures used throughout the application.
package model

// User represents a registered account. The ID is assigned by the store on
// creation; login is unique across all users. The password is stored exactly
// as submitted unless password hashing is enabled (see the password package).
type User struct {
	ID       string `json:"_id"`
	Login    string `json:"login"`
	Password string `json:"-"`
}

// Item represents a stored item owned by a single user.
type Item struct {
	ID     string `json:"_id"`
	Title  string `json:"title"`
	UserID string `json:"userId"`
}

// ItemRecord is the wire representation of an item returned by GET /items.
// The owning user id is deliberately absent: the listing is already scoped
// to the caller, matching the original document-store projection that
// excluded the userId field. The id field keeps the document-store name.
type ItemRecord struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// Record converts a stored item to its wire representation.
func (i Item) Record() ItemRecord {
	return ItemRecord{
		ID:    i.ID,
		Title: i.Title,
	}
}

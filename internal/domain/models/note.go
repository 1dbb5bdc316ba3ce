// Package models defines the domain types for stratanote.
package models

import "time"

// AppName is the display name used for document-title projections.
const AppName = "StrataNote"

// File is a single editable text document.
//
// The ID is assigned once at creation and never changes; it is the sole
// identity key for lookup, update, and deletion. Name is an auto-generated
// display label and is optional metadata, not part of the identity contract.
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Content   string    `json:"content"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

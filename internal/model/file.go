package model

import "time"

// File represents a proof-of-purchase attachment stored in the
// content-addressed archive. An item owns its files: deleting the item
// deletes the rows (the archived bytes are the caller's responsibility).
type File struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	Path       string    `json:"path"`
	MIME       string    `json:"mime"`
	Size       int64     `json:"size"`
	Checksum   string    `json:"checksum"`
	UploadedAt time.Time `json:"uploaded_at"`
}

package repository

import (
	"encoding/json"
	"reflect"
	"time"
)

// Metadata holds versioning info for optimistic locking.
type Metadata struct {
	LastUpdate int64 `json:"lastUpdate"` // Unix timestamp in milliseconds
}

// Post models a single post entry.
type Post struct {
	ID       int64  `json:"id"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	Status   string `json:"status" validate:"required,oneof=publish draft pending"`
	Date     string `json:"date" validate:"required"`
	Revision int    `json:"revision" validate:"min=0"`
}

// PostDocument represents the persisted JSON structure.
type PostDocument struct {
	Metadata Metadata `json:"metadata"`
	Posts    []Post   `json:"posts" validate:"dive"`
	NextID   int64    `json:"nextId" validate:"min=1"`
}

// ApplyDefaults sets fallback values after decode.
func (d *PostDocument) ApplyDefaults() {
	if d.Posts == nil {
		d.Posts = []Post{}
	}
	for i := range d.Posts {
		d.Posts[i].ApplyDefaults()
	}
	if d.NextID < 1 {
		d.NextID = 1
	}
	// NextID must stay ahead of every persisted id
	for _, p := range d.Posts {
		if p.ID >= d.NextID {
			d.NextID = p.ID + 1
		}
	}
}

// ApplyDefaults sets fallback values on a single post.
func (p *Post) ApplyDefaults() {
	if p.Status == "" {
		p.Status = "publish"
	}
	if p.Date == "" {
		p.Date = time.Now().UTC().Format(time.RFC3339)
	}
}

// ArePostDocumentsEqual compares two documents ignoring Metadata.
// Uses JSON serialization for flexible comparison.
func ArePostDocumentsEqual(a, b *PostDocument) bool {
	if a == nil || b == nil {
		return a == b
	}

	aBytes, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bBytes, err := json.Marshal(b)
	if err != nil {
		return false
	}

	var aMap, bMap map[string]interface{}
	if err := json.Unmarshal(aBytes, &aMap); err != nil {
		return false
	}
	if err := json.Unmarshal(bBytes, &bMap); err != nil {
		return false
	}

	delete(aMap, "metadata")
	delete(bMap, "metadata")

	return reflect.DeepEqual(aMap, bMap)
}

package model

import "context"

// Document is the single aggregate persisted by every backend.
type Document struct {
	Users      []User `json:"users"`
	Posts      []Post `json:"posts"`
	NextPostID int64  `json:"nextPostId,omitempty"`
}

// NewDocument returns an empty document.
func NewDocument() Document {
	return Document{Users: []User{}, Posts: []Post{}}
}

// Normalize replaces nil slices so the document always serializes as arrays.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Posts == nil {
		d.Posts = []Post{}
	}
	for i := range d.Posts {
		if d.Posts[i].Comments == nil {
			d.Posts[i].Comments = []Comment{}
		}
	}
}

// FindUser returns the index of the user with the given username or -1.
func (d *Document) FindUser(username string) int {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return i
		}
	}
	return -1
}

// FindPost returns the index of the post with the given id or -1.
func (d *Document) FindPost(id int64) int {
	for i := range d.Posts {
		if d.Posts[i].ID == id {
			return i
		}
	}
	return -1
}

// AllocatePostID returns the next post id and advances the counter.
// Ids are never reused, even after the highest post has been removed.
func (d *Document) AllocatePostID() int64 {
	var maxID int64
	for _, p := range d.Posts {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	if d.NextPostID <= maxID {
		d.NextPostID = maxID + 1
	}

	id := d.NextPostID
	d.NextPostID++
	return id
}

// DocumentBackend loads and saves the whole document. There are no partial updates.
type DocumentBackend interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

// DocumentStore runs units of work against the document.
// Update units are serialized; View units observe the last completed save.
type DocumentStore interface {
	View(ctx context.Context, fn func(doc Document) error) error
	Update(ctx context.Context, fn func(doc *Document) error) error
}

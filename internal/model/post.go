package model

// Post is a user-authored entry with likes and comments.
type Post struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Author   string    `json:"author"`
	Likes    int       `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Comment is a single append-only remark on a post.
type Comment struct {
	Comment string `json:"comment"`
	Author  string `json:"author"`
}

package models

// Post is a short text authored by an account. Deleted posts stay in the
// table with Active unset.
type Post struct {
	ID        int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CreatedAt int64  `gorm:"autoCreateTime;not null;column:created_at" json:"created_at"`
	Active    bool   `gorm:"not null;default:true;column:active" json:"active"`
	Text      string `gorm:"type:varchar(200);not null;column:text" json:"text"`
	AuthorID  int64  `gorm:"not null;index;column:author_id" json:"author_id"`

	// Expanded view
	Author *Account `gorm:"-" json:"author,omitempty"`
	NLikes *int64   `gorm:"-" json:"n_likes,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// PostQuery filters active posts.
type PostQuery struct {
	AuthorID *int64 `json:"author_id,omitempty"`
}

package models

// Account is a registered user. PasswordHash never leaves the account service.
type Account struct {
	ID           int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CreatedAt    int64  `gorm:"autoCreateTime;not null;column:created_at" json:"created_at"`
	Active       bool   `gorm:"not null;default:true;column:active" json:"active"`
	Username     string `gorm:"type:varchar(32);not null;uniqueIndex;column:username" json:"username"`
	PasswordHash string `gorm:"type:varchar(72);not null;column:password" json:"-"`
	FirstName    string `gorm:"type:varchar(32);not null;column:first_name" json:"first_name"`
	LastName     string `gorm:"type:varchar(32);not null;column:last_name" json:"last_name"`

	// Expanded view
	FollowsYou    *bool  `gorm:"-" json:"follows_you,omitempty"`
	FollowedByYou *bool  `gorm:"-" json:"followed_by_you,omitempty"`
	NFollowers    *int64 `gorm:"-" json:"n_followers,omitempty"`
	NFollowing    *int64 `gorm:"-" json:"n_following,omitempty"`
	NPosts        *int64 `gorm:"-" json:"n_posts,omitempty"`
	NLikes        *int64 `gorm:"-" json:"n_likes,omitempty"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

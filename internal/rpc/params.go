package rpc

import "github.com/buzzblog/backend/internal/models"

// Carrier is implemented by every parameter struct.
type Carrier interface {
	Meta() models.RequestMetadata
}

// Params is embedded in every parameter struct.
type Params struct {
	Metadata models.RequestMetadata `json:"request_metadata"`
}

// Meta returns the request metadata
func (p Params) Meta() models.RequestMetadata {
	return p.Metadata
}

// With returns params carrying md
func With(md models.RequestMetadata) Params {
	return Params{Metadata: md}
}

// Relation store

// PairIDParams addresses a pair by id.
type PairIDParams struct {
	Params
	ID int64 `json:"id"`
}

// PairParams names a pair by its elements.
type PairParams struct {
	Params
	Domain     string `json:"domain"`
	FirstElem  int64  `json:"first_elem"`
	SecondElem int64  `json:"second_elem"`
}

// PairFetchParams selects a page of pairs.
type PairFetchParams struct {
	Params
	Query  models.UniquepairQuery `json:"query"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

// PairCountParams selects the pairs to count.
type PairCountParams struct {
	Params
	Query models.UniquepairQuery `json:"query"`
}

// Follow

// FollowIDParams addresses a follow by id.
type FollowIDParams struct {
	Params
	FollowID int64 `json:"follow_id"`
}

// CheckFollowParams names a follower and a followee.
type CheckFollowParams struct {
	Params
	FollowerID int64 `json:"follower_id"`
	FolloweeID int64 `json:"followee_id"`
}

// ListFollowsParams selects a page of follows.
type ListFollowsParams struct {
	Params
	Query  models.FollowQuery `json:"query"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// Like

// LikeIDParams addresses a like by id.
type LikeIDParams struct {
	Params
	LikeID int64 `json:"like_id"`
}

// ListLikesParams selects a page of likes.
type ListLikesParams struct {
	Params
	Query  models.LikeQuery `json:"query"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// Post

// PostIDParams addresses a post by id.
type PostIDParams struct {
	Params
	PostID int64 `json:"post_id"`
}

// CreatePostParams carries the text of a new post.
type CreatePostParams struct {
	Params
	Text string `json:"text"`
}

// ListPostsParams selects a page of posts.
type ListPostsParams struct {
	Params
	Query  models.PostQuery `json:"query"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// AuthorIDParams addresses the posts of an author.
type AuthorIDParams struct {
	Params
	AuthorID int64 `json:"author_id"`
}

// Account

// AccountIDParams addresses an account by id.
type AccountIDParams struct {
	Params
	AccountID int64 `json:"account_id"`
}

// AuthenticateParams carries login credentials.
type AuthenticateParams struct {
	Params
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateAccountParams carries the attributes of a new account.
type CreateAccountParams struct {
	Params
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateAccountParams carries the new attributes of an account.
type UpdateAccountParams struct {
	Params
	AccountID int64  `json:"account_id"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

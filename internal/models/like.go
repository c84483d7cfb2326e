package models

// DomainLike tags the pairs backing likes: first = account, second = post.
const DomainLike = "like"

// Like is an account -> post relation. Account and Post are only set on
// expanded views; Post is then itself expanded.
type Like struct {
	ID        int64    `json:"id"`
	CreatedAt int64    `json:"created_at"`
	AccountID int64    `json:"account_id"`
	PostID    int64    `json:"post_id"`
	Account   *Account `json:"account,omitempty"`
	Post      *Post    `json:"post,omitempty"`
}

// LikeFromPair builds the standard view of a like pair.
func LikeFromPair(p *Uniquepair) *Like {
	return &Like{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		AccountID: p.FirstElem,
		PostID:    p.SecondElem,
	}
}

// LikeQuery filters likes by account and/or post.
type LikeQuery struct {
	AccountID *int64 `json:"account_id,omitempty"`
	PostID    *int64 `json:"post_id,omitempty"`
}

// Pairs maps the query onto the like domain.
func (q LikeQuery) Pairs() UniquepairQuery {
	return UniquepairQuery{Domain: DomainLike, FirstElem: q.AccountID, SecondElem: q.PostID}
}

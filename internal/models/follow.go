package models

// DomainFollow tags the pairs backing follows: first = follower, second = followee.
const DomainFollow = "follow"

// Follow is a follower -> followee relation. Follower and Followee are only
// set on expanded views.
type Follow struct {
	ID         int64    `json:"id"`
	CreatedAt  int64    `json:"created_at"`
	FollowerID int64    `json:"follower_id"`
	FolloweeID int64    `json:"followee_id"`
	Follower   *Account `json:"follower,omitempty"`
	Followee   *Account `json:"followee,omitempty"`
}

// FollowFromPair builds the standard view of a follow pair.
func FollowFromPair(p *Uniquepair) *Follow {
	return &Follow{
		ID:         p.ID,
		CreatedAt:  p.CreatedAt,
		FollowerID: p.FirstElem,
		FolloweeID: p.SecondElem,
	}
}

// FollowQuery filters follows by either side.
type FollowQuery struct {
	FollowerID *int64 `json:"follower_id,omitempty"`
	FolloweeID *int64 `json:"followee_id,omitempty"`
}

// Pairs maps the query onto the follow domain.
func (q FollowQuery) Pairs() UniquepairQuery {
	return UniquepairQuery{Domain: DomainFollow, FirstElem: q.FollowerID, SecondElem: q.FolloweeID}
}

package rpc

// Method names, "<service>.<operation>".
const (
	UniquepairGet    = "uniquepair.get"
	UniquepairAdd    = "uniquepair.add"
	UniquepairRemove = "uniquepair.remove"
	UniquepairFind   = "uniquepair.find"
	UniquepairFetch  = "uniquepair.fetch"
	UniquepairCount  = "uniquepair.count"

	FollowAccount          = "follow.follow_account"
	FollowRetrieveStandard = "follow.retrieve_standard_follow"
	FollowRetrieveExpanded = "follow.retrieve_expanded_follow"
	FollowDelete           = "follow.delete_follow"
	FollowList             = "follow.list_follows"
	FollowCheck            = "follow.check_follow"
	FollowCountFollowers   = "follow.count_followers"
	FollowCountFollowees   = "follow.count_followees"

	LikePost             = "like.like_post"
	LikeRetrieveStandard = "like.retrieve_standard_like"
	LikeRetrieveExpanded = "like.retrieve_expanded_like"
	LikeDelete           = "like.delete_like"
	LikeList             = "like.list_likes"
	LikeCountByAccount   = "like.count_likes_by_account"
	LikeCountOfPost      = "like.count_likes_of_post"

	PostCreate           = "post.create_post"
	PostRetrieveStandard = "post.retrieve_standard_post"
	PostRetrieveExpanded = "post.retrieve_expanded_post"
	PostDelete           = "post.delete_post"
	PostList             = "post.list_posts"
	PostCountByAuthor    = "post.count_posts_by_author"

	AccountAuthenticate     = "account.authenticate_user"
	AccountCreate           = "account.create_account"
	AccountRetrieveStandard = "account.retrieve_standard_account"
	AccountRetrieveExpanded = "account.retrieve_expanded_account"
	AccountUpdate           = "account.update_account"
	AccountDelete           = "account.delete_account"
)

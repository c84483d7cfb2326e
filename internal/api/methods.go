package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/buzzblog/backend/internal/rpc"
	"github.com/buzzblog/backend/internal/service"
)

// RegisterUniquepair exposes the relation store
func (r *Router) RegisterUniquepair(s *service.UniquepairService) {
	h := r.handler

	h.RegisterMethod(rpc.UniquepairGet, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PairIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.Get(c.Request.Context(), metadata(c), p.ID)
	})
	h.RegisterMethod(rpc.UniquepairAdd, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PairParams](raw)
		if err != nil {
			return nil, err
		}
		return s.Add(c.Request.Context(), metadata(c), p.Domain, p.FirstElem, p.SecondElem)
	})
	h.RegisterMethod(rpc.UniquepairRemove, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PairIDParams](raw)
		if err != nil {
			return nil, err
		}
		return done(s.Remove(c.Request.Context(), metadata(c), p.ID))
	})
	h.RegisterMethod(rpc.UniquepairFind, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PairParams](raw)
		if err != nil {
			return nil, err
		}
		return s.Find(c.Request.Context(), metadata(c), p.Domain, p.FirstElem, p.SecondElem)
	})
	h.RegisterMethod(rpc.UniquepairFetch, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PairFetchParams](raw)
		if err != nil {
			return nil, err
		}
		return s.Fetch(c.Request.Context(), metadata(c), p.Query, p.Limit, p.Offset)
	})
	h.RegisterMethod(rpc.UniquepairCount, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PairCountParams](raw)
		if err != nil {
			return nil, err
		}
		return s.Count(c.Request.Context(), metadata(c), p.Query)
	})
}

// RegisterFollow exposes the follow service
func (r *Router) RegisterFollow(s *service.FollowService) {
	h := r.handler

	h.RegisterMethod(rpc.FollowAccount, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.AccountIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.FollowAccount(c.Request.Context(), metadata(c), p.AccountID)
	})
	h.RegisterMethod(rpc.FollowRetrieveStandard, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.FollowIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.RetrieveStandardFollow(c.Request.Context(), metadata(c), p.FollowID)
	})
	h.RegisterMethod(rpc.FollowRetrieveExpanded, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.FollowIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.RetrieveExpandedFollow(c.Request.Context(), metadata(c), p.FollowID)
	})
	h.RegisterMethod(rpc.FollowDelete, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.FollowIDParams](raw)
		if err != nil {
			return nil, err
		}
		return done(s.DeleteFollow(c.Request.Context(), metadata(c), p.FollowID))
	})
	h.RegisterMethod(rpc.FollowList, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.ListFollowsParams](raw)
		if err != nil {
			return nil, err
		}
		return s.ListFollows(c.Request.Context(), metadata(c), p.Query, p.Limit, p.Offset)
	})
	h.RegisterMethod(rpc.FollowCheck, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.CheckFollowParams](raw)
		if err != nil {
			return nil, err
		}
		return s.CheckFollow(c.Request.Context(), metadata(c), p.FollowerID, p.FolloweeID)
	})
	h.RegisterMethod(rpc.FollowCountFollowers, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.AccountIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.CountFollowers(c.Request.Context(), metadata(c), p.AccountID)
	})
	h.RegisterMethod(rpc.FollowCountFollowees, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.AccountIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.CountFollowees(c.Request.Context(), metadata(c), p.AccountID)
	})
}

// RegisterLike exposes the like service
func (r *Router) RegisterLike(s *service.LikeService) {
	h := r.handler

	h.RegisterMethod(rpc.LikePost, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PostIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.LikePost(c.Request.Context(), metadata(c), p.PostID)
	})
	h.RegisterMethod(rpc.LikeRetrieveStandard, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.LikeIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.RetrieveStandardLike(c.Request.Context(), metadata(c), p.LikeID)
	})
	h.RegisterMethod(rpc.LikeRetrieveExpanded, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.LikeIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.RetrieveExpandedLike(c.Request.Context(), metadata(c), p.LikeID)
	})
	h.RegisterMethod(rpc.LikeDelete, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.LikeIDParams](raw)
		if err != nil {
			return nil, err
		}
		return done(s.DeleteLike(c.Request.Context(), metadata(c), p.LikeID))
	})
	h.RegisterMethod(rpc.LikeList, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.ListLikesParams](raw)
		if err != nil {
			return nil, err
		}
		return s.ListLikes(c.Request.Context(), metadata(c), p.Query, p.Limit, p.Offset)
	})
	h.RegisterMethod(rpc.LikeCountByAccount, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.AccountIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.CountLikesByAccount(c.Request.Context(), metadata(c), p.AccountID)
	})
	h.RegisterMethod(rpc.LikeCountOfPost, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PostIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.CountLikesOfPost(c.Request.Context(), metadata(c), p.PostID)
	})
}

// RegisterPost exposes the post service
func (r *Router) RegisterPost(s *service.PostService) {
	h := r.handler

	h.RegisterMethod(rpc.PostCreate, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.CreatePostParams](raw)
		if err != nil {
			return nil, err
		}
		return s.CreatePost(c.Request.Context(), metadata(c), p.Text)
	})
	h.RegisterMethod(rpc.PostRetrieveStandard, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PostIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.RetrieveStandardPost(c.Request.Context(), metadata(c), p.PostID)
	})
	h.RegisterMethod(rpc.PostRetrieveExpanded, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PostIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.RetrieveExpandedPost(c.Request.Context(), metadata(c), p.PostID)
	})
	h.RegisterMethod(rpc.PostDelete, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.PostIDParams](raw)
		if err != nil {
			return nil, err
		}
		return done(s.DeletePost(c.Request.Context(), metadata(c), p.PostID))
	})
	h.RegisterMethod(rpc.PostList, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.ListPostsParams](raw)
		if err != nil {
			return nil, err
		}
		return s.ListPosts(c.Request.Context(), metadata(c), p.Query, p.Limit, p.Offset)
	})
	h.RegisterMethod(rpc.PostCountByAuthor, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.AuthorIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.CountPostsByAuthor(c.Request.Context(), metadata(c), p.AuthorID)
	})
}

// RegisterAccount exposes the account service
func (r *Router) RegisterAccount(s *service.AccountService) {
	h := r.handler

	h.RegisterMethod(rpc.AccountAuthenticate, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.AuthenticateParams](raw)
		if err != nil {
			return nil, err
		}
		return s.AuthenticateUser(c.Request.Context(), metadata(c), p.Username, p.Password)
	})
	h.RegisterMethod(rpc.AccountCreate, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.CreateAccountParams](raw)
		if err != nil {
			return nil, err
		}
		return s.CreateAccount(c.Request.Context(), metadata(c), p.Username, p.Password, p.FirstName, p.LastName)
	})
	h.RegisterMethod(rpc.AccountRetrieveStandard, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.AccountIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.RetrieveStandardAccount(c.Request.Context(), metadata(c), p.AccountID)
	})
	h.RegisterMethod(rpc.AccountRetrieveExpanded, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.AccountIDParams](raw)
		if err != nil {
			return nil, err
		}
		return s.RetrieveExpandedAccount(c.Request.Context(), metadata(c), p.AccountID)
	})
	h.RegisterMethod(rpc.AccountUpdate, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.UpdateAccountParams](raw)
		if err != nil {
			return nil, err
		}
		return s.UpdateAccount(c.Request.Context(), metadata(c), p.AccountID, p.Password, p.FirstName, p.LastName)
	})
	h.RegisterMethod(rpc.AccountDelete, func(c *gin.Context, raw json.RawMessage) (interface{}, error) {
		p, err := bind[rpc.AccountIDParams](raw)
		if err != nil {
			return nil, err
		}
		return done(s.DeleteAccount(c.Request.Context(), metadata(c), p.AccountID))
	})
}

package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindRoundTrip(t *testing.T) {
	for kind := Internal; kind <= Connectivity; kind++ {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, kind, ParseKind(kind.String()))
		})
	}
	assert.Equal(t, Internal, ParseKind("bogus"))
}

func TestErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same sentinel", FollowNotFound, FollowNotFound, true},
		{"rebuilt instance", New("follow", NotFound), FollowNotFound, true},
		{"wrapped with fmt", fmt.Errorf("retrieve: %w", PostNotFound), PostNotFound, true},
		{"other entity", LikeNotFound, FollowNotFound, false},
		{"other kind", FollowAlreadyExists, FollowNotFound, false},
		{"plain error", errors.New("boom"), FollowNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestKindOf(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("call account: %w", Unreachable("account", cause))

	assert.Equal(t, Connectivity, KindOf(err))
	assert.Equal(t, "account", EntityOf(err))
	assert.True(t, IsKind(err, Connectivity))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "post: invalid_attributes", PostInvalidAttributes.Error())
	assert.Equal(t, "follow: connectivity: refused",
		Unreachable("follow", errors.New("refused")).Error())
}

package discovery

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buzzblog/backend/internal/errs"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		in      string
		want    Endpoint
		wantErr bool
	}{
		{"localhost:9090", Endpoint{Host: "localhost", Port: 9090}, false},
		{"10.0.0.1:80", Endpoint{Host: "10.0.0.1", Port: 80}, false},
		{"[::1]:8080", Endpoint{Host: "::1", Port: 8080}, false},
		{"nohost", Endpoint{}, true},
		{"host:http", Endpoint{}, true},
		{"host:70000", Endpoint{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEndpoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	_, err := New(map[string][]string{"post": {}})
	assert.Error(t, err)

	_, err = New(map[string][]string{"post": {"post"}})
	assert.Error(t, err)

	l, err := New(map[string][]string{"post": {"a:1", "b:2"}})
	require.NoError(t, err)
	assert.Len(t, l.Endpoints("post"), 2)
}

func TestUniformRandomCoversAllReplicas(t *testing.T) {
	eps := []Endpoint{{"a", 1}, {"b", 2}, {"c", 3}}
	seen := map[Endpoint]int{}
	s := NewUniformRandom()
	for i := 0; i < 3000; i++ {
		seen[s.Select("post", eps)]++
	}
	for _, ep := range eps {
		// Expected 1000 each; the bound is loose enough never to flake.
		assert.Greater(t, seen[ep], 700, ep.String())
	}
}

func TestRoundRobin(t *testing.T) {
	eps := []Endpoint{{"a", 1}, {"b", 2}}
	s := NewRoundRobin()
	assert.Equal(t, eps[0], s.Select("post", eps))
	assert.Equal(t, eps[1], s.Select("post", eps))
	assert.Equal(t, eps[0], s.Select("post", eps))
	assert.Equal(t, eps[0], s.Select("like", eps))
}

// recordingSelector always picks the first endpoint and counts calls.
type recordingSelector struct{ calls int }

func (r *recordingSelector) Select(_ string, eps []Endpoint) Endpoint {
	r.calls++
	return eps[0]
}

func TestAcquireDoesNotRetry(t *testing.T) {
	dead, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	deadAddr := dead.Addr().String()
	require.NoError(t, dead.Close())

	live, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer live.Close()

	sel := &recordingSelector{}
	l, err := New(map[string][]string{
		"account": {deadAddr, live.Addr().String()},
	}, WithSelector(sel), WithConnectTimeout(200*time.Millisecond))
	require.NoError(t, err)

	conn, err := l.Acquire(context.Background(), "account")
	assert.Nil(t, conn)
	assert.True(t, errs.IsKind(err, errs.Connectivity))
	assert.Equal(t, 1, sel.calls)
}

func TestAcquire(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	l, err := New(map[string][]string{"like": {ln.Addr().String()}})
	require.NoError(t, err)

	conn, err := l.Acquire(context.Background(), "like")
	require.NoError(t, err)
	assert.Equal(t, ln.Addr().String(), conn.Addr())
	assert.NoError(t, conn.Close())

	_, err = l.Acquire(context.Background(), "gateway")
	assert.Error(t, err)
}

func TestAcquireUnknownService(t *testing.T) {
	l, err := New(map[string][]string{"post": {"a:1"}})
	require.NoError(t, err)

	conn, err := l.Acquire(context.Background(), "gateway")
	assert.Nil(t, conn)
	assert.Error(t, err)
	assert.False(t, errs.IsKind(err, errs.Connectivity))
}

// Package discovery picks a replica of a peer service and opens a
// connection to it.
package discovery

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/buzzblog/backend/internal/rpc"
	"github.com/buzzblog/backend/pkg/logging"
)

// DefaultConnectTimeout bounds connection establishment to a replica.
const DefaultConnectTimeout = 10 * time.Second

// Endpoint is one replica of a service.
type Endpoint struct {
	Host string
	Port int
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// ParseEndpoint parses a "host:port" string.
func ParseEndpoint(s string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: %w", s, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return Endpoint{}, fmt.Errorf("invalid port in endpoint %q", s)
	}
	return Endpoint{Host: host, Port: port}, nil
}

// Locator maps service names to their replicas. It is read-only once built
// and safe for concurrent use.
type Locator struct {
	endpoints map[string][]Endpoint
	selector  Selector
	timeout   time.Duration
	logger    *zap.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithSelector replaces the uniform random selector.
func WithSelector(s Selector) Option {
	return func(l *Locator) { l.selector = s }
}

// WithConnectTimeout replaces DefaultConnectTimeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(l *Locator) { l.timeout = d }
}

// New builds a locator from service name -> "host:port" replica lists.
func New(topology map[string][]string, opts ...Option) (*Locator, error) {
	l := &Locator{
		endpoints: make(map[string][]Endpoint, len(topology)),
		selector:  NewUniformRandom(),
		timeout:   DefaultConnectTimeout,
		logger:    logging.WithComponent("locator"),
	}
	for _, opt := range opts {
		opt(l)
	}

	for service, addrs := range topology {
		if len(addrs) == 0 {
			return nil, fmt.Errorf("service %s has no endpoints", service)
		}
		eps := make([]Endpoint, 0, len(addrs))
		for _, addr := range addrs {
			ep, err := ParseEndpoint(addr)
			if err != nil {
				return nil, fmt.Errorf("service %s: %w", service, err)
			}
			eps = append(eps, ep)
		}
		l.endpoints[service] = eps
	}
	return l, nil
}

// Endpoints returns the replicas of service.
func (l *Locator) Endpoints(service string) []Endpoint {
	return l.endpoints[service]
}

// Acquire selects a replica of service and connects to it. The caller must
// Close the returned connection. A replica that cannot be reached fails the
// call; no other replica is tried.
func (l *Locator) Acquire(ctx context.Context, service string) (*rpc.Conn, error) {
	eps := l.Endpoints(service)
	if len(eps) == 0 {
		return nil, fmt.Errorf("unknown service %q", service)
	}

	ep := l.selector.Select(service, eps)
	conn, err := rpc.Dial(ctx, service, ep.String(), l.timeout)
	if err != nil {
		l.logger.Warn("Replica unreachable",
			zap.String("service", service),
			zap.Stringer("endpoint", ep),
			zap.Error(err),
		)
		return nil, err
	}
	return conn, nil
}

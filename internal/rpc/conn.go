package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/buzzblog/backend/internal/errs"
	"github.com/buzzblog/backend/pkg/logging"
	"github.com/buzzblog/backend/pkg/telemetry"
)

var errConnSpent = errors.New("connection already used")

// Conn is a client bound to one open connection to a peer replica. It is
// owned by a single request and must be closed by it.
type Conn struct {
	service   string
	addr      string
	nc        net.Conn
	client    *http.Client
	transport *http.Transport
	logger    *zap.Logger

	mu     sync.Mutex
	handed bool
}

// Dial opens a connection to addr, giving up after timeout. Failures are
// reported as connectivity errors of service.
func Dial(ctx context.Context, service, addr string, timeout time.Duration) (*Conn, error) {
	dialer := net.Dialer{Timeout: timeout}
	nc, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errs.Unreachable(service, err)
	}

	c := &Conn{
		service: service,
		addr:    addr,
		nc:      nc,
		logger:  logging.WithComponent("rpc"),
	}
	// The transport never dials on its own: it gets the connection opened
	// above, once.
	c.transport = &http.Transport{
		DialContext:         c.take,
		MaxConnsPerHost:     1,
		MaxIdleConnsPerHost: 1,
	}
	c.client = &http.Client{Transport: c.transport}
	return c, nil
}

func (c *Conn) take(context.Context, string, string) (net.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handed {
		return nil, errConnSpent
	}
	c.handed = true
	return c.nc, nil
}

// Addr returns the replica address the connection is bound to.
func (c *Conn) Addr() string {
	return c.addr
}

// Call invokes method with params and decodes the result into result, which
// may be nil. Errors returned by the peer come back typed.
func (c *Conn) Call(ctx context.Context, method string, params Carrier, result interface{}) (err error) {
	ctx, span := telemetry.StartSpan(ctx, method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("request_id", params.Meta().ID),
			attribute.String("peer.address", c.addr),
		),
	)
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		logging.WithRequest(c.logger, params.Meta().ID, params.Meta().RequesterID).Info("rpc",
			zap.String("server", c.addr),
			zap.String("function", method),
			zap.Duration("latency", time.Since(start)),
		)
	}()

	rawParams, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode params of %s: %w", method, err)
	}
	body, err := json.Marshal(Request{
		JSONRPC: Version,
		ID:      uuid.NewString(),
		Method:  method,
		Params:  rawParams,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+c.addr+"/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Unreachable(c.service, err)
	}
	defer resp.Body.Close()

	var out rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return errs.Unreachable(c.service, fmt.Errorf("bad response to %s (status %d): %w", method, resp.StatusCode, err))
	}
	if out.Error != nil {
		return out.Error.Err()
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(out.Result, result); err != nil {
		return fmt.Errorf("failed to decode result of %s: %w", method, err)
	}
	return nil
}

// Close releases the connection.
func (c *Conn) Close() error {
	c.transport.CloseIdleConnections()
	if err := c.nc.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

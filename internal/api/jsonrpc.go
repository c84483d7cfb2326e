package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buzzblog/backend/internal/errs"
	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/internal/rpc"
	"github.com/buzzblog/backend/pkg/logging"
)

const metadataKey = "request_metadata"

// MethodHandler is a function that handles a JSON-RPC method
type MethodHandler func(ctx *gin.Context, params json.RawMessage) (interface{}, error)

// JSONRPCHandler handles JSON-RPC requests
type JSONRPCHandler struct {
	service string
	methods map[string]MethodHandler
	metrics *Metrics
	logger  *zap.Logger
}

// NewJSONRPCHandler creates a new JSON-RPC handler for service. Untyped
// errors are reported as internal errors of service.
func NewJSONRPCHandler(service string, metrics *Metrics) *JSONRPCHandler {
	return &JSONRPCHandler{
		service: service,
		methods: make(map[string]MethodHandler),
		metrics: metrics,
		logger:  logging.WithComponent("jsonrpc"),
	}
}

// RegisterMethod registers a method handler
func (h *JSONRPCHandler) RegisterMethod(method string, handler MethodHandler) {
	h.methods[method] = handler
}

// Methods returns the number of registered methods
func (h *JSONRPCHandler) Methods() int {
	return len(h.methods)
}

// Handle handles a JSON-RPC request
func (h *JSONRPCHandler) Handle(c *gin.Context) {
	var req rpc.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, nil, &rpc.Error{Code: rpc.CodeParseError, Message: "Parse error"}, err)
		return
	}

	if req.JSONRPC != rpc.Version {
		h.sendError(c, req.ID, &rpc.Error{Code: rpc.CodeInvalidRequest, Message: "Invalid Request"},
			fmt.Errorf("invalid jsonrpc version %q", req.JSONRPC))
		return
	}

	handler, ok := h.methods[req.Method]
	if !ok {
		h.sendError(c, req.ID, &rpc.Error{Code: rpc.CodeMethodNotFound, Message: "Method not found"},
			fmt.Errorf("method %s not found", req.Method))
		return
	}

	var envelope struct {
		Metadata models.RequestMetadata `json:"request_metadata"`
	}
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &envelope); err != nil {
			h.sendError(c, req.ID, &rpc.Error{Code: rpc.CodeInvalidParams, Message: "Invalid params"}, err)
			return
		}
	}
	if envelope.Metadata.ID == "" {
		envelope.Metadata.ID = uuid.NewString()
	}
	c.Set(metadataKey, envelope.Metadata)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.Scope().SetTag("request_id", envelope.Metadata.ID)
	}

	h.metrics.Calls.WithLabelValues(req.Method).Inc()

	result, err := handler(c, req.Params)
	if err != nil {
		var pe *paramsError
		if errors.As(err, &pe) {
			h.sendError(c, req.ID, &rpc.Error{Code: rpc.CodeInvalidParams, Message: "Invalid params"}, err)
			return
		}
		h.sendServiceError(c, req.ID, req.Method, envelope.Metadata, err)
		return
	}

	h.sendResponse(c, req.ID, result)
}

// sendResponse sends a successful JSON-RPC response
func (h *JSONRPCHandler) sendResponse(c *gin.Context, id interface{}, result interface{}) {
	c.JSON(http.StatusOK, rpc.Response{
		JSONRPC: rpc.Version,
		ID:      id,
		Result:  result,
	})
}

// sendServiceError sends a typed service error
func (h *JSONRPCHandler) sendServiceError(c *gin.Context, id interface{}, method string, md models.RequestMetadata, err error) {
	wire := rpc.NewError(h.service, err)
	h.metrics.Errors.WithLabelValues(method, wire.Data.Entity, wire.Data.Kind).Inc()

	logger := logging.WithRequest(h.logger, md.ID, md.RequesterID)
	fields := []zap.Field{
		zap.String("method", method),
		zap.Error(err),
	}
	if errs.KindOf(err) == errs.Internal {
		logger.Error("Service error", fields...)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	} else {
		logger.Debug("Service error", fields...)
	}

	c.JSON(http.StatusOK, rpc.Response{
		JSONRPC: rpc.Version,
		ID:      id,
		Error:   wire,
	})
}

// sendError sends a protocol-level JSON-RPC error
func (h *JSONRPCHandler) sendError(c *gin.Context, id interface{}, rpcErr *rpc.Error, err error) {
	h.logger.Warn("JSON-RPC error", zap.String("message", rpcErr.Message), zap.Error(err))
	rpcErr.Message = fmt.Sprintf("%s: %v", rpcErr.Message, err)

	c.JSON(http.StatusOK, rpc.Response{
		JSONRPC: rpc.Version,
		ID:      id,
		Error:   rpcErr,
	})
}

// metadata returns the request metadata of the current call
func metadata(c *gin.Context) models.RequestMetadata {
	if v, ok := c.Get(metadataKey); ok {
		if md, ok := v.(models.RequestMetadata); ok {
			return md
		}
	}
	return models.RequestMetadata{}
}

// bind decodes the operation arguments of a call
func bind[P any](params json.RawMessage) (P, error) {
	var p P
	if len(params) == 0 {
		return p, &paramsError{err: errors.New("missing params")}
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return p, &paramsError{err: err}
	}
	return p, nil
}

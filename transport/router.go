package transport

import (
	"errors"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/luma/comms/protocol"
	"github.com/luma/comms/server"
	"github.com/luma/comms/storage"
)

type openRequest struct {
	Name  string  `json:"name" binding:"required"`
	Limit *uint32 `json:"limit" binding:"required"`
}

type messageRequest struct {
	Type string `json:"type" binding:"required"`
	Load string `json:"load"`
}

type messageResponse struct {
	Response *string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type router struct {
	srv   *server.Server
	store storage.Store
}

// NewRouter exposes srv over HTTP.
//
//   GET  /ping
//   GET  /connections
//   GET  /connections/:addr
//   POST /connections/:addr           {"name": "TestClient", "limit": 2}
//   POST /connections/:addr/messages  {"type": "POST", "load": "..."}
//   GET  /halted
//   POST /close-all
//
func NewRouter(srv *server.Server, store storage.Store, log *zap.Logger, debug bool) *gin.Engine {
	gin.DisableConsoleColor()
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Logs all requests, like a combined access and error log, in UTC
	r.Use(ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/ping"},
	}))

	// Logs all panic to error log
	//   - stack means whether output the stack info.
	r.Use(ginzap.RecoveryWithZap(log, true))

	h := &router{srv: srv, store: store}

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.GET("/connections", h.listConnections)
	r.GET("/connections/:addr", h.getConnection)
	r.POST("/connections/:addr", h.openConnection)
	r.POST("/connections/:addr/messages", h.sendMessage)
	r.GET("/halted", h.countHalted)
	r.POST("/close-all", h.closeAll)

	return r
}

func (h *router) listConnections(c *gin.Context) {
	value, err := h.store.Backup()
	if err != nil {
		h.abort(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", value)
}

func (h *router) getConnection(c *gin.Context) {
	addr := c.Param("addr")

	value, err := h.store.Get(c.Request.Context(), []byte(addr))
	if err != nil {
		h.abort(c, http.StatusInternalServerError, err)
		return
	}

	if value == nil {
		h.abort(c, http.StatusNotFound, protocol.NewConnectionNotSendable(addr, protocol.ReasonUnknown))
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", value)
}

func (h *router) openConnection(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, err)
		return
	}

	addr := c.Param("addr")

	if err := h.srv.OpenPeer(addr, req.Name, *req.Limit); err != nil {
		h.abort(c, statusFor(err), err)
		return
	}

	status, _ := h.srv.Status(addr)
	c.JSON(http.StatusCreated, status)
}

func (h *router) sendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, err)
		return
	}

	msgType, err := protocol.ParseMessageType(req.Type)
	if err != nil {
		h.abort(c, http.StatusBadRequest, err)
		return
	}

	resp, err := h.srv.Send(c.Param("addr"), protocol.Message{Type: msgType, Load: req.Load})
	if err != nil {
		h.abort(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Response: resp})
}

func (h *router) countHalted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"halted": h.srv.CountHalted()})
}

func (h *router) closeAll(c *gin.Context) {
	h.srv.CloseAll()
	c.Status(http.StatusNoContent)
}

func (h *router) abort(c *gin.Context, code int, err error) {
	resp := errorResponse{Error: err.Error()}
	if kind := protocol.KindOf(err); kind != 0 {
		resp.Kind = kind.String()
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(code, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, protocol.ErrConnectionUnknown):
		return http.StatusNotFound

	case errors.Is(err, protocol.ErrConnectionAlreadyExists),
		errors.Is(err, protocol.ErrConnectionNotSendable):
		return http.StatusConflict

	case errors.Is(err, protocol.ErrCapacityExceeded),
		errors.Is(err, protocol.ErrHandshakeConflict):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

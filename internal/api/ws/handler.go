package ws

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/job"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/sitecloner/backend/internal/shared/id"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // status is public, same as GET /jobs/:id
	},
}

// Watcher yields a job and a channel closed at its next change
type Watcher interface {
	Watch(jobID id.JobID) (*job.Job, <-chan struct{}, error)
}

// Handler manages job stream connections
type Handler struct {
	jobs    Watcher
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(jobs Watcher, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	return &Handler{
		jobs:    jobs,
		metrics: metrics,
		logger:  logging.OrNop(logger).Named("ws"),
	}
}

// Stream upgrades the request and pushes status until the job is terminal
func (h *Handler) Stream(c *gin.Context) {
	jobID, err := id.ParseJobID(c.Param("id"))
	if err == nil {
		_, _, err = h.jobs.Watch(jobID)
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Job " + c.Param("id") + " not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	closed := readUntilClose(conn)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		current, changed, err := h.jobs.Watch(jobID)
		if err != nil {
			h.sendError(conn, err.Error())
			return
		}

		if err := h.send(conn, gin.H{
			"type":      "status",
			"job":       current,
			"timestamp": time.Now().Unix(),
		}); err != nil {
			return
		}

		if current.Status.Terminal() {
			_ = h.send(conn, gin.H{
				"type":      "complete",
				"status":    current.Status,
				"timestamp": time.Now().Unix(),
			})
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(current.Status)),
				time.Now().Add(writeWait))
			return
		}

	wait:
		for {
			select {
			case <-changed:
				break wait
			case <-closed:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}
}

// readUntilClose drains client frames so pongs and close frames are
// processed, and signals when the peer goes away.
func readUntilClose(conn *websocket.Conn) <-chan struct{} {
	closed := make(chan struct{})
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return closed
}

func (h *Handler) send(conn *websocket.Conn, data interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(data)
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) error {
	return h.send(conn, gin.H{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}

package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/job"
	"github.com/GriffinCanCode/sitecloner/backend/internal/shared/id"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Type   string     `json:"type"`
	Status job.Status `json:"status"`
	Job    *job.Job   `json:"job"`
}

func setup(t *testing.T) (*job.MemoryStore, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := job.NewMemoryStore()
	r := gin.New()
	r.GET("/jobs/:id/stream", NewHandler(store, nil, nil).Stream)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return store, srv
}

func dial(t *testing.T, srv *httptest.Server, jobID id.JobID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/jobs/" + jobID.String() + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var m message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func advance(t *testing.T, store *job.MemoryStore, jobID id.JobID, status job.Status) {
	t.Helper()
	_, err := store.Update(jobID, func(j *job.Job) error {
		j.Status = status
		return nil
	})
	require.NoError(t, err)
}

func TestStreamFollowsJobToCompletion(t *testing.T) {
	store, srv := setup(t)
	jobID := id.NewJobID()
	require.NoError(t, store.Create(&job.Job{ID: jobID, URL: "https://example.com", Status: job.StatusPending}))

	conn := dial(t, srv, jobID)

	first := read(t, conn)
	assert.Equal(t, "status", first.Type)
	require.NotNil(t, first.Job)
	assert.Equal(t, job.StatusPending, first.Job.Status)

	for _, next := range []job.Status{job.StatusScraping, job.StatusGenerating, job.StatusCompleted} {
		advance(t, store, jobID, next)
		m := read(t, conn)
		assert.Equal(t, "status", m.Type)
		assert.Equal(t, next, m.Job.Status)
	}

	done := read(t, conn)
	assert.Equal(t, "complete", done.Type)
	assert.Equal(t, job.StatusCompleted, done.Status)

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestStreamUnknownJob(t *testing.T) {
	_, srv := setup(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/jobs/" + id.NewJobID().String() + "/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}

package progress_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/herohde/ichess/internal/progress"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenario"
)

func TestBroadcastReachesConnectedClient(t *testing.T) {
	srv := progress.NewServer("127.0.0.1:0")
	httpSrv := httptest.NewServer(srv.Handler())
	defer httpSrv.Close()

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http") + "/progress"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the server goroutine a moment to register the connection before
	// broadcasting.
	time.Sleep(50 * time.Millisecond)

	tracker := resources.New(scenario.DefaultResourceLimits())
	require.NoError(t, tracker.BumpStates("test", 7))
	srv.BroadcastTracker("solving", tracker)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(payload), `"stage":"solving"`)
	require.Contains(t, string(payload), `"states":7`)
}

func TestBroadcastWithNoClientsDoesNotPanic(t *testing.T) {
	srv := progress.NewServer("127.0.0.1:0")
	tracker := resources.New(scenario.DefaultResourceLimits())
	srv.BroadcastTracker("idle", tracker)
}

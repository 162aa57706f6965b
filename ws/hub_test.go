package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shuckfest/leaderboard/metrics"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(zap.NewNop(), metrics.New())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

func TestBroadcastReachesAllViewers(t *testing.T) {
	hub, url := startHub(t)

	a := dial(t, url)
	b := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		2*time.Second, 10*time.Millisecond)

	hub.Broadcast(EventDisplayRoundUpdated, 3)

	for _, conn := range []*websocket.Conn{a, b} {
		env := readEnvelope(t, conn)
		require.Equal(t, EventDisplayRoundUpdated, env.Event)
		require.Equal(t, float64(3), env.Data)
	}
}

func TestLateJoinerGetsNoReplay(t *testing.T) {
	hub, url := startHub(t)

	early := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	hub.Broadcast(EventTeamDeleted, 42)
	env := readEnvelope(t, early)
	require.Equal(t, EventTeamDeleted, env.Event)

	late := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		2*time.Second, 10*time.Millisecond)

	// The late joiner never sees the earlier event, only what is published
	// after it connected.
	hub.Broadcast(EventDisplayRoundUpdated, 5)
	env = readEnvelope(t, late)
	require.Equal(t, EventDisplayRoundUpdated, env.Event)
}

func TestBroadcastWithNoViewersDoesNotBlock(t *testing.T) {
	hub, _ := startHub(t)

	done := make(chan struct{})
	go func() {
		hub.Broadcast(EventTeamDeleted, 1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked with no viewers connected")
	}
}

func TestViewerAfterShutdownIsRejected(t *testing.T) {
	hub := NewHub(zap.NewNop(), metrics.New())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	cancel()
	<-hub.done

	dialed := make(chan error, 1)
	go func() {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if conn != nil {
			conn.Close()
		}
		dialed <- err
	}()

	select {
	case err := <-dialed:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("dial against a stopped hub blocked instead of failing")
	}
}

func TestDisconnectedViewerIsRemoved(t *testing.T) {
	hub, url := startHub(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}

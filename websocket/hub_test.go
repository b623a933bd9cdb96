package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialPair upgrades one connection through a test server and returns both ends.
func dialPair(t *testing.T) (server *gws.Conn, client *gws.Conn) {
	t.Helper()

	upgrader := gws.Upgrader{}
	serverConns := make(chan *gws.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := gws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	server = <-serverConns
	return server, client
}

func TestHubBroadcastToStore(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	s1Server, s1Client := dialPair(t)
	s2Server, s2Client := dialPair(t)

	hub.register <- &Client{StoreID: "store1", Conn: s1Server}
	hub.register <- &Client{StoreID: "store2", Conn: s2Server}

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients["store1"]) == 1 && len(hub.clients["store2"]) == 1
	}, time.Second, 10*time.Millisecond)

	hub.NotifyOrderCreated("store1", map[string]string{"orderNumber": "ORD-TEST1234"})

	var event Event
	require.NoError(t, s1Client.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, s1Client.ReadJSON(&event))
	assert.Equal(t, EventTypeOrderCreated, event.Type)
	assert.Equal(t, "store1", event.StoreID)
	assert.Equal(t, "New order received", event.Message)

	// The other store must not receive the event
	require.NoError(t, s2Client.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	var stray Event
	assert.Error(t, s2Client.ReadJSON(&stray))
}

func TestHubConcurrentBroadcasts(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server, client := dialPair(t)
	hub.register <- &Client{StoreID: "store1", Conn: server}

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients["store1"]) == 1
	}, time.Second, 10*time.Millisecond)

	// Simultaneous order and ticket events for the same store must not
	// collide on the connection
	const events = 20
	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			hub.NotifyOrderCreated("store1", map[string]int{"n": n})
		}(i)
	}

	received := 0
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	for received < events {
		var event Event
		require.NoError(t, client.ReadJSON(&event))
		assert.Equal(t, EventTypeOrderCreated, event.Type)
		received++
	}
	wg.Wait()
	assert.Equal(t, events, received)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server, _ := dialPair(t)
	client := &Client{StoreID: "store1", Conn: server}

	hub.register <- client
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients["store1"]) == 1
	}, time.Second, 10*time.Millisecond)

	hub.unregister <- client
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients["store1"]
		return !ok
	}, time.Second, 10*time.Millisecond)
}

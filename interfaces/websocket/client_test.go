package websocket

import (
	"sync"
	"testing"

	"go.uber.org/zap"
)

// Shutdown closes the send channel while read pumps may still be pushing
// updates from in-flight events; the two must never race into a send on a
// closed channel.
func TestClient_PushDuringCloseIsSafe(t *testing.T) {
	logger := zap.NewNop()
	hub := NewHub(nil, logger)
	session := testService(t).NewSession()
	client := NewClient(hub, nil, session, logger)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				client.push(session.Snapshot())
			}
		}()
	}
	client.closeSend()
	client.closeSend() // idempotent across unregister and shutdown paths
	wg.Wait()

	client.push(session.Snapshot()) // dropped silently after close
}

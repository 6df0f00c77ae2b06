package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ricardofn/wagate/internal/api"
	"github.com/ricardofn/wagate/internal/bridge"
	"github.com/ricardofn/wagate/internal/httpapi"
	"github.com/ricardofn/wagate/internal/lock"
	"github.com/ricardofn/wagate/internal/store"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

func TestGatewayLifecycle(t *testing.T) {
	tmpDir := t.TempDir()

	lk, err := lock.Acquire(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = lk.Release() }()

	db, err := store.Open(filepath.Join(tmpDir, "messages.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	logger := zap.NewNop()
	router := httpapi.NewRouter(httpapi.Services{
		Chats:    api.NewChatService(db, logger),
		Messages: api.NewMessageService(db, logger),
		Contacts: api.NewContactService(db, logger),
		Sends:    api.NewSendService(bridge.New("http://127.0.0.1:1", logger), logger),
	}, logger)

	addr := freeAddr(t)
	srv := NewServer(addr, router, logger)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	// Wait for the server to come up and answer the health check.
	url := fmt.Sprintf("http://%s/api/health", addr)
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("health check never came up: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var health map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health["status"] != "healthy" {
		t.Errorf("health = %+v", health)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Stop(ctx)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned error after graceful stop: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("server did not stop")
	}
}

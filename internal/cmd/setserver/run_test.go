package setserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"setgame/internal/app"
	"setgame/internal/config"
	"setgame/internal/storage/memory"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.ServerConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.ServerConfig{Store: config.StoreMemory}},
		{name: "redis", cfg: config.ServerConfig{Store: config.StoreRedis, RedisAddr: mr.Addr()}},
		{name: "sqlite", cfg: config.ServerConfig{Store: config.StoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "rooms.db")}},
		{name: "unknown", cfg: config.ServerConfig{Store: "etcd"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, closer, err := OpenStore(ctx, tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer closer.Close()

			if err := store.Set(ctx, "room1", []byte(`{"users":{}}`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, found, err := store.Get(ctx, "room1")
			if err != nil || !found || string(got) != `{"users":{}}` {
				t.Fatalf("get = %s found=%v err=%v", got, found, err)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	coord := app.NewCoordinator(memory.NewStore(), nil)
	srv := httptest.NewServer(NewMux(coord, zerolog.Nop(), nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("status %d body %q", resp.StatusCode, body)
	}
}

func TestAllowedOrigins(t *testing.T) {
	coord := app.NewCoordinator(memory.NewStore(), nil)
	srv := httptest.NewServer(NewMux(coord, zerolog.Nop(), []string{"https://play.example.com"}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + wsPath

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{name: "listed", origin: "https://play.example.com", want: true},
		{name: "listed other case", origin: "https://PLAY.example.com", want: true},
		{name: "no origin", origin: "", want: true},
		{name: "foreign", origin: "https://evil.example.net", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			header := http.Header{}
			if tc.origin != "" {
				header.Set("Origin", tc.origin)
			}
			conn, resp, err := websocket.DefaultDialer.Dial(url, header)
			if tc.want {
				if err != nil {
					t.Fatalf("dial: %v", err)
				}
				conn.Close()
				return
			}
			if err == nil {
				conn.Close()
				t.Fatalf("foreign origin was upgraded")
			}
			if resp == nil || resp.StatusCode != http.StatusForbidden {
				t.Fatalf("response = %v, want 403", resp)
			}
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, config.ServerConfig{Addr: addr, Store: config.StoreMemory}, zerolog.Nop())
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("run did not stop")
	}
}

// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Command wsstream is an HTTP server that upgrades to a WebSocket and
// streams the tracker's orientation/velocity/displacement events as
// JSON frames to a browser client, one goroutine per connection.
// Grounded in register_debug_handler.go's
// upgrader/session pattern.
package main

import (
	"flag"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/inertial-tracker/internal/config"
	"github.com/relabs-tech/inertial-tracker/internal/event"
	"github.com/relabs-tech/inertial-tracker/internal/tracker"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type frame struct {
	Type string      `json:"type"` // "orientation", "velocity" or "displacement"
	Data interface{} `json:"data"`
}

// hub fans every tracker callback out to all currently connected
// WebSocket clients. Each client has its own buffered channel so one
// slow reader cannot block the others.
type hub struct {
	mu      sync.Mutex
	clients map[chan frame]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[chan frame]struct{})}
}

func (h *hub) broadcast(f frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- f:
		default:
		}
	}
}

func (h *hub) register() chan frame {
	ch := make(chan frame, 32)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unregister(ch chan frame) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *hub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("wsstream: upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := h.register()
	defer h.unregister(ch)

	for f := range ch {
		if err := conn.WriteJSON(f); err != nil {
			log.Printf("wsstream: write error: %v", err)
			return
		}
	}
}

func main() {
	configPath := flag.String("config", "tracker.conf", "path to the key=value configuration file")
	addr := flag.String("addr", ":8081", "HTTP listen address")
	flag.Parse()

	log.Println("starting wsstream")

	cfg := config.New()
	if err := cfg.Load(*configPath); err != nil {
		log.Printf("wsstream: no configuration file at %s, using defaults: %v", *configPath, err)
	}

	h := newHub()

	t := tracker.New(cfg)
	t.SetOrientationCallback(func(e event.OrientationEvent) { h.broadcast(frame{Type: "orientation", Data: e}) })
	t.SetVelocityCallback(func(e event.AxesEvent) { h.broadcast(frame{Type: "velocity", Data: e}) })
	t.SetDisplacementCallback(func(e event.AxesEvent) { h.broadcast(frame{Type: "displacement", Data: e}) })
	t.Start()
	defer t.Stop()

	// A host wiring its own transport in would call t.ReceiveEvent here;
	// wsstream's own job is purely to fan fused state out to clients.
	http.HandleFunc("/ws", h.handle)

	log.Printf("wsstream: listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("wsstream: %v", err)
	}
}

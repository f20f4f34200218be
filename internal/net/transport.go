package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"PixelBoard/internal/logging"
	"PixelBoard/internal/state"
)

// SharePath is the websocket endpoint served by the host.
const SharePath = "/share"

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

type peer struct {
	conn *websocket.Conn
	send chan Message
}

// Hub broadcasts document changes to connected viewers. It keeps a mirror
// replica built from the published messages so that a viewer joining late
// starts from the current state. Publish methods are called from the
// goroutine that owns the document; connections are served concurrently.
type Hub struct {
	mu     sync.Mutex
	peers  map[*peer]struct{}
	clock  Clock
	mirror *Replica

	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewHub() *Hub {
	return &Hub{
		peers:  make(map[*peer]struct{}),
		mirror: NewReplica(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// viewers are native clients, not browsers
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: logging.Named("share"),
	}
}

// Peers returns the number of connected viewers.
func (h *Hub) Peers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// PublishSnapshot sends the whole document, e.g. after it was opened,
// resized or cleared.
func (h *Hub) PublishSnapshot(doc *state.Document) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	msg, err := snapshotMessage(doc, h.clock.Tick())
	if err != nil {
		return err
	}
	return h.broadcast(msg)
}

// PublishCells sends the new colour of the given cells.
func (h *Hub) PublishCells(docID string, cells []state.Cell) error {
	if len(cells) == 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.broadcast(Message{Type: MsgPatch, Doc: docID, Seq: h.clock.Tick(), Cells: cells})
}

// Watch publishes every transition of hist. Resizes and clears go out as
// snapshots, everything else as patches.
func (h *Hub) Watch(hist *state.History) {
	hist.OnChange(func(ev state.Event) {
		doc := hist.Document()
		var err error
		switch {
		case ev.Command.Resized() || ev.Command.Kind == state.KindClear:
			err = h.PublishSnapshot(doc)
		case ev.Direction == state.Undone:
			err = h.PublishCells(doc.ID(), ev.Command.Backward())
		default:
			err = h.PublishCells(doc.ID(), ev.Command.Forward())
		}
		if err != nil {
			h.log.Warn("publish failed", zap.Stringer("command", ev.Command), zap.Error(err))
		}
	})
}

// broadcast must be called with h.mu held.
func (h *Hub) broadcast(msg Message) error {
	if _, err := h.mirror.Apply(msg); err != nil {
		return err
	}
	for p := range h.peers {
		select {
		case p.send <- msg:
		default:
			h.log.Warn("viewer too slow, dropping", zap.String("remote", p.conn.RemoteAddr().String()))
			h.drop(p)
		}
	}
	return nil
}

func (h *Hub) drop(p *peer) {
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		close(p.send)
	}
}

// ServeHTTP upgrades a viewer connection and streams messages to it.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	p := &peer{conn: conn, send: make(chan Message, sendBuffer)}

	h.mu.Lock()
	snap, err := h.mirror.Snapshot()
	if err == nil && snap.Doc != "" {
		p.send <- snap
	}
	h.peers[p] = struct{}{}
	h.mu.Unlock()

	h.log.Info("viewer connected", zap.String("remote", conn.RemoteAddr().String()))
	go h.writePump(p)
	h.readPump(p)
}

// readPump only watches for the viewer going away.
func (h *Hub) readPump(p *peer) {
	defer func() {
		h.mu.Lock()
		h.drop(p)
		h.mu.Unlock()
		p.conn.Close()
		h.log.Info("viewer disconnected", zap.String("remote", p.conn.RemoteAddr().String()))
	}()
	p.conn.SetReadLimit(512)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(p *peer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		h.drop(p)
	}
}

// Handler routes SharePath to the hub.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(SharePath, h)
	return mux
}

// Serve listens on port until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("share listen on %d: %w", port, err)
	}
	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		h.Close()
	}()

	h.log.Info("share hub listening", zap.Int("port", port))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

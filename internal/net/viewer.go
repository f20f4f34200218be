package net

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"PixelBoard/internal/logging"
)

// Viewer follows a host's document over a websocket.
type Viewer struct {
	conn    *websocket.Conn
	replica *Replica
	addr    string
	log     *zap.Logger
}

// Dial connects to the hub named by a pixelboard:// link or a host:port.
func Dial(ctx context.Context, link string) (*Viewer, error) {
	addr := link
	if IsShareLink(link) {
		var err error
		if addr, err = ParseShareLink(link); err != nil {
			return nil, err
		}
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: SharePath}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	v := &Viewer{conn: conn, replica: NewReplica(), addr: addr, log: logging.Named("viewer")}
	v.log.Info("connected", zap.String("host", addr))
	return v, nil
}

func (v *Viewer) Replica() *Replica { return v.replica }
func (v *Viewer) Addr() string      { return v.addr }

// Run applies incoming messages until the connection ends or ctx is done.
// updated is called after every message that changed the replica.
func (v *Viewer) Run(ctx context.Context, updated func()) error {
	stop := context.AfterFunc(ctx, func() { v.conn.Close() })
	defer stop()
	for {
		var msg Message
		if err := v.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				return nil
			}
			return fmt.Errorf("read from %s: %w", v.addr, err)
		}
		changed, err := v.replica.Apply(msg)
		if err != nil {
			v.log.Warn("bad message", zap.String("type", string(msg.Type)), zap.Uint64("seq", msg.Seq), zap.Error(err))
			continue
		}
		if changed && updated != nil {
			updated()
		}
	}
}

func (v *Viewer) Close() error {
	return v.conn.Close()
}

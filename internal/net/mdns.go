package net

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
	"go.uber.org/zap"

	"PixelBoard/internal/logging"
)

const serviceType = "_pixelboard._tcp"

const defaultBrowseTimeout = 2 * time.Second

// Peer is a host found on the local network.
type Peer struct {
	Name string
	Addr string
}

// Link returns the share link for the peer.
func (p Peer) Link() string {
	return Scheme + p.Addr
}

// Advertise announces a share hub on port. Shut the returned server down to
// withdraw the announcement.
func Advertise(port int, name string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	if name == "" {
		name = host
	}

	service, err := mdns.NewMDNSService(name, serviceType, "", "", port, nil, []string{"PixelBoard"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	logging.Named("share").Info("advertising", zap.String("name", name), zap.Int("port", port))
	return server, nil
}

// Browse looks for advertised hubs until ctx's deadline (or a short default)
// and calls found for each IPv4 host.
func Browse(ctx context.Context, found func(Peer)) error {
	timeout := defaultBrowseTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		return ctx.Err()
	}

	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(Peer{Name: e.Name, Addr: fmt.Sprintf("%s:%d", e.AddrV4, e.Port)})
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	return err
}

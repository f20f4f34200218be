package net

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"PixelBoard/internal/logging"
)

// Scheme prefixes share links handed to viewers.
const Scheme = "pixelboard://"

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// offline: fall back to the interface list
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

func getLocalIPFallback() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String(), nil
		}
	}
	logging.Named("share").Warn("no non-loopback address found, share link is local only")
	return "127.0.0.1", nil
}

// ShareLink builds the link viewers pass on the command line.
func ShareLink(host string, port int) string {
	return Scheme + net.JoinHostPort(host, strconv.Itoa(port))
}

// ParseShareLink returns host:port from a pixelboard:// link.
func ParseShareLink(link string) (string, error) {
	if !strings.HasPrefix(link, Scheme) {
		return "", fmt.Errorf("share link %q: missing %s prefix", link, Scheme)
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, Scheme), "/")
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("share link %q: %w", link, err)
	}
	if host == "" {
		return "", fmt.Errorf("share link %q: missing host", link)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return "", fmt.Errorf("share link %q: bad port %q", link, port)
	}
	return addr, nil
}

// IsShareLink reports whether arg looks like a share link.
func IsShareLink(arg string) bool {
	return strings.HasPrefix(arg, Scheme)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"PixelBoard/internal/config"
	"PixelBoard/internal/editor"
	"PixelBoard/internal/logging"
	share "PixelBoard/internal/net"
	"PixelBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the TOML config file")
	shareFlag := flag.Bool("share", false, "serve the document to viewers on the local network")
	discover := flag.Bool("discover", false, "list shared boards on the local network and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [project.json | %shost:port]\n", os.Args[0], share.Scheme)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logging.Setup(cfg.Log.Level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logging.Sync()
	log := logging.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *discover {
		if err := listShares(ctx); err != nil {
			log.Error("discovery failed", zap.Error(err))
			logging.Sync()
			os.Exit(1)
		}
		return
	}

	arg := flag.Arg(0)
	if share.IsShareLink(arg) {
		runViewer(ctx, arg)
		return
	}
	if *shareFlag {
		cfg.Share.Enabled = true
	}
	if err := runEditor(ctx, cfg, arg); err != nil {
		log.Error("editor failed", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}

func listShares(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	found := 0
	err := share.Browse(ctx, func(p share.Peer) {
		found++
		fmt.Printf("%s\t%s\n", p.Link(), p.Name)
	})
	if err == nil && found == 0 {
		fmt.Println("no shared boards found")
	}
	return err
}

func runViewer(ctx context.Context, link string) {
	log := logging.Named("main")
	log.Info("starting as viewer", zap.String("link", link))

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	v, err := share.Dial(dialCtx, link)
	if err != nil {
		log.Error("could not join share", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
	defer v.Close()
	ui.RunViewer(ctx, v)
}

func runEditor(ctx context.Context, cfg config.Config, path string) error {
	log := logging.Named("main")
	ed, err := editor.New(cfg)
	if err != nil {
		return err
	}
	if path != "" {
		if err := ed.Open(path); err != nil {
			return err
		}
	}

	var link string
	if cfg.Share.Enabled {
		link, err = startShare(ctx, cfg, ed)
		if err != nil {
			// editing still works without sharing
			log.Warn("sharing disabled", zap.Error(err))
		}
	}

	log.Info("starting editor",
		zap.Int("width", ed.Document().Width()),
		zap.Int("height", ed.Document().Height()),
		zap.String("share", link),
	)
	ui.Run(ed, link)
	return nil
}

// startShare serves the editor's document to viewers and returns the link
// to hand out.
func startShare(ctx context.Context, cfg config.Config, ed *editor.Editor) (string, error) {
	log := logging.Named("main")
	hub := share.NewHub()
	hub.Watch(ed.History())
	ed.OnChange(func(c editor.Change) {
		if c.Reason == editor.Loaded {
			if err := hub.PublishSnapshot(ed.Document()); err != nil {
				log.Warn("publish snapshot", zap.Error(err))
			}
		}
	})
	if err := hub.PublishSnapshot(ed.Document()); err != nil {
		return "", err
	}

	go func() {
		if err := hub.Serve(ctx, cfg.Share.Port); err != nil {
			log.Error("share hub stopped", zap.Error(err))
		}
	}()

	if cfg.Share.Advertise {
		server, err := share.Advertise(cfg.Share.Port, cfg.Share.Name)
		if err != nil {
			log.Warn("mdns advertise failed", zap.Error(err))
		} else {
			go func() {
				<-ctx.Done()
				_ = server.Shutdown()
			}()
		}
	}

	ip, err := share.GetOutgoingIP()
	if err != nil {
		return "", err
	}
	return share.ShareLink(ip, cfg.Share.Port), nil
}

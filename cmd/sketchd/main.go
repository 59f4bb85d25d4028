// Command sketchd serves the recognition engine to pen front ends
// over websockets, optionally advertising itself on the local network.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/paulhankin/optosketch/bridge"
	"github.com/paulhankin/optosketch/engine"
)

var (
	flagAddr   = flag.String("addr", ":8080", "address to listen on")
	flagConfig = flag.String("config", "", "TOML file of recognition thresholds")
	flagMDNS   = flag.Bool("mdns", false, "advertise the server over mDNS")
	flagV      = flag.Bool("v", false, "log recognition details")
)

func loadConfig(name string) (engine.Config, error) {
	if name == "" {
		return engine.DefaultConfig(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return engine.Config{}, err
	}
	defer f.Close()
	return engine.LoadConfig(f)
}

// announcer withdraws a network advertisement.
type announcer interface {
	Shutdown() error
}

// announce is swapped out in tests.
var announce = func(port int) (announcer, error) {
	return advertise(port)
}

// serve handles websocket connections on ln until ctx is done. Any
// advertisement is withdrawn before serve returns, on every path.
func serve(ctx context.Context, ln net.Listener, cfg engine.Config, elog *log.Logger, withMDNS bool) error {
	if withMDNS {
		_, port, err := net.SplitHostPort(ln.Addr().String())
		if err != nil {
			ln.Close()
			return fmt.Errorf("mdns: %w", err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			ln.Close()
			return fmt.Errorf("mdns: %w", err)
		}
		a, err := announce(p)
		if err != nil {
			ln.Close()
			return fmt.Errorf("mdns: %w", err)
		}
		defer a.Shutdown()
		log.Printf("advertising %s on port %d", serviceType, p)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", bridge.NewServer(cfg, elog))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "optosketch: connect a websocket to /ws")
	})
	hs := &http.Server{Handler: mux}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			hs.Close()
		case <-done:
		}
	}()
	log.Printf("listening on %s", ln.Addr())
	if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func run(ctx context.Context) error {
	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var elog *log.Logger
	if *flagV {
		elog = log.Default()
	}
	ln, err := net.Listen("tcp", *flagAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return serve(ctx, ln, cfg, elog, *flagMDNS)
}

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}

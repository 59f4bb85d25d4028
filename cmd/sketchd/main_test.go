package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulhankin/optosketch/engine"
)

type fakeAnnouncer struct {
	port     int
	shutdown bool
}

func (f *fakeAnnouncer) Shutdown() error {
	f.shutdown = true
	return nil
}

// fakeAnnounce replaces announce for the duration of the test.
func fakeAnnounce(t *testing.T) *fakeAnnouncer {
	f := &fakeAnnouncer{}
	old := announce
	announce = func(port int) (announcer, error) {
		f.port = port
		return f, nil
	}
	t.Cleanup(func() { announce = old })
	return f
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

func TestServeUntilCancelled(t *testing.T) {
	f := fakeAnnounce(t)
	ln := listen(t)
	addr := ln.Addr().String()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res := make(chan error, 1)
	go func() { res <- serve(ctx, ln, engine.DefaultConfig(), nil, true) }()

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "/ws")

	cancel()
	select {
	case err := <-res:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	_, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	assert.Equal(t, port, strconv.Itoa(f.port))
	assert.True(t, f.shutdown)
}

func TestServeErrorWithdrawsAdvertisement(t *testing.T) {
	f := fakeAnnounce(t)
	ln := listen(t)
	require.NoError(t, ln.Close())

	err := serve(context.Background(), ln, engine.DefaultConfig(), nil, true)
	assert.Error(t, err)
	assert.True(t, f.shutdown)
}

func TestServeAnnounceFails(t *testing.T) {
	old := announce
	announce = func(int) (announcer, error) { return nil, errors.New("no multicast") }
	t.Cleanup(func() { announce = old })

	err := serve(context.Background(), listen(t), engine.DefaultConfig(), nil, true)
	assert.ErrorContains(t, err, "no multicast")
}

package main

import (
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jrsteele09/go-expenses-tracker/internal/config"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("listener failure is returned", func(t *testing.T) {
		busy, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer busy.Close()

		err = run(busy.Addr().String(), handler, make(chan os.Signal))
		require.Error(t, err)
	})

	t.Run("stop signal shuts down", func(t *testing.T) {
		free, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := free.Addr().String()
		require.NoError(t, free.Close())

		stop := make(chan os.Signal, 1)
		done := make(chan error, 1)
		go func() { done <- run(addr, handler, stop) }()

		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + addr + "/")
			if err != nil {
				return false
			}
			resp.Body.Close()
			return resp.StatusCode == http.StatusNoContent
		}, 2*time.Second, 20*time.Millisecond)

		stop <- os.Interrupt
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			require.FailNow(t, "run did not return after the stop signal")
		}
	})
}

func TestNewUserRepo_InMemory(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	repo, closeStore, err := newUserRepo(config.New())
	require.NoError(t, err)
	require.NotNil(t, repo)
	closeStore()
}

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/viager/internal/domain"
)

type reload struct {
	cfg *domain.Configuration
	err error
}

func TestWatchOffers(t *testing.T) {
	path := writeFile(t, "offers.yaml", `offers:
  - reference: VG-1
    market_value: 500000
    contract_duration: 20
`)

	ctx, cancel := context.WithCancel(context.Background())
	reloads := make(chan reload, 8)
	done := make(chan error, 1)
	go func() {
		done <- WatchOffers(ctx, path, 20*time.Millisecond, func(cfg *domain.Configuration, err error) {
			reloads <- reload{cfg, err}
		})
	}()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`offers:
  - reference: VG-2
    market_value: 320000
    contract_duration: 15
`), 0o644))

	select {
	case r := <-reloads:
		require.NoError(t, r.err)
		assert.Equal(t, "VG-2", r.cfg.Offers[0].Reference)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the offer file changed")
	}

	require.NoError(t, os.WriteFile(path, []byte("offers: []\n"), 0o644))
	select {
	case r := <-reloads:
		assert.ErrorContains(t, r.err, "no offers provided")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the offer file was emptied")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchOffers_MissingDirectory(t *testing.T) {
	err := WatchOffers(context.Background(), "/nonexistent/dir/offers.yaml", 0, func(*domain.Configuration, error) {})
	assert.Error(t, err)
}

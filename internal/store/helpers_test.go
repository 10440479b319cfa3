package store_test

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eventdesk/eventdesk/internal/notify"
)

// fakeSource serves canned fixture payloads. A non-nil err makes every
// fetch fail; tests flip it to exercise the load-failure path.
type fakeSource struct {
	payloads map[string]string
	err      error
}

func (f *fakeSource) Fetch(_ context.Context, name string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.payloads[name]
	if !ok {
		return nil, fmt.Errorf("no fixture %q", name)
	}
	return []byte(p), nil
}

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// recordBanners subscribes to the banner category and collects the texts.
func recordBanners(n *notify.Notifier) *[]string {
	var got []string
	n.Subscribe(notify.Banner, func(sig notify.Signal) {
		got = append(got, sig.Text)
	})
	return &got
}

// countSignals subscribes to kind and counts deliveries.
func countSignals(n *notify.Notifier, kind notify.Kind) *int {
	var count int
	n.Subscribe(kind, func(notify.Signal) {
		count++
	})
	return &count
}

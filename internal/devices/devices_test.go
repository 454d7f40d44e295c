package devices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/netdash/netdash/internal/model"
)

// fakeLister is a scripted device collaborator.
type fakeLister struct {
	devices []model.Device
	err     error
	block   chan struct{}
}

func (f *fakeLister) Devices(_ context.Context) ([]model.Device, error) {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.devices, nil
}

func seedDevices(n int) []model.Device {
	devices := make([]model.Device, n)
	for i := range devices {
		devices[i] = model.Device{
			ID:          string(rune('a' + i)),
			IPAddress:   "192.168.1.1",
			Status:      model.StatusOnline,
			IsMonitored: true,
		}
	}
	return devices
}

func TestFetchSuccess(t *testing.T) {
	store := New(&fakeLister{devices: seedDevices(4)})

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	state := store.Snapshot()
	if len(state.Devices) != 4 {
		t.Errorf("devices = %d, want 4", len(state.Devices))
	}
	if state.Loading {
		t.Error("loading must clear after fetch")
	}
	if state.Error != "" {
		t.Errorf("error = %q, want absent", state.Error)
	}
}

func TestFetchFailure(t *testing.T) {
	store := New(&fakeLister{err: errors.New("Server error - please try again later.")})

	if err := store.Fetch(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}

	state := store.Snapshot()
	if state.Error != "Server error - please try again later." {
		t.Errorf("error = %q, want collaborator message verbatim", state.Error)
	}
	if state.Loading {
		t.Error("loading must clear on failure")
	}
}

func TestFetchFailureKeepsStaleSnapshot(t *testing.T) {
	lister := &fakeLister{devices: seedDevices(3)}
	store := New(lister)

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	lister.err = errors.New("Network error - please check your connection and try again.")
	store.Fetch(context.Background())

	state := store.Snapshot()
	if len(state.Devices) != 3 {
		t.Errorf("devices = %d, want previous snapshot kept", len(state.Devices))
	}
	if state.Error == "" {
		t.Error("expected error alongside stale snapshot")
	}
}

func TestFetchClearsPreviousError(t *testing.T) {
	lister := &fakeLister{err: errors.New("boom")}
	store := New(lister)
	store.Fetch(context.Background())

	lister.err = nil
	lister.devices = seedDevices(1)
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	if state := store.Snapshot(); state.Error != "" {
		t.Errorf("error = %q, want cleared at fetch start", state.Error)
	}
}

func TestFetchReplacesWholesale(t *testing.T) {
	lister := &fakeLister{devices: seedDevices(5)}
	store := New(lister)
	store.Fetch(context.Background())

	lister.devices = seedDevices(2)
	store.Fetch(context.Background())

	if state := store.Snapshot(); len(state.Devices) != 2 {
		t.Errorf("devices = %d, want wholesale replacement", len(state.Devices))
	}
}

func TestLoadingVisibleDuringFetch(t *testing.T) {
	lister := &fakeLister{devices: seedDevices(1), block: make(chan struct{})}
	store := New(lister)

	done := make(chan struct{})
	go func() {
		store.Fetch(context.Background())
		close(done)
	}()

	// Loading must be observable while the collaborator is suspended.
	deadline := time.After(time.Second)
	for !store.Snapshot().Loading {
		select {
		case <-deadline:
			t.Fatal("loading flag never set")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(lister.block)
	<-done

	if store.Snapshot().Loading {
		t.Error("loading must clear after resolution")
	}
}

func TestClearError(t *testing.T) {
	store := New(&fakeLister{err: errors.New("boom")})
	store.Fetch(context.Background())

	store.ClearError()
	if state := store.Snapshot(); state.Error != "" {
		t.Errorf("error = %q, want cleared", state.Error)
	}

	store.ClearError()
	if state := store.Snapshot(); state.Error != "" {
		t.Error("ClearError must be idempotent")
	}
}

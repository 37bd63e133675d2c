package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	adapter "github.com/alorle/iptv-player/internal/adapter/driven"
	"github.com/alorle/iptv-player/internal/channel"
	"github.com/alorle/iptv-player/internal/memory"
)

// mockPlayer is a mock implementation of driven.Player for testing.
type mockPlayer struct {
	calls       []string
	playFunc    func(ctx context.Context, url string) error
	releaseFunc func(ctx context.Context) error
}

func (m *mockPlayer) Play(ctx context.Context, url string) error {
	m.calls = append(m.calls, "play "+url)
	if m.playFunc != nil {
		return m.playFunc(ctx, url)
	}
	return nil
}

func (m *mockPlayer) Release(ctx context.Context) error {
	m.calls = append(m.calls, "release")
	if m.releaseFunc != nil {
		return m.releaseFunc(ctx)
	}
	return nil
}

// recordingObserver records ListObserver notifications.
type recordingObserver struct {
	events []string
	reset  []channel.Channel
}

func (o *recordingObserver) Reset(channels []channel.Channel) {
	o.events = append(o.events, fmt.Sprintf("reset %d", len(channels)))
	o.reset = channels
}

func (o *recordingObserver) Inserted(index int, ch channel.Channel) {
	o.events = append(o.events, fmt.Sprintf("inserted %d %s", index, ch.Name()))
}

func (o *recordingObserver) Changed(index int, ch channel.Channel) {
	o.events = append(o.events, fmt.Sprintf("changed %d %s", index, ch.Name()))
}

func (o *recordingObserver) Removed(index int) {
	o.events = append(o.events, fmt.Sprintf("removed %d", index))
}

type controllerFixture struct {
	controller *ChannelListController
	prefs      *memory.PreferenceStore
	player     *mockPlayer
	observer   *recordingObserver
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()

	prefs := memory.NewPreferenceStore()
	store := NewChannelStore(prefs, adapter.NewJSONChannelCodec(), discardLogger())
	player := &mockPlayer{}
	observer := &recordingObserver{}

	return &controllerFixture{
		controller: NewChannelListController(store, player, observer, discardLogger()),
		prefs:      prefs,
		player:     player,
		observer:   observer,
	}
}

func (f *controllerFixture) lastEvent() string {
	if len(f.observer.events) == 0 {
		return ""
	}
	return f.observer.events[len(f.observer.events)-1]
}

func TestChannelListController_OnStart(t *testing.T) {
	t.Run("loads defaults and plays the first channel", func(t *testing.T) {
		f := newControllerFixture(t)

		if err := f.controller.OnStart(context.Background()); err != nil {
			t.Fatalf("OnStart() unexpected error = %v", err)
		}

		want := "play " + channel.Defaults()[0].URL()
		if len(f.player.calls) != 1 || f.player.calls[0] != want {
			t.Errorf("player calls = %v, want [%s]", f.player.calls, want)
		}
		if !channel.Equal(f.observer.reset, channel.Defaults()) {
			t.Errorf("observer reset with %v, want defaults", f.observer.reset)
		}
	})

	t.Run("empty list does not play", func(t *testing.T) {
		f := newControllerFixture(t)
		if err := f.prefs.Set(context.Background(), ChannelListKey, "[]"); err != nil {
			t.Fatalf("failed to prime store: %v", err)
		}

		if err := f.controller.OnStart(context.Background()); err != nil {
			t.Fatalf("OnStart() unexpected error = %v", err)
		}
		if len(f.player.calls) != 0 {
			t.Errorf("expected no player calls, got %v", f.player.calls)
		}
		if f.lastEvent() != "reset 0" {
			t.Errorf("last event = %q, want %q", f.lastEvent(), "reset 0")
		}
	})

	t.Run("corrupt data is not fatal", func(t *testing.T) {
		f := newControllerFixture(t)
		if err := f.prefs.Set(context.Background(), ChannelListKey, "{{{"); err != nil {
			t.Fatalf("failed to prime store: %v", err)
		}

		if err := f.controller.OnStart(context.Background()); err != nil {
			t.Fatalf("OnStart() should recover from corrupt data, got %v", err)
		}
		if !channel.Equal(f.controller.Store().Channels(), channel.Defaults()) {
			t.Errorf("expected defaults after corrupt load, got %v", f.controller.Store().Channels())
		}
		if len(f.player.calls) != 1 {
			t.Errorf("expected the first default to play, got %v", f.player.calls)
		}
	})

	t.Run("store read failure is returned", func(t *testing.T) {
		prefs := &mockPreferenceStore{
			getFunc: func(ctx context.Context, key string) (string, bool, error) {
				return "", false, errors.New("connection refused")
			},
		}
		store := NewChannelStore(prefs, adapter.NewJSONChannelCodec(), discardLogger())
		player := &mockPlayer{}
		controller := NewChannelListController(store, player, nil, discardLogger())

		if err := controller.OnStart(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if len(player.calls) != 0 {
			t.Errorf("expected no player calls, got %v", player.calls)
		}
	})

	t.Run("player failure is returned", func(t *testing.T) {
		f := newControllerFixture(t)
		playErr := errors.New("no decoder")
		f.player.playFunc = func(ctx context.Context, url string) error { return playErr }

		err := f.controller.OnStart(context.Background())
		if !errors.Is(err, playErr) {
			t.Errorf("OnStart() error = %v, want %v", err, playErr)
		}
		if f.controller.Store().Len() != 2 {
			t.Errorf("list should be loaded despite player failure")
		}
	})
}

func TestChannelListController_OnSelect(t *testing.T) {
	t.Run("plays the selected channel without changing the list", func(t *testing.T) {
		f := newControllerFixture(t)
		ctx := context.Background()
		if err := f.controller.OnStart(ctx); err != nil {
			t.Fatalf("OnStart() unexpected error = %v", err)
		}
		events := len(f.observer.events)

		if err := f.controller.OnSelect(ctx, 1); err != nil {
			t.Fatalf("OnSelect() unexpected error = %v", err)
		}

		want := "play " + channel.Defaults()[1].URL()
		if got := f.player.calls[len(f.player.calls)-1]; got != want {
			t.Errorf("last player call = %q, want %q", got, want)
		}
		if len(f.observer.events) != events {
			t.Errorf("observer notified on select: %v", f.observer.events)
		}
		if !channel.Equal(f.controller.Store().Channels(), channel.Defaults()) {
			t.Error("list changed on select")
		}
	})

	t.Run("out of range", func(t *testing.T) {
		f := newControllerFixture(t)
		if err := f.controller.OnStart(context.Background()); err != nil {
			t.Fatalf("OnStart() unexpected error = %v", err)
		}

		err := f.controller.OnSelect(context.Background(), 2)
		if !errors.Is(err, channel.ErrIndexOutOfRange) {
			t.Errorf("OnSelect(2) error = %v, want ErrIndexOutOfRange", err)
		}
	})
}

func TestChannelListController_Mutations(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	if err := f.controller.OnStart(ctx); err != nil {
		t.Fatalf("OnStart() unexpected error = %v", err)
	}

	if err := f.controller.OnAdd(ctx, channel.NewChannel("X", "u", "l")); err != nil {
		t.Fatalf("OnAdd() unexpected error = %v", err)
	}
	if f.lastEvent() != "inserted 2 X" {
		t.Errorf("last event = %q, want %q", f.lastEvent(), "inserted 2 X")
	}

	if err := f.controller.OnEdit(ctx, 2, channel.NewChannel("Y", "u2", "l2")); err != nil {
		t.Fatalf("OnEdit() unexpected error = %v", err)
	}
	if f.lastEvent() != "changed 2 Y" {
		t.Errorf("last event = %q, want %q", f.lastEvent(), "changed 2 Y")
	}

	if err := f.controller.OnDelete(ctx, 0); err != nil {
		t.Fatalf("OnDelete() unexpected error = %v", err)
	}
	if f.lastEvent() != "removed 0" {
		t.Errorf("last event = %q, want %q", f.lastEvent(), "removed 0")
	}

	events := len(f.observer.events)
	if err := f.controller.OnEdit(ctx, 5, channel.NewChannel("Z", "", "")); !errors.Is(err, channel.ErrIndexOutOfRange) {
		t.Errorf("OnEdit(5) error = %v, want ErrIndexOutOfRange", err)
	}
	if err := f.controller.OnDelete(ctx, -1); !errors.Is(err, channel.ErrIndexOutOfRange) {
		t.Errorf("OnDelete(-1) error = %v, want ErrIndexOutOfRange", err)
	}
	if len(f.observer.events) != events {
		t.Errorf("observer notified for failed mutations: %v", f.observer.events[events:])
	}

	want := []channel.Channel{channel.Defaults()[1], channel.NewChannel("Y", "u2", "l2")}
	if !channel.Equal(f.controller.Store().Channels(), want) {
		t.Errorf("Channels() = %v, want %v", f.controller.Store().Channels(), want)
	}
}

func TestChannelListController_OnStop(t *testing.T) {
	t.Run("releases the player then saves", func(t *testing.T) {
		prefs := &mockPreferenceStore{}
		store := NewChannelStore(prefs, adapter.NewJSONChannelCodec(), discardLogger())
		var order []string
		player := &mockPlayer{
			releaseFunc: func(ctx context.Context) error {
				order = append(order, "release")
				return nil
			},
		}
		prefs.setFunc = func(ctx context.Context, key, value string) error {
			order = append(order, "save")
			return nil
		}
		controller := NewChannelListController(store, player, nil, discardLogger())

		if err := controller.OnStart(context.Background()); err != nil {
			t.Fatalf("OnStart() unexpected error = %v", err)
		}
		if err := controller.OnStop(context.Background()); err != nil {
			t.Fatalf("OnStop() unexpected error = %v", err)
		}

		if len(order) != 2 || order[0] != "release" || order[1] != "save" {
			t.Errorf("order = %v, want [release save]", order)
		}
	})

	t.Run("saves even when release fails", func(t *testing.T) {
		f := newControllerFixture(t)
		ctx := context.Background()
		if err := f.controller.OnStart(ctx); err != nil {
			t.Fatalf("OnStart() unexpected error = %v", err)
		}
		releaseErr := errors.New("device busy")
		f.player.releaseFunc = func(ctx context.Context) error { return releaseErr }

		err := f.controller.OnStop(ctx)
		if !errors.Is(err, releaseErr) {
			t.Errorf("OnStop() error = %v, want %v", err, releaseErr)
		}

		if _, ok, _ := f.prefs.Get(ctx, ChannelListKey); !ok {
			t.Error("expected list to be saved despite release failure")
		}
	})
}

func TestChannelListController_EndToEnd(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	defaults := channel.Defaults()

	// Start against an empty store.
	if err := f.controller.OnStart(ctx); err != nil {
		t.Fatalf("OnStart() unexpected error = %v", err)
	}
	if f.controller.Store().Len() != 2 {
		t.Fatalf("expected 2 defaults, got %d", f.controller.Store().Len())
	}
	if f.player.calls[0] != "play "+defaults[0].URL() {
		t.Errorf("expected default[0] to play, got %v", f.player.calls)
	}

	x := channel.NewChannel("X", "u", "l")
	if err := f.controller.OnAdd(ctx, x); err != nil {
		t.Fatalf("OnAdd() unexpected error = %v", err)
	}
	if last, _ := f.controller.Store().At(2); f.controller.Store().Len() != 3 || last != x {
		t.Fatalf("expected 3 channels ending with X, got %v", f.controller.Store().Channels())
	}

	if err := f.controller.OnDelete(ctx, 0); err != nil {
		t.Fatalf("OnDelete() unexpected error = %v", err)
	}
	if first, _ := f.controller.Store().At(0); f.controller.Store().Len() != 2 || first != defaults[1] {
		t.Fatalf("expected former default[1] first, got %v", f.controller.Store().Channels())
	}

	if err := f.controller.OnStop(ctx); err != nil {
		t.Fatalf("OnStop() unexpected error = %v", err)
	}
	if f.player.calls[len(f.player.calls)-1] != "release" {
		t.Errorf("expected player release, got %v", f.player.calls)
	}

	persisted := loadFresh(t, f.prefs)
	want := []channel.Channel{defaults[1], x}
	if !channel.Equal(persisted, want) {
		t.Errorf("persisted %v, want %v", persisted, want)
	}
	if !channel.Equal(persisted, f.controller.Store().Channels()) {
		t.Error("persisted list differs from in-memory list")
	}
}

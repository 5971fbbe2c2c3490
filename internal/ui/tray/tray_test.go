package tray

import (
	"testing"

	"focustraining/internal/core/session"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	menus []*fyne.Menu
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menus = append(host.menus, menu)
}

func labels(menu *fyne.Menu) []string {
	var out []string
	for _, item := range menu.Items {
		if item.IsSeparator {
			continue
		}
		out = append(out, item.Label)
	}
	return out
}

func TestNewPublishesMenu(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, Callbacks{})

	require.Len(t, host.menus, 1)
	assert.Equal(t, []string{"Status: starting...", "Show Focus Training", "Start", "Reset", "Mute", "Quit"}, labels(manager.Menu()))
}

func TestSync(t *testing.T) {
	tests := []struct {
		name       string
		snapshot   session.Snapshot
		wantStatus string
		wantToggle string
		wantMute   string
		disabled   bool
	}{
		{
			name:       "fresh",
			snapshot:   session.Snapshot{State: session.StateIdle, DurationMinutes: 5, Remaining: 300},
			wantStatus: "Status: 5:00 ready",
			wantToggle: "Start",
			wantMute:   "Mute",
		},
		{
			name:       "paused",
			snapshot:   session.Snapshot{State: session.StateIdle, DurationMinutes: 5, Remaining: 250, Score: 2},
			wantStatus: "Status: 4:10 (paused)",
			wantToggle: "Start",
			wantMute:   "Mute",
		},
		{
			name:       "running muted",
			snapshot:   session.Snapshot{State: session.StateRunning, Running: true, Remaining: 61, Score: 4, Muted: true},
			wantStatus: "Status: 1:01 left, score 4",
			wantToggle: "Pause",
			wantMute:   "Unmute",
		},
		{
			name:       "expired",
			snapshot:   session.Snapshot{State: session.StateExpired, Score: 7},
			wantStatus: "Status: finished, score 7",
			wantToggle: "Start",
			wantMute:   "Mute",
			disabled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &fakeHost{}
			manager := New(host, Callbacks{})

			manager.Sync(tt.snapshot)

			require.Len(t, host.menus, 2)
			assert.Equal(t, tt.wantStatus, manager.statusItem.Label)
			assert.Equal(t, tt.wantToggle, manager.toggleItem.Label)
			assert.Equal(t, tt.wantMute, manager.muteItem.Label)
			assert.Equal(t, tt.disabled, manager.toggleItem.Disabled)
		})
	}
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	var calls []string
	manager := New(nil, Callbacks{
		OnShow:       func() { calls = append(calls, "show") },
		OnToggle:     func() { calls = append(calls, "toggle") },
		OnReset:      func() { calls = append(calls, "reset") },
		OnToggleMute: func() { calls = append(calls, "mute") },
		OnQuit:       func() { calls = append(calls, "quit") },
	})

	for _, item := range manager.Menu().Items {
		if item.Action != nil {
			item.Action()
		}
	}

	assert.Equal(t, []string{"show", "toggle", "reset", "mute", "quit"}, calls)
}

func TestMissingCallbacksAreIgnored(t *testing.T) {
	manager := New(nil, Callbacks{})
	for _, item := range manager.Menu().Items {
		if item.Action != nil {
			assert.NotPanics(t, item.Action)
		}
	}
}

type iconHost struct {
	fakeHost
	icons []fyne.Resource
}

func (host *iconHost) SetSystemTrayIcon(icon fyne.Resource) {
	host.icons = append(host.icons, icon)
}

func TestSyncFollowsMuteFromSnapshot(t *testing.T) {
	active := fyne.NewStaticResource("active.svg", []byte("<svg/>"))
	muted := fyne.NewStaticResource("muted.svg", []byte("<svg/>"))
	host := &iconHost{}
	manager := New(host, Callbacks{})
	manager.SetIcons(active, muted)

	manager.Sync(session.Snapshot{State: session.StateIdle, Remaining: 300})
	manager.Sync(session.Snapshot{State: session.StateRunning, Remaining: 299})
	require.Equal(t, []fyne.Resource{active}, host.icons)

	// Only the latest snapshot matters, whatever events came before it.
	manager.Sync(session.Snapshot{State: session.StateRunning, Remaining: 200, Muted: true})
	manager.Sync(session.Snapshot{State: session.StateRunning, Remaining: 199})

	assert.Equal(t, []fyne.Resource{active, muted, active}, host.icons)
}

func TestSyncWithoutIconHost(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, Callbacks{})
	manager.SetIcons(fyne.NewStaticResource("a.svg", nil), fyne.NewStaticResource("m.svg", nil))

	assert.NotPanics(t, func() {
		manager.Sync(session.Snapshot{State: session.StateIdle, Muted: true})
	})
}

package tray

import (
	"fmt"

	"focustraining/internal/core/session"

	"fyne.io/fyne/v2"
)

// MenuHost shows the tray menu. desktop.App satisfies it.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// IconHost shows the tray icon. desktop.App satisfies it.
type IconHost interface {
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnToggle     func()
	OnReset      func()
	OnToggleMute func()
	OnQuit       func()
}

// Manager handles system tray state.
type Manager struct {
	host       MenuHost
	statusItem *fyne.MenuItem
	showItem   *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	muteItem   *fyne.MenuItem
	quitItem   *fyne.MenuItem
	callbacks  Callbacks
	menu       *fyne.Menu

	activeIcon fyne.Resource
	mutedIcon  fyne.Resource
	shownIcon  fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.showItem = fyne.NewMenuItem("Show Focus Training", func() {
		invoke(manager.callbacks.OnShow)
	})
	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		invoke(manager.callbacks.OnToggle)
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		invoke(manager.callbacks.OnReset)
	})
	manager.muteItem = fyne.NewMenuItem("Mute", func() {
		invoke(manager.callbacks.OnToggleMute)
	})
	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		invoke(manager.callbacks.OnQuit)
	})
	manager.quitItem.IsQuit = true

	manager.refreshMenu()
	return manager
}

// SetIcons sets the tray icons used for the unmuted and muted states.
func (manager *Manager) SetIcons(active, muted fyne.Resource) {
	manager.activeIcon = active
	manager.mutedIcon = muted
}

// Sync updates labels and the tray icon from a session snapshot.
func (manager *Manager) Sync(snapshot session.Snapshot) {
	remaining := session.FormatRemaining(snapshot.Remaining)
	switch {
	case snapshot.State == session.StateRunning:
		manager.statusItem.Label = fmt.Sprintf("Status: %s left, score %d", remaining, snapshot.Score)
		manager.toggleItem.Label = "Pause"
	case snapshot.State == session.StateExpired:
		manager.statusItem.Label = fmt.Sprintf("Status: finished, score %d", snapshot.Score)
		manager.toggleItem.Label = "Start"
	case snapshot.Remaining == snapshot.DurationMinutes*60 && snapshot.Score == 0:
		manager.statusItem.Label = fmt.Sprintf("Status: %s ready", remaining)
		manager.toggleItem.Label = "Start"
	default:
		manager.statusItem.Label = fmt.Sprintf("Status: %s (paused)", remaining)
		manager.toggleItem.Label = "Start"
	}
	manager.toggleItem.Disabled = snapshot.State == session.StateExpired

	icon := manager.activeIcon
	if snapshot.Muted {
		manager.muteItem.Label = "Unmute"
		icon = manager.mutedIcon
	} else {
		manager.muteItem.Label = "Mute"
	}
	manager.refreshMenu()
	manager.showIcon(icon)
}

func (manager *Manager) showIcon(icon fyne.Resource) {
	if icon == nil || icon == manager.shownIcon {
		return
	}
	host, ok := manager.host.(IconHost)
	if !ok {
		return
	}
	manager.shownIcon = icon
	host.SetSystemTrayIcon(icon)
}

// Menu returns the menu last handed to the host.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshMenu() {
	manager.menu = fyne.NewMenu("Focus Training",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.showItem,
		manager.toggleItem,
		manager.resetItem,
		manager.muteItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	)
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}

package main

import (
	"errors"
	"os"

	"focustraining/internal/audio"
	"focustraining/internal/core/model"
	"focustraining/internal/core/session"
	"focustraining/internal/platform"
	"focustraining/internal/ui/panel"
	"focustraining/internal/ui/tray"
	"focustraining/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	log "github.com/sirupsen/logrus"
)

const appName = "FocusTraining"

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.WithError(err).Info("another instance is running")
			return
		}
		log.WithError(err).Fatal("single instance")
	}
	defer func() {
		if err := guard.Release(); err != nil {
			log.WithError(err).Warn("release single instance guard")
		}
	}()

	fyneApp := app.NewWithID("com.focustraining.app")
	fyneApp.SetIcon(resources.MustIcon("focus.svg"))

	player := audio.NewPlayer(audio.EndMelody(),
		audio.WithLogger(log.WithField("component", "audio")))
	focus := session.New(model.DefaultSessionConfig(),
		session.WithLogger(log.WithField("component", "session")),
		session.WithMelody(player))
	defer focus.Close()

	window := panel.New(fyneApp, focus)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		setupTray(desktopApp, fyneApp, window, focus)
	} else {
		log.Info("system tray unsupported on this platform")
	}

	window.Show()
	fyneApp.Run()
}

func setupTray(desktopApp desktop.App, fyneApp fyne.App, window *panel.Window, focus *session.Session) {
	activeIcon := resources.MustIcon("focus.svg")
	mutedIcon := resources.MustIcon("focus_muted.svg")

	manager := tray.New(desktopApp, tray.Callbacks{
		OnShow: window.Show,
		OnToggle: func() {
			focus.Toggle()
			window.Refresh()
		},
		OnReset: func() {
			focus.Reset()
			window.Refresh()
		},
		OnToggleMute: func() {
			focus.ToggleMute()
			window.Refresh()
		},
		OnQuit: func() {
			focus.Close()
			fyneApp.Quit()
		},
	})
	manager.SetIcons(activeIcon, mutedIcon)
	manager.Sync(focus.Snapshot())

	window.SetCloseIntercept(window.Hide)

	events := focus.Subscribe(8)
	go func() {
		for event := range events {
			fyne.Do(func() {
				manager.Sync(focus.Snapshot())
			})
			if event.Type == session.EventExpired {
				fyne.Do(window.Show)
			}
		}
	}()
}

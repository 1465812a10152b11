package main

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adibhanna/worktime/internal/app"
	"github.com/adibhanna/worktime/internal/storage"
	"github.com/adibhanna/worktime/internal/tracker"
	"github.com/adibhanna/worktime/internal/ui/dashboard"
	"github.com/adibhanna/worktime/internal/ui/settings"
	"github.com/adibhanna/worktime/internal/ui/stats"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, closeLogger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatal("Failed to set up logging:", err)
	}
	defer closeLogger()

	var store *storage.Store
	if cfg.DataDir != "" {
		store, err = storage.NewAt(cfg.DataDir, logger)
	} else {
		store, err = storage.New(logger)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	trk := tracker.New(tracker.SystemClock(), store, store, logger)
	trk.SetOnChange(func() {
		logger.Debug("tracker state changed")
	})
	defer trk.Flush()

	if err := runApp(store, trk); err != nil {
		log.Fatal(err)
	}
}

func runApp(store *storage.Store, trk *tracker.Tracker) error {
	// First run: collect rate and calendar preferences before tracking.
	if store.IsFirstTime() {
		fmt.Println("*** Welcome to worktime! ***")
		fmt.Println("Let's set up your rate and calendar...")

		settingsModel, err := settings.New(store)
		if err != nil {
			return err
		}

		p := tea.NewProgram(settingsModel, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
		fmt.Println("[OK] Setup complete!")
	}

	for {
		userSettings, err := store.GetSettings()
		if err != nil {
			return err
		}

		dashboardModel := dashboard.New(trk, userSettings)
		p := tea.NewProgram(dashboardModel, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		dashboardModel = finalModel.(dashboard.Model)
		if dashboardModel.ShouldQuit() {
			fmt.Println(">>> Tracked time saved. See you!")
			return nil
		}

		if dashboardModel.ShouldOpenSettings() {
			settingsModel, err := settings.New(store)
			if err != nil {
				return err
			}

			p := tea.NewProgram(settingsModel, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
		}

		if dashboardModel.ShouldOpenDayStats() {
			statsModel := stats.New(trk, userSettings)
			p := tea.NewProgram(statsModel, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
		}
	}
}

package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// KeepInTouchApp encapsulates the UI state, preferences, and background logic.
type KeepInTouchApp struct {
	App            fyne.App
	MainWindow     fyne.Window
	SettingsWindow fyne.Window
	Preferences    fyne.Preferences
	I18nBundle     *i18n.Bundle
	Localizer      *i18n.Localizer
	Ctx            context.Context

	Repo    *engine.Repository
	Server  *server.FeedServer
	Fetcher engine.VCardFetcher
	Clock   engine.Clock // Injected clock for testability (e.g. mocking time travel)
	Links   *engine.LinkBuilder

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayUpcomingItem *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string
	feedChan           chan struct{}

	upcomingWindow fyne.Window

	// refreshPeople is installed by buildMainWindow so mutations made elsewhere
	// (vCard import, settings save) can refresh the visible list.
	refreshPeople func()
}

// NewKeepInTouchApp constructs the application and wires dependencies.
func NewKeepInTouchApp(a fyne.App, ctx context.Context, repo *engine.Repository, srv *server.FeedServer, fetcher engine.VCardFetcher) *KeepInTouchApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &KeepInTouchApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Repo:               repo,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{}, // Default to real clock in production
		Links:              engine.NewLinkBuilder(),
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		feedChan:           make(chan struct{}, config.ChannelBufferSize),
	}
}

// Run launches the application services and the main UI loop.
func (app *KeepInTouchApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.buildMainWindow()
	app.MainWindow.Show()

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *KeepInTouchApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// RequestFeedRebuild signals the background worker to regenerate the calendar
// feed. Non-blocking: a pending signal already covers the change.
func (app *KeepInTouchApp) RequestFeedRebuild() {
	select {
	case app.feedChan <- struct{}{}:
	default:
	}
}

// setupTrayMenu constructs the system tray menu.
func (app *KeepInTouchApp) setupTrayMenu() {
	// The status item doubles as a button to raise the main window.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.showMainWindow()
	})
	app.TrayStatusItem.Disabled = false

	app.TrayUpcomingItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuUpcoming), func() {
		app.ShowUpcomingWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		app.RequestFeedRebuild()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayUpcomingItem,
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// showMainWindow raises the people window, which close only hides.
func (app *KeepInTouchApp) showMainWindow() {
	if app.MainWindow == nil {
		return
	}
	app.MainWindow.Show()
	app.MainWindow.RequestFocus()
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *KeepInTouchApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayUpcomingItem.Label = app.GetMsg(config.TKeyMenuUpcoming)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker manages the periodic feed regeneration schedule.
func (app *KeepInTouchApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.rebuildFeed()

	getInterval := func() time.Duration {
		val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
		if val <= 0 {
			val = config.DefaultRefreshMin
		}
		return time.Duration(val) * time.Minute
	}

	currentDuration := getInterval()
	ticker := time.NewTicker(currentDuration)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := getInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateInterval, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				ticker.Reset(currentDuration)
			}

		case <-app.feedChan:
			app.rebuildFeed()

		case <-ticker.C:
			// Periodic rebuild keeps follow-up due dates and overdue counts
			// current as days roll over, even without data changes.
			app.rebuildFeed()
		}
	}
}

// rebuildFeed regenerates the calendar feed from the people collection,
// publishes it to the HTTP server, and refreshes the tray overdue count.
func (app *KeepInTouchApp) rebuildFeed() {
	slog.Info(config.MsgFeedReq, config.LogKeyComponent, config.CompUI)

	people := app.Repo.Load()

	// Use the app's injected clock (Real or Mock)
	gen := &engine.Generator{
		Clock:           app.Clock,
		FormatSummary:   app.buildSummaryFormatter(),
		FormatFollowUp:  app.buildFollowUpFormatter(),
		ReminderTrigger: app.loadReminderTrigger(),
	}

	icsData, err := gen.Generate(people)
	if err != nil {
		slog.Error(config.ErrICalEncode, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.updateTrayStatus(-1)
		return
	}

	app.Server.Update(icsData)
	app.updateTrayStatus(app.countOverdue(people))

	slog.Info(config.MsgFeedRebuilt,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(people))
}

// countOverdue evaluates the cadence rule for every person against today.
func (app *KeepInTouchApp) countOverdue(people []engine.Person) int {
	today := engine.Today(app.Clock)
	count := 0
	for _, p := range people {
		if engine.IsOverdue(p, today) {
			count++
		}
	}
	return count
}

// updateTrayStatus updates the top menu item to show how many people are overdue.
func (app *KeepInTouchApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	if count < 0 {
		label = config.FallbackTrayError
	} else if count == 0 {
		// Explicit handling for 0 to use "No one overdue" / "Personne en retard"
		label = app.GetMsg(config.TKeyTrayStatusZero)
		if label == config.TKeyTrayStatusZero {
			label = fmt.Sprintf(config.FallbackTrayDefault, 0)
		}
	} else {
		// Standard pluralization for > 0
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Count": count},
				PluralCount:  count,
			})
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// loadReminderTrigger assembles the ISO8601 alarm trigger from UI preferences.
// An empty string means reminders are disabled.
func (app *KeepInTouchApp) loadReminderTrigger() string {
	if !app.Preferences.Bool(config.PrefReminderEnabled) {
		return ""
	}

	val := app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)
	unit := app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays)
	dir := app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore)

	sign := config.ISOPeriodPrefix
	if dir == config.DirBefore {
		sign = config.ISONegativePrefix
	}

	switch unit {
	case config.UnitHours:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimeDesignator, val, config.ISOHour)
	case config.UnitMinutes:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimeDesignator, val, config.ISOMinute)
	default:
		return fmt.Sprintf("%s%d%s", sign, val, config.ISODay)
	}
}

// importCredentials returns the CardDAV password for the configured user from
// the system keyring, empty when absent.
func (app *KeepInTouchApp) importCredentials(user string) string {
	if user == "" {
		return ""
	}
	p, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyUser, user,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		return ""
	}
	return p
}

// openExternal hands a URL to the platform browser.
func (app *KeepInTouchApp) openExternal(raw string) {
	u, err := url.Parse(raw)
	if err != nil {
		slog.Error(config.ErrInvalidURL,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	if err := app.App.OpenURL(u); err != nil {
		slog.Error(config.ErrOpenURL,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyURL, u.Redacted(),
			config.LogKeyError, err)
	}
}

// buildSummaryFormatter returns a closure that localizes the birthday event summary.
func (app *KeepInTouchApp) buildSummaryFormatter() func(name string, age int) string {
	return func(name string, age int) string {
		var msg string
		var err error

		if app.Localizer != nil {
			// Special Case: Age 0 means "Birth"
			if age == 0 {
				msg, err = app.Localizer.Localize(&i18n.LocalizeConfig{
					MessageID:    config.TKeyEvtSummaryBirth,
					TemplateData: map[string]interface{}{"Name": name},
				})
			} else {
				msg, err = app.Localizer.Localize(&i18n.LocalizeConfig{
					MessageID:    config.TKeyEvtSummaryAge,
					TemplateData: map[string]interface{}{"Name": name, "Age": age},
				})
			}
		} else {
			err = fmt.Errorf(config.ErrLocNotInit)
		}

		if err != nil || msg == "" {
			if age == 0 {
				return fmt.Sprintf(config.FallbackSummaryBirth, name)
			}
			return fmt.Sprintf(config.FallbackSummaryAge, name, age)
		}
		return msg
	}
}

// buildFollowUpFormatter returns a closure that localizes the follow-up event title.
func (app *KeepInTouchApp) buildFollowUpFormatter() func(name string) string {
	return func(name string) string {
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyEvtFollowUp,
				TemplateData: map[string]interface{}{"Name": name},
			})
			if err == nil && msg != "" {
				return msg
			}
		}
		return fmt.Sprintf(config.FallbackFollowUp, name)
	}
}

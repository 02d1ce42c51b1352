package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
	checkReminder *widget.Check
	entryRemValue *NumericalEntry
	selectRemUnit *widget.Select
	selectRemDir  *widget.Select
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *KeepInTouchApp) ShowSettingsWindow() {
	if app.SettingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.SettingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.SettingsWindow = w

	sw := &settingsWidgets{}

	// refreshLayout triggers a window resize based on content visibility.
	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- 1. Language ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	// --- 2. Import Source Section ---
	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeCardDAV),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	// Attempt to pre-fill password from secure storage
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	// --- 3. General Section (Interval & Port) ---

	// Interval: Numerical only. "0" or "empty" are handled in save logic.
	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	// Port: Numerical only, but requires strict validation (range 1-65535).
	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalForm := widget.NewForm(itemLang, itemInterval, itemPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- 4. Reminder Section ---
	sw.checkReminder = widget.NewCheck(app.GetMsg(config.TKeyLblEnableRem), nil)
	sw.checkReminder.Checked = app.Preferences.Bool(config.PrefReminderEnabled)

	// Reminder Value: Numerical only. Empty disables the feature in save logic.
	sw.entryRemValue = NewNumericalEntry()
	sw.entryRemValue.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)))

	sw.selectRemUnit = widget.NewSelect([]string{
		app.GetMsg(config.TKeyUnitDays),
		app.GetMsg(config.TKeyUnitHours),
		app.GetMsg(config.TKeyUnitMinutes),
	}, nil)

	currentUnit := app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays)
	switch currentUnit {
	case config.UnitHours:
		sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitHours))
	case config.UnitMinutes:
		sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitMinutes))
	default:
		sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitDays))
	}

	sw.selectRemDir = widget.NewSelect([]string{
		app.GetMsg(config.TKeyDirBefore),
		app.GetMsg(config.TKeyDirAfter),
	}, nil)
	currentDir := app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore)
	if currentDir == config.DirAfter {
		sw.selectRemDir.SetSelected(app.GetMsg(config.TKeyDirAfter))
	} else {
		sw.selectRemDir.SetSelected(app.GetMsg(config.TKeyDirBefore))
	}

	notifCard := app.buildNotifCard(sw, onLayoutChange)

	// --- Actions ---
	saveAction := func() {
		// Only the Port field has a strict requirement that blocks saving if invalid.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerText := fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version)
	footerLabel := widget.NewLabel(footerText)
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	// Assembly
	paddedContent := container.NewPadded(container.NewVBox(
		sourceCard,
		generalCard,
		notifCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	// Logic to resize window based on content
	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.SettingsWindow = nil })

	refreshLayout()
	w.Show()
}

// buildSourceCard constructs the vCard import source UI, including the
// import and export actions.
func (app *KeepInTouchApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	// Web Form
	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)

	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry)

	webForm := widget.NewForm(itemURL, itemUser, itemPass)

	// Local Form
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	// Dynamic visibility based on mode
	updateVis := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	sw.modeSelect.OnChanged = updateVis

	currentMode := app.Preferences.String(config.PrefImportMode)
	if currentMode == config.ImportModeLocal {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	}

	// Apply initial visibility
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeLocal) {
		webForm.Hide()
		localForm.Show()
	} else {
		webForm.Show()
		localForm.Hide()
	}

	// Import pulls records from the selected source with the values as
	// currently typed, without requiring a save first.
	importBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.DownloadIcon(), func() {
		go app.performImport(sw)
	})

	exportBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.UploadIcon(), func() {
		app.performExport(w)
	})

	actions := container.NewGridWithColumns(config.LayoutColumnsDouble, importBtn, exportBtn)

	return widget.NewCard(app.GetMsg(config.TKeyLblImportSource), "",
		container.NewVBox(sw.modeSelect, webForm, localForm, actions))
}

// buildNotifCard constructs the notification/reminder UI.
func (app *KeepInTouchApp) buildNotifCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	// Controls: Value | Unit | Direction
	controls := container.NewHBox(sw.selectRemUnit, sw.selectRemDir)
	row := container.NewBorder(nil, nil, nil, controls, sw.entryRemValue)

	sw.checkReminder.OnChanged = func(b bool) {
		if b {
			row.Show()
		} else {
			row.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if sw.checkReminder.Checked {
		row.Show()
	} else {
		row.Hide()
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblNotif), "", container.NewVBox(sw.checkReminder, row))
}

// performImport merges vCards from the selected source into the collection.
// New names are created as blank-cadence records; known names are skipped.
func (app *KeepInTouchApp) performImport(sw *settingsWidgets) {
	log := slog.With(config.LogKeyComponent, config.CompUISet)

	var (
		reader   io.Reader
		closeFns []func() error
	)

	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeLocal) {
		path := sw.pathEntry.Text
		if path == "" {
			log.Error(config.ErrLocalPathEmpty)
			app.notifyImportError()
			return
		}
		f, err := os.Open(path)
		if err != nil {
			log.Error(config.MsgImportFailed, config.LogKeyFile, path, config.LogKeyError, err)
			app.notifyImportError()
			return
		}
		reader = f
		closeFns = append(closeFns, f.Close)
	} else {
		rawURL := sw.urlEntry.Text
		if rawURL == "" {
			log.Error(config.ErrWebURLEmpty)
			app.notifyImportError()
			return
		}
		pass := sw.passEntry.Text
		if pass == "" {
			pass = app.importCredentials(sw.userEntry.Text)
		}
		rc, err := app.Fetcher.Fetch(app.Ctx, rawURL, sw.userEntry.Text, pass)
		if err != nil {
			log.Error(config.MsgImportFailed, config.LogKeyError, err)
			app.notifyImportError()
			return
		}
		reader = rc
		closeFns = append(closeFns, rc.Close)
	}

	imported, err := app.Repo.ImportVCards(reader)
	for _, closeFn := range closeFns {
		_ = closeFn()
	}
	if err != nil {
		log.Error(config.MsgImportFailed, config.LogKeyError, err)
		app.notifyImportError()
		return
	}

	log.Info(config.MsgImportDone, config.LogKeyImported, imported)
	app.App.SendNotification(fyne.NewNotification(config.AppName,
		fmt.Sprintf("%s (%d)", app.GetMsg(config.TKeyNotifImportOK), imported)))

	if app.refreshPeople != nil {
		app.refreshPeople()
	}
	app.RequestFeedRebuild()
}

// notifyImportError surfaces an import failure as a system notification.
func (app *KeepInTouchApp) notifyImportError() {
	app.App.SendNotification(fyne.NewNotification(
		config.TitleImportError, app.GetMsg(config.TKeyNotifImportErr)))
}

// performExport writes the whole collection as a vCard 4.0 file.
func (app *KeepInTouchApp) performExport(w fyne.Window) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer func() { _ = wc.Close() }()

		if err := engine.ExportVCards(wc, app.Repo.Load()); err != nil {
			slog.Error(config.ErrVCardEncode,
				config.LogKeyComponent, config.CompUISet,
				config.LogKeyError, err)
			dialog.ShowError(err, w)
		}
	}, w)
	d.SetFileName(config.AppName + config.ExtVCF)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// saveSettings persists the data and triggers a feed rebuild.
// It handles logic for disabling features if numeric fields are empty.
func (app *KeepInTouchApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	// Helper to map UI strings back to config constants
	modeMap := map[string]string{
		app.GetMsg(config.TKeyModeCardDAV): config.ImportModeWeb,
		app.GetMsg(config.TKeyModeLocal):   config.ImportModeLocal,
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefImportMode, modeMap[sw.modeSelect.Selected])
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	// Save password to Keyring only if provided
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error("Failed to save credentials to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	// Logic: Interval
	// If empty or 0, we treat it as disabled (0).
	intervalText := sw.entryInterval.Text
	if intervalText == "" || intervalText == "0" {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
		slog.Info("Auto-refresh disabled via settings", config.LogKeyComponent, config.CompUISet)
	} else {
		if i, err := strconv.Atoi(intervalText); err == nil {
			app.Preferences.SetInt(config.PrefInterval, i)
		}
	}

	// Port
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	// Logic: Reminder
	// If the value field is empty, we force disable reminders, even if the checkbox is checked.
	remValueText := sw.entryRemValue.Text
	if remValueText == "" {
		app.Preferences.SetBool(config.PrefReminderEnabled, false)
		slog.Info("Reminders disabled via settings (value is empty)", config.LogKeyComponent, config.CompUISet)
	} else {
		// Otherwise, respect the checkbox state
		app.Preferences.SetBool(config.PrefReminderEnabled, sw.checkReminder.Checked)
		if v, err := strconv.Atoi(remValueText); err == nil {
			app.Preferences.SetInt(config.PrefReminderValue, v)
		}
	}

	// Map Unit UI String -> Config Code (d, h, m)
	unit := config.UnitDays // default
	switch sw.selectRemUnit.Selected {
	case app.GetMsg(config.TKeyUnitHours):
		unit = config.UnitHours
	case app.GetMsg(config.TKeyUnitMinutes):
		unit = config.UnitMinutes
	}
	app.Preferences.SetString(config.PrefReminderUnit, unit)

	// Map Direction UI String -> Config Code (before, after)
	dir := config.DirBefore // default
	if sw.selectRemDir.Selected == app.GetMsg(config.TKeyDirAfter) {
		dir = config.DirAfter
	}
	app.Preferences.SetString(config.PrefReminderDir, dir)

	// Trigger system-wide updates
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.RequestFeedRebuild()

	w.Close()
}

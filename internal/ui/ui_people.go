package ui

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
)

// buildMainWindow assembles the people window: a searchable list with an
// inline editor page. Closing the window hides it; the app lives in the tray.
func (app *KeepInTouchApp) buildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.MainWindow = w
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetCloseIntercept(func() { w.Hide() })

	var visible []engine.Person

	search := widget.NewEntry()
	search.PlaceHolder = config.PlaceholderSearch

	list := widget.NewList(
		func() int {
			return len(visible)
		},
		func() fyne.CanvasObject {
			name := widget.NewLabel(config.PlaceholderName)
			badge := widget.NewLabel("")
			badge.TextStyle = fyne.TextStyle{Bold: true}
			return container.NewBorder(nil, nil, nil, badge, name)
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(visible) {
				return
			}
			p := visible[id]
			// NewBorder stores center objects before edge ones.
			row := o.(*fyne.Container)
			name := row.Objects[0].(*widget.Label)
			badge := row.Objects[1].(*widget.Label)

			display := p.FullName()
			if display == "" {
				display = config.FallbackName
			}
			name.SetText(display)

			if engine.IsOverdue(p, engine.Today(app.Clock)) {
				badge.SetText(app.GetMsg(config.TKeyLblOverdue))
			} else {
				badge.SetText("")
			}
		},
	)

	reload := func() {
		visible = engine.Filter(app.Repo.Load(), search.Text)
		list.Refresh()
	}
	app.refreshPeople = reload
	search.OnChanged = func(string) { reload() }

	addBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		app.showAddDialog(w, reload)
	})

	top := container.NewBorder(nil, nil, nil, addBtn, search)
	listPage := container.NewBorder(container.NewPadded(top), nil, nil, nil, list)

	list.OnSelected = func(id widget.ListItemID) {
		list.Unselect(id)
		if id >= len(visible) {
			return
		}
		selected := visible[id]
		w.SetContent(app.personEditor(selected, func() {
			reload()
			w.SetContent(listPage)
		}))
	}

	reload()
	w.SetContent(listPage)
}

// showAddDialog asks for a free-form full name and creates a blank record.
// The first token becomes the first name, the rest the last name.
func (app *KeepInTouchApp) showAddDialog(w fyne.Window, reload func()) {
	nameEntry := widget.NewEntry()
	nameEntry.PlaceHolder = config.PlaceholderName

	items := []*widget.FormItem{
		widget.NewFormItem(app.GetMsg(config.TKeyLblFirstName), nameEntry),
	}

	dialog.ShowForm(app.GetMsg(config.TKeyBtnAdd), app.GetMsg(config.TKeyBtnSave), app.GetMsg(config.TKeyBtnCancel), items,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			first, last := engine.SplitFullName(nameEntry.Text)
			if first == "" && last == "" {
				return
			}
			app.Repo.Create(first, last)
			reload()
			app.RequestFeedRebuild()
		}, w)
}

// personEditor builds the detail page for one record. Every field is
// editable; Save performs a full replace of the editable fields.
func (app *KeepInTouchApp) personEditor(p engine.Person, back func()) fyne.CanvasObject {
	w := app.MainWindow

	firstEntry := widget.NewEntry()
	firstEntry.SetText(p.FirstName)
	middleEntry := widget.NewEntry()
	middleEntry.SetText(p.MiddleName)
	lastEntry := widget.NewEntry()
	lastEntry.SetText(p.LastName)

	birthdayEntry := app.newDateEntry(p.Birthday)
	lastSeenEntry := app.newDateEntry(p.LastSeen)

	maxDaysEntry := NewNumericalEntry()
	if p.MaxDaysBetween != nil {
		maxDaysEntry.SetText(strconv.Itoa(*p.MaxDaysBetween))
	}

	addressEntry := widget.NewEntry()
	addressEntry.SetText(p.Address)
	notesEntry := widget.NewMultiLineEntry()
	notesEntry.SetText(p.Notes)
	notesEntry.SetMinRowsVisible(3)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblFirstName), firstEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMiddleName), middleEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLastName), lastEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblBirthday), birthdayEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLastSeen), lastSeenEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMaxDays), maxDaysEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblAddress), addressEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblNotes), notesEntry),
	)

	saveAction := func() {
		fields, err := app.collectFields(firstEntry, middleEntry, lastEntry,
			birthdayEntry, lastSeenEntry, maxDaysEntry, addressEntry, notesEntry)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.Repo.Update(p.ID, fields)
		app.RequestFeedRebuild()
		back()
	}

	deleteAction := func() {
		name := p.FullName()
		if name == "" {
			name = config.FallbackName
		}
		msg := app.msgWithName(config.TKeyConfirmDelete, name)
		dialog.ShowConfirm(app.GetMsg(config.TKeyBtnDelete), msg, func(confirmed bool) {
			if !confirmed {
				return
			}
			app.Repo.Delete(p.ID)
			app.RequestFeedRebuild()
			back()
		}, w)
	}

	birthdayLink := func() {
		link, err := app.Links.BirthdayEventURL(p)
		if err != nil {
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrNoBirthday)), w)
			return
		}
		app.openExternal(link)
	}

	followUpLink := func() {
		link, ok := app.Links.FollowUpEventURL(p)
		if !ok {
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrNoCadence)), w)
			return
		}
		name := p.FullName()
		if name == "" {
			name = config.FallbackName
		}
		msg := app.msgWithName(config.TKeyConfirmFollowUp, name)
		dialog.ShowConfirm(app.GetMsg(config.TKeyBtnFollowUp), msg, func(confirmed bool) {
			if confirmed {
				app.openExternal(link)
			}
		}, w)
	}

	backBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnBack), theme.NavigateBackIcon(), back)

	saveBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	saveBtn.Importance = widget.HighImportance

	deleteBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDelete), theme.DeleteIcon(), deleteAction)
	deleteBtn.Importance = widget.DangerImportance

	birthdayBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnBirthday), theme.CalendarIcon(), birthdayLink)
	followUpBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnFollowUp), theme.MailSendIcon(), followUpLink)

	actions := container.NewVBox(
		container.NewGridWithColumns(config.LayoutColumnsDouble, birthdayBtn, followUpBtn),
		container.NewGridWithColumns(config.LayoutColumnsDouble, deleteBtn, saveBtn),
	)

	return container.NewBorder(
		container.NewPadded(backBtn),
		container.NewPadded(actions),
		nil, nil,
		container.NewVScroll(container.NewPadded(form)),
	)
}

// collectFields validates and converts the editor widgets into a field set.
func (app *KeepInTouchApp) collectFields(first, middle, last *widget.Entry,
	birthday, lastSeen *widget.Entry, maxDays *NumericalEntry,
	address *widget.Entry, notes *widget.Entry) (engine.PersonFields, error) {

	fields := engine.PersonFields{
		FirstName:  strings.TrimSpace(first.Text),
		MiddleName: strings.TrimSpace(middle.Text),
		LastName:   strings.TrimSpace(last.Text),
		Address:    strings.TrimSpace(address.Text),
		Notes:      notes.Text,
	}

	if birthday.Text != "" {
		d, err := engine.ParseDate(strings.TrimSpace(birthday.Text))
		if err != nil {
			return fields, errors.New(app.GetMsg(config.TKeyErrDate))
		}
		fields.Birthday = &d
	}

	if lastSeen.Text != "" {
		d, err := engine.ParseDate(strings.TrimSpace(lastSeen.Text))
		if err != nil {
			return fields, errors.New(app.GetMsg(config.TKeyErrDate))
		}
		fields.LastSeen = &d
	}

	if maxDays.Text != "" {
		v, err := strconv.Atoi(maxDays.Text)
		if err != nil || v <= 0 {
			return fields, errors.New(app.GetMsg(config.TKeyErrMaxDays))
		}
		fields.MaxDaysBetween = &v
	}

	return fields, nil
}

// newDateEntry builds an entry that accepts an empty value or an ISO date.
func (app *KeepInTouchApp) newDateEntry(initial *engine.Date) *widget.Entry {
	e := widget.NewEntry()
	e.PlaceHolder = config.PlaceholderDate
	if initial != nil {
		e.SetText(initial.String())
	}
	e.Validator = func(s string) error {
		if s == "" {
			return nil
		}
		if _, err := engine.ParseDate(strings.TrimSpace(s)); err != nil {
			return errors.New(app.GetMsg(config.TKeyErrDate))
		}
		return nil
	}
	return e
}

// msgWithName localizes a key that takes a {{.Name}} template argument.
func (app *KeepInTouchApp) msgWithName(key, name string) string {
	if app.Localizer != nil {
		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    key,
			TemplateData: map[string]interface{}{"Name": name},
		})
		if err == nil && msg != "" {
			return msg
		}
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err)
	}
	return name
}

package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
)

// ShowUpcomingWindow displays a window with all birthdays sorted by next occurrence.
// It implements a singleton pattern: if the window is already open, it requests focus.
// It uses native Fyne table headers for sorting interaction.
func (app *KeepInTouchApp) ShowUpcomingWindow() {
	if app.upcomingWindow != nil {
		app.upcomingWindow.RequestFocus()
		return
	}

	title := app.GetMsg(config.TKeyWinUpcoming)
	app.upcomingWindow = app.App.NewWindow(title)
	app.upcomingWindow.Resize(fyne.NewSize(config.UpcomingWinWidth, config.UpcomingWinHeight))

	// Snapshot projection of the collection; the window does not live-update.
	rows := engine.UpcomingBirthdays(app.Repo.Load(), app.Clock.Now())

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(rows))

	// Internal Sorting State
	currentSortCol := config.ColIDDate
	sortAsc := true

	var refreshTable func()

	// performSort applies the sorting logic based on the selected column.
	performSort := func() {
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			var less bool
			switch currentSortCol {
			case config.ColIDName:
				less = strings.ToLower(a.Person.FullName()) < strings.ToLower(b.Person.FullName())
			case config.ColIDAge:
				less = a.AgeNext < b.AgeNext
			default: // config.ColIDDate
				if a.NextOccurrence.Equal(b.NextOccurrence) {
					// Secondary sort key: Name
					less = a.Person.FullName() < b.Person.FullName()
				} else {
					less = a.NextOccurrence.Before(b.NextOccurrence)
				}
			}

			if !sortAsc {
				return !less
			}
			return less
		})

		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}

	// Initial sort (Default: By Date, Ascending)
	performSort()

	table := widget.NewTable(
		func() (int, int) {
			return len(rows), 3
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			r := rows[id.Row]

			switch id.Col {
			case config.ColIDName:
				name := r.Person.FullName()
				if name == "" {
					name = config.FallbackName
				}
				label.SetText(name)
			case config.ColIDDate:
				// Retrieve the localized date format
				format := app.GetMsg(config.TKeyFormatDate)
				if format == config.TKeyFormatDate {
					format = config.DateFormatDisplay
				}
				label.SetText(r.NextOccurrence.Format(format))

			case config.ColIDAge:
				label.SetText(app.formatAgeCell(r.AgeNext))
			}
		},
	)

	table.ShowHeaderRow = true

	// CreateHeader returns a button for interactivity.
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}

	// UpdateHeader sets the localized title and visual sort indicator.
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDName:
			titleKey = config.TKeyColName
		case config.ColIDDate:
			titleKey = config.TKeyColDate
		case config.ColIDAge:
			titleKey = config.TKeyColAge
		}

		text := app.GetMsg(titleKey)

		// Append sort indicator if this is the active column
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}

		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)

	refreshTable = func() {
		performSort()
		table.Refresh()
	}

	content := container.NewBorder(nil, nil, nil, nil, table)
	app.upcomingWindow.SetContent(content)

	app.upcomingWindow.SetOnClosed(func() {
		app.upcomingWindow = nil
	})

	app.upcomingWindow.Show()
}

// formatAgeCell renders the age column as a "prev → next" transition.
func (app *KeepInTouchApp) formatAgeCell(ageNext int) string {
	if ageNext == 0 {
		// Born this year; the occurrence is the birth itself.
		return config.AgeBirth
	}

	prevAge := ageNext - 1
	if prevAge == 0 {
		// Special case: "Birth -> 1"
		birthText := app.GetMsg(config.TKeyAgeBirth)
		if birthText == config.TKeyAgeBirth {
			birthText = "Birth" // Fallback
		}
		return fmt.Sprintf("%s → %d", birthText, ageNext)
	}
	return fmt.Sprintf("%d → %d", prevAge, ageNext)
}

package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-keepintouch/internal/config"
)

// ImportVCards decodes a vCard stream and merges new people into the
// collection. Cards whose formatted name already matches a tracked person
// are left alone; malformed cards are skipped with a warn log. Returns the
// number of records added.
func (r *Repository) ImportVCards(reader io.Reader) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.Load()

	known := make(map[string]struct{}, len(people))
	for _, p := range people {
		known[strings.ToLower(p.FullName())] = struct{}{}
	}

	decoder := vcard.NewDecoder(reader)
	imported := 0

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		if _, exists := known[strings.ToLower(name)]; exists {
			continue
		}

		first, last := SplitFullName(name)
		p := Person{
			ID:        r.nextID(people),
			FirstName: first,
			LastName:  last,
		}

		if bday := card.Get(config.VCardBDAY); bday != nil && bday.Value != "" {
			if d, err := parseVCardDate(bday.Value); err == nil {
				p.Birthday = &d
			} else {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyValue, bday.Value)
			}
		}
		if note := card.Get(config.VCardNOTE); note != nil {
			p.Notes = note.Value
		}
		if adr := card.Get(config.VCardADR); adr != nil {
			p.Address = strings.TrimSpace(strings.ReplaceAll(adr.Value, ";", " "))
		}

		people = append(people, p)
		known[strings.ToLower(name)] = struct{}{}
		imported++
	}

	if imported > 0 {
		r.Save(people)
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyImported, imported)
	return imported, nil
}

// ExportVCards writes the collection as a vCard 4.0 stream.
func ExportVCards(w io.Writer, people []Person) error {
	encoder := vcard.NewEncoder(w)

	for _, p := range people {
		card := make(vcard.Card)
		card.SetValue(config.VCardFN, p.FullName())
		card.SetValue(config.VCardN, fmt.Sprintf("%s;%s;%s;;", p.LastName, p.FirstName, p.MiddleName))
		if p.Birthday != nil {
			card.SetValue(config.VCardBDAY, p.Birthday.String())
		}
		if p.Notes != "" {
			card.SetValue(config.VCardNOTE, p.Notes)
		}
		if p.Address != "" {
			card.SetValue(config.VCardADR, p.Address)
		}
		vcard.ToV4(card)

		if err := encoder.Encode(card); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

// parseVCardDate handles the date shapes found in vCard BDAY fields.
// Truncated dates (--MM-DD, year unknown) fall back to a leap year so that
// Feb 29 stays representable.
func parseVCardDate(value string) (Date, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return DateOf(t), nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return NewDate(config.DefaultLeapYear, t.Month(), t.Day()), nil
		}
	}

	return Date{}, errors.New(config.ErrDateParse)
}

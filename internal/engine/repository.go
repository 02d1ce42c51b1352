package engine

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

// PrefStore is the subset of fyne.Preferences the repository needs: a durable
// string key-value store. Keeping the interface this small lets tests swap in
// a map and keeps the engine free of any UI toolkit import.
type PrefStore interface {
	String(key string) string
	SetString(key, value string)
}

// Repository persists the whole people collection as a single JSON value
// under one preference key. Load and Save are single store accesses, so a
// reader never observes a partial collection; the mutating operations are
// read-modify-write pairs and hold mu so concurrent callers (UI, import
// goroutine) cannot lose updates.
type Repository struct {
	mu    sync.Mutex
	store PrefStore
	clock Clock
}

// NewRepository wires a repository over the given store. The clock seeds new
// record ids and must not be nil.
func NewRepository(store PrefStore, clock Clock) *Repository {
	return &Repository{store: store, clock: clock}
}

// Load returns the persisted collection. A missing or unparseable payload
// degrades to an empty collection with a warn log; load never fails.
func (r *Repository) Load() []Person {
	raw := r.store.String(config.PrefPeople)
	if raw == "" {
		return []Person{}
	}

	var people []Person
	if err := json.Unmarshal([]byte(raw), &people); err != nil {
		slog.Warn(config.MsgCorruptPayload,
			config.LogKeyComponent, config.CompRepo,
			config.LogKeyError, err)
		return []Person{}
	}

	slog.Debug(config.MsgPeopleLoaded,
		config.LogKeyComponent, config.CompRepo,
		config.LogKeyCount, len(people))
	return people
}

// Save persists the full collection, replacing any prior value. The store
// write is a single SetString, so readers never observe a partial collection.
func (r *Repository) Save(people []Person) {
	data, err := json.Marshal(people)
	if err != nil {
		// Person marshals from plain fields and can not fail; guard anyway.
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompRepo,
			config.LogKeyError, err)
		return
	}
	r.store.SetString(config.PrefPeople, string(data))

	slog.Debug(config.MsgPeopleSaved,
		config.LogKeyComponent, config.CompRepo,
		config.LogKeyCount, len(people))
}

// Create appends a blank-initialized person with the given names, persists
// the collection and returns the new record. The id is derived from the
// current time in milliseconds and bumped past any live id, so it stays
// unique within one millisecond and across restarts.
func (r *Repository) Create(firstName, lastName string) Person {
	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.Load()

	p := Person{
		ID:        r.nextID(people),
		FirstName: firstName,
		LastName:  lastName,
	}
	people = append(people, p)
	r.Save(people)

	slog.Info(config.MsgPersonCreated,
		config.LogKeyComponent, config.CompRepo,
		config.LogKeyID, p.ID,
		config.LogKeyName, p.FullName())
	return p
}

// PersonFields carries the editable fields for a full-replace update.
// The id is not editable.
type PersonFields struct {
	FirstName      string
	MiddleName     string
	LastName       string
	Birthday       *Date
	LastSeen       *Date
	MaxDaysBetween *int
	Address        string
	Notes          string
}

// Update replaces the editable fields of the matching record and persists.
// A missing id is a silent no-op.
func (r *Repository) Update(id int64, fields PersonFields) {
	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.Load()
	for i := range people {
		if people[i].ID != id {
			continue
		}
		people[i] = Person{
			ID:             id,
			FirstName:      fields.FirstName,
			MiddleName:     fields.MiddleName,
			LastName:       fields.LastName,
			Birthday:       fields.Birthday,
			LastSeen:       fields.LastSeen,
			MaxDaysBetween: fields.MaxDaysBetween,
			Address:        fields.Address,
			Notes:          fields.Notes,
		}
		r.Save(people)

		slog.Info(config.MsgPersonUpdated,
			config.LogKeyComponent, config.CompRepo,
			config.LogKeyID, id)
		return
	}
}

// Delete removes the matching record and persists. A missing id is a silent
// no-op. Confirmation is the caller's concern; once invoked, Delete is
// unconditional.
func (r *Repository) Delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	people := r.Load()
	for i := range people {
		if people[i].ID != id {
			continue
		}
		people = append(people[:i], people[i+1:]...)
		r.Save(people)

		slog.Info(config.MsgPersonDeleted,
			config.LogKeyComponent, config.CompRepo,
			config.LogKeyID, id)
		return
	}
}

// Find returns the record with the given id, or false.
func (r *Repository) Find(id int64) (Person, bool) {
	for _, p := range r.Load() {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// nextID allocates a millisecond-timestamp id. A persisted high-water mark
// keeps ids strictly increasing, so an id stays retired forever once its
// record is deleted; the live-set check additionally covers collections
// whose payload arrived from elsewhere with ids ahead of the mark.
func (r *Repository) nextID(people []Person) int64 {
	live := make(map[int64]struct{}, len(people))
	for _, p := range people {
		live[p.ID] = struct{}{}
	}

	id := r.clock.Now().UnixMilli()
	if last, err := strconv.ParseInt(r.store.String(config.PrefLastID), 10, 64); err == nil && id <= last {
		id = last + 1
	}
	for {
		if _, taken := live[id]; !taken {
			break
		}
		id++
	}

	r.store.SetString(config.PrefLastID, strconv.FormatInt(id, 10))
	return id
}

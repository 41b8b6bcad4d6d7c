package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = bolthold.ErrNotFound

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Title operations

// GetTitleByID retrieves a title by its internal id
func (db *Database) GetTitleByID(id string) (*Title, error) {
	var title Title
	err := db.store.Get(id, &title)
	if err != nil {
		return nil, err
	}
	return &title, nil
}

// GetTitleByExternalID retrieves a title by (external id, kind)
func (db *Database) GetTitleByExternalID(externalID int64, kind MediaKind) (*Title, error) {
	var title Title
	err := db.store.FindOne(&title, bolthold.Where("LookupKey").Eq(TitleLookupKey(externalID, kind)))
	if err != nil {
		return nil, err
	}
	return &title, nil
}

// GetTitleByExternalIDAny retrieves a title by external id regardless of
// kind. Used to recover the stored kind when a lookup carries no hint.
func (db *Database) GetTitleByExternalIDAny(externalID int64) (*Title, error) {
	var title Title
	err := db.store.FindOne(&title, bolthold.Where("ExternalID").Eq(externalID))
	if err != nil {
		return nil, err
	}
	return &title, nil
}

// GetAllTitles retrieves all locally known titles
func (db *Database) GetAllTitles() ([]*Title, error) {
	var titles []*Title
	err := db.store.Find(&titles, nil)
	return titles, err
}

// UpsertTitle inserts the title if no record exists for (external id, kind),
// otherwise overwrites all upstream-derived fields of the existing record.
// The internal id, creation time and accumulated review list survive the
// overwrite. Returns the stored record.
func (db *Database) UpsertTitle(title *Title) (*Title, error) {
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var existing Title
		err := db.store.TxFindOne(tx, &existing, bolthold.Where("LookupKey").Eq(title.LookupKey))
		switch {
		case err == nil:
			title.ID = existing.ID
			title.Reviews = existing.Reviews
			title.CreatedAt = existing.CreatedAt
			title.UpdatedAt = time.Now()
			return db.store.TxUpdate(tx, title.ID, title)
		case errors.Is(err, bolthold.ErrNotFound):
			title.ID = uuid.NewString()
			title.CreatedAt = time.Now()
			title.UpdatedAt = title.CreatedAt
			return db.store.TxInsert(tx, title.ID, title)
		default:
			return err
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert title: %w", err)
	}
	return title, nil
}

// InsertTitle creates a fresh title record with a new internal id.
// Used by the bulk reseed path only.
func (db *Database) InsertTitle(title *Title) error {
	title.ID = uuid.NewString()
	title.CreatedAt = time.Now()
	title.UpdatedAt = title.CreatedAt
	return db.store.Insert(title.ID, title)
}

// DeleteAllTitles drops every title record. Used by the bulk reseed path.
func (db *Database) DeleteAllTitles() error {
	return db.store.DeleteMatching(&Title{}, nil)
}

// AppendReview atomically appends a review to the title matching
// (external id, kind). Records created before the kind field existed are
// found by external id alone. The append runs in a single write
// transaction so concurrent submissions cannot lose updates.
func (db *Database) AppendReview(externalID int64, kind MediaKind, review Review) (*Title, error) {
	var title Title
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		err := db.store.TxFindOne(tx, &title, bolthold.Where("LookupKey").Eq(TitleLookupKey(externalID, kind)))
		if errors.Is(err, bolthold.ErrNotFound) {
			err = db.store.TxFindOne(tx, &title, bolthold.Where("ExternalID").Eq(externalID))
		}
		if err != nil {
			return err
		}

		title.Reviews = append(title.Reviews, review)
		title.UpdatedAt = time.Now()
		return db.store.TxUpdate(tx, title.ID, &title)
	})
	if err != nil {
		return nil, err
	}
	return &title, nil
}

// Watchlist operations

// UpsertWatchlistEntry saves an entry, replacing the snapshot if the user
// already has this title on their list.
func (db *Database) UpsertWatchlistEntry(entry *WatchlistEntry) error {
	entry.Key = WatchlistKey(entry.UserID, entry.ExternalID)
	entry.AddedAt = time.Now()
	return db.store.Upsert(entry.Key, entry)
}

// DeleteWatchlistEntry removes an entry. Removing an absent entry is not
// an error.
func (db *Database) DeleteWatchlistEntry(userID string, externalID int64) error {
	err := db.store.Delete(WatchlistKey(userID, externalID), &WatchlistEntry{})
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil
	}
	return err
}

// GetWatchlist retrieves a user's entries, newest first
func (db *Database) GetWatchlist(userID string) ([]*WatchlistEntry, error) {
	var entries []*WatchlistEntry
	err := db.store.Find(&entries, bolthold.Where("UserID").Eq(userID).SortBy("AddedAt").Reverse())
	return entries, err
}

// WatchlistContains reports whether the user has saved this title
func (db *Database) WatchlistContains(userID string, externalID int64) (bool, error) {
	var entry WatchlistEntry
	err := db.store.Get(WatchlistKey(userID, externalID), &entry)
	if errors.Is(err, bolthold.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

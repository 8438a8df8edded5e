package repositories

import (
	"github.com/dgraph-io/badger/v4"
)

// displayNameKey namespaces the chosen display name away from message
// and index keys.
const displayNameKey = "prefs:display_name"

// PreferenceRepository stores small client-side settings in the same
// Badger instance as the messages, under their own key namespace.
type PreferenceRepository struct {
	db *badger.DB
}

func NewPreferenceRepository(db *badger.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (p *PreferenceRepository) SaveDisplayName(name string) error {
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(displayNameKey), []byte(name))
	})
}

// LoadDisplayName returns "" when no name has been chosen yet; absence
// is not an error.
func (p *PreferenceRepository) LoadDisplayName() (string, error) {
	var name string
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(displayNameKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			name = string(val)
			return nil
		})
	})
	return name, err
}

func (p *PreferenceRepository) ClearDisplayName() error {
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(displayNameKey))
	})
}

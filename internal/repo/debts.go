package repo

import (
	"github.com/rs/zerolog"

	"github.com/nguyenviet02/tele-bot/internal/domain"
	"github.com/nguyenviet02/tele-bot/internal/storage"
)

// Debts is the persisted username → accumulated debt ledger. Every call
// reloads the full document, mutates it, and rewrites it; nothing is
// cached between calls.
type Debts struct {
	store *storage.Store
	path  string
	log   zerolog.Logger
}

func NewDebts(store *storage.Store, path string, log zerolog.Logger) *Debts {
	return &Debts{store: store, path: path, log: log}
}

// Add increments username's debt by amount (negative amounts decrease
// it) and returns the new total. Unknown users start from zero.
func (r *Debts) Add(username string, amount float64) (float64, error) {
	release, err := r.store.Lock(r.path)
	if err != nil {
		return 0, err
	}
	defer release()

	ledger, err := r.load()
	if err != nil {
		return 0, err
	}

	ledger[username] += amount
	if err := r.store.WriteJSON(r.path, ledger); err != nil {
		return 0, err
	}

	r.log.Info().Str("username", username).Float64("amount", amount).
		Float64("total", ledger[username]).Msg("debt updated")
	return ledger[username], nil
}

// Get returns username's debt, zero when the user has no entry.
func (r *Debts) Get(username string) (float64, error) {
	ledger, err := r.load()
	if err != nil {
		return 0, err
	}
	return ledger[username], nil
}

// Clear resets username's debt to zero. Users without an entry are left
// untouched, with no write.
func (r *Debts) Clear(username string) error {
	release, err := r.store.Lock(r.path)
	if err != nil {
		return err
	}
	defer release()

	ledger, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := ledger[username]; !ok {
		return nil
	}

	ledger[username] = 0
	if err := r.store.WriteJSON(r.path, ledger); err != nil {
		return err
	}
	r.log.Info().Str("username", username).Msg("debt cleared")
	return nil
}

func (r *Debts) load() (domain.Ledger, error) {
	ledger := domain.Ledger{}
	if _, err := r.store.ReadJSON(r.path, &ledger); err != nil {
		return nil, err
	}
	if ledger == nil {
		ledger = domain.Ledger{}
	}
	return ledger, nil
}

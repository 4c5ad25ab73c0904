package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nguyenviet02/tele-bot/internal/storage"
)

func newTestDebts(t *testing.T) (*Debts, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debts.json")
	return NewDebts(storage.New(zerolog.Nop()), path, zerolog.Nop()), path
}

func TestDebts_AddAccumulates(t *testing.T) {
	d, _ := newTestDebts(t)

	total, err := d.Add("alice", 50.0)
	if err != nil || total != 50.0 {
		t.Fatalf("total=%v err=%v", total, err)
	}
	total, err = d.Add("alice", -20.0)
	if err != nil || total != 30.0 {
		t.Fatalf("total=%v err=%v", total, err)
	}

	got, err := d.Get("alice")
	if err != nil || got != 30.0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}

func TestDebts_GetUnknownUser(t *testing.T) {
	d, _ := newTestDebts(t)

	got, err := d.Get("bob")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestDebts_ClearUnknownUserNoWrite(t *testing.T) {
	d, path := newTestDebts(t)

	if err := d.Clear("bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("clearing an unknown user must not create the ledger file")
	}
	if got, _ := d.Get("bob"); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestDebts_ClearKeepsZeroEntry(t *testing.T) {
	d, _ := newTestDebts(t)

	if _, err := d.Add("alice", 75.5); err != nil {
		t.Fatal(err)
	}
	if err := d.Clear("alice"); err != nil {
		t.Fatal(err)
	}

	got, err := d.Get("alice")
	if err != nil || got != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}

	// The entry survives as an explicit zero.
	ledger := map[string]float64{}
	found, err := storage.New(zerolog.Nop()).ReadJSON(d.path, &ledger)
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if v, ok := ledger["alice"]; !ok || v != 0 {
		t.Fatalf("ledger=%v, want explicit alice=0", ledger)
	}
}

func TestDebts_CaseSensitiveKeys(t *testing.T) {
	d, _ := newTestDebts(t)

	if _, err := d.Add("Alice", 10); err != nil {
		t.Fatal(err)
	}
	if got, _ := d.Get("alice"); got != 0 {
		t.Fatalf("got %v, ledger keys are case-sensitive", got)
	}
}

func TestDebts_CorruptLedgerTreatedAsEmpty(t *testing.T) {
	d, path := newTestDebts(t)

	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	total, err := d.Add("alice", 5)
	if err != nil || total != 5 {
		t.Fatalf("total=%v err=%v", total, err)
	}
}

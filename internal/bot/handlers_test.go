package bot

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nguyenviet02/tele-bot/internal/config"
	"github.com/nguyenviet02/tele-bot/internal/policy"
	"github.com/nguyenviet02/tele-bot/internal/repo"
	"github.com/nguyenviet02/tele-bot/internal/storage"
)

// fakeRequest satisfies Request without a transport.
type fakeRequest struct {
	author  string
	text    string
	args    string
	replies []string
}

func (r *fakeRequest) Author() string { return r.author }
func (r *fakeRequest) Text() string   { return r.text }
func (r *fakeRequest) Args() string   { return r.args }
func (r *fakeRequest) Reply(text string) error {
	r.replies = append(r.replies, text)
	return nil
}

const denialText = "Bạn cần nạp VIP để thực hiện lệnh này"

func newTestHandler(t *testing.T) (*Handler, *repo.Foods, *repo.Debts) {
	t.Helper()
	dir := t.TempDir()
	store := storage.New(zerolog.Nop())

	foods := repo.NewFoods(store,
		filepath.Join(dir, "foods.txt"),
		filepath.Join(dir, "food_cache.json"),
		12*time.Hour, zerolog.Nop())
	debts := repo.NewDebts(store, filepath.Join(dir, "debts.json"), zerolog.Nop())

	cfg := config.Config{DenialMessage: denialText}
	restricted := policy.New([]string{"PhuongTung99"})

	return NewHandler(nil, cfg, foods, debts, restricted, zerolog.Nop()), foods, debts
}

func lastReply(t *testing.T, r *fakeRequest) string {
	t.Helper()
	if len(r.replies) == 0 {
		t.Fatal("no reply sent")
	}
	return r.replies[len(r.replies)-1]
}

func TestRestrictedUserShortCircuits(t *testing.T) {
	h, foods, debts := newTestHandler(t)

	req := &fakeRequest{author: "PhuongTung99", args: "Pho"}
	h.handleAddFood(req)

	if lastReply(t, req) != denialText {
		t.Fatalf("got %q", req.replies)
	}
	if list, _ := foods.List(false); len(list) != 0 {
		t.Fatalf("restricted command must not mutate the list, got %v", list)
	}

	req = &fakeRequest{author: "@phuongtung99", text: "@bob 100"}
	h.handleMessage(req)

	if lastReply(t, req) != denialText {
		t.Fatalf("got %q", req.replies)
	}
	if got, _ := debts.Get("bob"); got != 0 {
		t.Fatalf("restricted mention must not mutate the ledger, got %v", got)
	}
}

func TestUserWithoutUsernameIsNotGated(t *testing.T) {
	h, foods, _ := newTestHandler(t)

	req := &fakeRequest{author: "", args: "Pho"}
	h.handleAddFood(req)

	if !strings.Contains(lastReply(t, req), "Added") {
		t.Fatalf("got %q", req.replies)
	}
	if list, _ := foods.List(false); len(list) != 1 {
		t.Fatalf("got %v", list)
	}
}

func TestHandleAddFood_UsageHint(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := &fakeRequest{author: "alice", args: "   "}
	h.handleAddFood(req)

	if !strings.Contains(lastReply(t, req), "/addfood") {
		t.Fatalf("got %q", req.replies)
	}
}

func TestHandleAddFood_Duplicate(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := &fakeRequest{author: "alice", args: "Pho"}
	h.handleAddFood(req)
	req = &fakeRequest{author: "alice", args: "pho"}
	h.handleAddFood(req)

	if !strings.Contains(lastReply(t, req), "already exists") {
		t.Fatalf("got %q", req.replies)
	}
}

func TestHandleFood_EmptyList(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := &fakeRequest{author: "alice"}
	h.handleFood(req, false)

	if !strings.Contains(lastReply(t, req), "No foods available") {
		t.Fatalf("got %q", req.replies)
	}
}

func TestHandleFood_SuggestsFromList(t *testing.T) {
	h, foods, _ := newTestHandler(t)
	if _, err := foods.Add("Pho"); err != nil {
		t.Fatal(err)
	}

	req := &fakeRequest{author: "alice"}
	h.handleFood(req, false)
	if got := lastReply(t, req); got != "🍽️ Random food suggestion: Pho" {
		t.Fatalf("got %q", got)
	}

	req = &fakeRequest{author: "alice"}
	h.handleFood(req, true)
	if got := lastReply(t, req); got != "🍽️ New food suggestion: Pho" {
		t.Fatalf("got %q", got)
	}
}

func TestHandleFoodList(t *testing.T) {
	h, foods, _ := newTestHandler(t)
	for _, f := range []string{"Pho", "Banh Mi"} {
		if _, err := foods.Add(f); err != nil {
			t.Fatal(err)
		}
	}

	req := &fakeRequest{author: "alice"}
	h.handleFoodList(req)

	if got := lastReply(t, req); got != "🍽️ Food List:\n\n1. Banh Mi\n2. Pho" {
		t.Fatalf("got %q", got)
	}
}

func TestHandleDebtAndDone(t *testing.T) {
	h, _, debts := newTestHandler(t)
	if _, err := debts.Add("alice", 30); err != nil {
		t.Fatal(err)
	}

	req := &fakeRequest{author: "bob", args: "@alice"}
	h.handleDebt(req)
	if got := lastReply(t, req); got != "@alice has a debt of 30.00" {
		t.Fatalf("got %q", got)
	}

	req = &fakeRequest{author: "bob", args: "alice"}
	h.handleDone(req)
	if got := lastReply(t, req); got != "Cleared debt of 30.00 for @alice" {
		t.Fatalf("got %q", got)
	}
	if v, _ := debts.Get("alice"); v != 0 {
		t.Fatalf("got %v, want 0", v)
	}
}

func TestHandleDebt_UsageHint(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := &fakeRequest{author: "bob"}
	h.handleDebt(req)
	if !strings.Contains(lastReply(t, req), "/debt username") {
		t.Fatalf("got %q", req.replies)
	}
}

func TestHandleMessage_AppliesMentionsInOrder(t *testing.T) {
	h, _, debts := newTestHandler(t)

	req := &fakeRequest{author: "alice", text: "@bob 100 @carol -5.5"}
	h.handleMessage(req)

	if len(req.replies) != 2 {
		t.Fatalf("got %d replies: %q", len(req.replies), req.replies)
	}
	if req.replies[0] != "Added 100.00 to @bob's debt. New total: 100.00" {
		t.Fatalf("got %q", req.replies[0])
	}
	if req.replies[1] != "Added -5.50 to @carol's debt. New total: -5.50" {
		t.Fatalf("got %q", req.replies[1])
	}

	if v, _ := debts.Get("bob"); v != 100 {
		t.Fatalf("bob=%v", v)
	}
	if v, _ := debts.Get("carol"); v != -5.5 {
		t.Fatalf("carol=%v", v)
	}
}

func TestHandleMessage_PlainChatIsSilent(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := &fakeRequest{author: "PhuongTung99", text: "hello everyone"}
	h.handleMessage(req)

	if len(req.replies) != 0 {
		t.Fatalf("plain chat must not trigger replies, got %q", req.replies)
	}
}

func TestChunkRunes(t *testing.T) {
	long := strings.Repeat("あ", 9001)
	chunks := chunkRunes(long, 4000)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	if len([]rune(chunks[0])) != 4000 || len([]rune(chunks[2])) != 1001 {
		t.Fatalf("chunk sizes: %d, %d, %d",
			len([]rune(chunks[0])), len([]rune(chunks[1])), len([]rune(chunks[2])))
	}
	if strings.Join(chunks, "") != long {
		t.Fatal("chunks must reassemble to the input")
	}
}

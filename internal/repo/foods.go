package repo

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nguyenviet02/tele-bot/internal/domain"
	"github.com/nguyenviet02/tele-bot/internal/storage"
)

// NoFoodsText is what List returns when the food list is empty.
const NoFoodsText = "No foods in the list."

// Foods serves random food suggestions out of a line-oriented list
// file, keeping the last pick sticky for a TTL via a small JSON cache.
type Foods struct {
	store     *storage.Store
	listPath  string
	cachePath string
	ttl       time.Duration
	log       zerolog.Logger

	now func() time.Time
	rnd *rand.Rand
}

func NewFoods(store *storage.Store, listPath, cachePath string, ttl time.Duration, log zerolog.Logger) *Foods {
	return &Foods{
		store:     store,
		listPath:  listPath,
		cachePath: cachePath,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Random returns the current suggestion. A cached pick younger than the
// TTL is returned as-is unless forceNew is set; otherwise a new food is
// drawn uniformly from the list and cached. Returns "" when the list is
// empty.
func (f *Foods) Random(forceNew bool) (string, error) {
	if !forceNew {
		var cache domain.FoodCache
		found, err := f.store.ReadJSON(f.cachePath, &cache)
		if err != nil {
			return "", err
		}
		if found && cache.Food != "" && f.now().Sub(cache.Timestamp) < f.ttl {
			f.log.Debug().Str("food", cache.Food).Msg("returning cached food")
			return cache.Food, nil
		}
	}

	foods := f.store.ReadLines(f.listPath)
	if len(foods) == 0 {
		return "", nil
	}

	pick := foods[f.rnd.Intn(len(foods))]
	f.log.Info().Str("food", pick).Msg("selected new random food")

	cache := domain.FoodCache{Food: pick, Timestamp: f.now()}
	if err := f.store.WriteJSON(f.cachePath, cache); err != nil {
		return "", err
	}
	return pick, nil
}

// ClearCache drops the sticky suggestion. Idempotent; a failed delete
// is logged, not surfaced.
func (f *Foods) ClearCache() {
	if err := f.store.Remove(f.cachePath); err != nil {
		f.log.Error().Err(err).Msg("clear food cache failed")
		return
	}
	f.log.Debug().Msg("food cache cleared")
}

// Add appends name to the list unless a case-insensitive duplicate
// already exists. Reports whether the name was added.
func (f *Foods) Add(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	release, err := f.store.Lock(f.listPath)
	if err != nil {
		return false, err
	}
	defer release()

	for _, existing := range f.store.ReadLines(f.listPath) {
		if strings.EqualFold(existing, name) {
			return false, nil
		}
	}
	if err := f.store.AppendLine(f.listPath, name); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes all case-insensitive exact matches of name from the
// list, clearing the sticky cache when it pointed at a removed entry.
// When nothing matches exactly it suggests up to five containment
// matches. The returned message is ready for the chat surface.
func (f *Foods) Remove(name string) (bool, string, error) {
	target := strings.ToLower(strings.TrimSpace(name))

	release, err := f.store.Lock(f.listPath)
	if err != nil {
		return false, "", err
	}
	defer release()

	foods := f.store.ReadLines(f.listPath)
	if len(foods) == 0 {
		return false, "The food list is empty.", nil
	}

	var kept, removed, similar []string
	for _, food := range foods {
		switch lower := strings.ToLower(food); {
		case lower == target:
			removed = append(removed, food)
		default:
			kept = append(kept, food)
			if strings.Contains(lower, target) {
				similar = append(similar, food)
			}
		}
	}

	if len(removed) > 0 {
		if err := f.store.WriteLines(f.listPath, kept); err != nil {
			return false, "", err
		}

		var cache domain.FoodCache
		if found, err := f.store.ReadJSON(f.cachePath, &cache); err == nil && found &&
			strings.ToLower(cache.Food) == target {
			f.ClearCache()
		}

		if len(removed) == 1 {
			return true, fmt.Sprintf("Removed %q from the food list.", removed[0]), nil
		}
		return true, fmt.Sprintf("Removed %d entries of %q from the food list.", len(removed), removed[0]), nil
	}

	if len(similar) > 0 {
		shown := similar
		if len(shown) > 5 {
			shown = shown[:5]
		}
		quoted := make([]string, len(shown))
		for i, s := range shown {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		msg := fmt.Sprintf("%q not found. Did you mean %s?", strings.TrimSpace(name), strings.Join(quoted, ", "))
		if extra := len(similar) - len(shown); extra > 0 {
			msg += fmt.Sprintf(" (+%d more)", extra)
		}
		return false, msg, nil
	}

	return false, fmt.Sprintf("%q is not in the food list.", strings.TrimSpace(name)), nil
}

// List returns the foods sorted case-insensitively, along with the text
// rendering used by the list command: "1. Pho" lines when numbered,
// bullet lines otherwise.
func (f *Foods) List(numbered bool) ([]string, string) {
	foods := f.store.ReadLines(f.listPath)
	if len(foods) == 0 {
		return nil, NoFoodsText
	}

	sort.Slice(foods, func(i, j int) bool {
		return strings.ToLower(foods[i]) < strings.ToLower(foods[j])
	})

	lines := make([]string, len(foods))
	for i, food := range foods {
		if numbered {
			lines[i] = fmt.Sprintf("%d. %s", i+1, food)
		} else {
			lines[i] = "• " + food
		}
	}
	return foods, strings.Join(lines, "\n")
}

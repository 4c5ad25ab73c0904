package bot

import (
	"fmt"
	"strings"
)

func (h *Handler) handleFood(req Request, forceNew bool) {
	if h.denied(req) {
		return
	}

	food, err := h.foods.Random(forceNew)
	if err != nil {
		h.log.Error().Err(err).Msg("random food failed")
		h.send(req, genericFailureText)
		return
	}
	if food == "" {
		h.send(req, "No foods available. Please import a food list first.")
		return
	}

	if forceNew {
		h.send(req, "🍽️ New food suggestion: "+food)
	} else {
		h.send(req, "🍽️ Random food suggestion: "+food)
	}
}

func (h *Handler) handleClearFood(req Request) {
	if h.denied(req) {
		return
	}
	h.foods.ClearCache()
	h.send(req, "Food suggestion cleared! Use /food or /newfood to get a new suggestion.")
}

func (h *Handler) handleAddFood(req Request) {
	if h.denied(req) {
		return
	}

	name := strings.TrimSpace(req.Args())
	if name == "" {
		h.send(req, `Please specify a food to add, e.g. /addfood "Fried Rice"`)
		return
	}

	added, err := h.foods.Add(name)
	if err != nil {
		h.log.Error().Err(err).Msg("add food failed")
		h.send(req, genericFailureText)
		return
	}
	if added {
		h.send(req, fmt.Sprintf("Added %q to the food list!", name))
	} else {
		h.send(req, fmt.Sprintf("%q already exists in the food list or could not be added.", name))
	}
}

func (h *Handler) handleRemoveFood(req Request) {
	if h.denied(req) {
		return
	}

	name := strings.TrimSpace(req.Args())
	if name == "" {
		h.send(req, `Please specify a food to remove, e.g. /removefood "Fried Rice"`)
		return
	}

	_, msg, err := h.foods.Remove(name)
	if err != nil {
		h.log.Error().Err(err).Msg("remove food failed")
		h.send(req, genericFailureText)
		return
	}
	h.send(req, msg)
}

// listChunkLimit is Telegram's practical message-size ceiling; longer
// food lists are split across messages.
const listChunkLimit = 4000

func (h *Handler) handleFoodList(req Request) {
	if h.denied(req) {
		return
	}

	_, text := h.foods.List(true)
	chunks := chunkRunes(text, listChunkLimit)
	if len(chunks) == 1 {
		h.send(req, "🍽️ Food List:\n\n"+text)
		return
	}
	for i, chunk := range chunks {
		if i == 0 {
			h.send(req, fmt.Sprintf("🍽️ Food List (Part %d/%d):\n\n%s", i+1, len(chunks), chunk))
		} else {
			h.send(req, chunk)
		}
	}
}

func (h *Handler) handleDebt(req Request) {
	if h.denied(req) {
		return
	}

	username := usernameArg(req.Args())
	if username == "" {
		h.send(req, "Please specify a username, e.g. /debt username")
		return
	}

	debt, err := h.debts.Get(username)
	if err != nil {
		h.log.Error().Err(err).Msg("get debt failed")
		h.send(req, genericFailureText)
		return
	}
	h.send(req, fmt.Sprintf("@%s has a debt of %.2f", username, debt))
}

func (h *Handler) handleDone(req Request) {
	if h.denied(req) {
		return
	}

	username := usernameArg(req.Args())
	if username == "" {
		h.send(req, "Please specify a username, e.g. /done username")
		return
	}

	oldDebt, err := h.debts.Get(username)
	if err != nil {
		h.log.Error().Err(err).Msg("get debt failed")
		h.send(req, genericFailureText)
		return
	}
	if err := h.debts.Clear(username); err != nil {
		h.log.Error().Err(err).Msg("clear debt failed")
		h.send(req, genericFailureText)
		return
	}
	h.send(req, fmt.Sprintf("Cleared debt of %.2f for @%s", oldDebt, username))
}

// handleMessage scans plain messages for "@username amount" debt
// mentions and applies each one in order.
func (h *Handler) handleMessage(req Request) {
	mentions := ParseMentions(h.log, req.Text())
	if len(mentions) == 0 {
		return
	}

	// Regular chat is unrestricted; the gate applies once a message
	// actually mutates the ledger.
	if h.denied(req) {
		return
	}

	for _, m := range mentions {
		total, err := h.debts.Add(m.Username, m.Amount)
		if err != nil {
			h.log.Error().Err(err).Str("username", m.Username).Msg("add debt failed")
			h.send(req, genericFailureText)
			return
		}
		h.send(req, fmt.Sprintf("Added %.2f to @%s's debt. New total: %.2f", m.Amount, m.Username, total))
	}
}

func usernameArg(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimPrefix(fields[0], "@")
}

func chunkRunes(s string, size int) []string {
	runes := []rune(s)
	if len(runes) <= size {
		return []string{s}
	}
	var chunks []string
	for len(runes) > 0 {
		n := size
		if n > len(runes) {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}

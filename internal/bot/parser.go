package bot

import (
	"regexp"
	"strconv"

	"github.com/rs/zerolog"
)

// Mention is one "@username amount" match found in free text.
type Mention struct {
	Username string
	Amount   float64
}

var reMention = regexp.MustCompile(`@(\w+)\s+(-?\d+(\.\d+)?)`)

// ParseMentions extracts debt mentions from text in order of
// appearance. A match whose amount does not parse is skipped with a
// warning; the remaining matches still apply.
func ParseMentions(log zerolog.Logger, text string) []Mention {
	var out []Mention
	for _, m := range reMention.FindAllStringSubmatch(text, -1) {
		amount, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			log.Warn().Str("amount", m[2]).Str("username", m[1]).Msg("could not parse mention amount")
			continue
		}
		out = append(out, Mention{Username: m[1], Amount: amount})
	}
	return out
}

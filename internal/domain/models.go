package domain

import "time"

// FoodCache is the single sticky suggestion. A zero Food means no
// suggestion is cached.
type FoodCache struct {
	Food      string    `json:"food"`
	Timestamp time.Time `json:"timestamp"`
}

// Ledger maps a username (case-sensitive, as received) to accumulated
// debt. Absent key means zero; cleared users stay as explicit zeroes.
type Ledger map[string]float64

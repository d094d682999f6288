package models

// TallyEntry is one scored option in the final ranking.
type TallyEntry struct {
	Option string `json:"option"`
	Score  int    `json:"score"`
}

// Tally is the derived ranking, ordered best first. It is never persisted.
type Tally []TallyEntry

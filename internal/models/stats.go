package models

// UserStats is the per-user running aggregate, updated on every entry
// creation. Totals only ever grow; the streak counts consecutive calendar
// days with at least one entry, ending at the most recent entry day.
type UserStats struct {
	TotalEntries  int    `json:"total_entries"`
	TotalWords    int    `json:"total_words"`
	Streak        int    `json:"streak"`
	LastEntryDate string `json:"last_entry_date"` // YYYY-MM-DD, empty before the first entry
}

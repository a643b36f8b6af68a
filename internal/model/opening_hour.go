package model

// OpeningHour represents one opening period of the garage, as stored in the
// `opening_hours` table.  Start and End are zero-padded HHMM strings
// ("0900", "1830") compared lexicographically, which matches numeric order
// for this format.  Periods on the same day must not overlap; the
// repository enforces that with an existence check at write time.
type OpeningHour struct {
    ID    uint64 `json:"id"`    // opening_hours.id
    Day   int    `json:"day"`   // opening_hours.day (0=Sunday .. 6=Saturday)
    Start string `json:"start"` // opening_hours.start (HHMM)
    End   string `json:"end"`   // opening_hours.end (HHMM)
}

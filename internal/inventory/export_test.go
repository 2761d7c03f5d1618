package inventory

import "time"

// SetClock replaces the time source used to date new transactions.
func SetClock(s *Store, now func() time.Time) {
	s.now = now
}

package booking

import "time"

// Summarize reduces an item's bookings to its closest past and future
// booking relative to now, comparing by start only. A booking starting
// exactly at now belongs to neither bucket. Single linear scan, no sorting.
func Summarize(bookings []*Booking, now time.Time) (last, next *Booking) {
	for _, b := range bookings {
		switch {
		case b.Start.Before(now):
			if last == nil || b.Start.After(last.Start) {
				last = b
			}
		case b.Start.After(now):
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		}
	}
	return last, next
}

package booking

import (
	"net/http"
	"sort"
	"time"

	"github.com/rentshare/rentshare-backend/internal/pkg/apperror"
)

// State is the temporal/status bucket used for listing bookings. It is
// distinct from Status: a state describes how a booking relates to "now",
// not what stage of the lifecycle it is in.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// Role selects whose bookings a list query covers: the ones the actor made,
// or the ones made against the actor's items.
type Role int

const (
	AsBooker Role = iota
	AsOwner
)

// stateSpec holds the predicate and ordering of one state bucket, so the
// seven rules live in one place and stay exhaustively checked.
type stateSpec struct {
	matches func(b *Booking, now time.Time) bool
	less    func(a, b *Booking) bool
}

func startDesc(a, b *Booking) bool { return a.Start.After(b.Start) }

// CURRENT orders ascending by id while every other bucket orders by start
// descending. The asymmetry is part of the existing contract.
func idAsc(a, b *Booking) bool { return a.ID < b.ID }

func notDropped(b *Booking) bool {
	return b.Status != StatusRejected && b.Status != StatusCanceled
}

var stateSpecs = map[State]stateSpec{
	StateAll: {
		matches: func(*Booking, time.Time) bool { return true },
		less:    startDesc,
	},
	StateCurrent: {
		matches: func(b *Booking, now time.Time) bool {
			return !b.Start.After(now) && b.End.After(now)
		},
		less: idAsc,
	},
	StatePast: {
		matches: func(b *Booking, now time.Time) bool {
			return b.End.Before(now) && notDropped(b)
		},
		less: startDesc,
	},
	StateFuture: {
		matches: func(b *Booking, now time.Time) bool {
			return b.Start.After(now) && notDropped(b)
		},
		less: startDesc,
	},
	StateWaiting: {
		matches: func(b *Booking, _ time.Time) bool { return b.Status == StatusWaiting },
		less:    startDesc,
	},
	StateRejected: {
		matches: func(b *Booking, _ time.Time) bool { return b.Status == StatusRejected },
		less:    startDesc,
	},
}

// ParseState validates a state tag. Tags are case-sensitive; anything
// outside the six known values is an error.
func ParseState(raw string) (State, error) {
	s := State(raw)
	if _, ok := stateSpecs[s]; !ok {
		return "", apperror.New(http.StatusBadRequest, "Unknown state: "+raw)
	}
	return s, nil
}

// Classify filters, orders and pages a booking collection according to the
// given state bucket. It is the in-memory counterpart of the store's canned
// queries and shares their semantics exactly.
func Classify(bookings []*Booking, state State, now time.Time, page Page) []*Booking {
	spec, ok := stateSpecs[state]
	if !ok {
		return nil
	}

	var matched []*Booking
	for _, b := range bookings {
		if spec.matches(b, now) {
			matched = append(matched, b)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return spec.less(matched[i], matched[j])
	})

	offset := page.Offset()
	if offset >= len(matched) {
		return []*Booking{}
	}
	end := offset + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end]
}

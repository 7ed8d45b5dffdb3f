package team

import (
	"errors"

	"github.com/stockquest/api-server/internals/quotes"
)

// Selection holds an in-progress, unsaved team: chosen stocks keyed by
// symbol plus the captain / vice-captain role assignments. It lives entirely
// in memory; nothing is persisted until the ledger submits it.

const (
	MinStocks = 5
	MaxStocks = 11

	// Every selected stock is bought in a fixed lot of 10 shares.
	LotSize = 10
)

type State string

const (
	StateEmpty    State = "empty"
	StatePartial  State = "partial"
	StateEligible State = "eligible"
	StateReady    State = "ready"
)

var (
	ErrNotInSelection = errors.New("symbol is not in the selection")
	ErrRoleConflict   = errors.New("captain and vice-captain must be different stocks")
)

// Warnings are non-fatal: the operation was a no-op and the caller should
// surface the message inline, not fail the request.
const (
	WarnAtCapacity      = "team is already at 11 stocks"
	WarnAlreadySelected = "stock is already in the team"
)

type Selection struct {
	chosen      []quotes.Quote
	captain     string
	viceCaptain string
}

func NewSelection() *Selection {
	return &Selection{}
}

// Add puts a quote into the selection. At capacity or on a duplicate symbol
// it leaves the selection untouched and returns a warning.
func (s *Selection) Add(q quotes.Quote) (warning string) {
	if len(s.chosen) >= MaxStocks {
		return WarnAtCapacity
	}
	for _, c := range s.chosen {
		if c.Symbol == q.Symbol {
			return WarnAlreadySelected
		}
	}
	s.chosen = append(s.chosen, q)
	return ""
}

// Remove drops a symbol from the selection. A role held by that symbol is
// cleared along with it.
func (s *Selection) Remove(symbol string) {
	kept := s.chosen[:0]
	for _, c := range s.chosen {
		if c.Symbol == symbol {
			continue
		}
		kept = append(kept, c)
	}
	s.chosen = kept

	if s.captain == symbol {
		s.captain = ""
	}
	if s.viceCaptain == symbol {
		s.viceCaptain = ""
	}
}

// AssignCaptain sets the captain role. The symbol must be in the selection
// and must not already hold the vice-captain role: the caller has to clear
// the other role first, the assignment is never silently stolen.
func (s *Selection) AssignCaptain(symbol string) error {
	if !s.Contains(symbol) {
		return ErrNotInSelection
	}
	if s.viceCaptain == symbol {
		return ErrRoleConflict
	}
	s.captain = symbol
	return nil
}

// AssignViceCaptain mirrors AssignCaptain for the vice-captain role.
func (s *Selection) AssignViceCaptain(symbol string) error {
	if !s.Contains(symbol) {
		return ErrNotInSelection
	}
	if s.captain == symbol {
		return ErrRoleConflict
	}
	s.viceCaptain = symbol
	return nil
}

func (s *Selection) UnassignCaptain()     { s.captain = "" }
func (s *Selection) UnassignViceCaptain() { s.viceCaptain = "" }

func (s *Selection) Contains(symbol string) bool {
	for _, c := range s.chosen {
		if c.Symbol == symbol {
			return true
		}
	}
	return false
}

func (s *Selection) Stocks() []quotes.Quote {
	out := make([]quotes.Quote, len(s.chosen))
	copy(out, s.chosen)
	return out
}

func (s *Selection) Captain() string     { return s.captain }
func (s *Selection) ViceCaptain() string { return s.viceCaptain }
func (s *Selection) Size() int           { return len(s.chosen) }

func (s *Selection) State() State {
	switch {
	case len(s.chosen) == 0:
		return StateEmpty
	case len(s.chosen) < MinStocks:
		return StatePartial
	case s.captain != "" && s.viceCaptain != "":
		return StateReady
	default:
		return StateEligible
	}
}

// TotalCost is the invested amount for the whole selection at the fixed lot
// size.
func (s *Selection) TotalCost() float64 {
	var total float64
	for _, c := range s.chosen {
		total += c.Price * LotSize
	}
	return total
}

// CanSubmit reports whether the selection is ready and affordable against
// the given balance.
func (s *Selection) CanSubmit(balance float64) bool {
	return s.State() == StateReady && s.TotalCost() <= balance
}

// Clear resets the selection back to empty after a successful submission.
func (s *Selection) Clear() {
	s.chosen = nil
	s.captain = ""
	s.viceCaptain = ""
}

package domain

import "time"

type StockReservation struct {
	ID             int
	StockProductID int
	BudgetID       *uint
	DateFrom       time.Time
	DateTo         time.Time
	Quantity       int
}

// CoversDay reports whether the reservation occupies the given calendar day.
func (r StockReservation) CoversDay(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(r.DateFrom)) && !d.After(DateOnly(r.DateTo))
}

// Overlaps applies the three-way overlap test against an inclusive date
// range: the reservation starts inside it, ends inside it, or spans it.
func (r StockReservation) Overlaps(from, to time.Time) bool {
	f, t := DateOnly(from), DateOnly(to)
	start, end := DateOnly(r.DateFrom), DateOnly(r.DateTo)

	startsInside := !start.Before(f) && !start.After(t)
	endsInside := !end.Before(f) && !end.After(t)
	spans := start.Before(f) && end.After(t)

	return startsInside || endsInside || spans
}

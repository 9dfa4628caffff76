package booking

import (
	"fmt"

	"aquaBack/internal/models"
)

// Return holds the quantities a staff member physically collected back from
// an event.
type Return struct {
	Jars       int
	Dispensers int
}

// Settlement is the outcome of collecting a delivered booking: how many items
// went missing and what the customer owes for them at replacement prices.
type Settlement struct {
	MissingJars        int
	MissingDispensers  int
	JarCharge          float64
	DispenserCharge    float64
	ShortfallCharge    float64
	FinalAmount        float64
	JarsReturned       int
	DispensersReturned int
}

// Settle validates the returned quantities against the booking and computes
// the shortfall charge. Missing items are written off as sold at the
// business's replacement prices; only the returned quantity goes back to
// stock. The input booking is not mutated.
func Settle(b models.EventBooking, ret Return, jarPrice, dispenserPrice float64) (Settlement, error) {
	if ret.Jars < 0 || ret.Jars > b.Quantity {
		return Settlement{}, models.ErrReturnOutOfRange
	}
	if ret.Dispensers < 0 || ret.Dispensers > b.DispensersBooked {
		return Settlement{}, models.ErrReturnOutOfRange
	}

	s := Settlement{
		MissingJars:        b.Quantity - ret.Jars,
		MissingDispensers:  b.DispensersBooked - ret.Dispensers,
		JarsReturned:       ret.Jars,
		DispensersReturned: ret.Dispensers,
	}
	if s.MissingJars > 0 {
		s.JarCharge = float64(s.MissingJars) * jarPrice
	}
	if s.MissingDispensers > 0 {
		s.DispenserCharge = float64(s.MissingDispensers) * dispenserPrice
	}
	s.ShortfallCharge = s.JarCharge + s.DispenserCharge
	s.FinalAmount = b.Amount + s.ShortfallCharge
	return s, nil
}

// InvoiceLines builds the billable lines for a completed booking: the base
// booking charge plus one line per shortfall category.
func InvoiceLines(b models.EventBooking, s Settlement, jarPrice, dispenserPrice float64) []models.LineItem {
	lines := []models.LineItem{{
		Description: fmt.Sprintf("Event Booking (%d Jars, %d Dispensers)", b.Quantity, b.DispensersBooked),
		Quantity:    1,
		UnitPrice:   b.Amount,
		Total:       b.Amount,
	}}
	if s.MissingJars > 0 {
		lines = append(lines, models.LineItem{
			Description: fmt.Sprintf("Charge for %d missing/lost jar(s)", s.MissingJars),
			Quantity:    s.MissingJars,
			UnitPrice:   jarPrice,
			Total:       s.JarCharge,
		})
	}
	if s.MissingDispensers > 0 {
		lines = append(lines, models.LineItem{
			Description: fmt.Sprintf("Charge for %d missing/lost dispenser(s)", s.MissingDispensers),
			Quantity:    s.MissingDispensers,
			UnitPrice:   dispenserPrice,
			Total:       s.DispenserCharge,
		})
	}
	return lines
}

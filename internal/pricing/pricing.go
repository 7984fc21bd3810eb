// Package pricing derives an order price from the selected service, pet
// size and age group using the tariff table.
package pricing

import (
	"strconv"

	"github.com/grooming-is/schedule-web/internal/groomapi"
	"github.com/grooming-is/schedule-web/internal/refdata"
)

// Compute resolves the price for the current form selection. The tariff is
// matched on the exact (service, size) pair and scaled by the age group's
// percentage factor, rounded half up; selected extra services add their
// flat prices. A missing tariff or age group clears the price rather than
// raising an error.
func Compute(ref *refdata.Set, serviceID groomapi.ID, size groomapi.PetSize, ageGroupID groomapi.ID, extraIDs []groomapi.ID) (int, bool) {
	if ref == nil || serviceID == "" || size == "" || ageGroupID == "" {
		return 0, false
	}
	tariff, ok := ref.TariffFor(serviceID, size)
	if !ok {
		return 0, false
	}
	age, ok := ref.AgeGroupByID(ageGroupID)
	if !ok {
		return 0, false
	}

	// Integer round-half-up of price × factor%.
	total := (tariff.Price*age.PriceFactor + 50) / 100

	for _, id := range extraIDs {
		if extra, ok := ref.ExtraByID(id); ok {
			total += extra.Price
		}
	}
	return total, true
}

// Format renders a resolved price for the form's price field; an unresolved
// price renders as the empty string.
func Format(price int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(price)
}

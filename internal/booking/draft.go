// Package booking holds the modal form's draft state: field normalization,
// validation and the order payload it turns into on submit.
package booking

import (
	"strings"

	"github.com/grooming-is/schedule-web/internal/groomapi"
)

// Draft is the in-progress booking form. It exists from the moment the
// create action (or a slot click) opens the form until cancel or a
// successful submit, surviving failed submissions with its data intact.
type Draft struct {
	Phone    string `json:"phone"`
	FullName string `json:"full_name"`

	PetName    string           `json:"pet_name"`
	Species    string           `json:"species"`
	BreedID    groomapi.ID      `json:"breed_id"`
	AgeGroupID groomapi.ID      `json:"age_group_id"`
	Size       groomapi.PetSize `json:"size"`

	MasterID  groomapi.ID `json:"master_id"`
	ServiceID groomapi.ID `json:"service_id"`

	Date   string `json:"date"`   // YYYY-MM-DD
	Hour   string `json:"hour"`   // "09".."19"
	Minute string `json:"minute"` // "00","05".."55"

	ExtraIDs []groomapi.ID `json:"extra_ids,omitempty"`
	Comment  string        `json:"comment"`

	// Price is the derived display value; empty while the tariff or age
	// group lookup misses.
	Price string `json:"price"`
}

// NewDraft opens a blank form with no prefilled date or time.
func NewDraft() *Draft {
	return &Draft{}
}

// NewDraftFromSlot opens the form prefilled from a clicked grid cell.
func NewDraftFromSlot(dateISO, startTime string) *Draft {
	d := &Draft{Date: dateISO}
	if hh, mm, ok := strings.Cut(startTime, ":"); ok {
		d.Hour = hh
		d.Minute = mm
	}
	return d
}

// StartTime renders the selected "HH:MM", or "" until both parts are chosen.
func (d *Draft) StartTime() string {
	if d.Hour == "" || d.Minute == "" {
		return ""
	}
	return d.Hour + ":" + d.Minute
}

// HasExtra reports whether an extra service is currently selected.
func (d *Draft) HasExtra(id groomapi.ID) bool {
	for _, e := range d.ExtraIDs {
		if e == id {
			return true
		}
	}
	return false
}

// ToOrder builds the creation payload. Valid only after Validate passes.
func (d *Draft) ToOrder(price int, priceOK bool) groomapi.OrderCreate {
	order := groomapi.OrderCreate{
		Phone:    d.Phone,
		FullName: d.FullName,
		Pet: groomapi.PetInput{
			Name:       d.PetName,
			Species:    d.Species,
			BreedID:    d.BreedID,
			AgeGroupID: d.AgeGroupID,
			Size:       d.Size,
		},
		MasterID:        d.MasterID,
		ServiceID:       d.ServiceID,
		Date:            d.Date,
		StartTime:       d.StartTime(),
		ExtraServiceIDs: d.ExtraIDs,
		Comment:         d.Comment,
	}
	if priceOK {
		order.Price = price
	}
	return order
}

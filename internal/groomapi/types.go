// Package groomapi contains the Grooming IS backend client and wire types.
package groomapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an entity identifier as the backend serves it. The DB-backed
// endpoints emit numbers while some payloads carry strings; ID accepts both
// and compares as the canonical string form. Numeric IDs marshal back as
// numbers so the backend's integer fields keep validating.
type ID string

// UnmarshalJSON accepts both "3" and 3.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits a bare number for numeric IDs and a string otherwise.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if id.isNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) isNumeric() bool {
	for i, r := range id {
		if r == '-' && i == 0 && len(id) > 1 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(id) > 0
}

// String returns the canonical comparison form.
func (id ID) String() string { return string(id) }

// PetSize values match the backend enum verbatim.
type PetSize string

const (
	SizeDecorative PetSize = "Декоративный"
	SizeMedium     PetSize = "Средний"
	SizeLarge      PetSize = "Крупный"
	SizeExtraLarge PetSize = "Очень крупный"
)

// Sizes lists the selectable pet sizes in display order.
func Sizes() []PetSize {
	return []PetSize{SizeDecorative, SizeMedium, SizeLarge, SizeExtraLarge}
}

// Order status values as the backend renders them.
const (
	StatusPlanned  = "Запланирована"
	StatusDone     = "Выполнена"
	StatusCanceled = "Отменена"
)

// Account is the authenticated user as /auth/me reports it.
type Account struct {
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Master is a groomer on staff.
type Master struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Group  string `json:"group,omitempty"`
	Active bool   `json:"active"`
}

// Service is a bookable grooming service.
type Service struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Breed carries an optional default size; empty means the size is picked
// manually (mixed breeds).
type Breed struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Species     string  `json:"species,omitempty"`
	DefaultSize PetSize `json:"default_size,omitempty"`
}

// AgeGroup scales the tariff price by PriceFactor percent.
type AgeGroup struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	PriceFactor int    `json:"price_factor"`
}

// Tariff is the base price for an exact (service, size) pair.
type Tariff struct {
	ServiceID ID      `json:"service_id"`
	Size      PetSize `json:"size"`
	Price     int     `json:"price"`
	Duration  int     `json:"duration,omitempty"`
}

// ExtraService is a flat-priced add-on.
type ExtraService struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Booking is a scheduled order as /orders/schedule reports it. Read-only
// here; it lands in exactly one grid cell by (Date, StartTime).
type Booking struct {
	ID          ID     `json:"id"`
	Date        string `json:"date"`       // YYYY-MM-DD
	StartTime   string `json:"start_time"` // HH:MM
	EndTime     string `json:"end_time,omitempty"`
	Price       int    `json:"price"`
	Status      string `json:"status"`
	MasterID    ID     `json:"master_id"`
	ClientName  string `json:"client_name"`
	PetName     string `json:"pet_name"`
	ServiceName string `json:"service_name"`
	MasterName  string `json:"master_name,omitempty"`
}

// PetInput is the pet part of an order creation payload.
type PetInput struct {
	Name       string  `json:"name"`
	Species    string  `json:"species"`
	BreedID    ID      `json:"breed_id"`
	AgeGroupID ID      `json:"age_group_id"`
	Size       PetSize `json:"size"`
}

// OrderCreate is the order creation payload.
type OrderCreate struct {
	Phone    string `json:"phone,omitempty"`
	FullName string `json:"full_name"`

	Pet PetInput `json:"pet"`

	MasterID  ID `json:"master_id"`
	ServiceID ID `json:"service_id"`

	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM

	ExtraServiceIDs []ID `json:"extra_service_ids,omitempty"`

	Price   int    `json:"price,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// ClientRecord is a known client of the salon.
type ClientRecord struct {
	ID       ID     `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

// ClientPet is a pet already on file for a client.
type ClientPet struct {
	ID      ID      `json:"id"`
	Name    string  `json:"name"`
	Species string  `json:"species"`
	Breed   string  `json:"breed,omitempty"`
	Size    PetSize `json:"size"`
}

// ClientSearchResult pairs a client with their pets.
type ClientSearchResult struct {
	Client ClientRecord `json:"client"`
	Pets   []ClientPet  `json:"pets"`
}

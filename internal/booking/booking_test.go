package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grooming-is/schedule-web/internal/groomapi"
)

func completeDraft() *Draft {
	return &Draft{
		Phone:      "+79991234567",
		FullName:   "Иванова Анна",
		PetName:    "Барон",
		Species:    "dog",
		BreedID:    "7",
		AgeGroupID: "2",
		Size:       groomapi.SizeMedium,
		MasterID:   "1",
		ServiceID:  "1",
		Date:       "2024-06-03",
		Hour:       "10",
		Minute:     "05",
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"барон", "Барон"},
		{"иванова анна", "Иванова Анна"},
		{"анна-мария", "Анна-Мария"},
		{"сен-бернар рекс", "Сен-Бернар Рекс"},
		{"Already Capital", "Already Capital"},
		{"  leading", "  Leading"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in), "Capitalize(%q)", tt.in)
	}
}

func TestValidate_CompleteDraftPasses(t *testing.T) {
	assert.NoError(t, completeDraft().Validate())
}

func TestValidate_PhoneMissingWinsFirst(t *testing.T) {
	d := completeDraft()
	d.Phone = ""
	err := d.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgPhoneRequired, err.Error())
}

func TestValidate_FirstViolationOnly(t *testing.T) {
	d := completeDraft()
	d.PetName = ""
	d.MasterID = ""
	err := d.Validate()
	require.Error(t, err)
	// The pet name comes before the master in form order.
	assert.Equal(t, MsgPetNameRequired, err.Error())
}

func TestValidate_EachRequiredField(t *testing.T) {
	tests := []struct {
		name  string
		mutate func(*Draft)
		want  string
	}{
		{"full name", func(d *Draft) { d.FullName = "  " }, MsgNameRequired},
		{"species", func(d *Draft) { d.Species = "" }, MsgSpeciesRequired},
		{"breed", func(d *Draft) { d.BreedID = "" }, MsgBreedRequired},
		{"size", func(d *Draft) { d.Size = "" }, MsgSizeRequired},
		{"age group", func(d *Draft) { d.AgeGroupID = "" }, MsgAgeGroupRequired},
		{"master", func(d *Draft) { d.MasterID = "" }, MsgMasterRequired},
		{"service", func(d *Draft) { d.ServiceID = "" }, MsgServiceRequired},
		{"date", func(d *Draft) { d.Date = "" }, MsgDateRequired},
		{"hour only", func(d *Draft) { d.Minute = "" }, MsgTimeRequired},
		{"minute only", func(d *Draft) { d.Hour = "" }, MsgTimeRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeDraft()
			tt.mutate(d)
			err := d.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestNewDraftFromSlot(t *testing.T) {
	d := NewDraftFromSlot("2024-06-03", "10:00")
	assert.Equal(t, "2024-06-03", d.Date)
	assert.Equal(t, "10", d.Hour)
	assert.Equal(t, "00", d.Minute)
	assert.Equal(t, "10:00", d.StartTime())
}

func TestStartTime_IncompleteIsEmpty(t *testing.T) {
	d := &Draft{Hour: "10"}
	assert.Equal(t, "", d.StartTime())
}

func TestToOrder(t *testing.T) {
	d := completeDraft()
	d.ExtraIDs = []groomapi.ID{"5"}
	d.Comment = "Очень пугливый"

	order := d.ToOrder(2610, true)
	assert.Equal(t, "10:05", order.StartTime)
	assert.Equal(t, "2024-06-03", order.Date)
	assert.Equal(t, groomapi.ID("1"), order.MasterID)
	assert.Equal(t, groomapi.ID("7"), order.Pet.BreedID)
	assert.Equal(t, 2610, order.Price)
	assert.Equal(t, []groomapi.ID{"5"}, order.ExtraServiceIDs)

	unpriced := d.ToOrder(0, false)
	assert.Zero(t, unpriced.Price)
}

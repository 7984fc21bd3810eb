package booking

import "strings"

// Required-field messages, shown next to the form. First violation wins;
// errors are never aggregated.
const (
	MsgPhoneRequired    = "Укажите телефон клиента"
	MsgNameRequired     = "Укажите ФИО клиента"
	MsgPetNameRequired  = "Укажите кличку питомца"
	MsgSpeciesRequired  = "Выберите вид питомца"
	MsgBreedRequired    = "Выберите породу"
	MsgSizeRequired     = "Выберите размер"
	MsgAgeGroupRequired = "Выберите возрастную группу"
	MsgMasterRequired   = "Выберите мастера"
	MsgServiceRequired  = "Выберите услугу"
	MsgDateRequired     = "Выберите дату"
	MsgTimeRequired     = "Выберите время"
)

// ValidationError carries the user-facing message of the first unmet
// requirement.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks the required fields in form order and returns the first
// violation, or nil when the draft is complete.
func (d *Draft) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{filled(d.Phone), MsgPhoneRequired},
		{filled(d.FullName), MsgNameRequired},
		{filled(d.PetName), MsgPetNameRequired},
		{filled(d.Species), MsgSpeciesRequired},
		{d.BreedID != "", MsgBreedRequired},
		{d.Size != "", MsgSizeRequired},
		{d.AgeGroupID != "", MsgAgeGroupRequired},
		{d.MasterID != "", MsgMasterRequired},
		{d.ServiceID != "", MsgServiceRequired},
		{filled(d.Date), MsgDateRequired},
		{d.Hour != "" && d.Minute != "", MsgTimeRequired},
	}
	for _, c := range checks {
		if !c.ok {
			return &ValidationError{Message: c.msg}
		}
	}
	return nil
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

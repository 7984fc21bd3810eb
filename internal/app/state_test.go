package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/grooming-is/schedule-web/internal/schedule"
)

var stateNow = time.Date(2024, time.June, 5, 14, 30, 0, 0, time.Local)

func TestDecodeState_RoundTrip(t *testing.T) {
	s := DefaultState(stateNow).SetView(schedule.ViewDay).SetMasterFilter("3")
	s = s.OpenSlotForm("2024-06-05", "10:05")

	got := DecodeState(s.Encode(), stateNow)

	assert.Equal(t, schedule.ViewDay, got.View)
	assert.Equal(t, "2024-06-05", got.AnchorISO)
	assert.Equal(t, s.MasterFilter, got.MasterFilter)
	if assert.NotNil(t, got.Draft) {
		assert.Equal(t, "2024-06-05", got.Draft.Date)
		assert.Equal(t, "10", got.Draft.Hour)
		assert.Equal(t, "05", got.Draft.Minute)
	}
}

func TestDecodeState_FallsBackToDefault(t *testing.T) {
	cases := map[string][]byte{
		"empty":      nil,
		"garbage":    []byte("{not json"),
		"bad view":   []byte(`{"view":"month","anchor":"2024-06-05"}`),
		"bad anchor": []byte(`{"view":"week","anchor":"05.06.2024"}`),
		"no anchor":  []byte(`{"view":"week"}`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			got := DecodeState(raw, stateNow)
			assert.Equal(t, DefaultState(stateNow), got)
		})
	}
}

func TestState_Navigate(t *testing.T) {
	s := State{View: schedule.ViewWeek, AnchorISO: "2024-06-05"}

	assert.Equal(t, "2024-06-12", s.Navigate(true).AnchorISO)
	assert.Equal(t, "2024-05-29", s.Navigate(false).AnchorISO)

	day := s.SetView(schedule.ViewDay)
	assert.Equal(t, "2024-06-06", day.Navigate(true).AnchorISO)
	assert.Equal(t, "2024-06-04", day.Navigate(false).AnchorISO)
}

func TestState_SetViewKeepsAnchor(t *testing.T) {
	s := State{View: schedule.ViewWeek, AnchorISO: "2024-06-05"}
	got := s.SetView(schedule.ViewDay)
	assert.Equal(t, schedule.ViewDay, got.View)
	assert.Equal(t, "2024-06-05", got.AnchorISO)

	// An unknown view is ignored.
	assert.Equal(t, schedule.ViewDay, got.SetView("month").View)
}

func TestState_FormLifecycle(t *testing.T) {
	s := State{View: schedule.ViewWeek, AnchorISO: "2024-06-05"}

	s = s.OpenCreateForm()
	if assert.NotNil(t, s.Draft) {
		assert.Empty(t, s.Draft.Date)
	}
	s = s.CloseForm()
	assert.Nil(t, s.Draft)
}

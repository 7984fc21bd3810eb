// Package app owns the application state and the controller that turns
// commands (navigation, form edits, submission) into backend calls and
// render-ready snapshots. Views never mutate anything here; each page load
// replays restore → apply command → fetch → render.
package app

import (
	"encoding/json"
	"time"

	"github.com/grooming-is/schedule-web/internal/booking"
	"github.com/grooming-is/schedule-web/internal/groomapi"
	"github.com/grooming-is/schedule-web/internal/schedule"
)

// State is the per-user UI snapshot persisted between page loads: the
// active period, the master filter and the open form draft, if any.
type State struct {
	View         schedule.View  `json:"view"`
	AnchorISO    string         `json:"anchor"`
	MasterFilter groomapi.ID    `json:"master_filter,omitempty"`
	Draft        *booking.Draft `json:"draft,omitempty"`
}

// DefaultState opens the week view anchored at today.
func DefaultState(now time.Time) State {
	return State{View: schedule.ViewWeek, AnchorISO: schedule.ISODate(now)}
}

// DecodeState restores a snapshot; anything unreadable falls back to the
// default rather than breaking the page.
func DecodeState(raw []byte, now time.Time) State {
	if len(raw) == 0 {
		return DefaultState(now)
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return DefaultState(now)
	}
	if !s.View.Valid() || s.AnchorISO == "" {
		return DefaultState(now)
	}
	if _, err := schedule.ParseISODate(s.AnchorISO, time.Local); err != nil {
		return DefaultState(now)
	}
	return s
}

// Encode serializes the snapshot for the session store.
func (s State) Encode() []byte {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	return raw
}

// Period materializes the active calendar window.
func (s State) Period() schedule.Period {
	anchor, err := schedule.ParseISODate(s.AnchorISO, time.Local)
	if err != nil {
		anchor = time.Now()
	}
	return schedule.NewPeriod(s.View, anchor)
}

// SetView switches the layout, keeping the anchor.
func (s State) SetView(view schedule.View) State {
	if view.Valid() {
		s.View = view
	}
	return s
}

// Navigate shifts the period one step back or forward.
func (s State) Navigate(forward bool) State {
	p := s.Period()
	if forward {
		p = p.Next()
	} else {
		p = p.Prev()
	}
	s.AnchorISO = schedule.ISODate(p.Anchor)
	return s
}

// SetMasterFilter sets the client-side master filter; empty clears it.
func (s State) SetMasterFilter(id groomapi.ID) State {
	s.MasterFilter = id
	return s
}

// OpenCreateForm opens a blank draft.
func (s State) OpenCreateForm() State {
	s.Draft = booking.NewDraft()
	return s
}

// OpenSlotForm opens a draft prefilled from a clicked grid cell.
func (s State) OpenSlotForm(dateISO, startTime string) State {
	s.Draft = booking.NewDraftFromSlot(dateISO, startTime)
	return s
}

// CloseForm discards the draft.
func (s State) CloseForm() State {
	s.Draft = nil
	return s
}

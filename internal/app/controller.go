package app

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/grooming-is/schedule-web/internal/booking"
	"github.com/grooming-is/schedule-web/internal/groomapi"
	"github.com/grooming-is/schedule-web/internal/observability/metrics"
	"github.com/grooming-is/schedule-web/internal/pricing"
	"github.com/grooming-is/schedule-web/internal/refdata"
	"github.com/grooming-is/schedule-web/internal/schedule"
	"github.com/grooming-is/schedule-web/internal/session"
	"github.com/grooming-is/schedule-web/pkg/logging"
)

var appTracer = otel.Tracer("grooming.internal.app")

var (
	// ErrBadCredentials means the backend rejected the login form.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrForbidden means the signed-in role may not perform the command.
	ErrForbidden = errors.New("forbidden")
	// ErrNoDraft means a form command arrived with no open form.
	ErrNoDraft = errors.New("no open booking form")
)

// API is the slice of the backend client the controller drives.
type API interface {
	refdata.API
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, token string) (*groomapi.Account, error)
	Schedule(ctx context.Context, token, dateFrom, dateTo string) ([]groomapi.Booking, error)
	CreateOrder(ctx context.Context, token string, order groomapi.OrderCreate) (*groomapi.Booking, error)
	SearchClientByPhone(ctx context.Context, token, phone string) (*groomapi.ClientSearchResult, error)
}

// Controller executes commands against the backend and produces the data
// each page render needs. It holds no per-user state; everything mutable
// lives in the State snapshot the caller passes in.
type Controller struct {
	api     API
	gate    *session.Gate
	ref     *refdata.Loader
	metrics *metrics.ScheduleMetrics
	logger  *logging.Logger
}

// NewController wires the command layer.
func NewController(api API, gate *session.Gate, m *metrics.ScheduleMetrics, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{
		api:     api,
		gate:    gate,
		ref:     refdata.NewLoader(api, logger),
		metrics: m,
		logger:  logger,
	}
}

// Login exchanges credentials for a backend token and opens a session.
func (c *Controller) Login(ctx context.Context, username, password string) (*session.Session, error) {
	ctx, span := appTracer.Start(ctx, "app.login")
	defer span.End()

	token, err := c.api.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, groomapi.ErrUnauthorized) {
			return nil, ErrBadCredentials
		}
		span.RecordError(err)
		return nil, fmt.Errorf("login: %w", err)
	}
	account, err := c.api.Me(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load account: %w", err)
	}
	sess, err := c.gate.Issue(ctx, token, account.Login, account.FullName, account.Role)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("open session: %w", err)
	}
	span.SetAttributes(attribute.String("grooming.role", account.Role))
	c.logger.Info("session opened", "login", account.Login, "role", account.Role)
	return sess, nil
}

// Logout closes the session.
func (c *Controller) Logout(ctx context.Context, sessionID string) error {
	return c.gate.Drop(ctx, sessionID)
}

// SchedulePage is everything the calendar template renders.
type SchedulePage struct {
	Caps    session.Capabilities
	Grid    *schedule.Grid
	Masters []groomapi.Master

	// MasterFilter is the filter actually applied: for a master role it is
	// the resolved self master, overriding whatever the state holds.
	MasterFilter groomapi.ID
	// Locked reports that the filter was pinned to the signed-in master
	// rather than chosen through the (hidden for masters) filter control.
	Locked bool
}

// LoadSchedule fetches reference data and bookings for the active period
// and builds the grid. Filtering happens here, after the fetch; the
// backend always returns the whole period.
func (c *Controller) LoadSchedule(ctx context.Context, sess *session.Session, state State) (*SchedulePage, error) {
	ctx, span := appTracer.Start(ctx, "app.load_schedule")
	defer span.End()
	span.SetAttributes(
		attribute.String("grooming.view", string(state.View)),
		attribute.String("grooming.anchor", state.AnchorISO),
	)

	set, err := c.ref.Load(ctx, sess.Token)
	if err != nil {
		span.RecordError(err)
		c.metrics.ObserveReload(string(state.View), "error")
		return nil, err
	}

	caps := session.CapabilitiesFor(sess.Role)
	filter := state.MasterFilter
	locked := false
	if caps.LockedToSelf {
		if self, ok := session.ResolveSelfMaster(sess.Login, set.Masters); ok {
			filter = self
			locked = true
		} else {
			// No master record contains this login; fall back to the
			// unfiltered schedule rather than a blank page.
			c.logger.Warn("master login matches no master record", "login", sess.Login)
			filter = ""
		}
	} else if !caps.CanFilterMasters {
		filter = ""
	}

	period := state.Period()
	from, to := period.Range()
	bookings, err := c.api.Schedule(ctx, sess.Token, from, to)
	if err != nil {
		span.RecordError(err)
		c.metrics.ObserveReload(string(state.View), "error")
		return nil, fmt.Errorf("load schedule %s..%s: %w", from, to, err)
	}

	grid := schedule.BuildGrid(period, bookings, filter)
	c.metrics.ObserveReload(string(state.View), "ok")
	span.SetAttributes(attribute.Int("grooming.bookings", grid.Total()))
	return &SchedulePage{
		Caps:         caps,
		Grid:         grid,
		Masters:      set.Masters,
		MasterFilter: filter,
		Locked:       locked,
	}, nil
}

// LoadFormData fetches the reference collections the booking form renders
// and refreshes the draft's derived price against them.
func (c *Controller) LoadFormData(ctx context.Context, sess *session.Session, state State) (*refdata.Set, error) {
	set, err := c.ref.Load(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	if state.Draft != nil {
		reprice(state.Draft, set)
	}
	return set, nil
}

// FormInput is one round of raw form field values.
type FormInput struct {
	Phone    string
	FullName string

	PetName    string
	Species    string
	BreedID    string
	AgeGroupID string
	Size       string

	MasterID  string
	ServiceID string

	Date   string
	Hour   string
	Minute string

	ExtraIDs []string
	Comment  string
}

// ApplyFormInput writes one round of field values into the draft:
// names are capitalized, the breed is checked against the species,
// a breed change pulls in the breed's default size, and the price
// recomputes from whatever is now selected.
func (c *Controller) ApplyFormInput(d *booking.Draft, set *refdata.Set, in FormInput) {
	d.Phone = in.Phone
	d.FullName = booking.Capitalize(in.FullName)
	d.PetName = booking.Capitalize(in.PetName)
	d.Comment = booking.Capitalize(in.Comment)
	d.Date = in.Date
	d.Hour = in.Hour
	d.Minute = in.Minute
	d.MasterID = groomapi.ID(in.MasterID)
	d.ServiceID = groomapi.ID(in.ServiceID)
	d.AgeGroupID = groomapi.ID(in.AgeGroupID)
	d.Size = groomapi.PetSize(in.Size)

	// A breed only sticks while it belongs to the selected species; picking
	// a breed pulls in its default size.
	d.Species = in.Species
	if breedID := groomapi.ID(in.BreedID); breedID != d.BreedID {
		d.BreedID = ""
		if b, ok := set.BreedByID(breedID); ok && b.Species == d.Species {
			d.BreedID = breedID
			if b.DefaultSize != "" {
				d.Size = b.DefaultSize
			}
		}
	} else if d.BreedID != "" {
		if b, ok := set.BreedByID(d.BreedID); !ok || b.Species != d.Species {
			d.BreedID = ""
		}
	}

	d.ExtraIDs = d.ExtraIDs[:0]
	for _, raw := range in.ExtraIDs {
		if raw != "" {
			d.ExtraIDs = append(d.ExtraIDs, groomapi.ID(raw))
		}
	}

	reprice(d, set)
}

// LookupClient fills the client name from the phone on file. A miss is
// silent; the form keeps whatever was typed.
func (c *Controller) LookupClient(ctx context.Context, sess *session.Session, d *booking.Draft) error {
	if d == nil {
		return ErrNoDraft
	}
	res, err := c.api.SearchClientByPhone(ctx, sess.Token, d.Phone)
	if err != nil {
		if errors.Is(err, groomapi.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("client lookup: %w", err)
	}
	d.FullName = booking.Capitalize(res.Client.FullName)
	return nil
}

// SubmitOrder validates the draft and posts it. On success the draft is
// cleared from the state; a validation failure or backend error leaves it
// open with its data intact.
func (c *Controller) SubmitOrder(ctx context.Context, sess *session.Session, state *State, set *refdata.Set) (*groomapi.Booking, error) {
	ctx, span := appTracer.Start(ctx, "app.submit_order")
	defer span.End()

	if !session.CapabilitiesFor(sess.Role).CanCreateOrders {
		return nil, ErrForbidden
	}
	d := state.Draft
	if d == nil {
		return nil, ErrNoDraft
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	price, ok := pricing.Compute(set, d.ServiceID, d.Size, d.AgeGroupID, d.ExtraIDs)
	created, err := c.api.CreateOrder(ctx, sess.Token, d.ToOrder(price, ok))
	if err != nil {
		span.RecordError(err)
		c.metrics.ObserveOrder("error")
		return nil, fmt.Errorf("create order: %w", err)
	}
	c.metrics.ObserveOrder("ok")
	c.logger.Info("order created",
		"date", d.Date,
		"start_time", d.StartTime(),
		"master_id", string(d.MasterID),
	)
	state.Draft = nil
	return created, nil
}

func reprice(d *booking.Draft, set *refdata.Set) {
	price, ok := pricing.Compute(set, d.ServiceID, d.Size, d.AgeGroupID, d.ExtraIDs)
	d.Price = pricing.Format(price, ok)
}

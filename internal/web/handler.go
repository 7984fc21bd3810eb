package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/grooming-is/schedule-web/internal/app"
	"github.com/grooming-is/schedule-web/internal/booking"
	"github.com/grooming-is/schedule-web/internal/groomapi"
	"github.com/grooming-is/schedule-web/internal/observability/metrics"
	"github.com/grooming-is/schedule-web/internal/refdata"
	"github.com/grooming-is/schedule-web/internal/schedule"
	"github.com/grooming-is/schedule-web/internal/session"
	"github.com/grooming-is/schedule-web/pkg/logging"
)

// User-facing messages, worded exactly as the operators know them.
const (
	MsgBadCredentials = "Неверный логин или пароль"
	MsgLoadFailed     = "Не удалось загрузить данные"
	MsgCreateFailed   = "Не удалось создать запись"
	MsgForbidden      = "Недостаточно прав для создания записи"
)

type ctxKey int

const sessionKey ctxKey = iota

func sessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey).(*session.Session)
	return s
}

// Handler renders the pages and applies one command per request.
type Handler struct {
	ctrl         *app.Controller
	gate         *session.Gate
	metrics      *metrics.ScheduleMetrics
	logger       *logging.Logger
	cookieName   string
	secureCookie bool
	templates    map[string]*template.Template
	now          func() time.Time
}

// NewHandler wires the page handlers.
func NewHandler(ctrl *app.Controller, gate *session.Gate, m *metrics.ScheduleMetrics, logger *logging.Logger, cookieName string, secureCookie bool) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		ctrl:         ctrl,
		gate:         gate,
		metrics:      m,
		logger:       logger,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		templates:    parseTemplates(),
		now:          time.Now,
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := h.templates[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("template render failed", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, status int, message string) {
	h.render(w, status, "error", struct{ Message string }{Message: message})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.gate.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireSession resolves the session cookie; anything stale or missing
// bounces to the login page. The session lifetime check happens here, at
// page load, never mid-page.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		sess, err := h.gate.Resolve(r.Context(), cookie.Value, h.now())
		if err != nil {
			h.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/schedule", http.StatusSeeOther)
}

type loginData struct {
	Username string
	Error    string
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		if _, err := h.gate.Resolve(r.Context(), cookie.Value, h.now()); err == nil {
			http.Redirect(w, r, "/schedule", http.StatusSeeOther)
			return
		}
	}
	h.render(w, http.StatusOK, "login", loginData{})
}

func (h *Handler) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	sess, err := h.ctrl.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		msg := MsgLoadFailed
		status := http.StatusBadGateway
		if errors.Is(err, app.ErrBadCredentials) {
			msg = MsgBadCredentials
			status = http.StatusUnauthorized
		} else {
			h.logger.Error("login failed", "error", err)
		}
		h.render(w, status, "login", loginData{Username: username, Error: msg})
		return
	}
	h.setSessionCookie(w, sess.ID)
	http.Redirect(w, r, "/schedule", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		if err := h.ctrl.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("logout failed", "error", err)
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type dayCol struct {
	ISO   string
	Title string
}

type scheduleData struct {
	UserName string
	View     string
	Label    string
	Days     []dayCol
	Hours    []string
	Grid     *schedule.Grid
	Masters  []groomapi.Master

	MasterFilter   groomapi.ID
	CanFilter      bool
	CanCreate      bool
	ShowMasterName bool
	Error          string
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	defer func() {
		h.metrics.ObserveRenderLatency("schedule", time.Since(start).Seconds())
	}()

	sess := sessionFrom(r.Context())
	state := app.DecodeState(sess.State, h.now())

	q := r.URL.Query()
	if v := q.Get("view"); v != "" {
		state = state.SetView(schedule.View(v))
	}
	if d := q.Get("date"); d != "" {
		if _, err := schedule.ParseISODate(d, time.Local); err == nil {
			state.AnchorISO = d
		}
	}
	switch q.Get("nav") {
	case "prev":
		state = state.Navigate(false)
	case "next":
		state = state.Navigate(true)
	}
	if q.Has("master") && session.CapabilitiesFor(sess.Role).CanFilterMasters {
		state = state.SetMasterFilter(groomapi.ID(q.Get("master")))
	}
	h.saveState(r.Context(), sess, state)

	page, err := h.ctrl.LoadSchedule(r.Context(), sess, state)
	if err != nil {
		h.backendError(w, r, sess, err)
		return
	}

	period := state.Period()
	days := make([]dayCol, 0, 7)
	for _, d := range period.Days() {
		// Week columns carry the bare weekday name; the single day column
		// is headed "День". The period label above names the dates.
		title := schedule.DayShort(d)
		if state.View == schedule.ViewDay {
			title = "День"
		}
		days = append(days, dayCol{ISO: schedule.ISODate(d), Title: title})
	}
	h.render(w, http.StatusOK, "schedule", scheduleData{
		UserName:       sess.FullName,
		View:           string(state.View),
		Label:          period.Label(),
		Days:           days,
		Hours:          schedule.Hours(),
		Grid:           page.Grid,
		Masters:        page.Masters,
		MasterFilter:   page.MasterFilter,
		CanFilter:      page.Caps.CanFilterMasters,
		CanCreate:      page.Caps.CanCreateOrders,
		ShowMasterName: page.MasterFilter == "",
	})
}

type formData struct {
	UserName string
	Draft    *booking.Draft

	Masters   []groomapi.Master
	Services  []groomapi.Service
	Breeds    []groomapi.Breed
	AgeGroups []groomapi.AgeGroup
	Extras    []groomapi.ExtraService
	Sizes     []groomapi.PetSize

	HourValues   []string
	MinuteValues []string

	Error string
}

func (h *Handler) handleFormPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if !session.CapabilitiesFor(sess.Role).CanCreateOrders {
		h.renderError(w, http.StatusForbidden, MsgForbidden)
		return
	}
	state := app.DecodeState(sess.State, h.now())

	q := r.URL.Query()
	if q.Has("date") || q.Has("time") {
		state = state.OpenSlotForm(q.Get("date"), q.Get("time"))
	} else if state.Draft == nil {
		state = state.OpenCreateForm()
	}

	set, err := h.ctrl.LoadFormData(r.Context(), sess, state)
	if err != nil {
		h.backendError(w, r, sess, err)
		return
	}
	h.saveState(r.Context(), sess, state)
	h.renderForm(w, sess, state, set, "")
}

func (h *Handler) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if !session.CapabilitiesFor(sess.Role).CanCreateOrders {
		h.renderError(w, http.StatusForbidden, MsgForbidden)
		return
	}
	state := app.DecodeState(sess.State, h.now())
	if state.Draft == nil {
		http.Redirect(w, r, "/orders/new", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	set, err := h.ctrl.LoadFormData(r.Context(), sess, state)
	if err != nil {
		h.backendError(w, r, sess, err)
		return
	}
	h.ctrl.ApplyFormInput(state.Draft, set, app.FormInput{
		Phone:      r.PostFormValue("phone"),
		FullName:   r.PostFormValue("full_name"),
		PetName:    r.PostFormValue("pet_name"),
		Species:    r.PostFormValue("species"),
		BreedID:    r.PostFormValue("breed_id"),
		AgeGroupID: r.PostFormValue("age_group_id"),
		Size:       r.PostFormValue("size"),
		MasterID:   r.PostFormValue("master_id"),
		ServiceID:  r.PostFormValue("service_id"),
		Date:       r.PostFormValue("date"),
		Hour:       r.PostFormValue("hour"),
		Minute:     r.PostFormValue("minute"),
		ExtraIDs:   r.PostForm["extra_ids"],
		Comment:    r.PostFormValue("comment"),
	})

	switch r.PostFormValue("action") {
	case "lookup":
		if err := h.ctrl.LookupClient(r.Context(), sess, state.Draft); err != nil {
			h.saveState(r.Context(), sess, state)
			h.renderForm(w, sess, state, set, MsgLoadFailed)
			return
		}
		h.saveState(r.Context(), sess, state)
		h.renderForm(w, sess, state, set, "")

	case "save":
		_, err := h.ctrl.SubmitOrder(r.Context(), sess, &state, set)
		if err != nil {
			var verr *booking.ValidationError
			if errors.As(err, &verr) {
				h.saveState(r.Context(), sess, state)
				h.renderForm(w, sess, state, set, verr.Message)
				return
			}
			h.logger.Error("order submit failed", "error", err)
			h.saveState(r.Context(), sess, state)
			h.renderForm(w, sess, state, set, MsgCreateFailed)
			return
		}
		h.saveState(r.Context(), sess, state)
		http.Redirect(w, r, "/schedule", http.StatusSeeOther)

	default:
		h.saveState(r.Context(), sess, state)
		h.renderForm(w, sess, state, set, "")
	}
}

func (h *Handler) handleFormCancel(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	state := app.DecodeState(sess.State, h.now()).CloseForm()
	h.saveState(r.Context(), sess, state)
	http.Redirect(w, r, "/schedule", http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, sess *session.Session, state app.State, set *refdata.Set, errMsg string) {
	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusUnprocessableEntity
	}
	h.render(w, status, "form", formData{
		UserName:     sess.FullName,
		Draft:        state.Draft,
		Masters:      set.Masters,
		Services:     set.Services,
		Breeds:       set.BreedsFor(state.Draft.Species),
		AgeGroups:    set.AgeGroups,
		Extras:       set.Extras,
		Sizes:        groomapi.Sizes(),
		HourValues:   schedule.HourValues(),
		MinuteValues: schedule.MinuteValues(),
		Error:        errMsg,
	})
}

func (h *Handler) saveState(ctx context.Context, sess *session.Session, state app.State) {
	sess.State = state.Encode()
	if err := h.gate.Save(ctx, sess); err != nil {
		h.logger.Warn("session save failed", "error", err)
	}
}

// backendError maps a failed backend call to the right page: a rejected
// token ends the session, anything else shows the generic failure page.
func (h *Handler) backendError(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	if errors.Is(err, groomapi.ErrUnauthorized) {
		h.logger.Info("backend rejected token, ending session", "login", sess.Login)
		if dropErr := h.gate.Drop(r.Context(), sess.ID); dropErr != nil {
			h.logger.Warn("session drop failed", "error", dropErr)
		}
		h.clearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.logger.Error("backend call failed", "error", err)
	h.renderError(w, http.StatusBadGateway, MsgLoadFailed)
}

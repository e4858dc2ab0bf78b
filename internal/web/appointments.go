package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gikcare/frontdesk/internal/clinicapi"
	"github.com/gikcare/frontdesk/internal/contact"
	"github.com/gikcare/frontdesk/internal/dates"
	"github.com/gikcare/frontdesk/internal/listview"
	"github.com/gikcare/frontdesk/internal/notify"
)

type appointmentForm struct {
	Name             string
	CountryCode      string
	NetworkCode      string
	SubscriberNumber string
	Doctor           string
	Date             string
}

func (h *Handler) defaultAppointmentForm() appointmentForm {
	return appointmentForm{
		Doctor:      "Dr. Khan",
		CountryCode: h.cfg.DefaultCountryCode,
	}
}

type bookAppointmentData struct {
	baseData
	Form appointmentForm
}

// BookAppointmentForm renders a fresh booking form.
func (h *Handler) BookAppointmentForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "book_appointment", http.StatusOK, bookAppointmentData{
		baseData: h.base(w, r, "Book Appointment"),
		Form:     h.defaultAppointmentForm(),
	})
}

// BookAppointmentSubmit validates and books an appointment. The chosen date
// is formatted to display form before it goes on the wire.
func (h *Handler) BookAppointmentSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := appointmentForm{
		Name:             strings.TrimSpace(r.PostFormValue("name")),
		CountryCode:      r.PostFormValue("countryCode"),
		NetworkCode:      contact.MaskDigits(r.PostFormValue("networkCode"), contact.NetworkCodeLen),
		SubscriberNumber: contact.MaskDigits(r.PostFormValue("subscriberNumber"), contact.SubscriberNumberLen),
		Doctor:           r.PostFormValue("doctor"),
		Date:             r.PostFormValue("date"),
	}

	renderWithError := func(message string) {
		data := bookAppointmentData{baseData: h.base(w, r, "Book Appointment"), Form: form}
		data.FlashError = message
		h.render(w, "book_appointment", http.StatusOK, data)
	}

	if form.Name == "" || form.Date == "" {
		renderWithError("All fields are required.")
		return
	}
	formattedContact, err := contact.Format(form.CountryCode, form.NetworkCode, form.SubscriberNumber)
	if err != nil {
		renderWithError(userMessage(err))
		return
	}
	day, err := time.ParseInLocation(dates.InputLayout, form.Date, time.Local)
	if err != nil {
		renderWithError("Please select a valid date.")
		return
	}

	_, err = h.client.CreateAppointment(r.Context(), clinicapi.CreateAppointmentRequest{
		Name:    form.Name,
		Contact: formattedContact,
		Doctor:  form.Doctor,
		Date:    dates.Display(day),
	})
	if err != nil {
		h.logger.Error("create appointment failed", "error", err)
		renderWithError(actionError(err, "Error booking appointment."))
		return
	}

	setSuccess(w, "Appointment booked successfully!")
	http.Redirect(w, r, "/book-appointment", http.StatusSeeOther)
}

type appointmentRow struct {
	ID          string
	Name        string
	Contact     string
	Doctor      string
	DateDisplay string
	DateInput   string
	ReminderURL string
	Editing     bool
}

func (h *Handler) appointmentRow(a clinicapi.Appointment, editingID string) appointmentRow {
	row := appointmentRow{
		ID:          a.ID,
		Name:        a.Name,
		Contact:     a.Contact,
		Doctor:      a.Doctor,
		DateDisplay: a.Date,
		ReminderURL: notify.ReminderLink(h.notifier, a.Contact, a.Name, a.Date),
		Editing:     a.ID != "" && a.ID == editingID,
	}
	if t, err := dates.Parse(a.Date); err == nil {
		row.DateDisplay = dates.Display(t)
		row.DateInput = t.Format(dates.InputLayout)
	}
	return row
}

type appointmentListData struct {
	baseData
	Search     string
	SearchDate string
	Page       listview.Page[appointmentRow]
	Pager      pager
	ReturnPath string
	BackPath   string
}

// AllAppointments renders upcoming appointments (midnight-normalized
// today-or-later), newest-fetched first, with name and exact-date filters.
// A one-shot Refresh header rolls the upcoming cutoff forward at the next
// local midnight without user action.
func (h *Handler) AllAppointments(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	search := r.URL.Query().Get("search")
	searchDate := r.URL.Query().Get("date")
	editing := r.URL.Query().Get("edit")

	data := appointmentListData{
		baseData:   h.base(w, r, "All Appointments"),
		Search:     search,
		SearchDate: searchDate,
		ReturnPath: "/all-appointments",
	}

	w.Header().Set("Refresh", fmt.Sprintf("%d", int(dates.UntilMidnight(now).Seconds())))

	appointments, err := h.client.ListAppointments(r.Context())
	if err != nil {
		h.logger.Error("list appointments fetch failed", "error", err)
		data.FlashError = actionError(err, "Error fetching appointments.")
		h.render(w, "all_appointments", http.StatusOK, data)
		return
	}

	upcoming := listview.Filter(appointments, func(a clinicapi.Appointment) bool {
		return dates.IsUpcoming(a.Date, now)
	})
	filtered := listview.FilterByName(upcoming, search, func(a clinicapi.Appointment) string { return a.Name })
	if searchDate != "" {
		filtered = listview.Filter(filtered, func(a clinicapi.Appointment) bool {
			t, err := dates.Parse(a.Date)
			return err == nil && t.Format(dates.InputLayout) == searchDate
		})
	}

	rows := make([]appointmentRow, 0, len(filtered))
	for _, a := range listview.Reversed(filtered) {
		rows = append(rows, h.appointmentRow(a, editing))
	}
	data.Page = listview.Paginate(rows, h.cfg.AppointmentsPerPage, queryPage(r))
	data.Pager = newPager(data.Page, r.URL.Query())

	h.render(w, "all_appointments", http.StatusOK, data)
}

// TodaysAppointments renders the today bucket.
func (h *Handler) TodaysAppointments(w http.ResponseWriter, r *http.Request) {
	h.bucketAppointments(w, r, "Today's Appointments", h.now(), "/todays-appointments")
}

// TomorrowsAppointments renders the tomorrow bucket.
func (h *Handler) TomorrowsAppointments(w http.ResponseWriter, r *http.Request) {
	h.bucketAppointments(w, r, "Tomorrow's Appointments", dates.Tomorrow(h.now()), "/tomorrows-appointments")
}

func (h *Handler) bucketAppointments(w http.ResponseWriter, r *http.Request, title string, day time.Time, returnPath string) {
	search := r.URL.Query().Get("search")
	editing := r.URL.Query().Get("edit")

	data := appointmentListData{
		baseData:   h.base(w, r, title),
		Search:     search,
		ReturnPath: returnPath,
		BackPath:   "/all-appointments",
	}

	appointments, err := h.client.ListAppointments(r.Context())
	if err != nil {
		h.logger.Error("list appointments fetch failed", "view", title, "error", err)
		data.FlashError = actionError(err, "Error fetching appointments.")
		h.render(w, "bucket_appointments", http.StatusOK, data)
		return
	}

	bucketed := listview.Filter(appointments, func(a clinicapi.Appointment) bool {
		return dates.SameCalendarDay(a.Date, day)
	})
	filtered := listview.FilterByName(bucketed, search, func(a clinicapi.Appointment) string { return a.Name })

	rows := make([]appointmentRow, 0, len(filtered))
	for _, a := range filtered {
		rows = append(rows, h.appointmentRow(a, editing))
	}
	data.Page = listview.Paginate(rows, h.cfg.BucketPerPage, queryPage(r))
	data.Pager = newPager(data.Page, r.URL.Query())

	h.render(w, "bucket_appointments", http.StatusOK, data)
}

// RescheduleAppointment commits an inline date change, then sends the user
// back to the originating view for a full re-fetch.
func (h *Handler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	returnPath := safeReturnPath(r.PostFormValue("return"))
	newDate := r.PostFormValue("date")
	if newDate == "" {
		setError(w, "Please select a new date")
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
		return
	}

	if _, err := h.client.RescheduleAppointment(r.Context(), id, newDate); err != nil {
		h.logger.Error("reschedule appointment failed", "id", id, "error", err)
		setError(w, actionError(err, "Error updating appointment date."))
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
		return
	}

	setSuccess(w, "Appointment date updated successfully")
	http.Redirect(w, r, returnPath, http.StatusSeeOther)
}

// CancelAppointment hard-deletes an appointment, then sends the user back
// for a full re-fetch (no local removal).
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	returnPath := safeReturnPath(r.PostFormValue("return"))

	if err := h.client.CancelAppointment(r.Context(), id); err != nil {
		h.logger.Error("cancel appointment failed", "id", id, "error", err)
		setError(w, actionError(err, "Error canceling appointment."))
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
		return
	}

	setSuccess(w, "Appointment canceled")
	http.Redirect(w, r, returnPath, http.StatusSeeOther)
}

// safeReturnPath keeps post-action redirects on-site.
func safeReturnPath(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "/all-appointments"
	}
	return path
}

package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gikcare/frontdesk/internal/billing"
	"github.com/gikcare/frontdesk/internal/clinicapi"
	"github.com/gikcare/frontdesk/internal/invoice"
)

// visitTimeLayout matches the profile's visit-history cells,
// e.g. "October 15 2024, 2:30 PM".
const visitTimeLayout = "January 2 2006, 3:04 PM"

type visitRow struct {
	Date   string
	Amount string
}

type updateForm struct {
	Name          string
	ContactNumber string
	DoctorName    string
}

type profileData struct {
	baseData
	ID        string
	Name      string
	Contact   string
	Doctor    string
	Age       int
	Gender    string
	Total     string
	Paid      string
	Remaining string
	IsPaid    bool
	Status    string
	FirstVisit visitRow
	Visits    []visitRow
	Editing   bool
	Form      updateForm
	NotFound  bool
}

func (h *Handler) profileData(w http.ResponseWriter, r *http.Request, p *clinicapi.Patient, editing bool, form *updateForm) profileData {
	data := profileData{
		baseData:  h.base(w, r, "Patient Profile"),
		ID:        p.ID,
		Name:      p.Name,
		Contact:   p.ContactNumber,
		Doctor:    p.DoctorName,
		Age:       p.Age,
		Gender:    p.Gender,
		Total:     billing.FormatAmount(p.TotalAmount),
		Paid:      billing.FormatAmount(p.PaidAmount),
		Remaining: billing.FormatAmount(billing.Remaining(p)),
		IsPaid:    billing.IsPaid(p),
		Status:    billing.Status(p),
		Editing:   editing,
		FirstVisit: visitRow{
			Date:   p.CreatedAt.Local().Format(visitTimeLayout),
			Amount: billing.FormatAmount(p.PaidAmount),
		},
	}
	for _, v := range p.Visits {
		data.Visits = append(data.Visits, visitRow{
			Date:   v.Date.Local().Format(visitTimeLayout),
			Amount: billing.FormatAmount(v.Amount),
		})
	}
	if form != nil {
		data.Form = *form
	} else {
		data.Form = updateForm{Name: p.Name, ContactNumber: p.ContactNumber, DoctorName: p.DoctorName}
	}
	return data
}

// PatientProfile renders one patient: details or inline edit, billing
// status, and the visit history seeded with the registration payment.
func (h *Handler) PatientProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	editing := r.URL.Query().Get("edit") == "1"

	patient, err := h.client.GetPatient(r.Context(), id)
	if err != nil {
		h.logger.Error("get patient failed", "id", id, "error", err)
		data := profileData{baseData: h.base(w, r, "Patient Profile"), NotFound: true}
		data.FlashError = actionError(err, "Error fetching patient.")
		h.render(w, "patient_profile", http.StatusOK, data)
		return
	}

	h.render(w, "patient_profile", http.StatusOK, h.profileData(w, r, patient, editing, nil))
}

// UpdatePatient commits the inline edit and exits edit mode; failures keep
// the entered values on screen.
func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := updateForm{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		ContactNumber: strings.TrimSpace(r.PostFormValue("contactNumber")),
		DoctorName:    r.PostFormValue("doctorName"),
	}

	if form.Name == "" || form.ContactNumber == "" {
		h.rerenderEdit(w, r, id, form, "All fields are required.")
		return
	}

	_, err := h.client.UpdatePatient(r.Context(), id, clinicapi.UpdatePatientRequest{
		Name:          form.Name,
		ContactNumber: form.ContactNumber,
		DoctorName:    form.DoctorName,
	})
	if err != nil {
		h.logger.Error("update patient failed", "id", id, "error", err)
		h.rerenderEdit(w, r, id, form, actionError(err, "Error updating patient."))
		return
	}

	setSuccess(w, "Patient updated successfully")
	http.Redirect(w, r, "/patient/"+id, http.StatusSeeOther)
}

func (h *Handler) rerenderEdit(w http.ResponseWriter, r *http.Request, id string, form updateForm, message string) {
	patient, err := h.client.GetPatient(r.Context(), id)
	if err != nil {
		setError(w, message)
		http.Redirect(w, r, "/patient/"+id+"?edit=1", http.StatusSeeOther)
		return
	}
	data := h.profileData(w, r, patient, true, &form)
	data.FlashError = message
	h.render(w, "patient_profile", http.StatusOK, data)
}

// AddVisit appends a payment to the visit history. A fully paid patient
// accepts no further payments through this flow.
func (h *Handler) AddVisit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	amount, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("amount")), 64)
	if err != nil {
		setError(w, "Visit amount must be a number.")
		http.Redirect(w, r, "/patient/"+id, http.StatusSeeOther)
		return
	}

	patient, err := h.client.GetPatient(r.Context(), id)
	if err != nil {
		h.logger.Error("get patient before visit failed", "id", id, "error", err)
		setError(w, actionError(err, "Error adding visit."))
		http.Redirect(w, r, "/patient/"+id, http.StatusSeeOther)
		return
	}
	if billing.IsPaid(patient) {
		setError(w, "Patient has already paid in full.")
		http.Redirect(w, r, "/patient/"+id, http.StatusSeeOther)
		return
	}

	if _, err := h.client.AddVisit(r.Context(), id, clinicapi.Visit{Date: h.now(), Amount: amount}); err != nil {
		h.logger.Error("add visit failed", "id", id, "error", err)
		setError(w, actionError(err, "Error adding visit."))
		http.Redirect(w, r, "/patient/"+id, http.StatusSeeOther)
		return
	}

	setSuccess(w, "Visit added successfully")
	http.Redirect(w, r, "/patient/"+id, http.StatusSeeOther)
}

// DeletePatient removes the patient and navigates back to the list. The
// interactive confirmation happens on the form before this is reached.
func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.client.DeletePatient(r.Context(), id); err != nil {
		h.logger.Error("delete patient failed", "id", id, "error", err)
		setError(w, actionError(err, "Error deleting patient."))
		http.Redirect(w, r, "/patient/"+id, http.StatusSeeOther)
		return
	}

	setSuccess(w, "Patient deleted successfully")
	http.Redirect(w, r, "/all-patients", http.StatusSeeOther)
}

// PatientInvoice renders the print-ready invoice document in a fresh
// browsing context.
func (h *Handler) PatientInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	patient, err := h.client.GetPatient(r.Context(), id)
	if err != nil {
		h.logger.Error("get patient for invoice failed", "id", id, "error", err)
		setError(w, actionError(err, "Error fetching patient."))
		http.Redirect(w, r, "/patient/"+id, http.StatusSeeOther)
		return
	}

	doc, err := invoice.Render(invoice.Clinic{
		Name:    h.cfg.ClinicName,
		Tagline: h.cfg.ClinicTagline,
		Contact: h.cfg.ClinicContact,
		Address: h.cfg.ClinicAddress,
	}, patient, h.now())
	if err != nil {
		h.logger.Error("invoice render failed", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
	h.metrics.ObserveRender("invoice", "ok")
}

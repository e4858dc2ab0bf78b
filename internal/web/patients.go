package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gikcare/frontdesk/internal/clinicapi"
	"github.com/gikcare/frontdesk/internal/contact"
	"github.com/gikcare/frontdesk/internal/listview"
)

// patientForm carries the add-patient fields exactly as entered, so a
// rejected submission re-renders with nothing lost.
type patientForm struct {
	Name             string
	DoctorName       string
	Age              string
	Gender           string
	CountryCode      string
	NetworkCode      string
	SubscriberNumber string
	TotalAmount      string
	PaidAmount       string
}

func (h *Handler) defaultPatientForm() patientForm {
	return patientForm{
		DoctorName:  "Doctor 1",
		Gender:      "Male",
		CountryCode: h.cfg.DefaultCountryCode,
	}
}

type addPatientData struct {
	baseData
	Form patientForm
}

// AddPatientForm renders a fresh add-patient form.
func (h *Handler) AddPatientForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "add_patient", http.StatusOK, addPatientData{
		baseData: h.base(w, r, "Add Patient"),
		Form:     h.defaultPatientForm(),
	})
}

// AddPatientSubmit validates and creates a patient. Validation failures and
// API errors re-render the form with the entered values intact; success
// resets the form to defaults.
func (h *Handler) AddPatientSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := patientForm{
		Name:             strings.TrimSpace(r.PostFormValue("name")),
		DoctorName:       r.PostFormValue("doctorName"),
		Age:              strings.TrimSpace(r.PostFormValue("age")),
		Gender:           r.PostFormValue("gender"),
		CountryCode:      r.PostFormValue("countryCode"),
		NetworkCode:      contact.MaskDigits(r.PostFormValue("networkCode"), contact.NetworkCodeLen),
		SubscriberNumber: contact.MaskDigits(r.PostFormValue("subscriberNumber"), contact.SubscriberNumberLen),
		TotalAmount:      strings.TrimSpace(r.PostFormValue("totalAmount")),
		PaidAmount:       strings.TrimSpace(r.PostFormValue("paidAmount")),
	}

	renderWithError := func(message string) {
		data := addPatientData{baseData: h.base(w, r, "Add Patient"), Form: form}
		data.FlashError = message
		h.render(w, "add_patient", http.StatusOK, data)
	}

	if form.Name == "" || form.Age == "" || form.TotalAmount == "" || form.PaidAmount == "" {
		renderWithError("All fields are required.")
		return
	}
	formattedContact, err := contact.Format(form.CountryCode, form.NetworkCode, form.SubscriberNumber)
	if err != nil {
		renderWithError(userMessage(err))
		return
	}
	age, err := strconv.Atoi(form.Age)
	if err != nil || age < 0 {
		renderWithError("Age must be a non-negative number.")
		return
	}
	total, err := strconv.ParseFloat(form.TotalAmount, 64)
	if err != nil {
		renderWithError("Total amount must be a number.")
		return
	}
	paid, err := strconv.ParseFloat(form.PaidAmount, 64)
	if err != nil {
		renderWithError("Paid amount must be a number.")
		return
	}

	_, err = h.client.CreatePatient(r.Context(), clinicapi.CreatePatientRequest{
		Name:          form.Name,
		DoctorName:    form.DoctorName,
		ContactNumber: formattedContact,
		Age:           age,
		Gender:        form.Gender,
		TotalAmount:   total,
		PaidAmount:    paid,
	})
	if err != nil {
		h.logger.Error("create patient failed", "error", err)
		renderWithError(actionError(err, "Error adding patient."))
		return
	}

	setSuccess(w, "Patient added successfully!")
	http.Redirect(w, r, "/add-patient", http.StatusSeeOther)
}

type patientRow struct {
	ID      string
	Name    string
	Contact string
	Doctor  string
}

type allPatientsData struct {
	baseData
	Search string
	Page   listview.Page[patientRow]
	Pager  pager
}

// AllPatients renders the searchable, paginated patient table.
func (h *Handler) AllPatients(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page := queryPage(r)

	data := allPatientsData{
		baseData: h.base(w, r, "All Patients"),
		Search:   search,
	}

	patients, err := h.client.ListPatients(r.Context())
	if err != nil {
		h.logger.Error("list patients fetch failed", "error", err)
		data.FlashError = actionError(err, "Error fetching patients.")
		h.render(w, "all_patients", http.StatusOK, data)
		return
	}

	filtered := listview.FilterByName(patients, search, func(p clinicapi.Patient) string { return p.Name })
	rows := make([]patientRow, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, patientRow{ID: p.ID, Name: p.Name, Contact: p.ContactNumber, Doctor: p.DoctorName})
	}
	data.Page = listview.Paginate(rows, h.cfg.PatientsPerPage, page)
	data.Pager = newPager(data.Page, r.URL.Query())

	h.render(w, "all_patients", http.StatusOK, data)
}

func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// userMessage turns a validation error into its notification form.
func userMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gikcare/frontdesk/internal/clinicapi"
	"github.com/gikcare/frontdesk/internal/config"
	"github.com/gikcare/frontdesk/internal/notify"
	"github.com/gikcare/frontdesk/pkg/logging"
)

// fakeClinic is an in-memory stand-in for the remote clinic API. It records
// every request so tests can assert on the wire traffic.
type fakeClinic struct {
	mu           sync.Mutex
	patients     []clinicapi.Patient
	appointments []clinicapi.Appointment
	requests     []string
	lastBody     map[string]any

	failStatus  int
	failMessage string
}

func (f *fakeClinic) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.lastBody = nil
	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			f.lastBody = body
		}
	}
}

func (f *fakeClinic) sawRequest(line string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.requests {
		if req == line {
			return true
		}
	}
	return false
}

func (f *fakeClinic) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.record(req)
			if f.failStatus != 0 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(f.failStatus)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": f.failMessage})
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	r.Get("/api/patients", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, f.patients)
	})
	r.Post("/api/patients/add", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, clinicapi.Patient{ID: fmt.Sprintf("p%d", len(f.patients)+1)})
	})
	r.Get("/api/patients/dashboard/patient-count", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]int{"count": len(f.patients)})
	})
	r.Get("/api/patients/dashboard/amounts", func(w http.ResponseWriter, req *http.Request) {
		var total, paid float64
		for _, p := range f.patients {
			total += p.TotalAmount
			paid += p.PaidAmount
		}
		writeJSON(w, clinicapi.DashboardAmounts{TotalAmount: total, PaidAmount: paid})
	})
	r.Get("/api/patients/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		for _, p := range f.patients {
			if p.ID == id {
				writeJSON(w, p)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Patient not found"})
	})
	r.Put("/api/patients/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, clinicapi.Patient{ID: chi.URLParam(req, "id")})
	})
	r.Delete("/api/patients/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/api/patients/{id}/visits", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, clinicapi.Patient{ID: chi.URLParam(req, "id")})
	})
	r.Get("/api/appointments", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, f.appointments)
	})
	r.Post("/api/appointments", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, clinicapi.Appointment{ID: fmt.Sprintf("a%d", len(f.appointments)+1)})
	})
	r.Put("/api/appointments/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, clinicapi.Appointment{ID: chi.URLParam(req, "id")})
	})
	r.Delete("/api/appointments/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// fixedNow keeps the today/tomorrow buckets and the midnight refresh
// deterministic.
var fixedNow = time.Date(2024, time.October, 15, 10, 0, 0, 0, time.Local)

func newTestApp(t *testing.T, fake *fakeClinic) http.Handler {
	t.Helper()

	upstream := httptest.NewServer(fake.handler())
	t.Cleanup(upstream.Close)

	logger := logging.Default()
	client := clinicapi.NewClient(upstream.URL, 5*time.Second, logger)
	h := NewHandler(client, config.Load(), logger, notify.WhatsAppNotifier{}, nil)
	h.SetClock(func() time.Time { return fixedNow })

	return h.Routes()
}

func get(t *testing.T, app http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	return rr
}

func postForm(t *testing.T, app http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	return rr
}

func getFlashCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "frontdesk_flash" && c.MaxAge >= 0 {
			return c
		}
	}
	t.Fatal("expected a flash cookie to be set")
	return nil
}

func somePatients(n int) []clinicapi.Patient {
	patients := make([]clinicapi.Patient, 0, n)
	for i := 0; i < n; i++ {
		patients = append(patients, clinicapi.Patient{
			ID:            fmt.Sprintf("p%d", i+1),
			Name:          fmt.Sprintf("Patient %02d", i+1),
			DoctorName:    "Doctor 1",
			ContactNumber: "+92 300 1234567",
			Age:           30,
			Gender:        "Male",
			TotalAmount:   1000,
			PaidAmount:    400,
			CreatedAt:     fixedNow.AddDate(0, -1, 0),
		})
	}
	return patients
}

func TestDashboardShowsCountsAndAmounts(t *testing.T) {
	fake := &fakeClinic{patients: somePatients(3)}
	app := newTestApp(t, fake)

	rr := get(t, app, "/")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Total Patients")
	assert.Contains(t, body, ">3<")
	assert.Contains(t, body, "3000")
	assert.Contains(t, body, "1200")
}

func TestAddPatientSendsFormattedContactAndRedirects(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := postForm(t, app, "/add-patient", url.Values{
		"name":             {"Ahmed Raza"},
		"doctorName":       {"Doctor 1"},
		"age":              {"34"},
		"gender":           {"Male"},
		"countryCode":      {"+92"},
		"networkCode":      {"300"},
		"subscriberNumber": {"1234567"},
		"totalAmount":      {"5000"},
		"paidAmount":       {"1000"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/add-patient", rr.Header().Get("Location"))
	require.True(t, fake.sawRequest("POST /api/patients/add"))
	assert.Equal(t, "+92 300 1234567", fake.lastBody["contactNumber"])
	assert.Equal(t, "Ahmed Raza", fake.lastBody["name"])

	followUp := get(t, app, "/add-patient", getFlashCookie(t, rr))
	assert.Contains(t, followUp.Body.String(), "Patient added successfully!")
}

func TestAddPatientValidationKeepsEnteredValues(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := postForm(t, app, "/add-patient", url.Values{
		"name":             {""},
		"age":              {"34"},
		"countryCode":      {"+92"},
		"networkCode":      {"300"},
		"subscriberNumber": {"1234567"},
		"totalAmount":      {"5000"},
		"paidAmount":       {"1000"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "All fields are required.")
	assert.Contains(t, body, "1234567")
	assert.Contains(t, body, "5000")
	assert.False(t, fake.sawRequest("POST /api/patients/add"))
}

func TestAddPatientRejectsShortNetworkCode(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := postForm(t, app, "/add-patient", url.Values{
		"name":             {"Ahmed Raza"},
		"doctorName":       {"Doctor 1"},
		"age":              {"34"},
		"gender":           {"Male"},
		"countryCode":      {"+92"},
		"networkCode":      {"30"},
		"subscriberNumber": {"1234567"},
		"totalAmount":      {"5000"},
		"paidAmount":       {"1000"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Network code must be exactly 3 digits.")
	assert.False(t, fake.sawRequest("POST /api/patients/add"))
}

func TestAllPatientsSearchAndPagination(t *testing.T) {
	fake := &fakeClinic{patients: somePatients(10)}
	app := newTestApp(t, fake)

	first := get(t, app, "/all-patients")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "Patient 01")
	assert.Contains(t, first.Body.String(), "Patient 07")
	assert.NotContains(t, first.Body.String(), "Patient 08")
	assert.Contains(t, first.Body.String(), "Page 1 of 2")

	second := get(t, app, "/all-patients?page=2")
	assert.NotContains(t, second.Body.String(), "Patient 07")
	assert.Contains(t, second.Body.String(), "Patient 08")
	assert.Contains(t, second.Body.String(), "Patient 10")

	searched := get(t, app, "/all-patients?search=patient+03")
	assert.Contains(t, searched.Body.String(), "Patient 03")
	assert.NotContains(t, searched.Body.String(), "Patient 04")
}

func TestAllPatientsEmptyState(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := get(t, app, "/all-patients")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No patients found.")
}

func TestAllAppointmentsFiltersPastAndReversesOrder(t *testing.T) {
	fake := &fakeClinic{appointments: []clinicapi.Appointment{
		{ID: "a1", Name: "Old Visit", Contact: "+92 300 1111111", Doctor: "Dr. Khan", Date: "14 October 2024"},
		{ID: "a2", Name: "First Booked", Contact: "+92 300 2222222", Doctor: "Dr. Khan", Date: "16 October 2024"},
		{ID: "a3", Name: "Last Booked", Contact: "+92 300 3333333", Doctor: "Dr. Fatima", Date: "20 October 2024"},
	}}
	app := newTestApp(t, fake)

	rr := get(t, app, "/all-appointments")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.NotContains(t, body, "Old Visit")
	last := strings.Index(body, "Last Booked")
	first := strings.Index(body, "First Booked")
	require.True(t, last >= 0 && first >= 0)
	assert.Less(t, last, first, "most recently fetched should render first")
}

func TestAllAppointmentsSetsMidnightRefreshHeader(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := get(t, app, "/all-appointments")

	require.Equal(t, http.StatusOK, rr.Code)
	// fixedNow is 10:00 local, so the next midnight is 14 hours away
	assert.Equal(t, "50400", rr.Header().Get("Refresh"))
}

func TestAllAppointmentsDateFilter(t *testing.T) {
	fake := &fakeClinic{appointments: []clinicapi.Appointment{
		{ID: "a1", Name: "Wednesday Case", Date: "16 October 2024"},
		{ID: "a2", Name: "Sunday Case", Date: "20 October 2024"},
	}}
	app := newTestApp(t, fake)

	rr := get(t, app, "/all-appointments?date=2024-10-16")

	body := rr.Body.String()
	assert.Contains(t, body, "Wednesday Case")
	assert.NotContains(t, body, "Sunday Case")
}

func TestTodayAndTomorrowBuckets(t *testing.T) {
	fake := &fakeClinic{appointments: []clinicapi.Appointment{
		{ID: "a1", Name: "Today Case", Date: "15 October 2024"},
		{ID: "a2", Name: "Tomorrow Case", Date: "16 October 2024"},
		{ID: "a3", Name: "Later Case", Date: "20 October 2024"},
	}}
	app := newTestApp(t, fake)

	today := get(t, app, "/todays-appointments")
	require.Equal(t, http.StatusOK, today.Code)
	assert.Contains(t, today.Body.String(), "Today Case")
	assert.NotContains(t, today.Body.String(), "Tomorrow Case")
	assert.NotContains(t, today.Body.String(), "Later Case")

	tomorrow := get(t, app, "/tomorrows-appointments")
	assert.Contains(t, tomorrow.Body.String(), "Tomorrow Case")
	assert.NotContains(t, tomorrow.Body.String(), "Today Case")
}

func TestRescheduleAppointmentUpdatesAndRedirects(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := postForm(t, app, "/appointments/a2/reschedule", url.Values{
		"date":   {"2024-10-18"},
		"return": {"/todays-appointments"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/todays-appointments", rr.Header().Get("Location"))
	require.True(t, fake.sawRequest("PUT /api/appointments/a2"))
	assert.Equal(t, "2024-10-18", fake.lastBody["date"])
}

func TestRescheduleWithoutDateSetsError(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := postForm(t, app, "/appointments/a2/reschedule", url.Values{
		"return": {"/all-appointments"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, fake.sawRequest("PUT /api/appointments/a2"))

	followUp := get(t, app, "/all-appointments", getFlashCookie(t, rr))
	assert.Contains(t, followUp.Body.String(), "Please select a new date")
}

func TestCancelAppointmentDeletesUpstream(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := postForm(t, app, "/appointments/a9/cancel", url.Values{
		"return": {"/all-appointments"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/all-appointments", rr.Header().Get("Location"))
	assert.True(t, fake.sawRequest("DELETE /api/appointments/a9"))
}

func TestCancelAppointmentRejectsOffsiteReturnPath(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := postForm(t, app, "/appointments/a9/cancel", url.Values{
		"return": {"//evil.example.com"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/all-appointments", rr.Header().Get("Location"))
}

func TestBookAppointmentFormatsDateOnWire(t *testing.T) {
	fake := &fakeClinic{}
	app := newTestApp(t, fake)

	rr := postForm(t, app, "/book-appointment", url.Values{
		"name":             {"Sana Tariq"},
		"countryCode":      {"+92"},
		"networkCode":      {"301"},
		"subscriberNumber": {"7654321"},
		"doctor":           {"Dr. Fatima"},
		"date":             {"2024-10-18"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/book-appointment", rr.Header().Get("Location"))
	require.True(t, fake.sawRequest("POST /api/appointments"))
	assert.Equal(t, "18 October 2024", fake.lastBody["date"])
	assert.Equal(t, "+92 301 7654321", fake.lastBody["contact"])
}

func TestUpstreamFailureShowsServerMessage(t *testing.T) {
	fake := &fakeClinic{failStatus: http.StatusInternalServerError, failMessage: "database unavailable"}
	app := newTestApp(t, fake)

	rr := get(t, app, "/all-patients")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Error: database unavailable")
}

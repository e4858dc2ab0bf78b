package web

import "github.com/go-chi/chi/v5"

// Routes returns the front-desk view routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Dashboard)

	r.Get("/add-patient", h.AddPatientForm)
	r.Post("/add-patient", h.AddPatientSubmit)
	r.Get("/all-patients", h.AllPatients)

	r.Route("/patient/{id}", func(r chi.Router) {
		r.Get("/", h.PatientProfile)
		r.Post("/update", h.UpdatePatient)
		r.Post("/visits", h.AddVisit)
		r.Post("/delete", h.DeletePatient)
		r.Get("/invoice", h.PatientInvoice)
	})

	r.Get("/book-appointment", h.BookAppointmentForm)
	r.Post("/book-appointment", h.BookAppointmentSubmit)
	r.Get("/all-appointments", h.AllAppointments)
	r.Get("/todays-appointments", h.TodaysAppointments)
	r.Get("/tomorrows-appointments", h.TomorrowsAppointments)
	r.Post("/appointments/{id}/reschedule", h.RescheduleAppointment)
	r.Post("/appointments/{id}/cancel", h.CancelAppointment)

	return r
}

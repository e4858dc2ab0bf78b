package clinicapi

import "time"

// Patient is a patient record as stored by the clinic API.
type Patient struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	DoctorName    string    `json:"doctorName"`
	ContactNumber string    `json:"contactNumber"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	TotalAmount   float64   `json:"totalAmount"`
	PaidAmount    float64   `json:"paidAmount"`
	CreatedAt     time.Time `json:"createdAt"`
	Visits        []Visit   `json:"visits"`
}

// Visit is a dated payment appended to a patient's history.
type Visit struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// CreatePatientRequest is the body for registering a new patient.
type CreatePatientRequest struct {
	Name          string  `json:"name"`
	DoctorName    string  `json:"doctorName"`
	ContactNumber string  `json:"contactNumber"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	TotalAmount   float64 `json:"totalAmount"`
	PaidAmount    float64 `json:"paidAmount"`
}

// UpdatePatientRequest carries the editable subset of patient fields.
type UpdatePatientRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	DoctorName    string `json:"doctorName"`
}

// DashboardAmounts aggregates billing across all patients.
type DashboardAmounts struct {
	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount"`
}

// Appointment is a scheduled appointment. Date is kept as the wire string:
// the API stores whatever the client submitted, which is the display form
// ("15 October 2024") on creation and the date-input form ("2024-10-16")
// after a reschedule.
type Appointment struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Doctor  string `json:"doctor"`
	Date    string `json:"date"`
}

// CreateAppointmentRequest is the body for booking an appointment.
type CreateAppointmentRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Doctor  string `json:"doctor"`
	Date    string `json:"date"`
}

type patientCountResponse struct {
	Count int `json:"count"`
}

type rescheduleRequest struct {
	Date string `json:"date"`
}

type errorResponse struct {
	Message string `json:"message"`
}

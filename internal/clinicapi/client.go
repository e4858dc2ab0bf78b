package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gikcare/frontdesk/pkg/logging"
)

const defaultTimeout = 15 * time.Second

var tracer = otel.Tracer("frontdesk.internal.clinicapi")

// APIError is a non-2xx response from the clinic API, optionally carrying
// the server-provided message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("clinicapi: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("clinicapi: status %d", e.StatusCode)
}

// Observer receives one observation per upstream request.
type Observer interface {
	ObserveUpstream(operation, status string, seconds float64)
}

// Client is a typed HTTP client for the clinic API, which owns all
// patient and appointment persistence.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	observer   Observer
}

// NewClient creates a clinic API client against the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SetBaseURL overrides the API base URL (useful for testing).
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(base, "/")
}

// SetObserver attaches upstream request metrics.
func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

// ListPatients returns every patient record.
func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var patients []Patient
	if err := c.do(ctx, "list_patients", http.MethodGet, "/api/patients", nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// GetPatient returns a single patient by id.
func (c *Client) GetPatient(ctx context.Context, id string) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, "get_patient", http.MethodGet, "/api/patients/"+id, nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// CreatePatient registers a new patient.
func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, "create_patient", http.MethodPost, "/api/patients/add", req, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// UpdatePatient updates the editable patient fields.
func (c *Client) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, "update_patient", http.MethodPut, "/api/patients/"+id, req, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// DeletePatient removes a patient record.
func (c *Client) DeletePatient(ctx context.Context, id string) error {
	return c.do(ctx, "delete_patient", http.MethodDelete, "/api/patients/"+id, nil, nil)
}

// AddVisit appends a dated payment to the patient's visit history.
func (c *Client) AddVisit(ctx context.Context, id string, visit Visit) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, "add_visit", http.MethodPost, "/api/patients/"+id+"/visits", visit, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// PatientCount returns the total number of registered patients.
func (c *Client) PatientCount(ctx context.Context) (int, error) {
	var resp patientCountResponse
	if err := c.do(ctx, "patient_count", http.MethodGet, "/api/patients/dashboard/patient-count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// DashboardAmounts returns clinic-wide total and paid amounts.
func (c *Client) DashboardAmounts(ctx context.Context) (DashboardAmounts, error) {
	var amounts DashboardAmounts
	if err := c.do(ctx, "dashboard_amounts", http.MethodGet, "/api/patients/dashboard/amounts", nil, &amounts); err != nil {
		return DashboardAmounts{}, err
	}
	return amounts, nil
}

// ListAppointments returns every appointment in fetch order.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var appointments []Appointment
	if err := c.do(ctx, "list_appointments", http.MethodGet, "/api/appointments", nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// CreateAppointment books an appointment.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	var appointment Appointment
	if err := c.do(ctx, "create_appointment", http.MethodPost, "/api/appointments", req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// RescheduleAppointment changes an appointment's date.
func (c *Client) RescheduleAppointment(ctx context.Context, id, date string) (*Appointment, error) {
	var appointment Appointment
	if err := c.do(ctx, "reschedule_appointment", http.MethodPut, "/api/appointments/"+id, rescheduleRequest{Date: date}, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CancelAppointment hard-deletes an appointment.
func (c *Client) CancelAppointment(ctx context.Context, id string) error {
	return c.do(ctx, "cancel_appointment", http.MethodDelete, "/api/appointments/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	ctx, span := tracer.Start(ctx, "clinicapi."+operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("http.method", method), attribute.String("http.path", path))

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("clinicapi: marshal %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("clinicapi: create %s request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, "transport_error", start)
		span.RecordError(err)
		return fmt.Errorf("clinicapi: %s: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(operation, "read_error", start)
		span.RecordError(err)
		return fmt.Errorf("clinicapi: read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(operation, fmt.Sprintf("%d", resp.StatusCode), start)
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var serverErr errorResponse
		if json.Unmarshal(respBody, &serverErr) == nil {
			apiErr.Message = serverErr.Message
		}
		span.RecordError(apiErr)
		c.logger.Warn("clinic API returned non-success status",
			"operation", operation,
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return apiErr
	}

	c.observe(operation, "ok", start)
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("clinicapi: unmarshal %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) observe(operation, status string, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstream(operation, status, time.Since(start).Seconds())
}

// Package invoice renders the print-ready patient invoice document. Rendering
// is a pure function of the patient record so it can be tested without a
// browser; the document itself triggers the platform print dialog when opened.
package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/gikcare/frontdesk/internal/billing"
	"github.com/gikcare/frontdesk/internal/clinicapi"
)

// Clinic identifies the practice on the invoice header and footer.
type Clinic struct {
	Name    string
	Tagline string
	Contact string
	Address string
}

type invoiceData struct {
	Clinic    Clinic
	Date      string
	Time      string
	Name      string
	Gender    string
	Contact   string
	Age       int
	Doctor    string
	Total     string
	Paid      string
	Due       string
	Status    string
	IsPaid    bool
}

var tmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Invoice</title>
<style>
body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #f5f5f5; color: #333; margin: 0; padding: 0; }
.invoice-container { background-color: #fff; padding: 20px; width: 595px; margin: 50px auto; border-radius: 10px; box-shadow: 0 4px 12px rgba(0,0,0,0.1); border-top: 6px solid #333; }
.invoice-header { text-align: center; margin-bottom: 20px; padding-bottom: 10px; border-bottom: 2px solid #eee; }
.invoice-header h1 { font-size: 28px; color: #333; margin: 0; }
.invoice-header p { font-size: 13px; color: #666; margin: 3px 0; }
h2 { font-size: 20px; color: #333; text-align: center; margin: 20px 0 10px; letter-spacing: 0.5px; }
.invoice-details { margin: 15px 0; display: grid; grid-template-columns: 1fr 1fr; gap: 10px; background-color: #fafafa; padding: 15px; border-radius: 8px; }
.invoice-details p { margin: 0; font-size: 15px; color: #333; }
.status { color: white; background-color: {{if .IsPaid}}#28a745{{else}}#dc3545{{end}}; padding: 8px; border-radius: 20px; display: inline-block; font-weight: bold; font-size: 12px; text-transform: uppercase; }
table { width: 100%; margin-top: 15px; border-collapse: collapse; font-size: 15px; }
th, td { padding: 10px; border-bottom: 1px solid #ddd; text-align: center; }
th { background-color: #f4f4f4; font-weight: bold; color: #666; }
td.amount { font-size: 16px; font-weight: bold; color: #333; }
.total-row td { font-weight: bold; border-top: 2px solid #333; border-bottom: none; }
.invoice-footer { text-align: center; font-size: 12px; color: #888; margin-top: 25px; }
</style>
</head>
<body onload="window.print()">
<div class="invoice-container">
  <div class="invoice-header">
    <h1>{{.Clinic.Name}}</h1>
    <p>{{.Clinic.Tagline}}</p>
    <p>Contact: {{.Clinic.Contact}} | {{.Clinic.Address}}</p>
    <p>Date: {{.Date}} | Time: {{.Time}}</p>
  </div>

  <h2>Patient Invoice</h2>

  <div class="invoice-details">
    <p><strong>Patient Name:</strong> {{.Name}}</p>
    <p><strong>Gender:</strong> {{.Gender}}</p>
    <p><strong>Contact Number:</strong> {{.Contact}}</p>
    <p><strong>Age:</strong> {{.Age}}</p>
    <p><strong>Doctor:</strong> {{.Doctor}}</p>
  </div>

  <table>
    <thead>
      <tr><th>Description</th><th>Amount</th></tr>
    </thead>
    <tbody>
      <tr><td>Consultation/Service Fee</td><td class="amount">{{.Total}}</td></tr>
      <tr><td>Amount Paid</td><td class="amount">{{.Paid}}</td></tr>
      <tr><td>Total Due</td><td class="amount">{{.Due}}</td></tr>
      <tr class="total-row"><td><strong>Status</strong></td><td><span class="status">{{.Status}}</span></td></tr>
    </tbody>
  </table>

  <div class="invoice-footer">
    <p>Thank you for choosing {{.Clinic.Name}}.</p>
    <p>This is a computer-generated invoice. No signature required.</p>
  </div>
</div>
</body>
</html>
`))

// Render produces the invoice document for a patient at the given moment.
func Render(clinic Clinic, p *clinicapi.Patient, now time.Time) (string, error) {
	data := invoiceData{
		Clinic:  clinic,
		Date:    now.Format("1/2/2006"),
		Time:    now.Format("3:04:05 PM"),
		Name:    p.Name,
		Gender:  p.Gender,
		Contact: p.ContactNumber,
		Age:     p.Age,
		Doctor:  p.DoctorName,
		Total:   billing.FormatAmount(p.TotalAmount),
		Paid:    billing.FormatAmount(p.PaidAmount),
		Due:     billing.FormatAmount(billing.Remaining(p)),
		Status:  billing.Status(p),
		IsPaid:  billing.IsPaid(p),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("invoice: execute: %w", err)
	}
	return buf.String(), nil
}

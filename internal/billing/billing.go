// Package billing derives payment status from a patient's totals.
package billing

import (
	"strconv"

	"github.com/gikcare/frontdesk/internal/clinicapi"
)

// Remaining returns the amount still owed.
func Remaining(p *clinicapi.Patient) float64 {
	return p.TotalAmount - p.PaidAmount
}

// IsPaid reports whether the patient has settled in full. Exact equality is
// intentional and matches how the rest of the system decides "Paid".
func IsPaid(p *clinicapi.Patient) bool {
	return Remaining(p) == 0
}

// Status is the user-visible payment status label.
func Status(p *clinicapi.Patient) string {
	if IsPaid(p) {
		return "Paid"
	}
	return "Unpaid"
}

// FormatAmount renders a currency amount with no decimal places.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

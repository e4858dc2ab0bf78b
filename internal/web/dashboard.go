package web

import (
	"math"
	"net/http"

	"github.com/gikcare/frontdesk/internal/billing"
)

type dashboardData struct {
	baseData
	Currency     string
	PatientCount int
	Total        string
	Paid         string
	Remaining    string
	TotalPct     int
	PaidPct      int
	RemainingPct int
}

// Dashboard renders the home view: patient count, clinic-wide amounts, and
// the paid-versus-total comparison bars.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{
		baseData:  h.base(w, r, "Dashboard"),
		Currency:  h.cfg.Currency,
		Total:     "0",
		Paid:      "0",
		Remaining: "0",
	}

	count, err := h.client.PatientCount(r.Context())
	if err != nil {
		h.logger.Error("dashboard patient count fetch failed", "error", err)
		data.FlashError = actionError(err, "Error loading dashboard data.")
		h.render(w, "dashboard", http.StatusOK, data)
		return
	}
	amounts, err := h.client.DashboardAmounts(r.Context())
	if err != nil {
		h.logger.Error("dashboard amounts fetch failed", "error", err)
		data.FlashError = actionError(err, "Error loading dashboard data.")
		h.render(w, "dashboard", http.StatusOK, data)
		return
	}

	remaining := amounts.TotalAmount - amounts.PaidAmount
	denom := amounts.TotalAmount
	if denom == 0 {
		denom = 1
	}

	data.PatientCount = count
	data.Total = billing.FormatAmount(amounts.TotalAmount)
	data.Paid = billing.FormatAmount(amounts.PaidAmount)
	data.Remaining = billing.FormatAmount(remaining)
	data.TotalPct = pct(amounts.TotalAmount, denom)
	data.PaidPct = pct(amounts.PaidAmount, denom)
	data.RemainingPct = pct(remaining, denom)

	h.render(w, "dashboard", http.StatusOK, data)
}

func pct(part, whole float64) int {
	return int(math.Round(part / whole * 100))
}

package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gikcare/frontdesk/internal/clinicapi"
	"github.com/gikcare/frontdesk/internal/config"
	"github.com/gikcare/frontdesk/internal/notify"
	"github.com/gikcare/frontdesk/internal/observability/metrics"
	"github.com/gikcare/frontdesk/pkg/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves every front-desk view. It holds no entity state: each
// request fetches from the clinic API and mutations re-fetch before the
// next render.
type Handler struct {
	client    *clinicapi.Client
	cfg       *config.Config
	logger    *logging.Logger
	notifier  notify.Notifier
	metrics   *metrics.ViewMetrics
	templates *template.Template
	now       func() time.Time
}

// NewHandler creates the view handler.
func NewHandler(client *clinicapi.Client, cfg *config.Config, logger *logging.Logger, notifier notify.Notifier, viewMetrics *metrics.ViewMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if notifier == nil {
		notifier = notify.WhatsAppNotifier{}
	}
	return &Handler{
		client:    client,
		cfg:       cfg,
		logger:    logger,
		notifier:  notifier,
		metrics:   viewMetrics,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		now:       time.Now,
	}
}

// SetClock overrides the handler's time source (useful for testing the
// today/tomorrow buckets).
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

type baseData struct {
	Title        string
	ClinicName   string
	Year         int
	FlashSuccess string
	FlashError   string
}

func (h *Handler) base(w http.ResponseWriter, r *http.Request, title string) baseData {
	kind, message := popFlash(w, r)
	data := baseData{
		Title:      title,
		ClinicName: h.cfg.ClinicName,
		Year:       h.now().Year(),
	}
	switch kind {
	case "success":
		data.FlashSuccess = message
	case "error":
		data.FlashError = message
	}
	return data
}

func (h *Handler) render(w http.ResponseWriter, view string, status int, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, view+".html", data); err != nil {
		h.logger.Error("template render failed", "view", view, "error", err)
		h.metrics.ObserveRender(view, "error")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	h.metrics.ObserveRender(view, "ok")
}

// actionError maps a failed clinic API call to the user-facing notification:
// the server message when one was provided, a generic connection hint for
// transport failures, otherwise the action's own fallback.
func actionError(err error, fallback string) string {
	var apiErr *clinicapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return "Error: " + apiErr.Message
		}
		return fallback + " Please try again."
	}
	return fallback + " Please check your connection."
}

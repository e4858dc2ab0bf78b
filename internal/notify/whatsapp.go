// Package notify composes outbound appointment reminders. Delivery is an
// OS-level handoff to an external messaging app via deep link; nothing is
// tracked, confirmed, or retried after dispatch.
package notify

import (
	"fmt"
	"net/url"

	"github.com/gikcare/frontdesk/internal/contact"
	"github.com/gikcare/frontdesk/internal/dates"
)

// Notifier composes a reminder handoff for a phone number and message.
type Notifier interface {
	Notify(phone, message string) string
}

// WhatsAppNotifier builds whatsapp:// deep links the browser hands to the
// native app.
type WhatsAppNotifier struct{}

// Notify returns the deep link that opens the messaging app with the
// reminder pre-filled.
func (WhatsAppNotifier) Notify(phone, message string) string {
	return fmt.Sprintf("whatsapp://send?phone=%s&text=%s",
		url.QueryEscape(contact.Normalize(phone)),
		url.QueryEscape(message))
}

// ReminderMessage is the fixed reminder template used by the appointment
// views. Unparseable dates fall back to the stored string as-is.
func ReminderMessage(name, date string) string {
	display := date
	if t, err := dates.Parse(date); err == nil {
		display = t.Format(dates.ReminderLayout)
	}
	return fmt.Sprintf("Hi %s, your appointment is on %s. Sorry for the inconvenience.", name, display)
}

// ReminderLink composes the full reminder deep link for an appointment row.
func ReminderLink(n Notifier, phone, name, date string) string {
	return n.Notify(phone, ReminderMessage(name, date))
}

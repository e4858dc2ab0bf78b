// Package contact composes and validates patient phone numbers from the
// three-segment entry used on the front-desk forms: free-text country code,
// 3-digit network code, 7-digit subscriber number.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

const (
	NetworkCodeLen      = 3
	SubscriberNumberLen = 7
)

var (
	ErrNetworkCodeLength      = errors.New("network code must be exactly 3 digits")
	ErrSubscriberNumberLength = errors.New("subscriber number must be exactly 7 digits")
)

// Format validates the segments and composes the canonical contact string
// "<countryCode> <networkCode> <subscriberNumber>". Segment length violations
// are returned as user-facing errors; nothing is submitted upstream on failure.
func Format(countryCode, networkCode, subscriberNumber string) (string, error) {
	networkCode = strings.TrimSpace(networkCode)
	subscriberNumber = strings.TrimSpace(subscriberNumber)
	if len(networkCode) != NetworkCodeLen {
		return "", ErrNetworkCodeLength
	}
	if len(subscriberNumber) != SubscriberNumberLen {
		return "", ErrSubscriberNumberLength
	}
	return fmt.Sprintf("%s %s %s", countryCode, networkCode, subscriberNumber), nil
}

// MaskDigits keeps only digit characters and caps the result at max runes.
// This mirrors the entry-time masking on the forms: non-digits are silently
// discarded rather than rejected.
func MaskDigits(value string, max int) string {
	var b strings.Builder
	for _, r := range value {
		if r < '0' || r > '9' {
			continue
		}
		if b.Len() >= max {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize prepares a stored contact string for an E.164-ish deep link:
// a leading "+" is guaranteed, nothing else is changed.
func Normalize(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+" + phone
}

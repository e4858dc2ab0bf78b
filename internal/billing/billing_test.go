package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gikcare/frontdesk/internal/clinicapi"
)

func TestPaidPatient(t *testing.T) {
	p := &clinicapi.Patient{TotalAmount: 1000, PaidAmount: 1000}
	assert.Equal(t, 0.0, Remaining(p))
	assert.True(t, IsPaid(p))
	assert.Equal(t, "Paid", Status(p))
}

func TestUnpaidPatient(t *testing.T) {
	p := &clinicapi.Patient{TotalAmount: 1000, PaidAmount: 600}
	assert.Equal(t, 400.0, Remaining(p))
	assert.False(t, IsPaid(p))
	assert.Equal(t, "Unpaid", Status(p))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "400", FormatAmount(400))
	assert.Equal(t, "400", FormatAmount(400.4))
	assert.Equal(t, "0", FormatAmount(0))
}

package api_errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiErrors(t *testing.T) {
	errs := NewMultiErrors()
	assert.False(t, errs.HasErrors())
	assert.Equal(t, CodeInvalidRequest, errs.FirstCode("subject"))

	errs.Add("customer_email", CodeInvalidCustomerEmail, "invalid address", nil)
	errs.Add("subject", CodeMissingSubject, "subject is required", nil)

	assert.True(t, errs.HasErrors())
	assert.Equal(t, CodeMissingSubject, errs.FirstCode("subject", "customer_email"))
	assert.Equal(t, CodeInvalidCustomerEmail, errs.FirstCode("customer_email", "subject"))
	assert.Equal(t, "customer_email: invalid address | subject: subject is required", errs.Error())
}

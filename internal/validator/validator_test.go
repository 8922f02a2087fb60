package validator

import (
	"testing"

	"jobportal_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SendNotificationRequest(t *testing.T) {
	t.Parallel()
	v := New()

	valid := dto.SendNotificationRequest{
		Title: "t", Message: "m", RecipientType: "all_students",
	}
	assert.NoError(t, v.Validate(&valid))

	// Пустая категория допустима, сервис подставит announcement
	valid.Type = ""
	assert.NoError(t, v.Validate(&valid))

	valid.Type = "job_alert"
	assert.NoError(t, v.Validate(&valid))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	t.Parallel()
	v := New()

	invalid := dto.SendNotificationRequest{
		Message: "m", RecipientType: "everyone",
	}
	err := v.Validate(&invalid)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "title", "имена полей в ошибках берутся из json-тегов")
	assert.Contains(t, vErr.Errors, "recipientType")
}

func TestValidate_ApplicationStatusRule(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(&dto.UpdateApplicationStatusRequest{Status: "Shortlisted"}))
	assert.Error(t, v.Validate(&dto.UpdateApplicationStatusRequest{Status: "Hired"}))
	assert.Error(t, v.Validate(&dto.UpdateApplicationStatusRequest{Status: ""}))
}

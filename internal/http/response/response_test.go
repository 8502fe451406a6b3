package response_test

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/reminder-planner/internal/http/response"
	"github.com/magabrotheeeer/reminder-planner/internal/lib/validation"
)

func TestOKWithData(t *testing.T) {
	resp := response.OKWithData(map[string]int{"count": 3})
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := response.Error("something broke")
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestFieldErrors(t *testing.T) {
	resp := response.FieldErrors(map[string]string{"email": "Email is required when Email reminder method is selected."})
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Contains(t, resp.Errors, "email")
}

func TestValidationError_UsesJSONFieldNames(t *testing.T) {
	type payload struct {
		Email  string `json:"email" validate:"required,email"`
		Method string `json:"reminder_method" validate:"required,oneof=Email SMS"`
	}

	err := validation.New().Struct(payload{Email: "not-an-email", Method: "Pigeon"})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "reminder_method")
}

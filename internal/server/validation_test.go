package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Age      int    `validate:"gte=16"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(signupForm{Email: "not-an-email", Password: "short", Age: 12})

	assert.Len(t, errs, 3)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	assert.Equal(t, "Email must be a valid email address", fields["Email"])
	assert.Equal(t, "Password must be at least 8 characters", fields["Password"])
	assert.Equal(t, "Age must be greater than or equal to 16", fields["Age"])
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(signupForm{Email: "anna@example.com", Password: "long enough", Age: 30})
	assert.Empty(t, errs)
}

func TestRespondWithValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithValidationErrors(c, []ValidationError{{Field: "Email", Tag: "required", Message: "Email is required"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
	assert.Contains(t, w.Body.String(), "Email is required")
}

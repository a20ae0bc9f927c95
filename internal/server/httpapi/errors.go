package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Field names in validation messages come from the json tag so that clients
// can key inline form errors without a translation table.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindingFailed renders a request-binding error. Validation failures become a
// 422 with per-field messages; anything else (malformed JSON, wrong types) is
// a generic 400.
func bindingFailed(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Malformed request."})
		return
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}

	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  fields,
	})
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s does not match.", label)
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}

// validationError renders a single-field 422 outside of struct binding, e.g.
// an unknown role value.
func validationError(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  map[string][]string{field: {message}},
	})
}

// serviceError maps service-layer sentinels onto HTTP responses. Invalid
// credentials are deliberately a 422, not a 401: a 401 means the bearer token
// is no longer good and makes clients drop their session.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		validationError(c, "login", "These credentials do not match our records.")
	case errors.Is(err, common.ErrAccountPending):
		c.JSON(http.StatusForbidden, gin.H{"message": "Your account is pending approval."})
	case errors.Is(err, common.ErrMFACodeInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": "The verification code is invalid."})
	case errors.Is(err, common.ErrMFACodeExpired):
		c.JSON(http.StatusGone, gin.H{"message": "The verification code has expired. Sign in again."})
	case errors.Is(err, common.ErrMFATooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many attempts. Sign in again."})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
	}
}

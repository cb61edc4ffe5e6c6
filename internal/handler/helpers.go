package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery binds and validates query-string filters.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeServiceError maps a service error to an HTTP response: missing records
// become 404s, conflicts 409s, domain rule violations 400s with the service's
// message. Anything unclassified is an infrastructure failure — it goes to
// the ErrorHandler middleware, which logs it and returns the 500 envelope so
// raw driver errors never reach clients.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case strings.Contains(err.Error(), "not found"):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrPlotNotAvailable),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrOverpayment):
		// State conflicts: the request was well-formed but lost a race or
		// arrived after the fact.
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case service.IsValidationError(err):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}

package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/tictactoe-go/internal/api/apierr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a JSON body into v and validates it.
// Failures are returned as INVALID_REQUEST API errors.
func Decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return apierr.NewInvalidRequestError("Invalid JSON body")
	}
	return Validate(v)
}

// Unmarshal is Decode for an in-memory payload
func Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return apierr.NewInvalidRequestError("Invalid JSON body")
	}
	return Validate(v)
}

// Validate checks v's validate tags
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return apierr.NewInvalidRequestError("Invalid fields: " + strings.Join(fields, ", "))
		}
		return apierr.NewInvalidRequestError(err.Error())
	}
	return nil
}

package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phonePattern is the dialled-number grouping accepted for phone fields.
var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// ClientPayload is the full create/update payload. Updates are full-payload
// replaces, so create and update share one rule set.
type ClientPayload struct {
	FirstName    string `validate:"required,max=100"`
	LastName     string `validate:"required,max=100"`
	Email        string `validate:"required,max=255,email"`
	Phone        string `validate:"max=20,phone"`
	Company      string `validate:"max=255"`
	AddressLine1 string `validate:"max=255"`
	AddressLine2 string `validate:"max=255"`
	City         string `validate:"max=100"`
	State        string `validate:"max=100"`
	PostalCode   string `validate:"max=20"`
	Country      string `validate:"max=100"`
}

// FieldError is one violated rule. Field names are reported in the JSON
// camelCase form used on the wire.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// wire field names and per-rule messages, keyed by struct field
var (
	fieldNames = map[string]string{
		"FirstName":    "firstName",
		"LastName":     "lastName",
		"Email":        "email",
		"Phone":        "phone",
		"Company":      "company",
		"AddressLine1": "addressLine1",
		"AddressLine2": "addressLine2",
		"City":         "city",
		"State":        "state",
		"PostalCode":   "postalCode",
		"Country":      "country",
	}
	fieldLabels = map[string]string{
		"FirstName":    "First name",
		"LastName":     "Last name",
		"Email":        "Email",
		"Phone":        "Phone",
		"Company":      "Company",
		"AddressLine1": "Address line 1",
		"AddressLine2": "Address line 2",
		"City":         "City",
		"State":        "State",
		"PostalCode":   "Postal code",
		"Country":      "Country",
	}
)

// ClientValidator checks payloads against the field-level rules. It is a pure
// function of the payload; uniqueness is the orchestrator's concern.
type ClientValidator struct {
	validate *validator.Validate
}

func NewClientValidator() *ClientValidator {
	v := validator.New()

	// Optional field: empty passes, anything else must match the grouping.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || phonePattern.MatchString(s)
	})

	return &ClientValidator{validate: v}
}

// Validate returns every violated rule, not just the first. A nil slice means
// the payload is valid.
func (cv *ClientValidator) Validate(payload ClientPayload) []FieldError {
	err := cv.validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "payload", Message: err.Error()}}
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldNames[fe.StructField()],
			Message: messageFor(fe),
		})
	}
	return fieldErrors
}

func messageFor(fe validator.FieldError) string {
	label := fieldLabels[fe.StructField()]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters.", label, fe.Param())
	case "email":
		return "Email must be a valid email address."
	case "phone":
		return "Phone must be in format XXX-XXX-XXXX."
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

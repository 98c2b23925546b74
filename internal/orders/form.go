package orders

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
)

// Areas is the closed list of delivery regions offered at checkout.
var Areas = []string{
	"Dhaka",
	"Chittagong",
	"Sylhet",
	"Rajshahi",
	"Khulna",
	"Barishal",
	"Rangpur",
	"Mymensingh",
	"Cumilla",
	"Others",
}

// OrderForm carries the customer details entered at checkout. There is no
// account linkage; this is everything the store knows about the buyer.
type OrderForm struct {
	Name    string `json:"name" validate:"required,min=3"`
	Phone   string `json:"phone" validate:"required,bdphone"`
	Address string `json:"address" validate:"required,min=10"`
	Area    string `json:"area" validate:"required,area"`
	Notes   string `json:"notes,omitempty" validate:"max=500"`
}

// Bangladeshi mobile numbers: optional +880/0 prefix, operator digit 3-9,
// eight more digits. Whitespace is stripped before matching.
var bdPhonePattern = regexp.MustCompile(`^(\+880|0)?1[3-9]\d{8}$`)

var formValidate = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("bdphone", func(fl validator.FieldLevel) bool {
		phone := strings.ReplaceAll(fl.Field().String(), " ", "")
		return bdPhonePattern.MatchString(phone)
	})
	_ = v.RegisterValidation("area", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, area := range Areas {
			if value == area {
				return true
			}
		}
		return false
	})
	return v
}

// ValidateForm checks the customer form independently of the cart and
// reports every failing field at once.
func ValidateForm(form OrderForm) error {
	err := formValidate.Struct(form)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = formValidationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func formValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "bdphone":
		return "must be a valid Bangladeshi phone number"
	case "area":
		return "must be one of the offered delivery areas"
	}
	return "is invalid"
}

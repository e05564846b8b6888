package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is returned when a payload fails validation before any network
// call is made.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	first := e.Issues[0]
	if first.Field == "" {
		return first.Reason
	}
	return first.Field + " " + first.Reason
}

var (
	once     sync.Once
	validate *validator.Validate

	periodPattern = regexp.MustCompile(`^(\d{4}-(0[1-9]|1[0-2])|Q[1-4] \d{4})$`)
	monthPattern  = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("review_period", func(fl validator.FieldLevel) bool {
			return periodPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("year_month", func(fl validator.FieldLevel) bool {
			return monthPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Struct validates v against its `validate` tags and returns *Error.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Issues: []Issue{{Reason: err.Error()}}}
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{Field: fe.Field(), Reason: reason(fe)})
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })
	return &Error{Issues: issues}
}

// Check wraps a single hand-written rule in the same error type.
func Check(ok bool, field, reason string) error {
	if ok {
		return nil
	}
	return &Error{Issues: []Issue{{Field: field, Reason: reason}}}
}

func IsYearMonth(value string) bool {
	return monthPattern.MatchString(value)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a valid date in YYYY-MM-DD format"
	case "eqfield":
		return "must match " + fe.Param()
	case "review_period":
		return "must be YYYY-MM or Q<n> YYYY"
	case "year_month":
		return "must be YYYY-MM"
	default:
		return "is invalid"
	}
}

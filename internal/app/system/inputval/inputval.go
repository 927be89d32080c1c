// Package inputval validates contact form and content import input with
// waffle's pantry/validate struct tags, and turns failures into messages a
// visitor or editor can act on.
//
//	type importSubject struct {
//		Title string `validate:"required" label:"Title"`
//		Slug  string `validate:"required,slug" label:"Slug"`
//	}
//
//	if res := inputval.ValidateAll(in); res.HasErrors() {
//		return errors.New(res.All())
//	}
package inputval

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dalemusser/stratapapers/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError represents a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Rule    string // the rule that failed, e.g. "required"
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasRule reports whether any field failed the given rule.
func (r *Result) HasRule(rule string) bool {
	for _, e := range r.Errors {
		if e.Rule == rule {
			return true
		}
	}
	return false
}

// All returns all error messages joined with "; ".
func (r *Result) All() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// basicEmailRe is a deliberately loose local@domain.tld check.
var basicEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validator = sync.OnceValue(func() *validate.Validator {
	v := validate.New()
	registerRules(v)
	return v
})

// stringRules are the custom rules; each fails for non-string fields.
var stringRules = map[string]func(string) bool{
	"httpurl":    func(s string) bool { return s == "" || IsValidHTTPURL(s) },
	"basicemail": IsBasicEmail,
	"slug":       models.IsValidSlug,
	"season":     models.IsValidSeason,
	"level":      models.IsValidLevel,
	"difficulty": models.IsValidDifficulty,
}

func registerRules(v *validate.Validator) {
	for name, ok := range stringRules {
		v.RegisterRuleFunc(name, func(value any) bool {
			s, isString := value.(string)
			return isString && ok(s)
		}, name)
	}
}

// ValidateAll checks every field of s and reports every failure, so callers
// can rank failures by rule.
//
// Besides the pantry/validate rules (required, email, oneof, min, max) these
// are registered:
//   - httpurl: empty, or an http:// or https:// URL
//   - basicemail: local@domain.tld with no whitespace
//   - slug: lowercase letters, digits and dashes
//   - season, level, difficulty: catalog enums
func ValidateAll(s any) *Result {
	return run(validator(), s)
}

func run(v *validate.Validator, s any) *Result {
	result := &Result{}

	err := v.Struct(s)
	if err == nil {
		return result
	}

	labels := getFieldLabels(s)

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			label := labels[e.Field]
			if label == "" {
				label = e.Field
			}
			result.Errors = append(result.Errors, FieldError{
				Field:   e.Field,
				Label:   label,
				Rule:    e.Rule,
				Message: formatMessage(label, e.Rule, e.Param),
			})
		}
	}

	return result
}

// getFieldLabels extracts the "label" tag from struct fields.
func getFieldLabels(s any) map[string]string {
	labels := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return labels
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		fieldName := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				fieldName = parts[0]
			}
		}

		if label := field.Tag.Get("label"); label != "" {
			labels[fieldName] = label
		}
	}

	return labels
}

// formatMessage creates a user-friendly message for a validation rule.
func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "email", "basicemail":
		return "A valid email address is required."
	case "oneof", "enum":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min":
		return label + " must be at least " + param + "."
	case "max":
		return label + " must be at most " + param + "."
	case "httpurl":
		return label + " must be a valid URL starting with http:// or https://."
	case "slug":
		return label + " may only contain lowercase letters, digits and dashes."
	case "season", "level", "difficulty":
		return label + " is not a recognised " + rule + "."
	default:
		return label + " is invalid."
	}
}

// IsBasicEmail reports whether s looks like local@domain.tld.
// It is intentionally looser than RFC 5322.
func IsBasicEmail(s string) bool {
	return basicEmailRe.MatchString(s)
}

// IsValidHTTPURL checks if the given string is a valid http:// or https:// URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

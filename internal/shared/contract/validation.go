package contract

import (
	stderrors "errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/reshetovitsme/quote-feed/internal/modules/quote/domain"
	"github.com/reshetovitsme/quote-feed/internal/shared/errors"
	"github.com/samber/lo"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// messages maps validator tags to the text shown to API and admin page users.
var messages = map[string]string{
	"required": "is required",
	"notblank": "must not be empty",
	"datetime": "must be a valid date in YYYY-MM-DD format",
	"xmlchars": "must not contain control characters",
}

// invalidXMLClass is the JavaScript character class matching what xmlchars
// rejects.
const invalidXMLClass = `[\u0000-\u0008\u000B\u000C\u000E-\u001F\uFFFE\uFFFF]`

// Validator returns the shared validator, reporting fields by their JSON name.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("xmlchars", func(fl validator.FieldLevel) bool {
			return domain.ValidXMLText(fl.Field().String())
		})
	})
	return validate
}

// Validate checks the input against the ruleset and returns the first
// violation as an *errors.ValidationError.
func (in CreateQuoteInput) Validate() error {
	err := Validator().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.NewValidationError("", err.Error())
	}

	first := fieldErrs[0]
	return errors.NewValidationError(first.Field(), first.Field()+" "+message(first.Tag()))
}

func message(tag string) string {
	if msg, ok := messages[tag]; ok {
		return msg
	}
	return "failed validation: " + tag
}

// FieldRule is the client-side rendering of one field's validate tag.
type FieldRule struct {
	Field    string            `json:"field"`
	Required bool              `json:"required"`
	Layout   string            `json:"layout,omitempty"`
	Pattern  string            `json:"pattern,omitempty"`
	Invalid  string            `json:"invalid,omitempty"`
	Messages map[string]string `json:"messages"`
}

// Rules derives the create-quote ruleset from CreateQuoteInput's tags so the
// admin page enforces exactly what the API enforces.
func Rules() []FieldRule {
	t := reflect.TypeOf(CreateQuoteInput{})
	fields := make([]reflect.StructField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fields = append(fields, t.Field(i))
	}

	return lo.Map(fields, func(f reflect.StructField, _ int) FieldRule {
		rule := FieldRule{Field: jsonName(f), Messages: map[string]string{}}
		for _, tag := range strings.Split(f.Tag.Get("validate"), ",") {
			name, param, _ := strings.Cut(tag, "=")
			switch name {
			case "required", "notblank":
				rule.Required = true
			case "datetime":
				rule.Layout = param
				rule.Pattern = layoutPattern(param)
			case "xmlchars":
				rule.Invalid = invalidXMLClass
			}
			rule.Messages[name] = rule.Field + " " + message(name)
		}
		return rule
	})
}

var layoutDigits = regexp.MustCompile(`\d`)

// layoutPattern turns a numeric Go time layout such as 2006-01-02 into an
// HTML pattern attribute value.
func layoutPattern(layout string) string {
	return layoutDigits.ReplaceAllString(regexp.QuoteMeta(layout), `\d`)
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

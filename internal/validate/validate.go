package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var check *validator.Validate

var translator ut.Translator

func init() {
	check = validator.New(validator.WithRequiredStructEnabled())
	check.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(check, translator)
}

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every failed rule for a struct check.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range fe {
		parts = append(parts, f.Field)
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}

// Fields returns just the offending field names.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for _, f := range fe {
		fields = append(fields, f.Field)
	}
	return fields
}

// Check validates val against its `validate` struct tags, reporting every
// failing field with its json name.
func Check(val any) error {
	err := check.Struct(val)
	if err == nil {
		return nil
	}

	verrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fe := make(FieldErrors, 0, len(verrors))
	for _, v := range verrors {
		fe = append(fe, FieldError{
			Field:   v.Field(),
			Message: v.Translate(translator),
		})
	}
	return fe
}

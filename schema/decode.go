package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"github.com/sinbum/korea-public-data-be-sub000/logger"
)

// UnknownKindError reports a kind with no registered item shape. This is a
// programmer or configuration error and is never retried.
type UnknownKindError struct {
	Kind Kind
}

// Error implements the error interface.
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("schema: unknown kind %s", e.Kind)
}

// ValidationError reports a row that failed validation for its kind.
type ValidationError struct {
	// Kind is the schema kind the row was decoded against.
	Kind Kind
	// Field is the first offending field.
	Field string
	// Err is the underlying decode or validation error.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema: invalid %s row: field %s: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("schema: invalid %s row: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Decode validates and coerces envelope rows into typed items of the
// given kind. Rows failing decode or validation are dropped and logged;
// only an unknown kind fails the whole call.
func Decode(kind Kind, rows []map[string]any, log *logger.Logger) ([]Item, error) {
	if !kind.known() {
		return nil, &UnknownKindError{Kind: kind}
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("schema")

	items := make([]Item, 0, len(rows))
	for i, row := range rows {
		item, err := decodeRow(kind, row)
		if err != nil {
			log.Warn("dropping invalid row", logger.Fields(
				logger.FieldKind, kind.String(),
				"row", i,
				logger.FieldError, err.Error(),
			))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeRow coerces one row map into the kind's typed shape and validates
// required fields.
func decodeRow(kind Kind, row map[string]any) (Item, error) {
	var item Item
	var err error

	switch kind {
	case KindAnnouncement:
		item, err = decodeInto[Announcement](kind, row)
	case KindBusiness:
		item, err = decodeInto[Business](kind, row)
	case KindContent:
		item, err = decodeInto[Content](kind, row)
	default:
		return nil, &UnknownKindError{Kind: kind}
	}
	return item, err
}

// decodeInto runs the weakly-typed map decode followed by struct
// validation for one concrete item type.
func decodeInto[T Item](kind Kind, row map[string]any) (Item, error) {
	var out T

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, &ValidationError{Kind: kind, Err: err}
	}
	if err := dec.Decode(row); err != nil {
		return nil, &ValidationError{Kind: kind, Err: err}
	}

	if err := getValidator().Struct(out); err != nil {
		field := ""
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field = verrs[0].Field()
		}
		return nil, &ValidationError{Kind: kind, Field: field, Err: err}
	}
	return out, nil
}

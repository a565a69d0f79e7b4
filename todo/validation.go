package todo

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrEmptyTitle is returned when a todo title is empty or blank.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleLength is returned when a title is outside the allowed length.
	ErrTitleLength = errors.New("title length out of range")

	// ErrInvalidPriority is returned when priority is outside valid range.
	ErrInvalidPriority = errors.New("priority must be between 1 and 100")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrDuplicateTitle is returned when another todo already uses the title.
	ErrDuplicateTitle = errors.New("a task with this name already exists")

	// ErrTodoNotFound is returned when a todo with the given ID doesn't exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrNotCompleted is returned when deleting a todo that is not completed.
	ErrNotCompleted = errors.New("only completed tasks can be deleted")
)

// Messages shown next to form fields.
const (
	MessageTitleRequired  = "Task Name is required."
	MessageTitleLength    = "Task Name must be between 3 and 100 characters."
	MessagePriorityRange  = "Priority must be a number between 1 and 100."
	MessageStatusInvalid  = "Status is invalid."
	MessageDuplicateTitle = "A task with this name already exists."
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every invalid field of a todo.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, " ")
}

func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, 0, len(errs))
	for _, e := range errs {
		out = append(out, e)
	}
	return out
}

// Fields maps field names to their messages.
func (errs ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, ok := fields[e.Field]; !ok {
			fields[e.Field] = e.Message
		}
	}
	return fields
}

// DuplicateTitleError returns the validation error reported when the title
// rule rejects a write.
func DuplicateTitleError() ValidationErrors {
	return ValidationErrors{{Field: "title", Message: MessageDuplicateTitle, Err: ErrDuplicateTitle}}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func todoValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return !internalstrings.IsBlank(fl.Field().String())
		})
		_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
			return Status(fl.Field().String()).IsValid()
		})
		validate = v
	})
	return validate
}

// ValidateTodo checks the fields a user supplies when creating or editing a
// todo. It returns ValidationErrors, or nil when the todo is valid. The ID
// is not checked.
func ValidateTodo(t Todo) error {
	err := todoValidator().Struct(t)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	result := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, translateFieldError(fe))
	}
	return result
}

func translateFieldError(fe validator.FieldError) ValidationError {
	switch fe.Field() {
	case "title":
		if fe.Tag() == "notblank" {
			return ValidationError{Field: "title", Message: MessageTitleRequired, Err: ErrEmptyTitle}
		}
		return ValidationError{Field: "title", Message: MessageTitleLength, Err: ErrTitleLength}
	case "priority":
		return ValidationError{Field: "priority", Message: MessagePriorityRange, Err: ErrInvalidPriority}
	case "status":
		return ValidationError{Field: "status", Message: MessageStatusInvalid, Err: ErrInvalidStatus}
	default:
		return ValidationError{Field: fe.Field(), Message: fe.Error()}
	}
}

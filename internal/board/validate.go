package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/baiirun/launchboard/internal/model"
)

// ErrInvalidTask is returned when input fails validation.
var ErrInvalidTask = errors.New("invalid task")

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateTask(task model.Task) error {
	if err := validate.Struct(task); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTask, describe(err))
	}
	return nil
}

func validatePatch(patch model.TaskPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidTask)
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTask, *patch.Status)
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, *patch.Priority)
	}
	if patch.Order != nil {
		if err := validate.Var(*patch.Order, "min=0"); err != nil {
			return fmt.Errorf("%w: order must not be negative", ErrInvalidTask)
		}
	}
	return nil
}

// describe turns validator errors into "title is required"-style text.
func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s (got %q)", field, fe.Param(), fe.Value()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(msgs, "; ")
}

package usecase

import (
	"errors"
	"fmt"

	"notekeeper/model"
	"notekeeper/utils"

	"github.com/go-playground/validator/v10"
)

// ValidateDraft checks a create request and normalizes it into a NoteInput
func ValidateDraft(draft model.NoteDraft) (model.NoteInput, error) {
	if err := utils.Validate.Struct(draft); err != nil {
		return model.NoteInput{}, toValidationError(err)
	}

	input := model.NoteInput{Content: draft.Content}
	if draft.Important != nil {
		input.Important = *draft.Important
	}
	return input, nil
}

// ValidateUpdate checks an update request. Only the importance flag is
// carried forward; content is immutable once stored.
func ValidateUpdate(update model.NoteUpdate) (model.NotePatch, error) {
	if err := utils.Validate.Struct(update); err != nil {
		return model.NotePatch{}, toValidationError(err)
	}
	return model.NotePatch{Important: *update.Important}, nil
}

// MalformedBody is returned when a request body is not valid JSON
func MalformedBody() *model.ValidationError {
	return &model.ValidationError{
		Field:   "body",
		Reason:  model.ReasonMalformed,
		Message: "malformatted JSON",
	}
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validation could not run: %w", err)
	}

	fe := fieldErrs[0]
	field := fe.Field()
	utils.TrackError("validation", field+"_"+fe.Tag())

	switch fe.Tag() {
	case "required":
		return &model.ValidationError{
			Field:   field,
			Reason:  model.ReasonMissing,
			Message: field + " missing",
		}
	case "min":
		return &model.ValidationError{
			Field:   field,
			Reason:  model.ReasonTooShort,
			Message: fmt.Sprintf("%s is shorter than the minimum allowed length (%s)", field, fe.Param()),
		}
	case "unset":
		return &model.ValidationError{
			Field:   field,
			Reason:  model.ReasonServerAssigned,
			Message: field + " is assigned by the server",
		}
	}
	return &model.ValidationError{
		Field:   field,
		Reason:  fe.Tag(),
		Message: fmt.Sprintf("%s is invalid", field),
	}
}

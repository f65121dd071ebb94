package validation

import (
	"time"

	"canvas-tasks/internal/domain"
)

// DraftInputFormat is the due date format accepted from user input.
const DraftInputFormat = "2006-01-02 15:04"

// DraftValidator validates task drafts before they reach the creation
// coordinator. The coordinator assumes a well-formed draft and does not
// re-validate.
type DraftValidator struct {
	validator *Validator
	reference *time.Location
}

// NewDraftValidator creates a new draft validator for the given reference
// timezone.
func NewDraftValidator(reference *time.Location) *DraftValidator {
	return &DraftValidator{
		validator: NewValidator(),
		reference: reference,
	}
}

// ValidateTitle validates a draft title for creation
func (dv *DraftValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := dv.validator.TrimAndValidateString(title)

	if !dv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if !dv.validator.IsValidStringLength(trimmed, titleMinLength, titleMaxLength) {
		validationError.AddInvalidLengthError("title", trimmed, titleMinLength, titleMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateDueDate parses and validates a due date string
func (dv *DraftValidator) ValidateDueDate(due string) (domain.LocalTime, error) {
	validationError := NewValidationError()

	if !dv.validator.IsNonEmptyString(due) {
		validationError.AddRequiredError("due_date")
		return domain.LocalTime{}, validationError
	}

	parsed, err := domain.ParseLocalTime(dv.validator.TrimAndValidateString(due), dv.reference)
	if err != nil {
		validationError.AddInvalidFormatError("due_date", due, DraftInputFormat)
		return domain.LocalTime{}, validationError
	}

	return parsed, nil
}

// ValidateCourseID validates an optional course ID
func (dv *DraftValidator) ValidateCourseID(courseID *int64) error {
	if courseID == nil {
		return nil // Personal task
	}
	if !dv.validator.IsValidCourseID(*courseID) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("course_id", *courseID, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateDraft validates all creation inputs and assembles a well-formed
// TaskDraft from them.
func (dv *DraftValidator) ValidateDraft(title, description, due string, courseID *int64) (*domain.TaskDraft, error) {
	validationError := NewValidationError()

	if err := dv.ValidateTitle(title); err != nil {
		if titleErr, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, titleErr.Errors...)
		}
	}

	dueDate, err := dv.ValidateDueDate(due)
	if err != nil {
		if dueErr, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, dueErr.Errors...)
		}
	}

	if err := dv.ValidateCourseID(courseID); err != nil {
		if courseErr, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, courseErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return nil, validationError
	}

	return &domain.TaskDraft{
		Title:       dv.validator.TrimAndValidateString(title),
		Description: description,
		DueDate:     dueDate,
		CourseID:    courseID,
	}, nil
}

// Package errors provides the standardized issue taxonomy for resume
// record validation and ledger writes.
package errors

import (
	"fmt"
	"strings"
)

// ==========================
// 1. Issue Codes
// ==========================

// Code represents a standardized validation or store error code.
type Code string

// Blocking validation errors.
const (
	CodeMissingRequiredField Code = "MISSING_REQUIRED_FIELD"
	CodeInvalidFieldType     Code = "INVALID_FIELD_TYPE"
	CodeInvalidDateFormat    Code = "INVALID_DATE_FORMAT"
	CodeFutureDate           Code = "FUTURE_DATE"
	CodeDateOrderViolation   Code = "DATE_ORDER_VIOLATION"
	CodeInvalidSalary        Code = "INVALID_SALARY"
)

// Non-blocking validation warnings.
const (
	CodeUnusualBirthYear        Code = "UNUSUAL_BIRTH_YEAR"
	CodeNonStandardGender       Code = "NON_STANDARD_GENDER"
	CodeNonStandardDegree       Code = "NON_STANDARD_DEGREE"
	CodeUnusuallyHighSalary     Code = "UNUSUALLY_HIGH_SALARY"
	CodeWorkExperienceTruncated Code = "WORK_EXPERIENCE_TRUNCATED"
)

// Store-level failure.
const (
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
)

// Severity distinguishes blocking errors from advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// SeverityOf returns the severity class of a validation code.
func SeverityOf(code Code) Severity {
	switch code {
	case CodeUnusualBirthYear,
		CodeNonStandardGender,
		CodeNonStandardDegree,
		CodeUnusuallyHighSalary,
		CodeWorkExperienceTruncated:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// ==========================
// 2. Validation Issues
// ==========================

// Issue is a single validation finding attached to a record. Issues are
// data, not Go errors: validation never fails hard on record content.
type Issue struct {
	Code    Code   `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Field != "" {
		return fmt.Sprintf("%s[%s]: %s", i.Code, i.Field, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// IsBlocking reports whether the issue rejects the record in every mode.
func (i Issue) IsBlocking() bool {
	return SeverityOf(i.Code) == SeverityError
}

// ==========================
// 3. Issue Constructors
// ==========================

// NewMissingRequiredField flags a required field that is absent or empty
// after trimming.
func NewMissingRequiredField(field string) Issue {
	return Issue{
		Code:    CodeMissingRequiredField,
		Field:   field,
		Message: "required field is missing or empty",
	}
}

// NewInvalidFieldType flags a field whose JSON type does not match the
// record schema.
func NewInvalidFieldType(field, detail string) Issue {
	return Issue{
		Code:    CodeInvalidFieldType,
		Field:   field,
		Message: detail,
	}
}

// NewInvalidDateFormat flags a date field that does not parse in its
// expected layout.
func NewInvalidDateFormat(field, value, layout string) Issue {
	return Issue{
		Code:    CodeInvalidDateFormat,
		Field:   field,
		Message: fmt.Sprintf("value %q does not match %s", value, layout),
	}
}

// NewFutureDate flags an application date after the current date.
func NewFutureDate(field, value string) Issue {
	return Issue{
		Code:    CodeFutureDate,
		Field:   field,
		Message: fmt.Sprintf("date %q is in the future", value),
	}
}

// NewDateOrderViolation flags a work entry whose start date is after its
// end date. The field carries the entry index.
func NewDateOrderViolation(entryIndex int, start, end string) Issue {
	return Issue{
		Code:    CodeDateOrderViolation,
		Field:   fmt.Sprintf("work_experience[%d]", entryIndex),
		Message: fmt.Sprintf("start date %q is after end date %q", start, end),
	}
}

// NewInvalidSalary flags a negative salary.
func NewInvalidSalary(entryIndex int, salary int64) Issue {
	return Issue{
		Code:    CodeInvalidSalary,
		Field:   fmt.Sprintf("work_experience[%d].salary", entryIndex),
		Message: fmt.Sprintf("salary must be non-negative, got %d", salary),
	}
}

// NewUnusualBirthYear warns about a well-formed birth year outside the
// plausible range.
func NewUnusualBirthYear(value string) Issue {
	return Issue{
		Code:    CodeUnusualBirthYear,
		Field:   "basic_info.birth_year",
		Message: fmt.Sprintf("birth year %s is outside the expected range", value),
	}
}

// NewNonStandardGender warns about a gender value outside the recognized
// set. The original value is preserved on the record.
func NewNonStandardGender(value string) Issue {
	return Issue{
		Code:    CodeNonStandardGender,
		Field:   "basic_info.gender",
		Message: fmt.Sprintf("gender %q is not a recognized value, kept as-is", value),
	}
}

// NewNonStandardDegree warns about a degree value outside the recognized
// set. The original value is preserved on the record.
func NewNonStandardDegree(value string) Issue {
	return Issue{
		Code:    CodeNonStandardDegree,
		Field:   "basic_info.final_education_degree",
		Message: fmt.Sprintf("degree %q is not a recognized value, kept as-is", value),
	}
}

// NewUnusuallyHighSalary warns about a salary above the plausibility
// threshold. The value is retained.
func NewUnusuallyHighSalary(entryIndex int, salary int64) Issue {
	return Issue{
		Code:    CodeUnusuallyHighSalary,
		Field:   fmt.Sprintf("work_experience[%d].salary", entryIndex),
		Message: fmt.Sprintf("salary %d (thousand KRW) is unusually high", salary),
	}
}

// NewWorkExperienceTruncated warns that only the five most recent work
// entries were kept.
func NewWorkExperienceTruncated(originalCount int) Issue {
	return Issue{
		Code:    CodeWorkExperienceTruncated,
		Field:   "work_experience",
		Message: fmt.Sprintf("%d entries given, only the 5 most recent are kept", originalCount),
	}
}

// ==========================
// 4. Store Errors
// ==========================

// StoreError is a hard failure of the spreadsheet store. Unlike
// validation issues it surfaces to the caller as a Go error.
type StoreError struct {
	Code Code   `json:"code"`
	Path string `json:"path"`
	Err  error  `json:"-"`
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("StoreError[%s]: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("StoreError[%s]: %s", e.Code, e.Path)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreUnavailable creates the error returned when the ledger file
// cannot be opened or saved. The store on disk is left unmodified.
func NewStoreUnavailable(path string, err error) *StoreError {
	return &StoreError{
		Code: CodeStoreUnavailable,
		Path: path,
		Err:  err,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// Messages flattens issues into plain strings for reporting.
func Messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, iss := range issues {
		out[i] = iss.String()
	}
	return out
}

// Codes returns the distinct codes present in issues, in order of first
// appearance.
func Codes(issues []Issue) []Code {
	seen := make(map[Code]bool, len(issues))
	var out []Code
	for _, iss := range issues {
		if !seen[iss.Code] {
			seen[iss.Code] = true
			out = append(out, iss.Code)
		}
	}
	return out
}

// HasCode reports whether any issue carries the given code.
func HasCode(issues []Issue, code Code) bool {
	for _, iss := range issues {
		if iss.Code == code {
			return true
		}
	}
	return false
}

// ForField returns issues attached to a field or any of its children.
func ForField(issues []Issue, field string) []Issue {
	var out []Issue
	for _, iss := range issues {
		if iss.Field == field || strings.HasPrefix(iss.Field, field+".") || strings.HasPrefix(iss.Field, field+"[") {
			out = append(out, iss)
		}
	}
	return out
}

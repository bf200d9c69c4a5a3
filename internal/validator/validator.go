// Package validator cleans and validates applicant records before they
// reach the ledger. Record content problems are reported as structured
// issues, never as Go errors.
package validator

import (
	"fmt"
	"regexp"
	"time"

	apperrors "resume-ledger/internal/common/errors"
	"resume-ledger/internal/common/logger"
	"resume-ledger/internal/record"
)

const (
	// minBirthYear bounds the plausible birth year range together with
	// the current year.
	minBirthYear = 1940

	// maxReasonableSalary is the warning threshold in thousands of KRW.
	maxReasonableSalary = 1_000_000
)

var (
	dayDateRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthDateRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)
	birthYearRegex = regexp.MustCompile(`^\d{4}$`)
)

// recognizedDegrees is advisory: values outside the set are stored
// unchanged with a warning, because source data legitimately strays.
var recognizedDegrees = map[string]bool{
	"고졸":   true,
	"전문학사": true,
	"학사":   true,
	"석사":   true,
	"박사":   true,
	"기타":   true,
}

var recognizedGenders = map[string]bool{
	"남":  true,
	"여":  true,
	"기타": true,
}

// Result is the outcome of validating one record.
type Result struct {
	// Accepted reflects the strictness policy the validator was built
	// with: errors always block, warnings block only in strict mode.
	Accepted bool
	// Record is the normalized record, present even when rejected.
	Record   *record.Record
	Errors   []apperrors.Issue
	Warnings []apperrors.Issue
}

// Validator applies the cleaning and rule pipeline to raw records.
type Validator struct {
	strict bool
	log    logger.Logger
}

func New(strict bool, log logger.Logger) *Validator {
	return &Validator{
		strict: strict,
		log:    log.WithFields(map[string]interface{}{"component": "validator"}),
	}
}

// Validate checks a parsed JSON object: structural gate, tolerant
// decode, normalization, then content rules.
func (v *Validator) Validate(doc map[string]interface{}) *Result {
	issues := structuralIssues(doc)
	rec := decodeRecord(doc)
	res := v.validateRecord(rec, issues)

	v.log.Debug("record validated", map[string]interface{}{
		"applicantName": res.Record.ApplicantName,
		"accepted":      res.Accepted,
		"errorCount":    len(res.Errors),
		"warningCount":  len(res.Warnings),
	})
	return res
}

// ValidateRecord checks an already-typed record. Used when the caller
// decoded the input itself.
func (v *Validator) ValidateRecord(rec *record.Record) *Result {
	return v.validateRecord(rec, nil)
}

func (v *Validator) validateRecord(rec *record.Record, issues []apperrors.Issue) *Result {
	normalized, normIssues := Normalize(rec)
	issues = append(issues, normIssues...)
	issues = append(issues, checkRequiredFields(normalized)...)
	issues = append(issues, checkApplicationDate(normalized, time.Now())...)
	issues = append(issues, checkBasicInfo(normalized, time.Now().Year())...)
	issues = append(issues, checkWorkExperience(normalized)...)

	res := &Result{Record: normalized}
	for _, iss := range issues {
		if iss.IsBlocking() {
			res.Errors = append(res.Errors, iss)
		} else {
			res.Warnings = append(res.Warnings, iss)
		}
	}
	res.Accepted = len(res.Errors) == 0 && (!v.strict || len(res.Warnings) == 0)
	return res
}

func checkRequiredFields(rec *record.Record) []apperrors.Issue {
	var issues []apperrors.Issue

	required := []struct {
		field string
		value string
	}{
		{"applicant_name", rec.ApplicantName},
		{"application_date", rec.ApplicationDate},
		{"affiliation", rec.Affiliation},
		{"application_field", rec.ApplicationField},
	}
	for _, f := range required {
		if f.value == "" {
			issues = append(issues, apperrors.NewMissingRequiredField(f.field))
		}
	}
	return issues
}

func checkApplicationDate(rec *record.Record, now time.Time) []apperrors.Issue {
	if rec.ApplicationDate == "" {
		return nil // presence already reported
	}

	if !dayDateRegex.MatchString(rec.ApplicationDate) {
		return []apperrors.Issue{apperrors.NewInvalidDateFormat("application_date", rec.ApplicationDate, "YYYY-MM-DD")}
	}
	parsed, err := time.Parse("2006-01-02", rec.ApplicationDate)
	if err != nil {
		return []apperrors.Issue{apperrors.NewInvalidDateFormat("application_date", rec.ApplicationDate, "YYYY-MM-DD")}
	}
	if parsed.After(now) {
		return []apperrors.Issue{apperrors.NewFutureDate("application_date", rec.ApplicationDate)}
	}
	return nil
}

func checkBasicInfo(rec *record.Record, currentYear int) []apperrors.Issue {
	if rec.BasicInfo == nil {
		return nil
	}

	var issues []apperrors.Issue
	bi := rec.BasicInfo

	if bi.BirthYear != "" {
		if !birthYearRegex.MatchString(bi.BirthYear) {
			issues = append(issues, apperrors.NewInvalidDateFormat("basic_info.birth_year", bi.BirthYear, "YYYY"))
		} else {
			year := parseYear(bi.BirthYear)
			if year < minBirthYear || year > currentYear {
				issues = append(issues, apperrors.NewUnusualBirthYear(bi.BirthYear))
			}
		}
	}

	if bi.Gender != "" && !recognizedGenders[bi.Gender] {
		issues = append(issues, apperrors.NewNonStandardGender(bi.Gender))
	}

	if bi.FinalEducationDegree != "" && !recognizedDegrees[bi.FinalEducationDegree] {
		issues = append(issues, apperrors.NewNonStandardDegree(bi.FinalEducationDegree))
	}

	return issues
}

func checkWorkExperience(rec *record.Record) []apperrors.Issue {
	var issues []apperrors.Issue

	for i, entry := range rec.WorkExperience {
		issues = append(issues, checkWorkEntry(i, entry)...)
	}
	return issues
}

func checkWorkEntry(i int, entry record.WorkEntry) []apperrors.Issue {
	var issues []apperrors.Issue

	startValid := false
	if entry.StartDate == "" {
		issues = append(issues, apperrors.NewMissingRequiredField(fmt.Sprintf("work_experience[%d].start_date", i)))
	} else if !monthDateRegex.MatchString(entry.StartDate) || !parsesAsMonth(entry.StartDate) {
		issues = append(issues, apperrors.NewInvalidDateFormat(fmt.Sprintf("work_experience[%d].start_date", i), entry.StartDate, "YYYY-MM"))
	} else {
		startValid = true
	}

	if entry.CompanyName == "" {
		issues = append(issues, apperrors.NewMissingRequiredField(fmt.Sprintf("work_experience[%d].company_name", i)))
	}

	if entry.EndDate != nil && !entry.IsOngoing() {
		end := *entry.EndDate
		if !monthDateRegex.MatchString(end) || !parsesAsMonth(end) {
			issues = append(issues, apperrors.NewInvalidDateFormat(fmt.Sprintf("work_experience[%d].end_date", i), end, "YYYY-MM"))
		} else if startValid && entry.StartDate > end {
			issues = append(issues, apperrors.NewDateOrderViolation(i, entry.StartDate, end))
		}
	}

	if entry.Salary != nil {
		switch {
		case *entry.Salary < 0:
			issues = append(issues, apperrors.NewInvalidSalary(i, *entry.Salary))
		case *entry.Salary > maxReasonableSalary:
			issues = append(issues, apperrors.NewUnusuallyHighSalary(i, *entry.Salary))
		}
	}

	return issues
}

func parsesAsMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}

func parseYear(s string) int {
	t, err := time.Parse("2006", s)
	if err != nil {
		return 0
	}
	return t.Year()
}

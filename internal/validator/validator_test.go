package validator

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "resume-ledger/internal/common/errors"
	"resume-ledger/internal/common/logger"
	"resume-ledger/internal/record"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestValidator(t *testing.T, strict bool) *Validator {
	return New(strict, logger.NewTestLogger(t))
}

// parseDoc builds the map form a record arrives in after JSON parsing,
// so field types match the production path exactly.
func parseDoc(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func minimalDoc(t *testing.T) map[string]interface{} {
	return parseDoc(t, `{
		"applicant_name": "홍길동",
		"application_date": "2024-12-19",
		"affiliation": "서울대학교",
		"application_field": "소프트웨어 개발"
	}`)
}

func errorCodes(issues []apperrors.Issue) []apperrors.Code {
	return apperrors.Codes(issues)
}

// ==========================
// Acceptance
// ==========================

func TestValidate_MinimalRecordAccepted(t *testing.T) {
	v := newTestValidator(t, false)

	res := v.Validate(minimalDoc(t))

	assert.True(t, res.Accepted)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "홍길동", res.Record.ApplicantName)
	assert.Nil(t, res.Record.BasicInfo)
	assert.Empty(t, res.Record.WorkExperience)
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{"missing applicant_name", "applicant_name"},
		{"missing application_date", "application_date"},
		{"missing affiliation", "affiliation"},
		{"missing application_field", "application_field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalDoc(t)
			delete(doc, tt.field)

			v := newTestValidator(t, false)
			res := v.Validate(doc)

			assert.False(t, res.Accepted)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, apperrors.CodeMissingRequiredField, res.Errors[0].Code)
			assert.Equal(t, tt.field, res.Errors[0].Field)
		})
	}
}

func TestValidate_WhitespaceOnlyFieldIsMissing(t *testing.T) {
	doc := minimalDoc(t)
	doc["affiliation"] = "   "

	v := newTestValidator(t, false)
	res := v.Validate(doc)

	assert.False(t, res.Accepted)
	assert.True(t, apperrors.HasCode(res.Errors, apperrors.CodeMissingRequiredField))
}

// ==========================
// Dates
// ==========================

func TestValidate_FutureDateRejectedInBothModes(t *testing.T) {
	for _, strict := range []bool{false, true} {
		t.Run(fmt.Sprintf("strict=%v", strict), func(t *testing.T) {
			doc := minimalDoc(t)
			doc["application_date"] = "2099-01-01"

			v := newTestValidator(t, strict)
			res := v.Validate(doc)

			assert.False(t, res.Accepted)
			assert.True(t, apperrors.HasCode(res.Errors, apperrors.CodeFutureDate))
		})
	}
}

func TestValidate_ApplicationDateFormats(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantCode apperrors.Code
	}{
		{"plain invalid", "19 Dec 2024", apperrors.CodeInvalidDateFormat},
		{"month out of range", "2024-13-05", apperrors.CodeInvalidDateFormat},
		{"day out of range", "2024-02-30", apperrors.CodeInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalDoc(t)
			doc["application_date"] = tt.value

			v := newTestValidator(t, false)
			res := v.Validate(doc)

			assert.False(t, res.Accepted)
			assert.True(t, apperrors.HasCode(res.Errors, tt.wantCode))
		})
	}
}

func TestValidate_DateOrderViolationRejectedInBothModes(t *testing.T) {
	raw := `{
		"applicant_name": "홍길동",
		"application_date": "2024-12-19",
		"affiliation": "서울대학교",
		"application_field": "소프트웨어 개발",
		"work_experience": [
			{"start_date": "2023-05", "end_date": "2022-01", "company_name": "회사A"}
		]
	}`

	for _, strict := range []bool{false, true} {
		t.Run(fmt.Sprintf("strict=%v", strict), func(t *testing.T) {
			v := newTestValidator(t, strict)
			res := v.Validate(parseDoc(t, raw))

			assert.False(t, res.Accepted)
			require.True(t, apperrors.HasCode(res.Errors, apperrors.CodeDateOrderViolation))
			violations := apperrors.ForField(res.Errors, "work_experience[0]")
			assert.NotEmpty(t, violations)
		})
	}
}

func TestValidate_OngoingEndDateIsValid(t *testing.T) {
	doc := parseDoc(t, `{
		"applicant_name": "홍길동",
		"application_date": "2024-12-19",
		"affiliation": "서울대학교",
		"application_field": "소프트웨어 개발",
		"work_experience": [
			{"start_date": "2023-05", "end_date": "재직중", "company_name": "회사A"}
		]
	}`)

	v := newTestValidator(t, true)
	res := v.Validate(doc)

	assert.True(t, res.Accepted)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidate_WorkEntryRequiredFields(t *testing.T) {
	doc := parseDoc(t, `{
		"applicant_name": "홍길동",
		"application_date": "2024-12-19",
		"affiliation": "서울대학교",
		"application_field": "소프트웨어 개발",
		"work_experience": [
			{"end_date": "2022-01"}
		]
	}`)

	v := newTestValidator(t, false)
	res := v.Validate(doc)

	assert.False(t, res.Accepted)
	assert.NotEmpty(t, apperrors.ForField(res.Errors, "work_experience[0].start_date"))
	assert.NotEmpty(t, apperrors.ForField(res.Errors, "work_experience[0].company_name"))
}

// ==========================
// Work History Shaping
// ==========================

func TestValidate_WorkExperienceTruncatedToMostRecent(t *testing.T) {
	doc := parseDoc(t, `{
		"applicant_name": "홍길동",
		"application_date": "2024-12-19",
		"affiliation": "서울대학교",
		"application_field": "소프트웨어 개발",
		"work_experience": [
			{"start_date": "2018-01", "company_name": "회사1"},
			{"start_date": "2019-03", "company_name": "회사2"},
			{"start_date": "2020-06", "company_name": "회사3"},
			{"start_date": "2021-09", "company_name": "회사4"},
			{"start_date": "2022-11", "company_name": "회사5"},
			{"start_date": "2023-06", "company_name": "회사6"}
		]
	}`)

	v := newTestValidator(t, false)
	res := v.Validate(doc)

	assert.True(t, res.Accepted)
	require.Len(t, res.Record.WorkExperience, record.MaxWorkEntries)

	// Newest first, oldest entry dropped.
	assert.Equal(t, "2023-06", res.Record.WorkExperience[0].StartDate)
	assert.Equal(t, "2019-03", res.Record.WorkExperience[4].StartDate)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, apperrors.CodeWorkExperienceTruncated, res.Warnings[0].Code)
	assert.Contains(t, res.Warnings[0].Message, "6")
}

func TestValidate_WorkExperienceSortedStable(t *testing.T) {
	doc := parseDoc(t, `{
		"applicant_name": "홍길동",
		"application_date": "2024-12-19",
		"affiliation": "서울대학교",
		"application_field": "소프트웨어 개발",
		"work_experience": [
			{"start_date": "2020-01", "company_name": "첫번째"},
			{"start_date": "2022-01", "company_name": "최신"},
			{"start_date": "2020-01", "company_name": "두번째"}
		]
	}`)

	v := newTestValidator(t, false)
	res := v.Validate(doc)

	require.Len(t, res.Record.WorkExperience, 3)
	assert.Equal(t, "최신", res.Record.WorkExperience[0].CompanyName)
	assert.Equal(t, "첫번째", res.Record.WorkExperience[1].CompanyName)
	assert.Equal(t, "두번째", res.Record.WorkExperience[2].CompanyName)
}

// ==========================
// Basic Info
// ==========================

func TestValidate_BirthYear(t *testing.T) {
	tests := []struct {
		name         string
		birthYear    string
		wantAccepted bool
		wantCode     apperrors.Code
	}{
		{"plausible year", "1985", true, ""},
		{"before range", "1930", true, apperrors.CodeUnusualBirthYear},
		{"after range", "2077", true, apperrors.CodeUnusualBirthYear},
		{"not a year", "19살", false, apperrors.CodeInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalDoc(t)
			doc["basic_info"] = map[string]interface{}{"birth_year": tt.birthYear}

			v := newTestValidator(t, false)
			res := v.Validate(doc)

			assert.Equal(t, tt.wantAccepted, res.Accepted)
			if tt.wantCode != "" {
				all := append(append([]apperrors.Issue{}, res.Errors...), res.Warnings...)
				assert.True(t, apperrors.HasCode(all, tt.wantCode))
			}
		})
	}
}

func TestValidate_NumericBirthYearCoerced(t *testing.T) {
	doc := parseDoc(t, `{
		"applicant_name": "홍길동",
		"application_date": "2024-12-19",
		"affiliation": "서울대학교",
		"application_field": "소프트웨어 개발",
		"basic_info": {"birth_year": 1992}
	}`)

	v := newTestValidator(t, false)
	res := v.Validate(doc)

	assert.True(t, res.Accepted)
	require.NotNil(t, res.Record.BasicInfo)
	assert.Equal(t, "1992", res.Record.BasicInfo.BirthYear)
}

func TestValidate_GenderNormalization(t *testing.T) {
	tests := []struct {
		name       string
		gender     string
		wantValue  string
		wantWarned bool
	}{
		{"already canonical", "남", "남", false},
		{"korean long form", "여성", "여", false},
		{"english", "male", "남", false},
		{"english mixed case", "Female", "여", false},
		{"single letter", "M", "남", false},
		{"padded", "  여성  ", "여", false},
		{"other", "other", "기타", false},
		{"unmappable preserved", "nonbinary", "nonbinary", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalDoc(t)
			doc["basic_info"] = map[string]interface{}{"gender": tt.gender}

			v := newTestValidator(t, false)
			res := v.Validate(doc)

			assert.True(t, res.Accepted)
			require.NotNil(t, res.Record.BasicInfo)
			assert.Equal(t, tt.wantValue, res.Record.BasicInfo.Gender)

			if tt.wantWarned {
				require.Len(t, res.Warnings, 1)
				assert.Equal(t, apperrors.CodeNonStandardGender, res.Warnings[0].Code)
			} else {
				assert.Empty(t, res.Warnings)
			}
		})
	}
}

func TestValidate_DegreePassedThroughWithWarning(t *testing.T) {
	doc := minimalDoc(t)
	doc["basic_info"] = map[string]interface{}{"final_education_degree": "MBA"}

	v := newTestValidator(t, false)
	res := v.Validate(doc)

	assert.True(t, res.Accepted)
	assert.Equal(t, "MBA", res.Record.BasicInfo.FinalEducationDegree)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, apperrors.CodeNonStandardDegree, res.Warnings[0].Code)
}

// ==========================
// Salary
// ==========================

func TestValidate_Salary(t *testing.T) {
	tests := []struct {
		name         string
		rawSalary    string
		wantAccepted bool
		wantCode     apperrors.Code
		wantValue    *int64
	}{
		{"plain number", "45000", true, "", int64Ptr(45000)},
		{"negative", "-1", false, apperrors.CodeInvalidSalary, int64Ptr(-1)},
		{"unusually high", "2000000", true, apperrors.CodeUnusuallyHighSalary, int64Ptr(2000000)},
		{"comma string", `"3,000"`, true, "", int64Ptr(3000)},
		{"unparsable string", `"많이"`, true, "", nil},
		{"null", "null", true, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, fmt.Sprintf(`{
				"applicant_name": "홍길동",
				"application_date": "2024-12-19",
				"affiliation": "서울대학교",
				"application_field": "소프트웨어 개발",
				"work_experience": [
					{"start_date": "2023-05", "company_name": "회사A", "salary": %s}
				]
			}`, tt.rawSalary))

			v := newTestValidator(t, false)
			res := v.Validate(doc)

			assert.Equal(t, tt.wantAccepted, res.Accepted)
			if tt.wantCode != "" {
				all := append(append([]apperrors.Issue{}, res.Errors...), res.Warnings...)
				assert.True(t, apperrors.HasCode(all, tt.wantCode))
			}

			require.Len(t, res.Record.WorkExperience, 1)
			if tt.wantValue == nil {
				assert.Nil(t, res.Record.WorkExperience[0].Salary)
			} else {
				require.NotNil(t, res.Record.WorkExperience[0].Salary)
				assert.Equal(t, *tt.wantValue, *res.Record.WorkExperience[0].Salary)
			}
		})
	}
}

// ==========================
// Strict Mode
// ==========================

func TestValidate_StrictModeBlocksWarnings(t *testing.T) {
	doc := minimalDoc(t)
	doc["basic_info"] = map[string]interface{}{"birth_year": "1930"}

	strict := newTestValidator(t, true)
	res := strict.Validate(doc)
	assert.False(t, res.Accepted)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)

	lenient := newTestValidator(t, false)
	res = lenient.Validate(doc)
	assert.True(t, res.Accepted)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, apperrors.CodeUnusualBirthYear, res.Warnings[0].Code)
}

// ==========================
// Structural Gate
// ==========================

func TestValidate_StructuralTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"work_experience as string", `{
			"applicant_name": "홍길동",
			"application_date": "2024-12-19",
			"affiliation": "서울대학교",
			"application_field": "소프트웨어 개발",
			"work_experience": "5년"
		}`},
		{"basic_info as array", `{
			"applicant_name": "홍길동",
			"application_date": "2024-12-19",
			"affiliation": "서울대학교",
			"application_field": "소프트웨어 개발",
			"basic_info": ["1985"]
		}`},
		{"applicant_name as number", `{
			"applicant_name": 42,
			"application_date": "2024-12-19",
			"affiliation": "서울대학교",
			"application_field": "소프트웨어 개발"
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t, false)
			res := v.Validate(parseDoc(t, tt.raw))

			assert.False(t, res.Accepted)
			assert.True(t, apperrors.HasCode(res.Errors, apperrors.CodeInvalidFieldType))
		})
	}
}

// ==========================
// Idempotence
// ==========================

func TestValidate_NormalizedOutputIsStable(t *testing.T) {
	doc := parseDoc(t, `{
		"applicant_name": "  홍길동  ",
		"application_date": "2024.12.19",
		"affiliation": " 서울대학교 ",
		"application_field": "소프트웨어 개발",
		"basic_info": {"birth_year": "1985", "gender": "male"},
		"work_experience": [
			{"start_date": "202001", "end_date": "Present", "company_name": " 회사A ", "salary": "3,000"},
			{"start_date": "2022.06", "end_date": "2023-01", "company_name": "회사B"}
		]
	}`)

	v := newTestValidator(t, false)
	res := v.Validate(doc)
	require.True(t, res.Accepted)

	again, issues := Normalize(res.Record)
	assert.Empty(t, issues)
	assert.Equal(t, res.Record, again)

	// Re-validating the normalized record yields the same record and
	// the same acceptance.
	res2 := v.ValidateRecord(res.Record)
	assert.True(t, res2.Accepted)
	assert.Equal(t, res.Record, res2.Record)
}

func int64Ptr(n int64) *int64 {
	return &n
}

func TestValidate_IssueCodesHelper(t *testing.T) {
	doc := minimalDoc(t)
	delete(doc, "applicant_name")
	delete(doc, "affiliation")

	v := newTestValidator(t, false)
	res := v.Validate(doc)

	codes := errorCodes(res.Errors)
	assert.Equal(t, []apperrors.Code{apperrors.CodeMissingRequiredField}, codes)
}

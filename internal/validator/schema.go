package validator

import (
	"github.com/xeipuuv/gojsonschema"

	apperrors "resume-ledger/internal/common/errors"
)

// recordSchema describes the JSON shape of an applicant record. It gates
// types only; presence and content rules run after decoding so that every
// finding maps to one issue code.
const recordSchema = `{
  "type": "object",
  "properties": {
    "applicant_name": {"type": "string"},
    "application_date": {"type": "string"},
    "affiliation": {"type": "string"},
    "application_field": {"type": "string"},
    "basic_info": {
      "type": "object",
      "properties": {
        "birth_year": {"type": ["string", "integer"]},
        "gender": {"type": "string"},
        "final_education_school": {"type": "string"},
        "final_education_degree": {"type": "string"}
      }
    },
    "work_experience": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "start_date": {"type": "string"},
          "end_date": {"type": ["string", "null"]},
          "company_name": {"type": "string"},
          "final_department": {"type": ["string", "null"]},
          "final_position": {"type": ["string", "null"]},
          "salary": {"type": ["integer", "number", "string", "null"]}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(recordSchema)

// structuralIssues checks the raw document against recordSchema. Schema
// violations come back as issues, never as a Go error: a malformed record
// must not abort a batch.
func structuralIssues(doc map[string]interface{}) []apperrors.Issue {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return []apperrors.Issue{apperrors.NewInvalidFieldType("", err.Error())}
	}

	if result.Valid() {
		return nil
	}

	issues := make([]apperrors.Issue, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		field := re.Field()
		if field == "(root)" {
			field = ""
		}
		issues = append(issues, apperrors.NewInvalidFieldType(field, re.Description()))
	}
	return issues
}

package validator

import (
	"strconv"
	"strings"

	"resume-ledger/internal/record"
)

// decodeRecord builds a typed record from a parsed JSON object. It is
// tolerant: fields of the wrong type are skipped, the structural gate has
// already reported them.
func decodeRecord(doc map[string]interface{}) *record.Record {
	rec := &record.Record{
		ApplicantName:    stringAt(doc, "applicant_name"),
		ApplicationDate:  stringAt(doc, "application_date"),
		Affiliation:      stringAt(doc, "affiliation"),
		ApplicationField: stringAt(doc, "application_field"),
	}

	if raw, ok := doc["basic_info"].(map[string]interface{}); ok {
		rec.BasicInfo = &record.BasicInfo{
			BirthYear:            coerceToString(raw["birth_year"]),
			Gender:               stringAt(raw, "gender"),
			FinalEducationSchool: stringAt(raw, "final_education_school"),
			FinalEducationDegree: stringAt(raw, "final_education_degree"),
		}
	}

	if raw, ok := doc["work_experience"].([]interface{}); ok {
		for _, item := range raw {
			entryMap, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			rec.WorkExperience = append(rec.WorkExperience, decodeWorkEntry(entryMap))
		}
	}

	return rec
}

func decodeWorkEntry(doc map[string]interface{}) record.WorkEntry {
	return record.WorkEntry{
		StartDate:       stringAt(doc, "start_date"),
		CompanyName:     stringAt(doc, "company_name"),
		EndDate:         stringPtrAt(doc, "end_date"),
		FinalDepartment: stringPtrAt(doc, "final_department"),
		FinalPosition:   stringPtrAt(doc, "final_position"),
		Salary:          decodeSalary(doc["salary"]),
	}
}

func stringAt(doc map[string]interface{}, key string) string {
	s, _ := doc[key].(string)
	return s
}

func stringPtrAt(doc map[string]interface{}, key string) *string {
	if s, ok := doc[key].(string); ok {
		return &s
	}
	return nil
}

// coerceToString renders a string or whole number as a string. Birth
// years arrive as either.
func coerceToString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
	}
	return ""
}

// decodeSalary accepts a JSON number or a numeric string with optional
// thousands separators. Unparsable values decode to nil rather than
// failing the record.
func decodeSalary(v interface{}) *int64 {
	switch val := v.(type) {
	case float64:
		s := int64(val)
		return &s
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if cleaned == "" {
			return nil
		}
		n, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

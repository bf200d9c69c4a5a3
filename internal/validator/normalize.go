package validator

import (
	"sort"
	"strings"

	apperrors "resume-ledger/internal/common/errors"
	"resume-ledger/internal/record"
)

// ongoingAliases are accepted spellings of the ongoing-employment
// sentinel. All map to record.Ongoing.
var ongoingAliases = map[string]bool{
	record.Ongoing: true,
	"present":      true,
	"현재":           true,
}

// genderAliases map lowercase input spellings to the canonical values.
var genderAliases = map[string]string{
	"남":      "남",
	"남성":     "남",
	"male":   "남",
	"m":      "남",
	"man":    "남",
	"여":      "여",
	"여성":     "여",
	"female": "여",
	"f":      "여",
	"woman":  "여",
	"기타":     "기타",
	"other":  "기타",
}

// Normalize returns a cleaned copy of the record: strings trimmed, dates
// canonicalized, gender standardized, work history sorted newest-first
// and capped at record.MaxWorkEntries. Unmappable gender values are kept
// verbatim; the follow-up check attaches the warning. Normalizing an
// already-normalized record is a no-op.
func Normalize(rec *record.Record) (*record.Record, []apperrors.Issue) {
	out := rec.Clone()
	var warnings []apperrors.Issue

	out.ApplicantName = strings.TrimSpace(out.ApplicantName)
	out.ApplicationDate = normalizeDayDate(out.ApplicationDate)
	out.Affiliation = strings.TrimSpace(out.Affiliation)
	out.ApplicationField = strings.TrimSpace(out.ApplicationField)

	if out.BasicInfo != nil {
		bi := out.BasicInfo
		bi.BirthYear = strings.TrimSpace(bi.BirthYear)
		bi.Gender = normalizeGender(bi.Gender)
		bi.FinalEducationSchool = strings.TrimSpace(bi.FinalEducationSchool)
		bi.FinalEducationDegree = strings.TrimSpace(bi.FinalEducationDegree)
	}

	for i := range out.WorkExperience {
		normalizeWorkEntry(&out.WorkExperience[i])
	}

	// Newest first; ties keep input order. Entries without a start date
	// sort last.
	sort.SliceStable(out.WorkExperience, func(i, j int) bool {
		return out.WorkExperience[i].StartDate > out.WorkExperience[j].StartDate
	})

	if len(out.WorkExperience) > record.MaxWorkEntries {
		warnings = append(warnings, apperrors.NewWorkExperienceTruncated(len(out.WorkExperience)))
		out.WorkExperience = out.WorkExperience[:record.MaxWorkEntries]
	}

	return out, warnings
}

func normalizeWorkEntry(e *record.WorkEntry) {
	e.StartDate = normalizeMonthDate(e.StartDate)
	e.CompanyName = strings.TrimSpace(e.CompanyName)

	if e.EndDate != nil {
		end := normalizeMonthDate(*e.EndDate)
		e.EndDate = &end
	}
	if e.FinalDepartment != nil {
		d := strings.TrimSpace(*e.FinalDepartment)
		e.FinalDepartment = &d
	}
	if e.FinalPosition != nil {
		p := strings.TrimSpace(*e.FinalPosition)
		e.FinalPosition = &p
	}
}

// normalizeDayDate canonicalizes day-level dates: "2024.12.15",
// "2024/12/15" and "20241215" all become "2024-12-15".
func normalizeDayDate(s string) string {
	s = canonicalSeparators(s)
	if len(s) == 8 && isDigits(s) {
		return s[:4] + "-" + s[4:6] + "-" + s[6:]
	}
	return s
}

// normalizeMonthDate canonicalizes month-level dates and the ongoing
// sentinel: "2023.05" and "202305" become "2023-05", "Present" and "현재"
// become 재직중.
func normalizeMonthDate(s string) string {
	trimmed := strings.TrimSpace(s)
	if ongoingAliases[strings.ToLower(trimmed)] {
		return record.Ongoing
	}
	trimmed = canonicalSeparators(trimmed)
	if len(trimmed) == 6 && isDigits(trimmed) {
		return trimmed[:4] + "-" + trimmed[4:]
	}
	return trimmed
}

func canonicalSeparators(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func normalizeGender(g string) string {
	trimmed := strings.TrimSpace(g)
	if canonical, ok := genderAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Package record defines the applicant record model produced by the
// upstream extraction pipeline and consumed by the validator and the
// ledger writer.
package record

// Ongoing is the sentinel end date meaning the work period has no end yet.
const Ongoing = "재직중"

// MaxWorkEntries is the number of work experience blocks the ledger keeps
// per applicant. Longer histories are truncated to the most recent entries.
const MaxWorkEntries = 5

// RequiredFields lists the top-level fields every record must carry
// non-empty.
var RequiredFields = []string{
	"applicant_name",
	"application_date",
	"affiliation",
	"application_field",
}

// Record is one applicant as extracted upstream. The applicant number is
// never part of the record: it is derived from the store at append time.
type Record struct {
	ApplicantName    string      `json:"applicant_name"`
	ApplicationDate  string      `json:"application_date"`
	Affiliation      string      `json:"affiliation"`
	ApplicationField string      `json:"application_field"`
	BasicInfo        *BasicInfo  `json:"basic_info,omitempty"`
	WorkExperience   []WorkEntry `json:"work_experience,omitempty"`
}

// BasicInfo holds the optional personal detail block.
type BasicInfo struct {
	BirthYear            string `json:"birth_year,omitempty"`
	Gender               string `json:"gender,omitempty"`
	FinalEducationSchool string `json:"final_education_school,omitempty"`
	FinalEducationDegree string `json:"final_education_degree,omitempty"`
}

// WorkEntry is a single employment period. Salary is in thousands of KRW.
type WorkEntry struct {
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date,omitempty"`
	CompanyName     string  `json:"company_name"`
	FinalDepartment *string `json:"final_department,omitempty"`
	FinalPosition   *string `json:"final_position,omitempty"`
	Salary          *int64  `json:"salary,omitempty"`
}

// IsOngoing reports whether the entry's end date is the ongoing sentinel.
func (e WorkEntry) IsOngoing() bool {
	return e.EndDate != nil && *e.EndDate == Ongoing
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.BasicInfo != nil {
		bi := *r.BasicInfo
		out.BasicInfo = &bi
	}
	if r.WorkExperience != nil {
		out.WorkExperience = make([]WorkEntry, len(r.WorkExperience))
		for i, e := range r.WorkExperience {
			out.WorkExperience[i] = e.clone()
		}
	}
	return &out
}

func (e WorkEntry) clone() WorkEntry {
	out := e
	out.EndDate = cloneString(e.EndDate)
	out.FinalDepartment = cloneString(e.FinalDepartment)
	out.FinalPosition = cloneString(e.FinalPosition)
	if e.Salary != nil {
		s := *e.Salary
		out.Salary = &s
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

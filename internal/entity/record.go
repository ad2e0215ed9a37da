// Package entity holds the domain records shared by the extractor, scorer,
// fallback filler, and exporters.
package entity

import (
	"strings"

	"github.com/qiwa-tools/contract-extract/constants"
)

// Record is one extracted contract. Every schema field is a declared struct
// member whose zero value is the empty string, so a fresh Record already
// satisfies the completeness invariant: all fields present, none null.
type Record struct {
	ContractNumber          string
	ContractDate            string
	CompanyName             string
	UnifiedNumber           string
	EstablishmentNumber     string
	CommercialRegistration  string
	CompanyAddress          string
	WorkLocation            string
	CompanyEmail            string
	SignatoryName           string
	SignatoryTitle          string
	EmployeeName            string
	IDNumber                string
	IDType                  string
	BirthDate               string
	IDExpiry                string
	Nationality             string
	Gender                  string
	Religion                string
	MaritalStatus           string
	Education               string
	Specialty               string
	Profession              string
	EmployeeNumber          string
	IBAN                    string
	BankName                string
	EmployeeEmail           string
	MobileNumber            string
	ContractStart           string
	ContractEnd             string
	JoiningDate             string
	ContractDuration        string
	TrialPeriod             string
	WeeklyWorkdays          string
	DailyHours              string
	BaseSalary              string
	HousingAllowance        string
	AnnualLeave             string
	OvertimeRate            string
	TerminationCompensation string
}

// slot maps a schema field to its struct member. Returns nil for names
// outside the schema, which callers treat as "ignore".
func (r *Record) slot(f constants.Field) *string {
	switch f {
	case constants.FieldContractNumber:
		return &r.ContractNumber
	case constants.FieldContractDate:
		return &r.ContractDate
	case constants.FieldCompanyName:
		return &r.CompanyName
	case constants.FieldUnifiedNumber:
		return &r.UnifiedNumber
	case constants.FieldEstablishmentNumber:
		return &r.EstablishmentNumber
	case constants.FieldCommercialRegistration:
		return &r.CommercialRegistration
	case constants.FieldCompanyAddress:
		return &r.CompanyAddress
	case constants.FieldWorkLocation:
		return &r.WorkLocation
	case constants.FieldCompanyEmail:
		return &r.CompanyEmail
	case constants.FieldSignatoryName:
		return &r.SignatoryName
	case constants.FieldSignatoryTitle:
		return &r.SignatoryTitle
	case constants.FieldEmployeeName:
		return &r.EmployeeName
	case constants.FieldIDNumber:
		return &r.IDNumber
	case constants.FieldIDType:
		return &r.IDType
	case constants.FieldBirthDate:
		return &r.BirthDate
	case constants.FieldIDExpiry:
		return &r.IDExpiry
	case constants.FieldNationality:
		return &r.Nationality
	case constants.FieldGender:
		return &r.Gender
	case constants.FieldReligion:
		return &r.Religion
	case constants.FieldMaritalStatus:
		return &r.MaritalStatus
	case constants.FieldEducation:
		return &r.Education
	case constants.FieldSpecialty:
		return &r.Specialty
	case constants.FieldProfession:
		return &r.Profession
	case constants.FieldEmployeeNumber:
		return &r.EmployeeNumber
	case constants.FieldIBAN:
		return &r.IBAN
	case constants.FieldBankName:
		return &r.BankName
	case constants.FieldEmployeeEmail:
		return &r.EmployeeEmail
	case constants.FieldMobileNumber:
		return &r.MobileNumber
	case constants.FieldContractStart:
		return &r.ContractStart
	case constants.FieldContractEnd:
		return &r.ContractEnd
	case constants.FieldJoiningDate:
		return &r.JoiningDate
	case constants.FieldContractDuration:
		return &r.ContractDuration
	case constants.FieldTrialPeriod:
		return &r.TrialPeriod
	case constants.FieldWeeklyWorkdays:
		return &r.WeeklyWorkdays
	case constants.FieldDailyHours:
		return &r.DailyHours
	case constants.FieldBaseSalary:
		return &r.BaseSalary
	case constants.FieldHousingAllowance:
		return &r.HousingAllowance
	case constants.FieldAnnualLeave:
		return &r.AnnualLeave
	case constants.FieldOvertimeRate:
		return &r.OvertimeRate
	case constants.FieldTerminationCompensation:
		return &r.TerminationCompensation
	}
	return nil
}

// Value returns the current value of a schema field ("" for unknown fields).
func (r *Record) Value(f constants.Field) string {
	if p := r.slot(f); p != nil {
		return *p
	}
	return ""
}

// Set writes a schema field. Unknown fields are ignored and reported false.
func (r *Record) Set(f constants.Field, v string) bool {
	p := r.slot(f)
	if p == nil {
		return false
	}
	*p = strings.TrimSpace(v)
	return true
}

// SetIfEmpty writes a field only when it is currently blank. This is the
// merge policy of the fallback filler: extractor output is never overwritten.
func (r *Record) SetIfEmpty(f constants.Field, v string) bool {
	p := r.slot(f)
	if p == nil || strings.TrimSpace(*p) != "" {
		return false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	*p = v
	return true
}

// Row returns the record's values in canonical column order.
func (r *Record) Row() []string {
	fields := constants.ContractFields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = r.Value(f)
	}
	return out
}

// StringMap returns field-name -> value for all schema fields.
func (r *Record) StringMap() map[string]string {
	fields := constants.ContractFields()
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[string(f)] = r.Value(f)
	}
	return out
}

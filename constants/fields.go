package constants

// Field is one canonical column of the extraction schema. The string value is
// the Arabic header used in the source contracts and in every exported sheet;
// downstream consumers key on it, so values and order are contractual.
type Field string

// Document metadata.
const (
	FieldContractNumber Field = "رقم العقد"
	FieldContractDate   Field = "تاريخ العقد"
)

// Employer identity.
const (
	FieldCompanyName            Field = "شركة/مؤسسة"
	FieldUnifiedNumber          Field = "الرقم الوطني الموحد"
	FieldEstablishmentNumber    Field = "رقم المنشأة"
	FieldCommercialRegistration Field = "السجل التجاري"
	FieldCompanyAddress         Field = "عنوان الشركة"
	FieldWorkLocation           Field = "مكان العمل"
	FieldCompanyEmail           Field = "بريد الشركة"
	FieldSignatoryName          Field = "المسؤول الموقع"
	FieldSignatoryTitle         Field = "الصفة"
)

// Employee identity.
const (
	FieldEmployeeName   Field = "اسم الموظف"
	FieldIDNumber       Field = "رقم الهوية"
	FieldIDType         Field = "نوع الهوية"
	FieldBirthDate      Field = "تاريخ الميلاد"
	FieldIDExpiry       Field = "تاريخ انتهاء الهوية"
	FieldNationality    Field = "الجنسية"
	FieldGender         Field = "الجنس"
	FieldReligion       Field = "الديانة"
	FieldMaritalStatus  Field = "الحالة الاجتماعية"
	FieldEducation      Field = "المؤهل العلمي"
	FieldSpecialty      Field = "التخصص"
	FieldProfession     Field = "المهنة"
	FieldEmployeeNumber Field = "الرقم الوظيفي"
	FieldIBAN           Field = "رقم الآيبان"
	FieldBankName       Field = "اسم البنك"
	FieldEmployeeEmail  Field = "بريد الموظف"
	FieldMobileNumber   Field = "رقم الجوال"
)

// Contract terms.
const (
	FieldContractStart           Field = "بدء العقد"
	FieldContractEnd             Field = "انتهاء العقد"
	FieldJoiningDate             Field = "تاريخ المباشرة الفعلية"
	FieldContractDuration        Field = "مدة العقد"
	FieldTrialPeriod             Field = "فترة التجربة"
	FieldWeeklyWorkdays          Field = "أيام العمل الأسبوعية"
	FieldDailyHours              Field = "ساعات العمل اليومية"
	FieldBaseSalary              Field = "الراتب الأساسي"
	FieldHousingAllowance        Field = "بدل السكن"
	FieldAnnualLeave             Field = "الإجازة السنوية"
	FieldOvertimeRate            Field = "أجر الساعة الإضافية"
	FieldTerminationCompensation Field = "التعويض عند الفسخ بدون سبب"
)

// contractFields is the canonical column order. Membership and order never
// change at runtime; exports and quality reports both iterate this slice.
var contractFields = []Field{
	FieldContractNumber,
	FieldContractDate,
	FieldCompanyName,
	FieldUnifiedNumber,
	FieldEstablishmentNumber,
	FieldCommercialRegistration,
	FieldCompanyAddress,
	FieldWorkLocation,
	FieldCompanyEmail,
	FieldSignatoryName,
	FieldSignatoryTitle,
	FieldEmployeeName,
	FieldIDNumber,
	FieldIDType,
	FieldBirthDate,
	FieldIDExpiry,
	FieldNationality,
	FieldGender,
	FieldReligion,
	FieldMaritalStatus,
	FieldEducation,
	FieldSpecialty,
	FieldProfession,
	FieldEmployeeNumber,
	FieldIBAN,
	FieldBankName,
	FieldEmployeeEmail,
	FieldMobileNumber,
	FieldContractStart,
	FieldContractEnd,
	FieldJoiningDate,
	FieldContractDuration,
	FieldTrialPeriod,
	FieldWeeklyWorkdays,
	FieldDailyHours,
	FieldBaseSalary,
	FieldHousingAllowance,
	FieldAnnualLeave,
	FieldOvertimeRate,
	FieldTerminationCompensation,
}

// ContractFields returns the schema in canonical order. Callers get a copy so
// the configuration stays immutable.
func ContractFields() []Field {
	out := make([]Field, len(contractFields))
	copy(out, contractFields)
	return out
}

// NumFields is the schema size (the denominator of every quality report).
func NumFields() int {
	return len(contractFields)
}

// FieldHeaders returns the ordered column headers as plain strings.
func FieldHeaders() []string {
	out := make([]string, len(contractFields))
	for i, f := range contractFields {
		out[i] = string(f)
	}
	return out
}

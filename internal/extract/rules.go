package extract

import (
	"regexp"

	"github.com/qiwa-tools/contract-extract/constants"
)

// Kind selects the sanitizer applied to a located raw value.
type Kind int

const (
	KindText        Kind = iota // free text, mirrored-value flip applied
	KindDigits                  // identifiers: keep digits only
	KindDate                    // canonicalize to DD/MM/YYYY
	KindAmount                  // grouped decimal -> integer digit string
	KindShortNumber             // small counts with digit-swap repair
	KindIBAN                    // squeeze whitespace
)

// Rule declares how one schema field is located. Aliases are tried in order
// against "alias: value" lines (then "value :alias" as a fallback); Sentence
// is a free-text pattern whose Group capture holds the raw value. A rule may
// carry both; aliases win.
type Rule struct {
	Field    constants.Field
	Kind     Kind
	Aliases  []string
	Sentence string
	Group    int // capture group in Sentence, default 1
}

// dateToken matches the 3-part numeral tokens this template uses for dates.
const dateToken = `([0-9]{2,4}[-/][0-9]{1,2}[-/][0-9]{2,4})`

// DefaultRules is the rule table for the Qiwa contract template. Alias lists
// include the corrupted spellings this template family actually produces
// (doubled alef, broken lam-alef ligatures), not just the dictionary forms.
func DefaultRules() []Rule {
	return []Rule{
		{Field: constants.FieldContractNumber, Kind: KindDigits, Aliases: []string{"رقم العقد", "Contract Number"}},
		{Field: constants.FieldContractDate, Kind: KindDate, Sentence: `في يوم\s*\)?\(?\s*` + dateToken + `\s*\)?`},

		{Field: constants.FieldCompanyName, Kind: KindText, Aliases: []string{"شركة/مؤسسة", "Corporation/Company"}},
		{Field: constants.FieldUnifiedNumber, Kind: KindDigits, Aliases: []string{"الرقم الوطني الموحد", "National Unified Number"}},
		{Field: constants.FieldEstablishmentNumber, Kind: KindDigits, Aliases: []string{"رقم المنشأة", "Establishment Number"}},
		{Field: constants.FieldCommercialRegistration, Kind: KindDigits, Aliases: []string{"السجل التجاري", "Commercial Registration"}},
		{Field: constants.FieldCompanyAddress, Kind: KindText, Aliases: []string{"عنوان الشركة", "العنوان", "Address"}},
		{Field: constants.FieldWorkLocation, Kind: KindText, Aliases: []string{"مكان العمل", "Work Location"}},

		{Field: constants.FieldEmployeeName, Kind: KindText, Aliases: []string{"االسم", "الاسم", "اسم الموظف", "Name"}},
		{Field: constants.FieldIDNumber, Kind: KindDigits, Aliases: []string{"رقم الهوية", "Identity Number"}},
		{Field: constants.FieldIDType, Kind: KindText, Aliases: []string{"نوع الهوية", "ID Type"}},
		{Field: constants.FieldBirthDate, Kind: KindDate, Aliases: []string{"تاريخ الميالد", "تاريخ الميلاد", "Date of Birth"}},
		{Field: constants.FieldIDExpiry, Kind: KindDate, Aliases: []string{"تاريخ اإلنتهاء", "تاريخ الانتهاء", "ID Expiry Date"}},
		{Field: constants.FieldNationality, Kind: KindText, Aliases: []string{"الجنسية", "Nationality"}},
		{Field: constants.FieldGender, Kind: KindText, Aliases: []string{"الجنس", "Gender"}},
		{Field: constants.FieldReligion, Kind: KindText, Aliases: []string{"الديانة", "Religion"}},
		{Field: constants.FieldMaritalStatus, Kind: KindText, Aliases: []string{"الحالة االجتماعية", "الحالة الاجتماعية", "Marital Status"}},
		{Field: constants.FieldEducation, Kind: KindText, Aliases: []string{"المؤهل العلمي", "Education"}},
		{Field: constants.FieldSpecialty, Kind: KindText, Aliases: []string{"التخصص", "Speciality", "Specialty"}},
		{Field: constants.FieldProfession, Kind: KindText, Aliases: []string{"المهنة", "Profession"}},
		{Field: constants.FieldEmployeeNumber, Kind: KindDigits, Aliases: []string{"الرقم الوظيفي", "Employee Number"}},
		{Field: constants.FieldIBAN, Kind: KindIBAN, Aliases: []string{"رقم اآليبان", "رقم الآيبان", "Iban", "IBAN"}},
		{Field: constants.FieldBankName, Kind: KindText, Aliases: []string{"اسم البنك", "Bank Name"}},

		{Field: constants.FieldContractStart, Kind: KindDate, Sentence: `يبدأ من تاريخ\s*` + dateToken + `.*?وينتهي في\s*[,،]?\s*` + dateToken},
		{Field: constants.FieldContractEnd, Kind: KindDate, Sentence: `يبدأ من تاريخ\s*` + dateToken + `.*?وينتهي في\s*[,،]?\s*` + dateToken, Group: 2},
		{Field: constants.FieldJoiningDate, Kind: KindDate, Sentence: `تاريخ مباشرة.*?هو\s*[\.،,]?\s*` + dateToken},
		// The digit-swap repair applies only to trial period, annual leave, and
		// overtime rate: those are the two-digit counts this template mirrors.
		// Durations, workdays, and hours keep their digits as printed, where a
		// leading zero can be legitimate.
		{Field: constants.FieldContractDuration, Kind: KindDigits, Sentence: `مدة هذا العقد\s+(\d+)\s*(?:سنة|سنوات|شهر|أشهر)`},
		{Field: constants.FieldTrialPeriod, Kind: KindShortNumber, Sentence: `فترة تجربة مدتها\s*(\d+)\s*يوم`},
		{Field: constants.FieldWeeklyWorkdays, Kind: KindDigits, Sentence: `تحدد أيام العمل العادية بـ\s*(\d+)\s*أيام`},
		{Field: constants.FieldDailyHours, Kind: KindDigits, Sentence: `تحدد ساعات العمل بـ\s*(\d+)\s*يومي`},
		{Field: constants.FieldBaseSalary, Kind: KindAmount, Sentence: `أجرًا\s*أساسي\s*قدره\s*([\d.,]+)`},
		{Field: constants.FieldHousingAllowance, Kind: KindAmount, Sentence: `أجر\s*([\d.,]+)\s*ريال\s*سعودي\s*[,،]?\s*بدل\s*سكن`},
		{Field: constants.FieldAnnualLeave, Kind: KindShortNumber, Sentence: `إجازة\s*سنوية\s*مدتها\s*(\d+)\s*يوم`},
		{Field: constants.FieldOvertimeRate, Kind: KindShortNumber, Sentence: `مضافًا إليه\s*[٪%]\s*(\d+)`},
		{Field: constants.FieldTerminationCompensation, Kind: KindAmount, Sentence: `تعويضًا.*?قدره\s*([\d.,]+)\s*ريال\s*سعودي`},
	}
}

// compiledRule is a Rule with its lookup patterns prebuilt.
type compiledRule struct {
	Rule
	after    []*regexp.Regexp // `alias\s*:\s*(value)`
	before   []*regexp.Regexp // `(value)\s*:\s*alias`
	sentence *regexp.Regexp
}

func compileRules(rules []Rule) []*compiledRule {
	out := make([]*compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := &compiledRule{Rule: r}
		if cr.Group == 0 {
			cr.Group = 1
		}
		for _, alias := range r.Aliases {
			q := regexp.QuoteMeta(alias)
			cr.after = append(cr.after, regexp.MustCompile(q+`\s*:\s*([^\n]+)`))
			cr.before = append(cr.before, regexp.MustCompile(`([^\n:]+)\s*:\s*`+q))
		}
		if r.Sentence != "" {
			cr.sentence = regexp.MustCompile(r.Sentence)
		}
		out = append(out, cr)
	}
	return out
}

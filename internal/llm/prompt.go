package llm

import (
	"strings"
)

// BuildSystemPrompt composes the system message: copy-verbatim extraction of
// the listed fields with the same canonical value formats the sanitizers
// produce, so merged values stay indistinguishable from rule-extracted ones.
func BuildSystemPrompt(req FillRequest) string {
	names := make([]string, 0, len(req.Fields))
	for _, f := range req.Fields {
		names = append(names, `"`+string(f)+`"`)
	}

	parts := []string{
		"أنت مساعد لاستخراج بيانات عقود العمل السعودية (منصة قوى). أعد JSON فقط بدون أي نص آخر.",
		"المطلوب استخراج قيم الحقول التالية فقط، بنفس أسمائها كمفاتيح: " + strings.Join(names, ", ") + ".",
		"انسخ القيم حرفيًا من نص العقد ولا تؤلف أي قيمة.",
		"إذا لم تجد قيمة حقل في النص ضع سلسلة فارغة \"\".",
		"التواريخ بصيغة DD/MM/YYYY.",
		"الأرقام التعريفية (رقم العقد، رقم الهوية، السجل التجاري وما شابه) أرقام فقط بدون فواصل أو مسافات.",
		"المبالغ المالية أرقام صحيحة بدون فواصل آلاف وبدون كسور.",
		"رقم الجوال بصيغة دولية تبدأ بـ 966 بدون صفر بعدها (مثال: 9660551234567 تصبح 966551234567).",
		"أضف مفتاح \"_evidence\" يحوي لكل حقل الجملة التي أُخذت منها القيمة، ومفتاح \"_confidence\" يحوي لكل حقل درجة ثقة بين 0 و 1.",
		"Return ONLY JSON that matches the provided JSON Schema. Never output null; use \"\" instead.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the contract text, truncated to maxChars so a long
// multi-contract PDF cannot blow the request budget. The budget counts runes,
// not bytes: cutting mid code point would ship invalid UTF-8. maxChars <= 0
// disables truncation.
func BuildUserPrompt(text string, maxChars int) string {
	var b strings.Builder
	b.WriteString("نص العقد بعد المعالجة:\n")
	if r := []rune(text); maxChars > 0 && len(r) > maxChars {
		b.WriteString(string(r[:maxChars]))
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}

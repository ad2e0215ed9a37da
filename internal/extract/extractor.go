// Package extract locates the canonical contract fields in normalized text
// and sanitizes each into its canonical form. Extraction never fails: a field
// that cannot be found degrades to the empty string and the others proceed.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/entity"
	"github.com/qiwa-tools/contract-extract/internal/sanitize"
)

// EmailStrategy selects how employer vs employee email is assigned.
type EmailStrategy string

const (
	// EmailPositional assigns the first email in document order to the
	// employer and the second to the employee.
	EmailPositional EmailStrategy = "positional"
	// EmailSectioned scopes the lookup to the first-party and second-party
	// sections of the contract.
	EmailSectioned EmailStrategy = "sectioned"
)

// Options tunes the heuristics that were calibrated on the observed template.
type Options struct {
	FlipMinArabic int           // minimum Arabic letters before a value flip
	EmailStrategy EmailStrategy // default EmailSectioned
}

// Extractor applies a rule table over normalized text to build a Record.
type Extractor struct {
	fields []constants.Field
	rules  []*compiledRule
	opts   Options
	log    *slog.Logger
}

// New builds an extractor over an injected schema and rule table.
func New(fields []constants.Field, rules []Rule, opts Options, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.FlipMinArabic <= 0 {
		opts.FlipMinArabic = sanitize.DefaultFlipMinArabic
	}
	if opts.EmailStrategy == "" {
		opts.EmailStrategy = EmailSectioned
	}
	// Rules for fields outside the injected schema are dropped up front so a
	// narrowed schema narrows extraction too.
	known := make(map[constants.Field]struct{}, len(fields))
	for _, f := range fields {
		known[f] = struct{}{}
	}
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if _, ok := known[r.Field]; ok {
			kept = append(kept, r)
		}
	}
	return &Extractor{
		fields: fields,
		rules:  compileRules(kept),
		opts:   opts,
		log:    logger,
	}
}

// Schema returns the field set this extractor populates.
func (e *Extractor) Schema() []constants.Field {
	return e.fields
}

// Contract landmarks and the compound-field joining keyword.
const (
	kwFirstParty  = "الطرف الأول"
	kwSecondParty = "الطرف الثاني"
	kwAgreement   = "اتفق الطرفان"
	kwSignatory   = "ويمثلها بالتوقيع"
	kwInCapacity  = "بصفته"
	kwMobileLabel = "رقم الجوال"
)

var (
	reEmail     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	reSignatory = regexp.MustCompile(kwSignatory + `\s*:\s*([^\n]+)`)
)

// Extract builds a complete record from normalized text. Every schema field
// is present in the result; fields that cannot be located stay empty.
func (e *Extractor) Extract(text string) *entity.Record {
	rec := &entity.Record{}
	if strings.TrimSpace(text) == "" {
		return rec
	}

	for _, cr := range e.rules {
		raw := e.locate(text, cr)
		if raw == "" {
			e.log.Debug("extract.field_miss", "field", string(cr.Field))
			continue
		}
		rec.Set(cr.Field, e.applyKind(cr.Kind, raw))
	}

	e.extractEmails(text, rec)
	e.extractSignatory(text, rec)
	e.extractMobile(text, rec)
	return rec
}

// locate tries the rule's aliases in order against "alias: value" lines, then
// against the swapped "value :alias" ordering, then the sentence pattern.
// First non-empty trimmed match wins.
func (e *Extractor) locate(text string, cr *compiledRule) string {
	for _, re := range cr.after {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	for _, re := range cr.before {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	if cr.sentence != nil {
		if m := cr.sentence.FindStringSubmatch(text); m != nil && len(m) > cr.Group {
			return strings.TrimSpace(m[cr.Group])
		}
	}
	return ""
}

func (e *Extractor) applyKind(k Kind, raw string) string {
	switch k {
	case KindDigits:
		return sanitize.DigitsOnly(raw)
	case KindDate:
		return sanitize.FormatDate(raw)
	case KindAmount:
		return sanitize.AmountToInt(raw)
	case KindShortNumber:
		return sanitize.SwapShortNumber(raw)
	case KindIBAN:
		return sanitize.SqueezeSpaces(raw)
	default:
		return sanitize.FlipRTL(strings.TrimSpace(raw), e.opts.FlipMinArabic)
	}
}

// extractEmails assigns employer and employee emails. Both observed strategies
// are kept (see Options): positional first/second assignment, or lookup scoped
// to each party's section of the contract.
func (e *Extractor) extractEmails(text string, rec *entity.Record) {
	switch e.opts.EmailStrategy {
	case EmailPositional:
		all := reEmail.FindAllString(text, -1)
		if len(all) > 0 {
			rec.Set(constants.FieldCompanyEmail, all[0])
		}
		if len(all) > 1 {
			rec.Set(constants.FieldEmployeeEmail, all[1])
		}
	default:
		if sec := sliceBetween(text, kwFirstParty, kwSecondParty); sec != "" {
			if m := reEmail.FindString(sec); m != "" {
				rec.Set(constants.FieldCompanyEmail, m)
			}
		}
		if sec := sliceBetween(text, kwSecondParty, kwAgreement); sec != "" {
			if m := reEmail.FindString(sec); m != "" {
				rec.Set(constants.FieldEmployeeEmail, m)
			}
		}
	}
}

// extractSignatory splits "ويمثلها بالتوقيع: <name> بصفته <title>" into the
// signatory name and title. Without the joining keyword the whole value is the
// name and the title stays empty.
func (e *Extractor) extractSignatory(text string, rec *entity.Record) {
	m := reSignatory.FindStringSubmatch(text)
	if m == nil {
		return
	}
	line := sanitize.FlipRTL(strings.TrimSpace(m[1]), e.opts.FlipMinArabic)
	if name, title, ok := strings.Cut(line, kwInCapacity); ok {
		rec.Set(constants.FieldSignatoryName, strings.TrimSpace(name))
		rec.Set(constants.FieldSignatoryTitle, strings.TrimSpace(title))
		return
	}
	rec.Set(constants.FieldSignatoryName, line)
}

// extractMobile normalizes the number out of the whole phone-label line; the
// country code and local number can arrive as separate digit runs in either
// order, so single-value lookup is not enough.
func (e *Extractor) extractMobile(text string, rec *entity.Record) {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, kwMobileLabel) {
			if v := sanitize.MobileFromLine(line); v != "" {
				rec.Set(constants.FieldMobileNumber, v)
			}
			return
		}
	}
}

// sliceBetween returns the text from the first occurrence of start up to the
// next occurrence of end (or to the end of text when absent).
func sliceBetween(text, start, end string) string {
	s := strings.Index(text, start)
	if s == -1 {
		return ""
	}
	rest := text[s:]
	if e := strings.Index(rest[len(start):], end); e != -1 {
		return rest[:len(start)+e]
	}
	return rest
}

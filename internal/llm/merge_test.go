package llm

import (
	"testing"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/entity"
)

func TestMergeFillEmpty(t *testing.T) {
	rec := &entity.Record{}
	rec.Set(constants.FieldContractNumber, "22477445")

	// One overwrite attempt, one gap fill, one empty value, one unknown field.
	res := FillResult{Values: map[constants.Field]string{
		constants.FieldContractNumber: "999",
		constants.FieldNationality:    "سعودي",
		constants.FieldGender:         "",
		constants.Field("ليس حقلا"):   "ignored",
	}}

	if got := MergeFillEmpty(rec, res); got != 1 {
		t.Errorf("filled = %d, want 1", got)
	}
	if got := rec.Value(constants.FieldContractNumber); got != "22477445" {
		t.Errorf("extracted value overwritten: %q", got)
	}
	if got := rec.Value(constants.FieldNationality); got != "سعودي" {
		t.Errorf("gap not filled: %q", got)
	}
	if got := rec.Value(constants.FieldGender); got != "" {
		t.Errorf("empty model value written: %q", got)
	}
}

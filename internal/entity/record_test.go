package entity

import (
	"fmt"
	"testing"

	"github.com/qiwa-tools/contract-extract/constants"
)

func TestRecordCoversEverySchemaField(t *testing.T) {
	rec := &Record{}
	for i, f := range constants.ContractFields() {
		v := fmt.Sprintf("v%d", i)
		if !rec.Set(f, v) {
			t.Fatalf("Set(%q) rejected a schema field", f)
		}
		if got := rec.Value(f); got != v {
			t.Fatalf("Value(%q) = %q, want %q", f, got, v)
		}
	}

	row := rec.Row()
	if len(row) != constants.NumFields() {
		t.Fatalf("Row() length = %d, want %d", len(row), constants.NumFields())
	}
	for i, v := range row {
		if want := fmt.Sprintf("v%d", i); v != want {
			t.Errorf("Row()[%d] = %q, want %q", i, v, want)
		}
	}
}

func TestRecordUnknownField(t *testing.T) {
	rec := &Record{}
	if rec.Set(constants.Field("ليس حقلا"), "x") {
		t.Error("Set accepted an unknown field")
	}
	if got := rec.Value(constants.Field("ليس حقلا")); got != "" {
		t.Errorf("Value for unknown field = %q, want empty", got)
	}
}

func TestSetIfEmpty(t *testing.T) {
	rec := &Record{}
	f := constants.FieldNationality

	if !rec.SetIfEmpty(f, "سعودي") {
		t.Fatal("SetIfEmpty rejected an empty slot")
	}
	if rec.SetIfEmpty(f, "مصري") {
		t.Error("SetIfEmpty overwrote an existing value")
	}
	if got := rec.Value(f); got != "سعودي" {
		t.Errorf("Value = %q, want the first write", got)
	}
	if rec.SetIfEmpty(constants.FieldGender, "  ") {
		t.Error("SetIfEmpty accepted a blank value")
	}
}

func TestSetTrims(t *testing.T) {
	rec := &Record{}
	rec.Set(constants.FieldContractNumber, "  22477445 ")
	if got := rec.ContractNumber; got != "22477445" {
		t.Errorf("ContractNumber = %q, want trimmed value", got)
	}
}

func TestStringMap(t *testing.T) {
	rec := &Record{}
	rec.Set(constants.FieldContractNumber, "1")
	m := rec.StringMap()
	if len(m) != constants.NumFields() {
		t.Fatalf("StringMap size = %d, want %d", len(m), constants.NumFields())
	}
	if m[string(constants.FieldContractNumber)] != "1" {
		t.Errorf("StringMap missing set value")
	}
	if v, ok := m[string(constants.FieldNationality)]; !ok || v != "" {
		t.Errorf("StringMap must carry empty fields too, got (%q, %v)", v, ok)
	}
}

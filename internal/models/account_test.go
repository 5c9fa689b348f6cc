package models

import "testing"

func TestParseAccountID(t *testing.T) {
	num := ParseAccountID("42")
	if !num.IsNumeric() {
		t.Fatal("\"42\" must parse as numeric")
	}
	if n, _ := num.Numeric(); n != 42 {
		t.Errorf("numeric value: want 42, got %d", n)
	}

	op := ParseAccountID("665f1c2ab91e8a0a7c3d9e41")
	if op.IsNumeric() {
		t.Fatal("hex object id must stay opaque")
	}
	if _, ok := op.Numeric(); ok {
		t.Error("opaque id must not expose a numeric value")
	}
}

func TestAccountIDComparisons(t *testing.T) {
	if !NumericAccountID(7).EqualsNumeric(7) {
		t.Error("numeric 7 must equal 7")
	}
	if OpaqueAccountID("7x").EqualsNumeric(7) {
		t.Error("opaque id must never match a numeric key")
	}
	if !NumericAccountID(7).Equal(ParseAccountID("7")) {
		t.Error("numeric ids with equal value must be equal")
	}
	if NumericAccountID(7).Equal(OpaqueAccountID("7")) {
		t.Error("numeric and opaque ids are different variants even with equal text")
	}
}

func TestAccountIDScan(t *testing.T) {
	var id AccountID
	if err := id.Scan("123"); err != nil {
		t.Fatal(err)
	}
	if !id.EqualsNumeric(123) {
		t.Errorf("scanned id: want numeric 123, got %v", id)
	}

	if err := id.Scan([]byte("abc-1")); err != nil {
		t.Fatal(err)
	}
	if id.IsNumeric() {
		t.Error("\"abc-1\" must scan as opaque")
	}

	v, err := id.Value()
	if err != nil || v != "abc-1" {
		t.Errorf("Value(): want abc-1, got %v (%v)", v, err)
	}

	if err := id.Scan(3.14); err == nil {
		t.Error("float scan must fail")
	}
}

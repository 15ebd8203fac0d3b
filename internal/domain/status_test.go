package domain

import "testing"

func TestParseOrderStatus(t *testing.T) {
	valid := []string{"pending", "confirmed", "preparing", "out_for_delivery", "delivered", "cancelled"}
	for _, raw := range valid {
		status, err := ParseOrderStatus(raw)
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q): unexpected error %v", raw, err)
		}
		if string(status) != raw {
			t.Fatalf("ParseOrderStatus(%q) = %q", raw, status)
		}
	}

	for _, raw := range []string{"", "Pending", "shipped", "done"} {
		if _, err := ParseOrderStatus(raw); err == nil {
			t.Fatalf("ParseOrderStatus(%q): expected error", raw)
		} else if !IsValidation(err) {
			t.Fatalf("ParseOrderStatus(%q): expected validation error, got %v", raw, err)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	if !IsNotFound(NotFoundf("missing")) {
		t.Error("NotFoundf should satisfy IsNotFound")
	}
	if !IsConflict(Conflictf("duplicate")) {
		t.Error("Conflictf should satisfy IsConflict")
	}
	if !IsValidation(Validationf("bad input")) {
		t.Error("Validationf should satisfy IsValidation")
	}
	if IsNotFound(Validationf("bad input")) {
		t.Error("validation error must not satisfy IsNotFound")
	}
}

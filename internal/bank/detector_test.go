package bank

import "testing"

func TestDetect_FirstMatch(t *testing.T) {
	d := NewDetector([]string{"Chase", "Wells Fargo"})
	if got := d.Detect("Your Chase account summary"); got != "Chase" {
		t.Errorf("expected Chase, got %q", got)
	}
}

func TestDetect_CaseInsensitive(t *testing.T) {
	d := NewDetector(DefaultNames())
	if got := d.Detect("statement from WELLS FARGO bank, n.a."); got != "Wells Fargo" {
		t.Errorf("expected Wells Fargo, got %q", got)
	}
}

func TestDetect_ListOrderIsPriority(t *testing.T) {
	// Both names appear; the earlier listed one wins.
	d := NewDetector([]string{"Wells Fargo", "Chase"})
	if got := d.Detect("Transferred from Chase to Wells Fargo"); got != "Wells Fargo" {
		t.Errorf("expected list order to decide, got %q", got)
	}
}

func TestDetect_SpecificNamePrecedesShort(t *testing.T) {
	d := NewDetector(DefaultNames())
	if got := d.Detect("JPMorgan Chase & Co. statement"); got != "JPMorgan Chase" {
		t.Errorf("expected the specific name, got %q", got)
	}
}

func TestDetect_Unknown(t *testing.T) {
	d := NewDetector(DefaultNames())
	if got := d.Detect("a statement from a tiny credit union"); got != Unknown {
		t.Errorf("expected %q, got %q", Unknown, got)
	}
}

func TestDetect_EmptyList(t *testing.T) {
	d := NewDetector(nil)
	if got := d.Detect("Chase"); got != Unknown {
		t.Errorf("expected %q with empty list, got %q", Unknown, got)
	}
}

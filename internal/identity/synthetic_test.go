package identity

import (
	"strings"
	"testing"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

func TestSubstituterConsistency(t *testing.T) {
	s := NewSubstituter(42)

	a := &models.GuestRecord{FirstName: "Ada", LastName: "Lovelace", EmailAddress: "ada@example.com"}
	b := &models.GuestRecord{FirstName: "Ada", LastName: "Hopper", EmailAddress: "ada@example.com"}

	s.Apply(a)
	s.Apply(b)

	if a.FirstName != b.FirstName {
		t.Errorf("same original first name should map to the same fake: %q vs %q", a.FirstName, b.FirstName)
	}
	if a.LastName == b.LastName {
		t.Errorf("different originals should map to different fakes")
	}
	if a.EmailAddress != b.EmailAddress {
		t.Errorf("same original email should map to the same fake")
	}
}

func TestSubstituterReplacesValues(t *testing.T) {
	s := NewSubstituter(42)
	rec := &models.GuestRecord{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Address1:        "12 Elm St",
		PhoneNumber:     "617-555-0100",
		EmailAddress:    "ada@example.com",
		InternetAddress: "ada.l@example.org",
		GroupName:       "Summit Club",
	}
	s.Apply(rec)

	checks := []struct {
		field, value, original, prefix string
	}{
		{"FirstName", rec.FirstName, "Ada", "fn_"},
		{"LastName", rec.LastName, "Lovelace", "ln_"},
		{"Address1", rec.Address1, "12 Elm St", "a1_"},
		{"PhoneNumber", rec.PhoneNumber, "617-555-0100", "ph_"},
		{"EmailAddress", rec.EmailAddress, "ada@example.com", "em_"},
		{"InternetAddress", rec.InternetAddress, "ada.l@example.org", "ia_"},
		{"GroupName", rec.GroupName, "Summit Club", "group_"},
	}
	for _, c := range checks {
		if c.value == c.original {
			t.Errorf("%s was not substituted", c.field)
		}
		if !strings.HasPrefix(c.value, c.prefix) {
			t.Errorf("%s: expected prefix %q, got %q", c.field, c.prefix, c.value)
		}
	}
}

func TestSubstituterKeepsEmptyFieldsEmpty(t *testing.T) {
	s := NewSubstituter(1)
	rec := &models.GuestRecord{FirstName: "Ada"}
	s.Apply(rec)

	if rec.LastName != "" || rec.EmailAddress != "" || rec.Address2 != "" {
		t.Error("empty PII fields should stay empty")
	}
	if rec.FirstName == "Ada" || rec.FirstName == "" {
		t.Errorf("non-empty field should be replaced, got %q", rec.FirstName)
	}
}

func TestSubstituterSeedReproducibility(t *testing.T) {
	a := NewSubstituter(7)
	b := NewSubstituter(7)

	ra := &models.GuestRecord{FirstName: "Ada"}
	rb := &models.GuestRecord{FirstName: "Ada"}
	a.Apply(ra)
	b.Apply(rb)

	if ra.FirstName != rb.FirstName {
		t.Errorf("same seed should reproduce the same substitution: %q vs %q", ra.FirstName, rb.FirstName)
	}
}

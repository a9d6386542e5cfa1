package identity

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// Substituter replaces PII values with synthetic, internally consistent
// fakes for de-identified exports. Each distinct original value maps to
// exactly one synthetic value within a batch, so joins on PII columns
// survive the substitution.
type Substituter struct {
	faker *gofakeit.Faker

	firstNames map[string]string
	lastNames  map[string]string
	addr1      map[string]string
	addr2      map[string]string
	phones     map[string]string
	homePhones map[string]string
	cellPhones map[string]string
	emails     map[string]string
	internet   map[string]string
	groupNames map[string]string
}

// NewSubstituter creates a batch substituter. Seed 0 draws a random
// seed; any other value makes the substitution reproducible.
func NewSubstituter(seed uint64) *Substituter {
	return &Substituter{
		faker:      gofakeit.New(seed),
		firstNames: make(map[string]string),
		lastNames:  make(map[string]string),
		addr1:      make(map[string]string),
		addr2:      make(map[string]string),
		phones:     make(map[string]string),
		homePhones: make(map[string]string),
		cellPhones: make(map[string]string),
		emails:     make(map[string]string),
		internet:   make(map[string]string),
		groupNames: make(map[string]string),
	}
}

// suffix disambiguates synthetic values so two originals never
// accidentally collapse into one fake.
func (s *Substituter) suffix() string {
	return s.faker.LetterN(3) + s.faker.DigitN(2)
}

func (s *Substituter) substitute(table map[string]string, original, prefix string, gen func() string) string {
	if original == "" {
		return ""
	}
	if fake, ok := table[original]; ok {
		return fake
	}
	fake := fmt.Sprintf("%s_%s_%s", prefix, gen(), s.suffix())
	table[original] = fake
	return fake
}

// Apply rewrites the PII fields of a record in place with synthetic
// values. Empty fields stay empty.
func (s *Substituter) Apply(r *models.GuestRecord) {
	r.FirstName = s.substitute(s.firstNames, r.FirstName, "fn", s.faker.FirstName)
	r.LastName = s.substitute(s.lastNames, r.LastName, "ln", s.faker.LastName)
	r.Address1 = s.substitute(s.addr1, r.Address1, "a1", s.faker.Street)
	r.Address2 = s.substitute(s.addr2, r.Address2, "a2", s.faker.Street)
	r.PhoneNumber = s.substitute(s.phones, r.PhoneNumber, "ph", s.faker.Phone)
	r.HomePhoneNumber = s.substitute(s.homePhones, r.HomePhoneNumber, "home", s.faker.Phone)
	r.CellPhoneNumber = s.substitute(s.cellPhones, r.CellPhoneNumber, "cell", s.faker.Phone)
	r.EmailAddress = s.substitute(s.emails, r.EmailAddress, "em", s.faker.Email)
	r.InternetAddress = s.substitute(s.internet, r.InternetAddress, "ia", s.faker.Email)
	r.GroupName = s.substitute(s.groupNames, r.GroupName, "group", s.faker.Word)
}

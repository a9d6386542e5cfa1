package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// Separator joins the PII fields of a tuple before hashing. The field
// order is fixed by the schema, never by input order.
const Separator = "$"

// PIITuple is the ordered set of PII fields a UID is derived from.
type PIITuple struct {
	FirstName       string
	LastName        string
	Address1        string
	Address2        string
	City            string
	StateProvince   string
	ZipPostalCode   string
	PhoneNumber     string
	HomePhoneNumber string
	CellPhoneNumber string
	EmailAddress    string
	InternetAddress string
}

// Mapping is one retained (PII tuple -> UID) audit row.
type Mapping struct {
	Tuple PIITuple
	UID   string
}

// TupleFromRecord extracts the PII tuple from a raw reservation row.
func TupleFromRecord(r *models.GuestRecord) PIITuple {
	return PIITuple{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Address1:        r.Address1,
		Address2:        r.Address2,
		City:            r.CityCode,
		StateProvince:   r.StateProvinceCode,
		ZipPostalCode:   r.ZipPostalCode,
		PhoneNumber:     r.PhoneNumber,
		HomePhoneNumber: r.HomePhoneNumber,
		CellPhoneNumber: r.CellPhoneNumber,
		EmailAddress:    r.EmailAddress,
		InternetAddress: r.InternetAddress,
	}
}

func (t PIITuple) fields() []string {
	return []string{
		t.FirstName, t.LastName, t.Address1, t.Address2,
		t.City, t.StateProvince, t.ZipPostalCode,
		t.PhoneNumber, t.HomePhoneNumber, t.CellPhoneNumber,
		t.EmailAddress, t.InternetAddress,
	}
}

// Normalize returns the canonical fingerprint source: fields joined by
// the separator, lowercased, with every rune outside
// [a-z0-9$@\s] stripped. Absent fields contribute an empty token, so
// the function is total.
func (t PIITuple) Normalize() string {
	joined := strings.ToLower(strings.Join(t.fields(), Separator))

	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '$' || r == '@' || r == ' ' || r == '\t' || r == '\n':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UID hashes the normalized tuple into a stable anonymous identifier.
// SHA-256 is used for collision resistance, not speed: two distinct
// normalized tuples colliding is treated as impossible downstream.
func (t PIITuple) UID() string {
	sum := sha256.Sum256([]byte(t.Normalize()))
	return hex.EncodeToString(sum[:])
}

// Resolver assigns UIDs across a batch and retains the de-duplicated
// tuple -> UID mapping table as a by-product.
type Resolver struct {
	seen     map[string]struct{}
	mappings []Mapping
}

// NewResolver creates an empty batch resolver.
func NewResolver() *Resolver {
	return &Resolver{seen: make(map[string]struct{})}
}

// Resolve returns the UID for a record's PII tuple, recording the
// mapping the first time a distinct identity appears.
func (r *Resolver) Resolve(rec *models.GuestRecord) string {
	tuple := TupleFromRecord(rec)
	uid := tuple.UID()

	if _, ok := r.seen[uid]; !ok {
		r.seen[uid] = struct{}{}
		r.mappings = append(r.mappings, Mapping{Tuple: tuple, UID: uid})
	}
	return uid
}

// Mappings returns one audit row per distinct identity, in first-seen
// order.
func (r *Resolver) Mappings() []Mapping {
	return r.mappings
}

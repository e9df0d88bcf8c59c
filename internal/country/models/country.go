package models

import (
	"regexp"
	"strings"
	"time"

	dErrors "countryref/pkg/domain-errors"
)

var (
	alpha2Pattern  = regexp.MustCompile(`^[A-Z]{2}$`)
	alpha3Pattern  = regexp.MustCompile(`^[A-Z]{3}$`)
	numericPattern = regexp.MustCompile(`^[0-9]{3}$`)
)

// Country is one immutable version of a country's reference data.
//
// Invariants:
//   - Name is non-empty
//   - Alpha2 matches ^[A-Z]{2}$ and is the chain key
//   - Alpha3 matches ^[A-Z]{3}$
//   - Numeric matches ^[0-9]{3}$
//   - CreatedAt is non-zero and doubles as the version's sort key
//
// Versions are passed by value. Any change to a country is a new Country with
// the same Alpha2 and a later CreatedAt; nothing edits a stored version.
//
// All versions sharing an Alpha2 form that country's chain. The chain has no
// stored "current" pointer: the active version is the newest one with a nil
// ExpiresAt that is not Deleted.
type Country struct {
	Name      string
	Alpha2    string
	Alpha3    string
	Numeric   string
	CreatedAt time.Time
	ExpiresAt *time.Time
	Deleted   bool
}

// NewCountry validates every field and returns the version.
func NewCountry(name, alpha2, alpha3, numeric string, createdAt time.Time, expiresAt *time.Time, deleted bool) (Country, error) {
	if strings.TrimSpace(name) == "" {
		return Country{}, dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if alpha2 == "" {
		return Country{}, dErrors.New(dErrors.CodeValidation, "alpha2Code is required")
	}
	if alpha3 == "" {
		return Country{}, dErrors.New(dErrors.CodeValidation, "alpha3Code is required")
	}
	if numeric == "" {
		return Country{}, dErrors.New(dErrors.CodeValidation, "numericCode is required")
	}
	if createdAt.IsZero() {
		return Country{}, dErrors.New(dErrors.CodeValidation, "createDate is required")
	}
	if !alpha2Pattern.MatchString(alpha2) {
		return Country{}, dErrors.New(dErrors.CodeValidation, "invalid alpha2Code, expected [A-Z]{2}")
	}
	if !alpha3Pattern.MatchString(alpha3) {
		return Country{}, dErrors.New(dErrors.CodeValidation, "invalid alpha3Code, expected [A-Z]{3}")
	}
	if !numericPattern.MatchString(numeric) {
		return Country{}, dErrors.New(dErrors.CodeValidation, "invalid numericCode, expected [0-9]{3}")
	}

	c := Country{
		Name:      name,
		Alpha2:    alpha2,
		Alpha3:    alpha3,
		Numeric:   numeric,
		CreatedAt: VersionTime(createdAt),
		Deleted:   deleted,
	}
	if expiresAt != nil {
		exp := VersionTime(*expiresAt)
		c.ExpiresAt = &exp
	}
	return c, nil
}

// IsActive reports whether this version can represent current state.
func (c Country) IsActive() bool {
	return c.ExpiresAt == nil && !c.Deleted
}

// Clone returns a copy that shares no pointers with c.
func (c Country) Clone() Country {
	if c.ExpiresAt != nil {
		exp := *c.ExpiresAt
		c.ExpiresAt = &exp
	}
	return c
}

// Supersedes reports whether c sorts after other in chain order.
// A later CreatedAt wins. On equal timestamps a tombstone beats a live
// version, then the larger (Alpha3, Numeric, Name) wins.
func (c Country) Supersedes(other Country) bool {
	if !c.CreatedAt.Equal(other.CreatedAt) {
		return c.CreatedAt.After(other.CreatedAt)
	}
	if c.Deleted != other.Deleted {
		return c.Deleted
	}
	if c.Alpha3 != other.Alpha3 {
		return c.Alpha3 > other.Alpha3
	}
	if c.Numeric != other.Numeric {
		return c.Numeric > other.Numeric
	}
	return c.Name > other.Name
}

// VersionTime normalises a timestamp to the precision every backend keeps:
// UTC, truncated to microseconds.
func VersionTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// CountryInput is the create/update payload.
type CountryInput struct {
	Name    string `json:"name"`
	Alpha2  string `json:"alpha2Code"`
	Alpha3  string `json:"alpha3Code"`
	Numeric string `json:"numericCode"`
}

// Normalize trims whitespace and upper-cases the letter codes.
func (in *CountryInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Alpha2 = NormalizeCode(in.Alpha2)
	in.Alpha3 = NormalizeCode(in.Alpha3)
	in.Numeric = strings.TrimSpace(in.Numeric)
}

// NormalizeCode trims and upper-cases a lookup code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

package store

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"countryref/internal/country/models"
)

// versionDoc is the persisted form of a version for the key-value backends.
type versionDoc struct {
	Name      string     `json:"name"`
	Alpha2    string     `json:"alpha2Code"`
	Alpha3    string     `json:"alpha3Code"`
	Numeric   string     `json:"numericCode"`
	CreatedAt time.Time  `json:"createDate"`
	ExpiresAt *time.Time `json:"expiryDate,omitempty"`
	Deleted   bool       `json:"isDeleted"`
}

func encodeVersion(c models.Country) ([]byte, error) {
	return json.Marshal(versionDoc{
		Name:      c.Name,
		Alpha2:    c.Alpha2,
		Alpha3:    c.Alpha3,
		Numeric:   c.Numeric,
		CreatedAt: c.CreatedAt,
		ExpiresAt: c.ExpiresAt,
		Deleted:   c.Deleted,
	})
}

// decodeVersion re-validates stored data so a corrupt row never reaches callers
// as a Country.
func decodeVersion(b []byte) (models.Country, error) {
	var doc versionDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return models.Country{}, err
	}
	return models.NewCountry(doc.Name, doc.Alpha2, doc.Alpha3, doc.Numeric, doc.CreatedAt, doc.ExpiresAt, doc.Deleted)
}

// descendingStamp encodes t so that byte order is newest first.
// The sign bit is flipped so pre-1970 times still order correctly.
func descendingStamp(t time.Time) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], ^(uint64(t.UnixMicro()) ^ (1 << 63)))
	return b[:]
}

func stampTime(b []byte) time.Time {
	micro := int64(^binary.BigEndian.Uint64(b) ^ (1 << 63))
	return time.UnixMicro(micro).UTC()
}

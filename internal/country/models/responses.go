package models

import "time"

// CountryResponse is the wire form of a version.
type CountryResponse struct {
	Name        string     `json:"name"`
	Alpha2Code  string     `json:"alpha2Code"`
	Alpha3Code  string     `json:"alpha3Code"`
	NumericCode string     `json:"numericCode"`
	CreateDate  time.Time  `json:"createDate"`
	ExpiryDate  *time.Time `json:"expiryDate"`
	IsDeleted   bool       `json:"isDeleted"`
}

func ToResponse(c Country) CountryResponse {
	return CountryResponse{
		Name:        c.Name,
		Alpha2Code:  c.Alpha2,
		Alpha3Code:  c.Alpha3,
		NumericCode: c.Numeric,
		CreateDate:  c.CreatedAt,
		ExpiryDate:  c.Clone().ExpiresAt,
		IsDeleted:   c.Deleted,
	}
}

func ToResponses(cs []Country) []CountryResponse {
	out := make([]CountryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToResponse(c))
	}
	return out
}

// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package oid

import (
	"slices"
	"strings"
	"sync"
)

// X.500 attribute types.
const (
	CommonName             = "2.5.4.3"
	Surname                = "2.5.4.4"
	SerialNumber           = "2.5.4.5"
	Country                = "2.5.4.6"
	Locality               = "2.5.4.7"
	StateOrProvince        = "2.5.4.8"
	Street                 = "2.5.4.9"
	Organization           = "2.5.4.10"
	OrganizationalUnit     = "2.5.4.11"
	Title                  = "2.5.4.12"
	Description            = "2.5.4.13"
	PostalCode             = "2.5.4.17"
	Name                   = "2.5.4.41"
	GivenName              = "2.5.4.42"
	Initials               = "2.5.4.43"
	DNQualifier            = "2.5.4.46"
	EmailAddress           = "1.2.840.113549.1.9.1"
	UserID                 = "0.9.2342.19200300.100.1.1"
	FavouriteDrink         = "0.9.2342.19200300.100.1.5"
	DomainComponent        = "0.9.2342.19200300.100.1.25"
	AuthorityInfoAccess    = "1.3.6.1.5.5.7.1.1"
	AccessOCSP             = "1.3.6.1.5.5.7.48.1"
	AccessCAIssuers        = "1.3.6.1.5.5.7.48.2"
	SubjectKeyIdentifier   = "2.5.29.14"
	KeyUsage               = "2.5.29.15"
	SubjectAltName         = "2.5.29.17"
	BasicConstraints       = "2.5.29.19"
	CRLDistributionPoints  = "2.5.29.31"
	CertificatePolicies    = "2.5.29.32"
	AuthorityKeyIdentifier = "2.5.29.35"
	ExtKeyUsage            = "2.5.29.37"
)

// Public key algorithms recognized in SubjectPublicKeyInfo.
const (
	RSAEncryption = "1.2.840.113549.1.1.1"
	DSA           = "1.2.840.10040.4.1"
)

// registry returns the process-wide table, building it on first call.
var registry = sync.OnceValue(func() map[string]string {
	return map[string]string{
		CommonName:             "CN",
		Surname:                "SN",
		SerialNumber:           "serialNumber",
		Country:                "C",
		Locality:               "L",
		StateOrProvince:        "ST",
		Street:                 "street",
		Organization:           "O",
		OrganizationalUnit:     "OU",
		Title:                  "title",
		Description:            "description",
		PostalCode:             "postalCode",
		Name:                   "name",
		GivenName:              "GN",
		Initials:               "initials",
		DNQualifier:            "dnQualifier",
		EmailAddress:           "emailAddress",
		UserID:                 "UID",
		FavouriteDrink:         "favouriteDrink",
		DomainComponent:        "DC",
		AuthorityInfoAccess:    "authorityInfoAccess",
		AccessOCSP:             "OCSP",
		AccessCAIssuers:        "caIssuers",
		SubjectKeyIdentifier:   "subjectKeyIdentifier",
		KeyUsage:               "keyUsage",
		SubjectAltName:         "subjectAltName",
		BasicConstraints:       "basicConstraints",
		CRLDistributionPoints:  "crlDistributionPoints",
		CertificatePolicies:    "certificatePolicies",
		AuthorityKeyIdentifier: "authorityKeyIdentifier",
		ExtKeyUsage:            "extendedKeyUsage",
		RSAEncryption:          "rsaEncryption",
		DSA:                    "dsaEncryption",
	}
})

// Lookup returns the display name registered for dotted, or dotted itself
// when the OID is unknown. It never fails.
func Lookup(dotted string) string {
	if name, ok := registry()[dotted]; ok {
		return name
	}
	return dotted
}

// Known reports whether dotted has a registered display name.
func Known(dotted string) bool {
	_, ok := registry()[dotted]
	return ok
}

// Entry is one registered OID and its display name.
type Entry struct {
	OID  string `json:"oid" yaml:"oid"`
	Name string `json:"name" yaml:"name"`
}

// Entries returns every registered OID sorted by display name.
func Entries() []Entry {
	reg := registry()
	out := make([]Entry, 0, len(reg))
	for k, v := range reg {
		out = append(out, Entry{OID: k, Name: v})
	}
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return out
}

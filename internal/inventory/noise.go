package inventory

import (
	"cert-inventory/internal/models"
	"cert-inventory/internal/utils"

	"github.com/google/uuid"
)

// NoiseReason tells which deny rule matched a record.
type NoiseReason string

const (
	NoiseNone          NoiseReason = ""
	NoiseIssuer        NoiseReason = "issuer"
	NoiseSubjectPrefix NoiseReason = "subject_prefix"
	NoiseUUIDSubject   NoiseReason = "uuid_subject"
)

// DenyList describes records that are never reported. Matching is case-sensitive except
// for the UUID check.
type DenyList struct {
	IssuerSubstrings   []string
	SubjectPrefixes    []string
	RejectUUIDSubjects bool
}

// DefaultDenyList drops platform vendor certificates, trust anchors named trust_* and
// machine-generated certificates whose subject is a bare UUID.
var DefaultDenyList = DenyList{
	IssuerSubstrings:   []string{"Adobe", "Microsoft", "Apple"},
	SubjectPrefixes:    []string{"trust_"},
	RejectUUIDSubjects: true,
}

// Extend returns a copy of d with the extra rules appended.
func (d DenyList) Extend(issuers, prefixes []string) DenyList {
	return DenyList{
		IssuerSubstrings:   utils.AppendUnique(d.IssuerSubstrings, issuers...),
		SubjectPrefixes:    utils.AppendUnique(d.SubjectPrefixes, prefixes...),
		RejectUUIDSubjects: d.RejectUUIDSubjects,
	}
}

// Check reports whether rec is noise and which rule matched first.
func (d DenyList) Check(rec models.CertificateRecord) (NoiseReason, bool) {
	if _, ok := utils.ContainsAnyOf(rec.Issuer, d.IssuerSubstrings); ok {
		return NoiseIssuer, true
	}

	if _, ok := utils.HasAnyPrefix(rec.Subject, d.SubjectPrefixes); ok {
		return NoiseSubjectPrefix, true
	}

	if d.RejectUUIDSubjects && IsCanonicalUUID(rec.Subject) {
		return NoiseUUIDSubject, true
	}

	return NoiseNone, false
}

// IsNoise reports whether rec matches d.
func (d DenyList) IsNoise(rec models.CertificateRecord) bool {
	_, noise := d.Check(rec)
	return noise
}

// IsNoise applies DefaultDenyList.
func IsNoise(rec models.CertificateRecord) bool {
	return DefaultDenyList.IsNoise(rec)
}

// IsCanonicalUUID matches exactly the 8-4-4-4-12 hexadecimal form, in any letter case.
// uuid.Parse also accepts braced, URN and unhyphenated forms, hence the length check.
func IsCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Package signing simulates APK signing metadata: the current signer set and
// the optional certificate rotation history.
//
// A nil slice means the value is absent. A non-nil empty slice is present, so
// presence and emptiness are tracked separately.
package signing

// SigningInfo holds the simulated signing state of one package.
type SigningInfo struct {
	signatures       []Signature
	pastCertificates []Signature
}

// NewSigningInfo creates a SigningInfo; either argument may be nil.
func NewSigningInfo(signatures, pastCertificates []Signature) *SigningInfo {
	return &SigningInfo{
		signatures:       signatures,
		pastCertificates: pastCertificates,
	}
}

func (si *SigningInfo) SetSignatures(signatures []Signature) {
	si.signatures = signatures
}

func (si *SigningInfo) SetPastSigningCertificates(pastCertificates []Signature) {
	si.pastCertificates = pastCertificates
}

// HasMultipleSigners reports whether more than one current signer is present.
func (si *SigningInfo) HasMultipleSigners() bool {
	return si.signatures != nil && len(si.signatures) > 1
}

// HasPastSigningCertificates reports whether both signatures and past
// certificates are present, regardless of their length.
func (si *SigningInfo) HasPastSigningCertificates() bool {
	return si.signatures != nil && si.pastCertificates != nil
}

// SigningCertificateHistory resolves the certificate history:
// multi-signer packages have none, packages without rotation report their
// signatures, and rotated packages report the past certificates.
func (si *SigningInfo) SigningCertificateHistory() []Signature {
	switch {
	case si.HasMultipleSigners():
		return nil
	case !si.HasPastSigningCertificates():
		return si.signatures
	default:
		return si.pastCertificates
	}
}

// APKContentsSigners returns the configured signatures verbatim. Only
// meaningful when HasMultipleSigners is true.
func (si *SigningInfo) APKContentsSigners() []Signature {
	return si.signatures
}

package domain

import (
	"crypto/sha1"
	"crypto/x509"
	"encoding/hex"
	"strings"
	"time"
)

// CertificateInfo holds the fields extracted from the server certificate
// observed during a successful TLS handshake. Immutable once constructed.
type CertificateInfo struct {
	Subject        string `json:"subject"`
	Issuer         string `json:"issuer"`
	ExpirationDate string `json:"expirationDate"`
	Thumbprint     string `json:"thumbprint"`
	KeyAlgorithm   string `json:"keyAlgorithm"`
}

// NewCertificateInfo extracts the recorded fields from a parsed certificate.
// The thumbprint is the uppercase hex SHA-1 digest of the raw DER bytes and
// the expiration date is rendered as RFC 3339 in UTC; both formats are part
// of the output contract and must stay stable across runs.
func NewCertificateInfo(cert *x509.Certificate) *CertificateInfo {
	sum := sha1.Sum(cert.Raw)
	return &CertificateInfo{
		Subject:        cert.Subject.String(),
		Issuer:         cert.Issuer.String(),
		ExpirationDate: cert.NotAfter.UTC().Format(time.RFC3339),
		Thumbprint:     strings.ToUpper(hex.EncodeToString(sum[:])),
		KeyAlgorithm:   cert.PublicKeyAlgorithm.String(),
	}
}

// internal/prober/mailbox.go
package prober

import (
	"crypto/x509"
	"time"
)

// mailbox is the single-slot rendezvous between the TLS verification hook and
// the worker's own control flow. The hook runs inside the handshake, which the
// HTTP stack completes before handing back the response, so by the time the
// worker asks for the certificate it is normally already in the slot.
//
// Publishing never blocks: a full slot drops the newcomer rather than stalling
// a handshake. The worker drains the slot before each HTTPS attempt, so a
// certificate from an earlier handshake cannot be attributed to a later one as
// long as attempts stay strictly sequential on the same client.
type mailbox struct {
	slot chan *x509.Certificate
}

func newMailbox() *mailbox {
	return &mailbox{slot: make(chan *x509.Certificate, 1)}
}

// capture is installed as tls.Config.VerifyPeerCertificate. It accepts every
// chain unconditionally: the tool is an observer, not a validator, and
// rejecting here would lose the certificate it exists to record.
func (m *mailbox) capture(rawCerts [][]byte, _ [][]*x509.Certificate) error {
	if len(rawCerts) == 0 {
		return nil
	}
	cert, err := x509.ParseCertificate(rawCerts[0])
	if err != nil {
		// Nothing usable to record; the handshake still proceeds.
		return nil
	}
	select {
	case m.slot <- cert:
	default:
	}
	return nil
}

// take waits up to d for a certificate and returns nil when none arrives.
func (m *mailbox) take(d time.Duration) *x509.Certificate {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case cert := <-m.slot:
		return cert
	case <-timer.C:
		return nil
	}
}

// drain empties the slot without blocking.
func (m *mailbox) drain() {
	select {
	case <-m.slot:
	default:
	}
}

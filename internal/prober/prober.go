// Package prober implements the per-domain probe cascade: four URL variants
// tried strictly in order, with a certificate capture side channel for the
// HTTPS attempts.
package prober

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"hostprobe/internal/core/domain"
	"hostprobe/internal/platform/errors"
	"hostprobe/internal/platform/logx"
)

// Prober probes one domain at a time through the variant cascade. Each Prober
// owns one HTTP client with independent connection state and one certificate
// mailbox, and must be used by a single worker only: the mailbox protocol
// assumes attempts are never issued concurrently on the same client.
type Prober struct {
	client  *http.Client
	mailbox *mailbox
	timeout time.Duration
	logger  logx.Logger
}

// New creates a Prober with the given per-request timeout.
func New(timeout time.Duration, logger logx.Logger) *Prober {
	mb := newMailbox()
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			// Certificates are inspected, never validated. InsecureSkipVerify
			// plus the capture hook is how the leaf reaches the record; this
			// is not a security control.
			InsecureSkipVerify:    true,
			VerifyPeerCertificate: mb.capture,
		},
		MaxIdleConnsPerHost: 2,
	}
	return &Prober{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		mailbox: mb,
		timeout: timeout,
		logger:  logger.With("component", "prober"),
	}
}

// Probe runs the cascade for a domain and always returns a record: populated
// from the first variant that answers 2xx, or empty when all four fail.
func (p *Prober) Probe(ctx context.Context, dom string) *domain.DomainData {
	data := domain.NewDomainData(dom)

	for _, variant := range domain.Cascade() {
		attempt := p.attempt(ctx, variant, dom, data)
		if attempt.OK() {
			p.logger.Info("domain responded",
				"domain", dom,
				"variant", variant.String(),
				"status", attempt.StatusCode,
			)
			return data
		}
		p.logger.Debug("probe attempt failed",
			"domain", dom,
			"variant", variant.String(),
			"error", attempt.Err,
		)
	}

	p.logger.Warn("could not gather information", "domain", dom)
	return data
}

// attempt probes a single variant. On success it fills data with the response
// headers, the server identification and, for HTTPS, the captured certificate.
func (p *Prober) attempt(ctx context.Context, v domain.Variant, dom string, data *domain.DomainData) domain.Attempt {
	if v.Scheme == domain.SchemeHTTPS {
		// A certificate left over from a failed earlier attempt must not be
		// attributed to this one.
		p.mailbox.drain()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.URL(dom), nil)
	if err != nil {
		return domain.Attempt{Variant: v, Err: errors.Wrap(errors.ErrInvalidInput, err.Error())}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Attempt{Variant: v, Err: classify(err)}
	}
	defer func() {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Attempt{
			Variant:    v,
			StatusCode: resp.StatusCode,
			Err:        errors.Wrapf(errors.ErrBadStatus, "status %d", resp.StatusCode),
		}
	}

	if v.Scheme == domain.SchemeHTTPS {
		// The handshake finished before the response arrived, so the slot is
		// normally already full; the wait only covers hook scheduling. On a
		// reused keep-alive connection no handshake happens at all and this
		// waits out the full timeout before recording the domain without a
		// certificate.
		if cert := p.mailbox.take(p.timeout); cert != nil {
			data.CertificateInfo = domain.NewCertificateInfo(cert)
		}
	}

	for key, values := range resp.Header {
		if len(values) > 0 {
			data.HTTPHeaders[key] = values[0]
		}
	}
	if server := firstNonEmpty(resp.Header.Get("Server"), resp.Header.Get("X-Powered-By")); server != "" {
		data.SetServer(server)
	}

	return domain.Attempt{Variant: v, StatusCode: resp.StatusCode}
}

// Close releases idle connections and the certificate mailbox. The owning
// worker calls it once the work queue is exhausted.
func (p *Prober) Close() {
	if transport, ok := p.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
	close(p.mailbox.slot)
}

// classify maps a transport error onto the cascade's failure taxonomy so the
// cause stays inspectable in diagnostics.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(errors.ErrTimeout, err.Error())
	}
	return errors.Wrap(errors.ErrConnectionFailed, err.Error())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

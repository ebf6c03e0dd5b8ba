package domain

// Scheme is the transport a probe variant uses.
type Scheme string

const (
	SchemeHTTPS Scheme = "https"
	SchemeHTTP  Scheme = "http"
)

// Variant is one step of the probe cascade: a scheme paired with an optional
// "www" hostname prefix.
type Variant struct {
	Scheme Scheme
	WWW    bool
}

// URL builds the probe URL for a domain.
//
// The "www" prefix is concatenated directly onto the domain with no separating
// dot ("www" + "example.com" = "wwwexample.com"). That form is what existing
// consumers of the output expect, so it is kept as is.
func (v Variant) URL(domain string) string {
	host := domain
	if v.WWW {
		host = "www" + host
	}
	return string(v.Scheme) + "://" + host
}

// String names the variant for logs, e.g. "https" or "http+www".
func (v Variant) String() string {
	if v.WWW {
		return string(v.Scheme) + "+www"
	}
	return string(v.Scheme)
}

// Cascade returns the probe variants in the exact order they must be
// attempted. The first success wins; later variants are never tried.
func Cascade() []Variant {
	return []Variant{
		{Scheme: SchemeHTTPS, WWW: false},
		{Scheme: SchemeHTTPS, WWW: true},
		{Scheme: SchemeHTTP, WWW: false},
		{Scheme: SchemeHTTP, WWW: true},
	}
}

// Attempt is the outcome of probing a single variant. Failures are carried as
// values so the cascade controller can log causes without aborting the domain.
type Attempt struct {
	Variant    Variant
	StatusCode int
	Err        error
}

// OK reports whether the attempt produced a usable response.
func (a Attempt) OK() bool {
	return a.Err == nil
}

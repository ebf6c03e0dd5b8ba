// Package domain defines the data model shared across the probing pipeline.
package domain

// DomainData is the record emitted for every domain that enters the pipeline.
// Exactly one is produced per accepted domain, including a "not found" record
// with both optional fields nil and an empty header map when every cascade
// variant failed.
type DomainData struct {
	Domain          string            `json:"domain"`
	Server          *string           `json:"server"`
	CertificateInfo *CertificateInfo  `json:"certificateInfo"`
	HTTPHeaders     map[string]string `json:"httpHeaders"`
}

// NewDomainData creates an empty record for the given domain.
func NewDomainData(domain string) *DomainData {
	return &DomainData{
		Domain:      domain,
		HTTPHeaders: make(map[string]string),
	}
}

// SetServer records the identification header of the responding server.
func (d *DomainData) SetServer(server string) {
	d.Server = &server
}

// Found reports whether any cascade variant produced a response.
func (d *DomainData) Found() bool {
	return d.Server != nil || d.CertificateInfo != nil || len(d.HTTPHeaders) > 0
}

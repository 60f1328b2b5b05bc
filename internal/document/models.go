package document

import (
	"encoding/json"
	"time"
)

// Document is a signable payload held by the registry.
// Signature is nil until the document is signed; once set it never changes.
type Document struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Signature *string    `json:"signature"`
	CreatedAt time.Time  `json:"createdAt"`
	SignedAt  *time.Time `json:"signedAt,omitempty"`
}

// IsSigned reports whether a signature has been attached.
func (d Document) IsSigned() bool {
	return d.Signature != nil
}

// SignatureValue returns the signature or "" when unsigned.
func (d Document) SignatureValue() string {
	if d.Signature == nil {
		return ""
	}
	return *d.Signature
}

// MarshalJSON adds the derived "signed" flag the web client renders.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return json.Marshal(struct {
		plain
		Signed bool `json:"signed"`
	}{plain(d), d.IsSigned()})
}

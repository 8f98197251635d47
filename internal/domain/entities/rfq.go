package entities

import (
	"strings"
	"time"
)

// Material is an entry of the machinable material catalog.
type Material string

const (
	MaterialAluminum6061    Material = "Aluminum 6061"
	MaterialAluminum7075    Material = "Aluminum 7075"
	MaterialStainless304    Material = "Stainless Steel 304"
	MaterialStainless316    Material = "Stainless Steel 316"
	MaterialCarbonSteel1018 Material = "Carbon Steel 1018"
	MaterialBrassC360       Material = "Brass C360"
	MaterialCopperC110      Material = "Copper C110"
	MaterialTitaniumGrade5  Material = "Titanium Grade 5"
	MaterialPOM             Material = "POM (Delrin)"
	MaterialPEEK            Material = "PEEK"
)

var materialCatalog = map[Material]struct{}{
	MaterialAluminum6061:    {},
	MaterialAluminum7075:    {},
	MaterialStainless304:    {},
	MaterialStainless316:    {},
	MaterialCarbonSteel1018: {},
	MaterialBrassC360:       {},
	MaterialCopperC110:      {},
	MaterialTitaniumGrade5:  {},
	MaterialPOM:             {},
	MaterialPEEK:            {},
}

func (m Material) Valid() bool {
	_, ok := materialCatalog[m]
	return ok
}

// Certification is the quality certification a buyer requires from the supplier.
type Certification string

const (
	CertificationNone    Certification = "None"
	CertificationISO9001 Certification = "ISO 9001"
	CertificationAS9100  Certification = "AS9100"
)

func (c Certification) Valid() bool {
	switch c {
	case CertificationNone, CertificationISO9001, CertificationAS9100:
		return true
	}
	return false
}

// Accepted CAD attachment extensions.
var cadExtensions = map[string]struct{}{
	"dxf": {}, "dwg": {}, "step": {}, "stp": {}, "iges": {}, "igs": {}, "stl": {}, "zip": {},
}

// IsSupportedCADFile reports whether filename carries an accepted CAD extension.
func IsSupportedCADFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	_, ok := cadExtensions[strings.ToLower(filename[idx+1:])]
	return ok
}

// RFQSpec is the buyer-supplied part specification of a new RFQ.
type RFQSpec struct {
	Material      Material
	Quantity      int
	Tolerance     string
	Roughness     string
	PartMarking   bool
	Certification Certification
	Notes         string
}

// Normalize trims free-text fields and defaults an empty certification to None.
func (s RFQSpec) Normalize() RFQSpec {
	s.Material = Material(strings.TrimSpace(string(s.Material)))
	s.Tolerance = strings.TrimSpace(s.Tolerance)
	s.Roughness = strings.TrimSpace(s.Roughness)
	s.Notes = strings.TrimSpace(s.Notes)
	s.Certification = Certification(strings.TrimSpace(string(s.Certification)))
	if s.Certification == "" {
		s.Certification = CertificationNone
	}
	return s
}

// Validate returns the first field-level problem, or nil.
func (s RFQSpec) Validate() error {
	if s.Quantity < 1 {
		return NewValidationError("quantity", "must be at least 1")
	}
	if !s.Material.Valid() {
		return NewValidationError("material", "unrecognized material "+string(s.Material))
	}
	if !s.Certification.Valid() {
		return NewValidationError("certification", "unrecognized certification "+string(s.Certification))
	}
	return nil
}

// RFQ is a buyer's request for quote.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//
// AcceptedQuoteID is the award marker. It is written once, inside the
// accept-quote transaction, and guards every later award or quote submission.
// QuoteVersion counts quote submissions; the accept-quote transaction commits
// only if it is unchanged since the sibling quotes were read.
type RFQ struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	Material        Material      `json:"material"`
	Quantity        int           `json:"quantity"`
	Tolerance       string        `json:"tolerance,omitempty"`
	Roughness       string        `json:"roughness,omitempty"`
	PartMarking     bool          `json:"part_marking"`
	Certification   Certification `json:"certification"`
	Notes           string        `json:"notes,omitempty"`
	CADFilename     string        `json:"cad_filename,omitempty"`
	CADFileID       string        `json:"cad_file_id,omitempty"`
	AcceptedQuoteID string        `json:"accepted_quote_id,omitempty"`
	QuoteVersion    int64         `json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
}

func (r RFQ) Awarded() bool { return r.AcceptedQuoteID != "" }

// CanView is the RFQ visibility policy: a buyer sees only their own requests.
func CanView(r RFQ, caller Identity) bool {
	return caller.UserID != "" && r.UserID == caller.UserID
}

package request

import (
	"milling_aggregator/internal/domain/entities"
)

// RFQRequest is the form part of a multipart RFQ submission. The optional CAD
// attachment travels in the cad_file part and is read by the handler.
// Field rules are enforced by the use case so errors name the offending field.
type RFQRequest struct {
	Material      string `form:"material" json:"material" example:"Aluminum 6061"`
	Quantity      int    `form:"quantity" json:"quantity" example:"10"`
	Tolerance     string `form:"tolerance" json:"tolerance" example:"+/- 0.05 mm"`
	Roughness     string `form:"roughness" json:"roughness" example:"Ra 1.6"`
	PartMarking   bool   `form:"part_marking" json:"part_marking"`
	Certification string `form:"certification" json:"certification" example:"ISO 9001"`
	Notes         string `form:"notes" json:"notes"`
}

func (r RFQRequest) ToSpec() entities.RFQSpec {
	return entities.RFQSpec{
		Material:      entities.Material(r.Material),
		Quantity:      r.Quantity,
		Tolerance:     r.Tolerance,
		Roughness:     r.Roughness,
		PartMarking:   r.PartMarking,
		Certification: entities.Certification(r.Certification),
		Notes:         r.Notes,
	}
}

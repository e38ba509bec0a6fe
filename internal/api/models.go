package api

import (
	"github.com/bchastanier/esltrack/internal/domain"
)

// Common request/response structures

// CreateEslRequest defines the payload for registering a new price-tag
// record. Identity and creation timestamp are backend-assigned and must not
// appear here.
type CreateEslRequest struct {
	Type   string `json:"type"   validate:"required,oneof=Hanshow Pricer EasyVCO"`
	Serial string `json:"serial" validate:"required"`
	EslID  string `json:"eslId"  validate:"required"`

	ItemID         *string `json:"itemId"`
	Name           string  `json:"nom"`
	ScientificName string  `json:"nomScientifique"`
	Price          string  `json:"prix"`
	PriceInfo      string  `json:"infosPrix"`
	PLU            string  `json:"plu"`
	Gear           *string `json:"engin"`
	Zone           *string `json:"zone"`
	ZoneCode       *string `json:"zoneCode"`
	SubZone        *string `json:"sousZone"`
	SubZoneCode    *string `json:"sousZoneCode"`
	Size           *string `json:"taille"`
	FrozenInfo     *string `json:"congelInfos"`
	Origin         *string `json:"origine"`
	Allergens      *string `json:"allergenes"`
	Label          *string `json:"label"`
	Production     *string `json:"production"`
	VATRate        *string `json:"tva"`
	CategoryCode   *string `json:"codeCategorie"`
	PurchasePrice  *string `json:"prixAchat"`
}

// toDomain builds the unsaved domain record carried by the request.
func (req *CreateEslRequest) toDomain() *domain.Esl {
	return &domain.Esl{
		Type:           domain.EslType(req.Type),
		Serial:         req.Serial,
		EslID:          req.EslID,
		ItemID:         req.ItemID,
		Name:           req.Name,
		ScientificName: req.ScientificName,
		Price:          req.Price,
		PriceInfo:      req.PriceInfo,
		PLU:            req.PLU,
		Gear:           req.Gear,
		Zone:           req.Zone,
		ZoneCode:       req.ZoneCode,
		SubZone:        req.SubZone,
		SubZoneCode:    req.SubZoneCode,
		Size:           req.Size,
		FrozenInfo:     req.FrozenInfo,
		Origin:         req.Origin,
		Allergens:      req.Allergens,
		Label:          req.Label,
		Production:     req.Production,
		VATRate:        req.VATRate,
		CategoryCode:   req.CategoryCode,
		PurchasePrice:  req.PurchasePrice,
	}
}

// MarkPrintedResponse acknowledges a successful printed-flag flip.
type MarkPrintedResponse struct {
	ObjectID string `json:"objectId"`
	Printed  bool   `json:"printed"`
}

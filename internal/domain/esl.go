package domain

import (
	"time"
)

// EslType identifies the device family of an electronic shelf label.
// New families are added as new constants, never by subtyping.
type EslType string

const (
	// EslTypeHanshow is the Hanshow device family. Its eslId is a long
	// randomly generated token.
	EslTypeHanshow EslType = "Hanshow"

	// EslTypePricer is the Pricer device family. Its eslId is a barcode
	// string and its records may carry an itemId.
	EslTypePricer EslType = "Pricer"

	// EslTypeEasyVCO is the EasyVCO device family.
	EslTypeEasyVCO EslType = "EasyVCO"
)

// Valid reports whether t is a known device family.
func (t EslType) Valid() bool {
	switch t {
	case EslTypeHanshow, EslTypePricer, EslTypeEasyVCO:
		return true
	}
	return false
}

// Esl is a single price-tag record for an electronic shelf label.
//
// ObjectID is the backend-assigned identity: empty until the record is first
// saved, assigned exactly once by a successful save, and immutable after
// that. CreatedAt is likewise backend-assigned at save time and read-only to
// callers.
//
// The descriptive fields carry the printed content of the tag. Their
// presence varies by device family and is not validated by the persistence
// layer; the optional ones are pointers so that absent values survive a
// round trip through either backend as nil. The JSON tags are the wire and
// column names shared by both backends.
//
// VATRate, CategoryCode and PurchasePrice were added in a later schema
// revision; rows persisted before that revision read back as nil.
type Esl struct {
	Type    EslType `json:"type"`
	Serial  string  `json:"serial"`
	Printed bool    `json:"printed"`

	ObjectID string  `json:"objectId,omitempty"`
	EslID    string  `json:"eslId"`
	ItemID   *string `json:"itemId,omitempty"`

	Name           string  `json:"nom"`
	ScientificName string  `json:"nomScientifique"`
	Price          string  `json:"prix"`
	PriceInfo      string  `json:"infosPrix"`
	PLU            string  `json:"plu"`
	Gear           *string `json:"engin,omitempty"`
	Zone           *string `json:"zone,omitempty"`
	ZoneCode       *string `json:"zoneCode,omitempty"`
	SubZone        *string `json:"sousZone,omitempty"`
	SubZoneCode    *string `json:"sousZoneCode,omitempty"`
	Size           *string `json:"taille,omitempty"`
	FrozenInfo     *string `json:"congelInfos,omitempty"`
	Origin         *string `json:"origine,omitempty"`
	Allergens      *string `json:"allergenes,omitempty"`
	Label          *string `json:"label,omitempty"`
	Production     *string `json:"production,omitempty"`
	VATRate        *string `json:"tva,omitempty"`
	CategoryCode   *string `json:"codeCategorie,omitempty"`
	PurchasePrice  *string `json:"prixAchat,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// NewEsl creates a new unsaved Esl with the given device family, serial and
// caller-supplied label id. Printed starts false; identity and creation
// timestamp stay unset until the record is saved.
// Returns an error if validation fails.
func NewEsl(typ EslType, serial, eslID string) (*Esl, error) {
	esl := &Esl{
		Type:    typ,
		Serial:  serial,
		EslID:   eslID,
		Printed: false,
	}

	if err := esl.Validate(); err != nil {
		return nil, err
	}

	return esl, nil
}

// Validate checks the fields every backend requires before a save.
// Descriptive content is deliberately not checked here.
func (e *Esl) Validate() error {
	if !e.Type.Valid() {
		return ErrEslTypeInvalid
	}

	if e.Serial == "" {
		return ErrEslSerialEmpty
	}

	if e.EslID == "" {
		return ErrEslIDEmpty
	}

	return nil
}

// Saved reports whether the record has been persisted, i.e. whether a
// backend has assigned its identity.
func (e *Esl) Saved() bool {
	return e.ObjectID != ""
}

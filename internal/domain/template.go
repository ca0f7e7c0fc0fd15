package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ModuleConfig is one entry of a template's module composition.
type ModuleConfig struct {
	Name         string                 `json:"module_name"`
	Order        *int                   `json:"order,omitempty"`
	Enabled      bool                   `json:"enabled"`
	CustomConfig map[string]interface{} `json:"custom_config"`
}

// UnmarshalJSON defaults Enabled to true when the key is omitted.
func (m *ModuleConfig) UnmarshalJSON(data []byte) error {
	type alias ModuleConfig
	v := alias{Enabled: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.CustomConfig == nil {
		v.CustomConfig = map[string]interface{}{}
	}
	*m = ModuleConfig(v)
	return nil
}

// ModuleComposition is the ordered list of modules a template renders.
type ModuleComposition struct {
	Modules []ModuleConfig `json:"modules"`
}

// Value implements driver.Valuer for JSONB storage.
func (c ModuleComposition) Value() (driver.Value, error) {
	if c.Modules == nil {
		c.Modules = []ModuleConfig{}
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB storage.
func (c *ModuleComposition) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// Margins are page margins in centimetres.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Value implements driver.Valuer for JSONB storage.
func (m Margins) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB storage.
func (m *Margins) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// DocumentTemplate is a named, owner-scoped layout for rendering documents.
type DocumentTemplate struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	OwnerID           uuid.UUID         `db:"owner_id" json:"owner_id"`
	Name              string            `db:"name" json:"name"`
	Description       string            `db:"description" json:"description"`
	DocumentType      string            `db:"document_type" json:"document_type"`
	ModuleComposition ModuleComposition `db:"module_composition" json:"module_composition"`
	PageFormat        string            `db:"page_format" json:"page_format"`
	PageOrientation   PageOrientation   `db:"page_orientation" json:"page_orientation"`
	Margins           Margins           `db:"margins" json:"margins"`
	CustomStyles      *string           `db:"custom_styles" json:"custom_styles"`
	IsDefault         bool              `db:"is_default" json:"is_default"`
	IsPublic          bool              `db:"is_public" json:"is_public"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return errors.New("jsonb: unsupported scan type")
	}
}

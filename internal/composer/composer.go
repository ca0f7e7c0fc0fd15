// Package composer organizes a quote document according to a template's
// module composition and validates compositions.
package composer

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"preventivi/internal/domain"
)

// DefaultOrder is the sort key used for modules without an explicit order.
const DefaultOrder = 999

// Built-in module names.
const (
	ModuleCompanyHeader  = "intestazione_azienda"
	ModuleMetadata       = "metadati_preventivo"
	ModuleCustomerHeader = "intestazione_cliente"
	ModuleLinesTable     = "tabella_preventivo"
	ModuleTotals         = "sezione_totali"
	ModuleConditions     = "condizioni_generali"
	ModuleFooter         = "footer_preventivo"
)

// DefaultTemplateName is the name of the provisioned system template.
const DefaultTemplateName = "Preventivo Standard A4 Verticale"

// builtins maps each document section to the module that renders it, in
// default layout order.
var builtins = []struct {
	Section string
	Module  string
}{
	{"azienda_emittente", ModuleCompanyHeader},
	{"metadati_preventivo", ModuleMetadata},
	{"cliente_destinatario", ModuleCustomerHeader},
	{"corpo_preventivo", ModuleLinesTable},
	{"dettagli_totali", ModuleTotals},
	{"condizioni_contrattuali", ModuleConditions},
	{"elementi_footer", ModuleFooter},
}

// IsBuiltin reports whether name is a built-in module.
func IsBuiltin(name string) bool {
	_, ok := SectionFor(name)
	return ok
}

// SectionFor returns the document section a built-in module renders.
func SectionFor(module string) (string, bool) {
	for _, b := range builtins {
		if b.Module == module {
			return b.Section, true
		}
	}
	return "", false
}

// BuiltinModules returns the built-in module names in default order.
func BuiltinModules() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.Module
	}
	return names
}

// TemplateConfig is the page-level part of a composition.
type TemplateConfig struct {
	Name            string                 `json:"name"`
	DocumentType    string                 `json:"document_type"`
	PageFormat      string                 `json:"page_format"`
	PageOrientation domain.PageOrientation `json:"page_orientation"`
	Margins         domain.Margins         `json:"margins"`
	CustomStyles    *string                `json:"custom_styles"`
}

// Composition is a document organized for rendering.
type Composition struct {
	TemplateConfig TemplateConfig        `json:"template_config"`
	ModulesOrder   []domain.ModuleConfig `json:"modules_order"`
	DocumentData   domain.QuoteDocument  `json:"document_data"`
}

// ValidationResult reports problems in a module composition. Errors make a
// composition invalid; warnings do not.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Compose returns the enabled modules of t sorted by order, together with
// the page configuration and the unchanged document.
func Compose(t *domain.DocumentTemplate, doc domain.QuoteDocument) Composition {
	modules := make([]domain.ModuleConfig, 0, len(t.ModuleComposition.Modules))
	for _, m := range t.ModuleComposition.Modules {
		if m.Enabled {
			modules = append(modules, m)
		}
	}
	sort.SliceStable(modules, func(i, j int) bool {
		return orderOf(modules[i]) < orderOf(modules[j])
	})

	return Composition{
		TemplateConfig: TemplateConfig{
			Name:            t.Name,
			DocumentType:    t.DocumentType,
			PageFormat:      t.PageFormat,
			PageOrientation: t.PageOrientation,
			Margins:         t.Margins,
			CustomStyles:    t.CustomStyles,
		},
		ModulesOrder: modules,
		DocumentData: doc,
	}
}

// Validate checks a module list for duplicate names, duplicate orders and
// the presence of at least one enabled module. Unknown module names only
// produce warnings.
func Validate(modules []domain.ModuleConfig) ValidationResult {
	res := ValidationResult{Errors: []string{}, Warnings: []string{}}

	names := make(map[string]bool, len(modules))
	orders := make(map[int]bool, len(modules))
	dupName, dupOrder, anyEnabled := false, false, false

	for _, m := range modules {
		if names[m.Name] {
			dupName = true
		}
		names[m.Name] = true

		o := orderOf(m)
		if orders[o] {
			dupOrder = true
		}
		orders[o] = true

		if m.Enabled {
			anyEnabled = true
		}
	}

	if dupName {
		res.Errors = append(res.Errors, "duplicate module names found")
	}
	if dupOrder {
		res.Errors = append(res.Errors, "duplicate order numbers found")
	}
	for _, m := range modules {
		if !IsBuiltin(m.Name) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("module '%s' is not a recognized built-in module", m.Name))
		}
	}
	if !anyEnabled {
		res.Errors = append(res.Errors, "at least one module must be enabled")
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// DefaultModules returns the seven built-in modules, enabled, ordered 1..7.
func DefaultModules() []domain.ModuleConfig {
	modules := make([]domain.ModuleConfig, len(builtins))
	for i, b := range builtins {
		order := i + 1
		modules[i] = domain.ModuleConfig{
			Name:         b.Module,
			Order:        &order,
			Enabled:      true,
			CustomConfig: map[string]interface{}{},
		}
	}
	return modules
}

// DefaultTemplate builds the system default template for an owner. The
// caller persists it.
func DefaultTemplate(ownerID uuid.UUID, documentType string) *domain.DocumentTemplate {
	if documentType == "" {
		documentType = domain.DocumentTypeQuote
	}
	return &domain.DocumentTemplate{
		ID:                uuid.New(),
		OwnerID:           ownerID,
		Name:              DefaultTemplateName,
		Description:       "Default template reproducing the standard quote layout",
		DocumentType:      documentType,
		ModuleComposition: domain.ModuleComposition{Modules: DefaultModules()},
		PageFormat:        "A4",
		PageOrientation:   domain.OrientationPortrait,
		Margins:           domain.Margins{Top: 1.2, Right: 0.8, Bottom: 1.2, Left: 0.8},
		IsDefault:         true,
		IsPublic:          false,
	}
}

func orderOf(m domain.ModuleConfig) int {
	if m.Order == nil {
		return DefaultOrder
	}
	return *m.Order
}

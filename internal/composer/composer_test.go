package composer_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preventivi/internal/composer"
	"preventivi/internal/domain"
)

func intPtr(v int) *int { return &v }

func module(name string, order *int, enabled bool) domain.ModuleConfig {
	return domain.ModuleConfig{Name: name, Order: order, Enabled: enabled, CustomConfig: map[string]interface{}{}}
}

func TestCompose_FiltersAndSorts(t *testing.T) {
	tmpl := &domain.DocumentTemplate{
		Name:            "Custom",
		DocumentType:    domain.DocumentTypeQuote,
		PageFormat:      "A4",
		PageOrientation: domain.OrientationLandscape,
		Margins:         domain.Margins{Top: 1, Right: 1, Bottom: 1, Left: 1},
		ModuleComposition: domain.ModuleComposition{Modules: []domain.ModuleConfig{
			module(composer.ModuleTotals, intPtr(5), true),
			module(composer.ModuleFooter, nil, true),
			module(composer.ModuleCompanyHeader, intPtr(1), true),
			module(composer.ModuleConditions, intPtr(2), false),
			module(composer.ModuleLinesTable, intPtr(3), true),
		}},
	}
	doc := domain.QuoteDocument{Metadata: domain.QuoteMetadata{Number: "2024-001"}}

	out := composer.Compose(tmpl, doc)

	require.Len(t, out.ModulesOrder, 4)
	assert.Equal(t, composer.ModuleCompanyHeader, out.ModulesOrder[0].Name)
	assert.Equal(t, composer.ModuleLinesTable, out.ModulesOrder[1].Name)
	assert.Equal(t, composer.ModuleTotals, out.ModulesOrder[2].Name)
	assert.Equal(t, composer.ModuleFooter, out.ModulesOrder[3].Name)

	assert.Equal(t, "Custom", out.TemplateConfig.Name)
	assert.Equal(t, domain.OrientationLandscape, out.TemplateConfig.PageOrientation)
	assert.Equal(t, "2024-001", out.DocumentData.Metadata.Number)
}

func TestCompose_EqualOrdersKeepInputOrder(t *testing.T) {
	tmpl := &domain.DocumentTemplate{ModuleComposition: domain.ModuleComposition{Modules: []domain.ModuleConfig{
		module("b", nil, true),
		module("a", nil, true),
	}}}

	out := composer.Compose(tmpl, domain.QuoteDocument{})

	require.Len(t, out.ModulesOrder, 2)
	assert.Equal(t, "b", out.ModulesOrder[0].Name)
	assert.Equal(t, "a", out.ModulesOrder[1].Name)
}

func TestCompose_JSONShape(t *testing.T) {
	out := composer.Compose(composer.DefaultTemplate(uuid.New(), ""), domain.QuoteDocument{})

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Contains(t, m, "template_config")
	assert.Contains(t, m, "modules_order")
	assert.Contains(t, m, "document_data")
}

func TestValidate_DefaultModulesValid(t *testing.T) {
	res := composer.Validate(composer.DefaultModules())

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidate_DuplicateOrder(t *testing.T) {
	res := composer.Validate([]domain.ModuleConfig{
		module(composer.ModuleCompanyHeader, intPtr(1), true),
		module(composer.ModuleMetadata, intPtr(1), true),
	})

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "duplicate order")
}

func TestValidate_DuplicateName(t *testing.T) {
	res := composer.Validate([]domain.ModuleConfig{
		module(composer.ModuleTotals, intPtr(1), true),
		module(composer.ModuleTotals, intPtr(2), true),
	})

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "duplicate module names")
}

func TestValidate_NoEnabledModule(t *testing.T) {
	modules := composer.DefaultModules()
	for i := range modules {
		modules[i].Enabled = false
	}

	res := composer.Validate(modules)

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "at least one module must be enabled")
}

func TestValidate_EmptyList(t *testing.T) {
	res := composer.Validate(nil)

	assert.False(t, res.Valid)
	assert.NotNil(t, res.Warnings)
}

func TestValidate_UnknownModuleIsWarning(t *testing.T) {
	res := composer.Validate([]domain.ModuleConfig{
		module(composer.ModuleCompanyHeader, intPtr(1), true),
		module("banner_promozionale", intPtr(2), true),
	})

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "banner_promozionale")
}

func TestValidate_MissingOrdersCollide(t *testing.T) {
	res := composer.Validate([]domain.ModuleConfig{
		module(composer.ModuleCompanyHeader, nil, true),
		module(composer.ModuleFooter, nil, true),
	})

	assert.False(t, res.Valid)
}

func TestDefaultTemplate(t *testing.T) {
	owner := uuid.New()
	tmpl := composer.DefaultTemplate(owner, "")

	assert.Equal(t, owner, tmpl.OwnerID)
	assert.Equal(t, composer.DefaultTemplateName, tmpl.Name)
	assert.Equal(t, domain.DocumentTypeQuote, tmpl.DocumentType)
	assert.Equal(t, "A4", tmpl.PageFormat)
	assert.Equal(t, domain.OrientationPortrait, tmpl.PageOrientation)
	assert.Equal(t, domain.Margins{Top: 1.2, Right: 0.8, Bottom: 1.2, Left: 0.8}, tmpl.Margins)
	assert.True(t, tmpl.IsDefault)

	modules := tmpl.ModuleComposition.Modules
	require.Len(t, modules, 7)
	assert.Equal(t, composer.BuiltinModules(), []string{
		modules[0].Name, modules[1].Name, modules[2].Name, modules[3].Name,
		modules[4].Name, modules[5].Name, modules[6].Name,
	})
	for i, m := range modules {
		require.NotNil(t, m.Order)
		assert.Equal(t, i+1, *m.Order)
		assert.True(t, m.Enabled)
	}
}

func TestModuleConfig_EnabledDefaultsTrue(t *testing.T) {
	var mods []domain.ModuleConfig
	err := json.Unmarshal([]byte(`[{"module_name":"sezione_totali","order":1},{"module_name":"footer_preventivo","order":2,"enabled":false}]`), &mods)
	require.NoError(t, err)

	require.Len(t, mods, 2)
	assert.True(t, mods[0].Enabled)
	assert.NotNil(t, mods[0].CustomConfig)
	assert.False(t, mods[1].Enabled)
}

func TestSectionFor(t *testing.T) {
	section, ok := composer.SectionFor(composer.ModuleLinesTable)
	assert.True(t, ok)
	assert.Equal(t, "corpo_preventivo", section)

	_, ok = composer.SectionFor("unknown")
	assert.False(t, ok)
}

package recommender

import (
	"strings"
	"testing"

	"github.com/raushankrgupta/skinbox/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildInstruction(t *testing.T) {
	profile := models.DiagnosticProfile{
		SkinType:    models.SkinTypeOily,
		Concerns:    []string{models.Concerns[0], models.Concerns[1]},
		Season:      models.SeasonSummer,
		Budget:      models.DefaultBudget,
		Description: "shiny by noon",
		Language:    "Russian",
	}
	catalog := []models.CatalogItem{
		{ID: "p1", Name: "Gel", Category: models.CategoryCleanser, Price: 900, Description: "gentle"},
		{ID: "p7", Name: "Fluid", Category: models.CategorySPF, Price: 1300, Description: "light"},
	}

	text := BuildInstruction(profile, catalog)
	assert.Contains(t, text, "ALL OUTPUT MUST BE IN RUSSIAN LANGUAGE")
	assert.Contains(t, text, "- Skin Type: oily")
	assert.Contains(t, text, "- Concerns: "+models.Concerns[0]+", "+models.Concerns[1])
	assert.Contains(t, text, "- Allergies: None")
	assert.Contains(t, text, `- User Description: "shiny by noon"`)
	assert.Contains(t, text, "- ID: p1, Name: Gel, Type: cleanser, Price: 900, Desc: gentle")
	assert.Contains(t, text, "- ID: p7, Name: Fluid, Type: spf, Price: 1300, Desc: light")
	assert.Less(t, strings.Index(text, "ID: p1"), strings.Index(text, "ID: p7"))
}

func TestBuildInstructionDefaultsLanguage(t *testing.T) {
	text := BuildInstruction(models.DiagnosticProfile{SkinType: models.SkinTypeDry, Allergies: "nuts"}, nil)
	assert.Contains(t, text, "IN RUSSIAN LANGUAGE")
	assert.Contains(t, text, "- Allergies: nuts")
}

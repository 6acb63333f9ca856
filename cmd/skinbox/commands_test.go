package main

import (
	"bytes"
	"testing"

	"github.com/raushankrgupta/skinbox/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBox(t *testing.T) {
	box := models.Box{
		ID:     "box-1",
		Status: models.BoxStatusCreated,
		Recommendation: models.Recommendation{
			Analysis: "Жирная кожа",
			Causes:   "Себум",
			Strategy: "Очищение",
			Routine:  models.Routine{Morning: "Гель, SPF", Evening: "Гель, сыворотка"},
			Reasoning: map[string]string{
				"p2": "Салициловая кислота",
			},
		},
		Products: []models.CatalogItem{
			{ID: "p2", Name: "Salicylic Acid Cleanser", Price: 1200},
			{ID: "p3", Name: "Niacinamide 10% + Zinc 1%", Price: 850},
		},
		TotalPrice: 2050,
	}

	var buf bytes.Buffer
	printBox(&buf, box)
	out := buf.String()

	assert.Contains(t, out, "Box box-1 (created)")
	assert.Contains(t, out, "Morning: Гель, SPF\nEvening: Гель, сыворотка\n")
	assert.Contains(t, out, "p2         1200 ₽  Salicylic Acid Cleanser: Салициловая кислота\n")
	assert.Contains(t, out, "p3          850 ₽  Niacinamide 10% + Zinc 1%\n")
	assert.Contains(t, out, "Total: 2050 ₽")
}

func TestConcernExampleIsKnown(t *testing.T) {
	require.Contains(t, models.Concerns, concernExample)
}

package recommender

import (
	"fmt"
	"strings"

	"github.com/raushankrgupta/skinbox/models"
)

// BuildInstruction renders the text part of the model request
func BuildInstruction(profile models.DiagnosticProfile, catalog []models.CatalogItem) string {
	language := profile.Language
	if language == "" {
		language = models.DefaultLanguage
	}
	allergies := profile.Allergies
	if strings.TrimSpace(allergies) == "" {
		allergies = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional dermatologist and skincare expert.\n")
	fmt.Fprintf(&b, "Analyze the user's skin profile and recommend a personalized skincare routine using ONLY the products from the provided inventory list.\n\n")
	fmt.Fprintf(&b, "IMPORTANT: ALL OUTPUT MUST BE IN %s LANGUAGE.\n\n", strings.ToUpper(language))

	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Skin Type: %s\n", profile.SkinType)
	fmt.Fprintf(&b, "- Concerns: %s\n", strings.Join(profile.Concerns, ", "))
	fmt.Fprintf(&b, "- Season: %s\n", profile.Season)
	fmt.Fprintf(&b, "- Allergies: %s\n", allergies)
	fmt.Fprintf(&b, "- Budget Level: %s\n", profile.Budget)
	fmt.Fprintf(&b, "- User Description: %q\n\n", profile.Description)

	b.WriteString("INVENTORY (You MUST pick products ONLY from this list using their IDs):\n")
	for _, item := range catalog {
		fmt.Fprintf(&b, "- ID: %s, Name: %s, Type: %s, Price: %d, Desc: %s\n",
			item.ID, item.Name, item.Category, item.Price, item.Description)
	}

	b.WriteString("\nREQUIREMENTS:\n")
	b.WriteString("1. Select a set of products that form a complete routine (Cleanser, Treat/Serum, Moisturizer, SPF).\n")
	b.WriteString("2. Respect the user's budget if possible.\n")
	fmt.Fprintf(&b, "3. Explain the strategy and why each product was chosen in %s.\n", strings.ToUpper(language))
	fmt.Fprintf(&b, "4. Provide a morning and evening routine guide in %s.\n", strings.ToUpper(language))
	return b.String()
}

package storage

import "github.com/raushankrgupta/skinbox/models"

// DefaultCatalog returns a fresh copy of the seed catalog
func DefaultCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		{
			ID:          "p1",
			Name:        "Gentle Hydrating Cleanser",
			Brand:       "CeraVe",
			Category:    models.CategoryCleanser,
			Price:       900,
			Description: "Мягкое очищающее средство для нормальной и сухой кожи с керамидами.",
			ImageURL:    "https://picsum.photos/200/200?random=1",
		},
		{
			ID:          "p2",
			Name:        "Salicylic Acid Cleanser",
			Brand:       "The Inkey List",
			Category:    models.CategoryCleanser,
			Price:       1200,
			Description: "Очищающий гель с салициловой кислотой для борьбы с акне.",
			ImageURL:    "https://picsum.photos/200/200?random=2",
		},
		{
			ID:          "p3",
			Name:        "Niacinamide 10% + Zinc 1%",
			Brand:       "The Ordinary",
			Category:    models.CategorySerum,
			Price:       850,
			Description: "Сыворотка для борьбы с высыпаниями и регулирования себума.",
			ImageURL:    "https://picsum.photos/200/200?random=3",
		},
		{
			ID:          "p4",
			Name:        "Hyaluronic Acid 2% + B5",
			Brand:       "The Ordinary",
			Category:    models.CategorySerum,
			Price:       950,
			Description: "Глубокое увлажнение для всех типов кожи.",
			ImageURL:    "https://picsum.photos/200/200?random=4",
		},
		{
			ID:          "p5",
			Name:        "Natural Moisturizing Factors + HA",
			Brand:       "The Ordinary",
			Category:    models.CategoryCream,
			Price:       1100,
			Description: "Увлажняющий крем, восстанавливающий барьер.",
			ImageURL:    "https://picsum.photos/200/200?random=5",
		},
		{
			ID:          "p6",
			Name:        "Invisible Fluid SPF 50+",
			Brand:       "La Roche-Posay",
			Category:    models.CategorySPF,
			Price:       1800,
			Description: "Легкий солнцезащитный флюид, не оставляющий белых следов.",
			ImageURL:    "https://picsum.photos/200/200?random=6",
		},
		{
			ID:          "p7",
			Name:        "Retinol 0.5% in Squalane",
			Brand:       "The Ordinary",
			Category:    models.CategorySerum,
			Price:       1300,
			Description: "Антивозрастная сыворотка с ретинолом.",
			ImageURL:    "https://picsum.photos/200/200?random=7",
		},
		{
			ID:          "p8",
			Name:        "Effaclar Duo(+)",
			Brand:       "La Roche-Posay",
			Category:    models.CategoryCream,
			Price:       1600,
			Description: "Корректирующий крем-гель для проблемной кожи.",
			ImageURL:    "https://picsum.photos/200/200?random=8",
		},
	}
}

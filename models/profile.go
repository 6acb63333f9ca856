package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SkinType is the answer to the first questionnaire step
type SkinType string

const (
	SkinTypeDry         SkinType = "dry"
	SkinTypeOily        SkinType = "oily"
	SkinTypeCombination SkinType = "combination"
	SkinTypeNormal      SkinType = "normal"
)

// SkinTypes lists the accepted skin types
var SkinTypes = []SkinType{SkinTypeDry, SkinTypeOily, SkinTypeCombination, SkinTypeNormal}

// Concerns is the fixed vocabulary of concern tags offered by the questionnaire
var Concerns = []string{
	"Акне и высыпания",
	"Покраснения (розацеа)",
	"Сухость и шелушение",
	"Жирный блеск",
	"Постакне и пятна",
	"Морщины и линии",
	"Расширенные поры",
	"Тусклый цвет лица",
}

// BudgetTiers are the budget labels offered by the questionnaire
var BudgetTiers = []string{
	"До 3 000 ₽",
	"До 6 000 ₽",
	"До 10 000 ₽",
	"Без ограничений",
}

// DefaultBudget is preselected in the questionnaire
var DefaultBudget = BudgetTiers[1]

// DefaultLanguage is the language every free-text answer of the model is requested in
const DefaultLanguage = "Russian"

const (
	SeasonWinter = "Зима"
	SeasonSpring = "Весна"
	SeasonSummer = "Лето"
	SeasonAutumn = "Осень"
)

// ErrInvalidProfile is wrapped by every profile validation failure
var ErrInvalidProfile = errors.New("invalid diagnostic profile")

// ErrSkinTypeRequired blocks a recommendation request until the skin type is chosen
var ErrSkinTypeRequired = fmt.Errorf("%w: skin type is required", ErrInvalidProfile)

// Photo is an optional face photo attached to the questionnaire.
// Data holds the raw image until it is moved to object storage, after which only Key is kept.
type Photo struct {
	MIMEType string `bson:"mime_type" json:"mimeType"`
	Data     []byte `bson:"data,omitempty" json:"data,omitempty"`
	Key      string `bson:"key,omitempty" json:"key,omitempty"`
}

// DiagnosticProfile is the completed questionnaire
type DiagnosticProfile struct {
	SkinType    SkinType `bson:"skin_type" json:"skinType"`
	Concerns    []string `bson:"concerns" json:"concerns"`
	Season      string   `bson:"season" json:"season"`
	Allergies   string   `bson:"allergies" json:"allergies"`
	Budget      string   `bson:"budget" json:"budget"`
	Description string   `bson:"description" json:"description"`
	Language    string   `bson:"language" json:"language"`
	Photo       *Photo   `bson:"photo,omitempty" json:"photo,omitempty"`
}

// CurrentSeason returns the calendar season label for t
func CurrentSeason(t time.Time) string {
	switch t.Month() {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// WithDefaults fills the fields the questionnaire preselects
func (p DiagnosticProfile) WithDefaults(now time.Time) DiagnosticProfile {
	if strings.TrimSpace(p.Season) == "" {
		p.Season = CurrentSeason(now)
	}
	if strings.TrimSpace(p.Budget) == "" {
		p.Budget = DefaultBudget
	}
	if strings.TrimSpace(p.Language) == "" {
		p.Language = DefaultLanguage
	}
	if p.Concerns == nil {
		p.Concerns = []string{}
	}
	return p
}

// Validate reports whether a recommendation request may be issued for the profile
func (p DiagnosticProfile) Validate() error {
	if p.SkinType == "" {
		return ErrSkinTypeRequired
	}
	if !contains(SkinTypes, p.SkinType) {
		return fmt.Errorf("%w: unknown skin type %q", ErrInvalidProfile, p.SkinType)
	}
	for _, c := range p.Concerns {
		if !contains(Concerns, c) {
			return fmt.Errorf("%w: unknown concern %q", ErrInvalidProfile, c)
		}
	}
	if p.Budget != "" && !contains(BudgetTiers, p.Budget) {
		return fmt.Errorf("%w: unknown budget %q", ErrInvalidProfile, p.Budget)
	}
	return nil
}

// PhotoFromDataURL decodes a browser data URL such as "data:image/jpeg;base64,...".
// A data URL without payload yields a nil photo.
func PhotoFromDataURL(dataURL string) (*Photo, error) {
	if dataURL == "" {
		return nil, nil
	}
	header, payload, found := strings.Cut(dataURL, ",")
	if !found || payload == "" {
		return nil, nil
	}

	mimeType := "image/jpeg"
	if meta, ok := strings.CutPrefix(header, "data:"); ok {
		meta = strings.TrimSuffix(meta, ";base64")
		if meta != "" {
			mimeType = meta
		}
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: photo must be an image, got %s", ErrInvalidProfile, mimeType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: photo is not valid base64: %v", ErrInvalidProfile, err)
	}
	return &Photo{MIMEType: mimeType, Data: data}, nil
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

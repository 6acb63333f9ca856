package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/raushankrgupta/skinbox/models"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sethvargo/go-retry"
)

// Image is auxiliary visual input sent next to the instruction
type Image struct {
	MIMEType string
	Data     []byte
}

// ModelRequest is everything a generative model receives for one recommendation
type ModelRequest struct {
	Instruction string
	Catalog     []models.CatalogItem
	Image       *Image
	Schema      *Schema
}

// Model is a generative model that answers with JSON constrained by req.Schema
type Model interface {
	Generate(ctx context.Context, req ModelRequest) (string, error)
}

// RetryPolicy enables bounded retries of failed model calls.
// The zero value makes exactly one attempt.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Requester turns a diagnostic profile into a validated recommendation
type Requester struct {
	model  Model
	retry  RetryPolicy
	logger zerolog.Logger

	mu      sync.Mutex
	schemas map[string]*compiledSchema // by answer language
}

type compiledSchema struct {
	schema    *Schema
	validator *jsonschema.Schema
}

// NewRequester creates a Requester calling model
func NewRequester(model Model, policy RetryPolicy, logger zerolog.Logger) *Requester {
	return &Requester{
		model:   model,
		retry:   policy,
		logger:  logger.With().Str("component", "recommender").Logger(),
		schemas: make(map[string]*compiledSchema),
	}
}

type wireRecommendation struct {
	Analysis   string         `json:"analysis"`
	Causes     string         `json:"causes"`
	Strategy   string         `json:"strategy"`
	Routine    models.Routine `json:"routine"`
	ProductIDs []string       `json:"productIds"`
	Reasoning  []struct {
		ProductID   string `json:"productId"`
		Explanation string `json:"explanation"`
	} `json:"reasoning"`
}

// Recommend asks the model for a routine built from catalog.
// Profile validation errors are returned as-is and no model call is made;
// every later failure is reported as ErrGenerationFailed.
func (r *Requester) Recommend(ctx context.Context, profile models.DiagnosticProfile, catalog []models.CatalogItem) (models.Recommendation, error) {
	if err := profile.Validate(); err != nil {
		return models.Recommendation{}, err
	}
	if len(catalog) == 0 {
		r.logger.Error().Err(errEmptyCatalog).Msg("recommendation not requested")
		return models.Recommendation{}, Failed(errEmptyCatalog)
	}

	language := profile.Language
	if language == "" {
		language = models.DefaultLanguage
	}
	contract, err := r.contract(language)
	if err != nil {
		r.logger.Error().Err(err).Msg("response schema unavailable")
		return models.Recommendation{}, Failed(err)
	}

	req := ModelRequest{
		Instruction: BuildInstruction(profile, catalog),
		Catalog:     catalog,
		Schema:      contract.schema,
	}
	if profile.Photo != nil && len(profile.Photo.Data) > 0 {
		req.Image = &Image{MIMEType: profile.Photo.MIMEType, Data: profile.Photo.Data}
	}

	var rec models.Recommendation
	attempt := 0
	err = r.do(ctx, func(ctx context.Context) error {
		attempt++
		raw, err := r.model.Generate(ctx, req)
		if err != nil {
			r.logger.Warn().Err(err).Int("attempt", attempt).Msg("model call failed")
			return fmt.Errorf("model call: %w", err)
		}
		rec, err = parseRecommendation(raw, contract.validator, catalog)
		if err != nil {
			r.logger.Warn().Err(err).Int("attempt", attempt).Msg("model response rejected")
		}
		return err
	})
	if err != nil {
		r.logger.Error().Err(err).Int("attempts", attempt).Msg("recommendation generation failed")
		return models.Recommendation{}, Failed(err)
	}

	r.logger.Info().
		Str("skin_type", string(profile.SkinType)).
		Int("products", len(rec.ProductIDs)).
		Bool("photo", req.Image != nil).
		Msg("recommendation generated")
	return rec, nil
}

func (r *Requester) contract(language string) (*compiledSchema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.schemas[language]; ok {
		return c, nil
	}
	s := ResponseSchema(language)
	v, err := compileSchema(s)
	if err != nil {
		return nil, err
	}
	c := &compiledSchema{schema: s, validator: v}
	r.schemas[language] = c
	return c, nil
}

func (r *Requester) do(ctx context.Context, f retry.RetryFunc) error {
	if r.retry.MaxAttempts <= 1 {
		return f(ctx)
	}
	backoff := r.retry.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}
	b := retry.WithMaxRetries(uint64(r.retry.MaxAttempts-1), retry.NewExponential(backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := f(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func parseRecommendation(raw string, validator *jsonschema.Schema, catalog []models.CatalogItem) (models.Recommendation, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Recommendation{}, errEmptyResponse
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return models.Recommendation{}, fmt.Errorf("decode response: %w", err)
	}
	if err := validator.Validate(doc); err != nil {
		return models.Recommendation{}, fmt.Errorf("response does not match schema: %w", err)
	}

	var wire wireRecommendation
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return models.Recommendation{}, fmt.Errorf("decode response: %w", err)
	}

	known := make(map[string]struct{}, len(catalog))
	for _, item := range catalog {
		known[item.ID] = struct{}{}
	}
	ids := make([]string, 0, len(wire.ProductIDs))
	selected := make(map[string]struct{}, len(wire.ProductIDs))
	for _, id := range wire.ProductIDs {
		if _, ok := known[id]; ok {
			ids = append(ids, id)
			selected[id] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return models.Recommendation{}, errNoKnownProducts
	}

	// only selected ids are kept; last entry wins on duplicates
	reasoning := make(map[string]string, len(ids))
	for _, item := range wire.Reasoning {
		if _, ok := selected[item.ProductID]; ok {
			reasoning[item.ProductID] = item.Explanation
		}
	}

	return models.Recommendation{
		Analysis:   wire.Analysis,
		Causes:     wire.Causes,
		Strategy:   wire.Strategy,
		Routine:    wire.Routine,
		ProductIDs: ids,
		Reasoning:  reasoning,
	}, nil
}

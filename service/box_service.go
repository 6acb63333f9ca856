package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/recommender"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/rs/zerolog"
)

// Recommender produces a validated recommendation for a profile
type Recommender interface {
	Recommend(ctx context.Context, profile models.DiagnosticProfile, catalog []models.CatalogItem) (models.Recommendation, error)
}

// Assembler prices and persists a recommendation
type Assembler interface {
	Assemble(ctx context.Context, userID string, profile models.DiagnosticProfile, rec models.Recommendation, catalog []models.CatalogItem) (models.Box, error)
}

// PhotoStore moves profile photos out of the box record
type PhotoStore interface {
	Upload(ctx context.Context, objectKey, contentType string, body io.Reader) (string, error)
}

// BoxService runs one questionnaire submission through the whole pipeline
type BoxService struct {
	gateway     storage.Gateway
	recommender Recommender
	assembler   Assembler
	photos      PhotoStore
	logger      zerolog.Logger
	now         func() time.Time
}

// NewBoxService wires the pipeline. photos may be nil, in which case the photo stays inline.
func NewBoxService(gateway storage.Gateway, rec Recommender, assembler Assembler, photos PhotoStore, logger zerolog.Logger) *BoxService {
	return &BoxService{
		gateway:     gateway,
		recommender: rec,
		assembler:   assembler,
		photos:      photos,
		logger:      logger.With().Str("component", "service").Logger(),
		now:         time.Now,
	}
}

// Generate validates profile, asks for a recommendation and stores the resulting box.
// Validation errors are returned unchanged; every other failure is recommender.ErrGenerationFailed.
// Concurrent calls for the same profile are independent and yield independent boxes.
func (s *BoxService) Generate(ctx context.Context, user models.SessionIdentity, profile models.DiagnosticProfile) (models.Box, error) {
	profile = profile.WithDefaults(s.now())
	if err := profile.Validate(); err != nil {
		return models.Box{}, err
	}

	catalog, err := s.gateway.GetCatalog(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("load catalog")
		return models.Box{}, recommender.Failed(err)
	}

	rec, err := s.recommender.Recommend(ctx, profile, catalog)
	if err != nil {
		return models.Box{}, err
	}

	profile = s.storePhoto(ctx, user.ID, profile)

	box, err := s.assembler.Assemble(ctx, user.ID, profile, rec, catalog)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("assemble box")
		return models.Box{}, recommender.Failed(err)
	}
	return box, nil
}

// storePhoto uploads the raw photo and keeps only its key; on failure the photo stays inline
func (s *BoxService) storePhoto(ctx context.Context, userID string, profile models.DiagnosticProfile) models.DiagnosticProfile {
	if s.photos == nil || profile.Photo == nil || len(profile.Photo.Data) == 0 {
		return profile
	}

	ext := strings.TrimPrefix(profile.Photo.MIMEType, "image/")
	if ext == "" || strings.ContainsAny(ext, "/;") {
		ext = "jpg"
	}
	objectKey := fmt.Sprintf("profile_photos/%s/%s.%s", safeSegment(userID), uuid.NewString(), ext)

	key, err := s.photos.Upload(ctx, objectKey, profile.Photo.MIMEType, bytes.NewReader(profile.Photo.Data))
	if err != nil {
		s.logger.Warn().Err(err).Msg("photo upload failed, keeping it inline")
		return profile
	}

	photo := *profile.Photo
	photo.Key = key
	photo.Data = nil
	profile.Photo = &photo
	return profile
}

func safeSegment(s string) string {
	if s == "" {
		return "anonymous"
	}
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(s)
}

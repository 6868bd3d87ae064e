package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/terojleinonen/kinscan/domain"
	servicepkg "github.com/terojleinonen/kinscan/service"
)

// RecommendUseCase orchestrates the recommendation synthesis workflow. The
// violations it consumes come from an external rule engine as a FileQuality
// document; this use case never invents violations of its own.
type RecommendUseCase struct {
	service domain.RecommendationService
}

// NewRecommendUseCase creates a new recommend use case
func NewRecommendUseCase(service domain.RecommendationService) *RecommendUseCase {
	if service == nil {
		service = servicepkg.NewRecommendationService(nil)
	}
	return &RecommendUseCase{service: service}
}

// Execute validates the request and generates recommendations. An empty
// quality report is not an error; it yields an empty recommendation set.
func (uc *RecommendUseCase) Execute(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResponse, error) {
	for _, file := range req.Files {
		if file.FilePath == "" {
			return nil, domain.NewInvalidInputError("quality record with empty file path", nil)
		}
	}

	resp, err := uc.service.Generate(ctx, req)
	if err != nil {
		return nil, domain.NewAnalysisError("recommendation synthesis failed", err)
	}

	return resp, nil
}

// qualityDocument is the on-disk shape produced by the external rule
// engine: either a bare array of records or an object with a files key
type qualityDocument struct {
	Files []domain.FileQuality `json:"files"`
}

// LoadQualityFile reads a FileQuality JSON document from disk
func LoadQualityFile(path string) ([]domain.FileQuality, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}

	var files []domain.FileQuality
	if err := json.Unmarshal(data, &files); err == nil {
		return files, nil
	}

	var doc qualityDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a quality report: %s", path), err)
	}
	return doc.Files, nil
}

// LoadStatusFile reads a persisted recommendation status map keyed by
// recommendation id. A missing file is not an error; it means every
// recommendation starts pending.
func LoadStatusFile(path string) (domain.StatusSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return servicepkg.PendingStatusSource{}, nil
		}
		return nil, domain.NewFileNotFoundError(path, err)
	}

	statuses := servicepkg.MapStatusSource{}
	if err := json.Unmarshal(data, &statuses); err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("not a status map: %s", path), err)
	}
	return statuses, nil
}

// SaveStatusFile persists a recommendation status map
func SaveStatusFile(path string, statuses servicepkg.MapStatusSource) error {
	data, err := json.MarshalIndent(statuses, "", "  ")
	if err != nil {
		return domain.NewOutputError("failed to encode status map", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return domain.NewOutputError("failed to write status map", err)
	}
	return nil
}

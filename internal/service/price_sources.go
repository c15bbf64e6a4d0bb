package service

import (
	"context"
	"fmt"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/dataset"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/repository"
)

// PriceSource loads the real price dataset.
type PriceSource interface {
	Load(ctx context.Context) (model.PriceSeries, error)
	Name() string
}

// NewSource returns a DatabaseSource when repo is set and a CSVSource for dataPath otherwise.
func NewSource(dataPath string, repo *repository.PriceRepository) PriceSource {
	if repo != nil {
		return NewDatabaseSource(repo)
	}
	return NewCSVSource(dataPath)
}

// CSVSource reads the dataset from a CSV file on every load.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSVSource for the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Load(_ context.Context) (model.PriceSeries, error) {
	return dataset.ReadFile(s.Path)
}

func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// DatabaseSource reads the dataset from the SQLite price table.
type DatabaseSource struct {
	repo *repository.PriceRepository
}

// NewDatabaseSource creates a DatabaseSource backed by repo.
func NewDatabaseSource(repo *repository.PriceRepository) *DatabaseSource {
	return &DatabaseSource{repo: repo}
}

func (s *DatabaseSource) Load(ctx context.Context) (model.PriceSeries, error) {
	series, err := s.repo.GetPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDataLoad, err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDataLoad, apperrors.ErrEmptyDataset)
	}
	return series, nil
}

func (s *DatabaseSource) Name() string {
	return "sqlite"
}

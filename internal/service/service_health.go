package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-erp-auth/internal/store"
)

type healthService struct {
	storage store.Storage
}

func NewHealthService(storage store.Storage) HealthService {
	return &healthService{storage: storage}
}

func (h *healthService) Ping(ctx context.Context) error {
	if err := h.storage.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrDependency, err)
	}
	return nil
}

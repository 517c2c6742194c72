package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chasta/skyguard/internal/store"
)

const healthCheckTimeout = 2 * time.Second

type HealthService struct {
	store store.Store
}

func NewHealthService(s store.Store) *HealthService {
	return &HealthService{store: s}
}

// Check fails when the database cannot be reached within healthCheckTimeout.
func (hs *HealthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := hs.store.Ping(ctx); err != nil {
		return fmt.Errorf("database is unreachable: %w", err)
	}
	return nil
}

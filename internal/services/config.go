package services

import (
	"context"
	"fmt"
	"strings"

	"eventflow/internal/domain"
)

type configService struct {
	store domain.TableStore
}

// NewConfigService returns a ConfigService over the CONFIG table.
func NewConfigService(store domain.TableStore) domain.ConfigService {
	return &configService{store: store}
}

func (s *configService) Load(ctx context.Context) (domain.ConfigMap, error) {
	rows, err := s.store.Read(ctx, domain.TableConfig)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return domain.ConfigMapFromRows(rows), nil
}

func (s *configService) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: config key is required", domain.ErrValidation)
	}
	if err := s.store.UpsertByKey(ctx, domain.TableConfig, key, []string{key, value}); err != nil {
		return fmt.Errorf("set config %s: %w", key, err)
	}
	return nil
}

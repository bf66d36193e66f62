package memorials

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
)

type memorialAPI interface {
	GetMemorial(ctx context.Context, id string) (*commerce.Memorial, error)
	UpdateMemorial(ctx context.Context, id string, update commerce.MemorialUpdate) (*commerce.Memorial, error)
	GetPublicMemorial(ctx context.Context, id string) (*commerce.Memorial, error)
}

// Service reads and configures memorial pages.
type Service interface {
	Get(ctx context.Context, id string) (*commerce.Memorial, error)
	GetPublic(ctx context.Context, id string) (*commerce.Memorial, error)
	Configure(ctx context.Context, id string, update commerce.MemorialUpdate) (*commerce.Memorial, error)
}

type service struct {
	commerce memorialAPI
	logg     *logger.Logger
}

// NewService builds the memorial service.
func NewService(client memorialAPI, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{commerce: client, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id string) (*commerce.Memorial, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "memorial id is required")
	}
	return s.commerce.GetMemorial(ctx, id)
}

func (s *service) GetPublic(ctx context.Context, id string) (*commerce.Memorial, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "memorial id is required")
	}
	memorial, err := s.commerce.GetPublicMemorial(ctx, id)
	if err != nil {
		return nil, err
	}
	// Hidden contributions never leave the gateway on the public surface.
	visible := memorial.Contributions[:0:0]
	for _, contribution := range memorial.Contributions {
		if !contribution.IsHidden {
			visible = append(visible, contribution)
		}
	}
	memorial.Contributions = visible
	return memorial, nil
}

// Configure patches the memorial's owner-editable fields. An update with no
// fields set is rejected before it reaches the upstream.
func (s *service) Configure(ctx context.Context, id string, update commerce.MemorialUpdate) (*commerce.Memorial, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "memorial id is required")
	}
	if update.Title == "" && update.IsPublic == nil && update.Summary == "" && update.DeceasedPerson == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no memorial fields to update")
	}
	updated, err := s.commerce.UpdateMemorial(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "memorial_id", id), "memorial configured")
	return updated, nil
}

package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
	"github.com/nhakalabs/storefront-gateway/pkg/pagination"
	"github.com/nhakalabs/storefront-gateway/pkg/types"
)

type userAPI interface {
	ListUsers(ctx context.Context, params pagination.Params) (*types.ListEnvelope[commerce.User], error)
	GetUser(ctx context.Context, id string) (*commerce.User, error)
	CreateUser(ctx context.Context, input commerce.UserInput) (*commerce.User, error)
	UpdateUser(ctx context.Context, id string, input commerce.UserInput) (*commerce.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Service proxies the admin user CRUD surface.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*types.ListEnvelope[commerce.User], error)
	Get(ctx context.Context, id string) (*commerce.User, error)
	Create(ctx context.Context, input commerce.UserInput) (*commerce.User, error)
	Update(ctx context.Context, id string, input commerce.UserInput) (*commerce.User, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	commerce userAPI
	logg     *logger.Logger
}

// NewService builds the admin user service.
func NewService(client userAPI, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{commerce: client, logg: logg}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*types.ListEnvelope[commerce.User], error) {
	params.Page = pagination.NormalizePage(params.Page)
	params.Limit = pagination.NormalizeLimit(params.Limit)

	envelope, err := s.commerce.ListUsers(ctx, params)
	if err != nil {
		if errors.Is(err, commerce.ErrMalformedResponse) {
			s.logg.Warn(ctx, "user list response had an unexpected shape, serving empty page")
			return types.EmptyList[commerce.User](params.Page), nil
		}
		return nil, err
	}
	if envelope.Data == nil {
		envelope.Data = []commerce.User{}
	}
	return envelope, nil
}

func (s *service) Get(ctx context.Context, id string) (*commerce.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.commerce.GetUser(ctx, id)
}

func (s *service) Create(ctx context.Context, input commerce.UserInput) (*commerce.User, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	created, err := s.commerce.CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "user_id", created.ID), "user created")
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, input commerce.UserInput) (*commerce.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.commerce.UpdateUser(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.commerce.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "user_id", id), "user deleted")
	return nil
}

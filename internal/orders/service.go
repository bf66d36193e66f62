package orders

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

type purchaseLister interface {
	ListPurchases(ctx context.Context, params pagination.Params) (*types.ListEnvelope[commerce.Purchase], error)
	GetPurchase(ctx context.Context, orderID string) (*commerce.Purchase, error)
}

// Service serves the customer's order history.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*types.ListEnvelope[commerce.Purchase], error)
	Get(ctx context.Context, orderID string) (*commerce.Purchase, error)
}

type service struct {
	commerce purchaseLister
	logg     *logger.Logger
}

// NewService builds the order history service.
func NewService(client purchaseLister, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{commerce: client, logg: logg}, nil
}

// List fetches one page of orders with their memorials joined in. A response
// that fails to decode degrades to an empty page instead of failing the view.
func (s *service) List(ctx context.Context, params pagination.Params) (*types.ListEnvelope[commerce.Purchase], error) {
	params.Page = pagination.NormalizePage(params.Page)
	params.Limit = pagination.NormalizeLimit(params.Limit)

	envelope, err := s.commerce.ListPurchases(ctx, params)
	if err != nil {
		if errors.Is(err, commerce.ErrMalformedResponse) {
			s.logg.Warn(ctx, "order list response had an unexpected shape, serving empty page")
			return types.EmptyList[commerce.Purchase](params.Page), nil
		}
		return nil, err
	}
	if envelope.Data == nil {
		envelope.Data = []commerce.Purchase{}
	}
	return envelope, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*commerce.Purchase, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return s.commerce.GetPurchase(ctx, orderID)
}

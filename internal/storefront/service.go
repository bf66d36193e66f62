package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nhakalabs/storefront-gateway/internal/cart"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
)

// Panel names the storefront overlays a session can toggle.
type Panel string

const (
	PanelCart          Panel = "cart"
	PanelWishlist      Panel = "wishlist"
	PanelProductDetail Panel = "product-detail"
)

// CartView is the cart state plus its derived aggregates.
type CartView struct {
	cart.State
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// AddItemInput is the add-to-cart request payload.
type AddItemInput struct {
	ProductID   string          `json:"productId" validate:"required"`
	ProductName string          `json:"productName" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
}

type cartAccessor interface {
	Use(sessionID string) (*cart.Store, error)
}

// Service exposes the session cart to the HTTP layer.
type Service interface {
	View(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error)
	SetPanel(ctx context.Context, sessionID string, panel Panel, open bool, productID string) (*CartView, error)
}

type service struct {
	carts cartAccessor
	logg  *logger.Logger
}

// NewService builds the storefront cart service.
func NewService(carts cartAccessor, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart accessor required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{carts: carts, logg: logg}, nil
}

func view(state cart.State) *CartView {
	return &CartView{
		State: state,
		Count: state.Count(),
		Total: state.Total(),
	}
}

func (s *service) View(ctx context.Context, sessionID string) (*CartView, error) {
	store, err := s.carts.Use(sessionID)
	if err != nil {
		return nil, err
	}
	return view(store.Snapshot()), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartView, error) {
	if strings.TrimSpace(input.ProductID) == "" || strings.TrimSpace(input.ProductName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id and name are required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	store, err := s.carts.Use(sessionID)
	if err != nil {
		return nil, err
	}
	state := store.Dispatch(cart.AddItem{Item: cart.LineItem{
		ProductID:   input.ProductID,
		ProductName: input.ProductName,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}})
	return view(state), nil
}

// UpdateQuantity floors the requested quantity at 1; deletion goes through
// RemoveItem, never through a zero quantity.
func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		quantity = 1
	}
	store, err := s.carts.Use(sessionID)
	if err != nil {
		return nil, err
	}
	state := store.Dispatch(cart.UpdateItemQuantity{ProductID: productID, Quantity: quantity})
	return view(state), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	store, err := s.carts.Use(sessionID)
	if err != nil {
		return nil, err
	}
	state := store.Dispatch(cart.RemoveItem{ProductID: productID})
	return view(state), nil
}

func (s *service) SetPanel(ctx context.Context, sessionID string, panel Panel, open bool, productID string) (*CartView, error) {
	store, err := s.carts.Use(sessionID)
	if err != nil {
		return nil, err
	}

	var action cart.Action
	switch panel {
	case PanelCart:
		if open {
			action = cart.OpenCartPanel{}
		} else {
			action = cart.CloseCartPanel{}
		}
	case PanelWishlist:
		if open {
			action = cart.OpenWishlistPanel{}
		} else {
			action = cart.CloseWishlistPanel{}
		}
	case PanelProductDetail:
		if open {
			if strings.TrimSpace(productID) == "" {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required to open product detail")
			}
			action = cart.OpenProductDetail{ProductID: productID}
		} else {
			action = cart.CloseProductDetail{}
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown panel")
	}

	return view(store.Dispatch(action)), nil
}

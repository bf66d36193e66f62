package controllers

import (
	"context"
	"net/http"

	"github.com/nhakalabs/storefront-gateway/api/middleware"
	"github.com/nhakalabs/storefront-gateway/api/responses"
	"github.com/nhakalabs/storefront-gateway/api/validators"
	checkoutsvc "github.com/nhakalabs/storefront-gateway/internal/checkout"
	"github.com/nhakalabs/storefront-gateway/internal/payment"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
)

func identityFromContext(ctx context.Context) *checkoutsvc.Identity {
	userID := middleware.UserIDFromContext(ctx)
	if userID == "" {
		return nil
	}
	return &checkoutsvc.Identity{
		UserID:   userID,
		FullName: middleware.FullNameFromContext(ctx),
		Email:    middleware.EmailFromContext(ctx),
	}
}

// CheckoutState reports the wizard position, form and processing flag.
func CheckoutState(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		state, err := svc.State(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

type deliveryRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// CheckoutDelivery submits the step 1 form and advances to payment.
func CheckoutDelivery(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body deliveryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.SubmitDelivery(r.Context(), middleware.SessionIDFromContext(r.Context()), checkoutsvc.DeliveryInfo{
			FullName: body.FullName,
			Email:    body.Email,
			Phone:    body.Phone,
			Address:  body.Address,
			City:     body.City,
			State:    body.State,
			ZipCode:  body.ZipCode,
			Country:  body.Country,
		}, identityFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

type paymentMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

func CheckoutPaymentMethod(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body paymentMethodRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.SelectPaymentMethod(r.Context(), middleware.SessionIDFromContext(r.Context()), payment.Method(body.Method))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

func CheckoutBack(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		state, err := svc.Back(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// CheckoutPlaceOrder runs the order submission for the session's cart.
func CheckoutPlaceOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		created, err := svc.PlaceOrder(r.Context(), middleware.SessionIDFromContext(r.Context()), identityFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

package checkout

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nhakalabs/storefront-gateway/internal/cart"
	"github.com/nhakalabs/storefront-gateway/internal/payment"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
)

// Identity is the authenticated customer, when one is signed in. The customer
// block of the purchase record prefers it over the delivery form.
type Identity struct {
	UserID   string
	FullName string
	Email    string
}

// buildPurchase assembles the normalized order record. The record is built
// once at submission time and never mutated afterward. The wire shape carries
// a single item block, which stays the first line item; every money field is
// computed over the whole cart.
func buildPurchase(
	cartState cart.State,
	delivery DeliveryInfo,
	method payment.Method,
	auth payment.Authorization,
	identity *Identity,
	currency string,
	now time.Time,
) commerce.Purchase {
	item, _ := cartState.FirstItem()
	lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	cartTotal := cartState.Total()

	customer := commerce.Customer{
		FullName: delivery.FullName,
		Email:    delivery.Email,
		Phone:    delivery.Phone,
	}
	if identity != nil {
		customer.ID = identity.UserID
		if identity.FullName != "" {
			customer.FullName = identity.FullName
		}
		if identity.Email != "" {
			customer.Email = identity.Email
		}
	}

	return commerce.Purchase{
		OrderID:   orderID(now),
		OrderDate: now.UTC().Format(time.RFC3339),
		Item: commerce.PurchaseItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			TotalPrice:  lineTotal,
		},
		Customer: customer,
		Delivery: commerce.Delivery{
			FullName: delivery.FullName,
			Email:    delivery.Email,
			Phone:    delivery.Phone,
			Address:  delivery.Address,
			City:     delivery.City,
			State:    delivery.State,
			ZipCode:  delivery.ZipCode,
			Country:  delivery.Country,
		},
		Payment: commerce.Payment{
			Method:        string(method),
			Provider:      auth.Provider,
			TransactionID: auth.TransactionID,
			Status:        auth.Status,
			Timestamp:     auth.Timestamp.UTC().Format(time.RFC3339),
			Currency:      currency,
			Subtotal:      cartTotal,
			Tax:           decimal.Zero,
			ShippingCost:  decimal.Zero,
			Discount:      decimal.Zero,
			TotalAmount:   cartTotal,
			ProcessorResponse: commerce.ProcessorResponse{
				AuthorizationCode: auth.AuthorizationCode,
				ReceiptURL:        auth.ReceiptURL,
				Last4:             auth.Last4,
				CardBrand:         auth.CardBrand,
			},
		},
		Summary: commerce.OrderSummary{
			ItemCount: cartState.Count(),
			Subtotal:  cartTotal,
			Total:     cartTotal,
			Currency:  currency,
		},
	}
}

func orderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d", now.UnixMilli())
}

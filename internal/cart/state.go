package cart

import "github.com/shopspring/decimal"

// LineItem is one distinct product/quantity pair in the cart.
type LineItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// State holds cart contents plus the storefront panel visibility flags.
// Line items keep insertion order and hold at most one entry per product id.
type State struct {
	LineItems                []LineItem `json:"lineItems"`
	IsCartPanelOpen          bool       `json:"isCartPanelOpen"`
	IsWishlistPanelOpen      bool       `json:"isWishlistPanelOpen"`
	IsProductDetailPanelOpen bool       `json:"isProductDetailPanelOpen"`
	ActiveProductDetailID    string     `json:"activeProductDetailId,omitempty"`
}

// Count sums quantities across all line items.
func (s State) Count() int {
	count := 0
	for _, item := range s.LineItems {
		count += item.Quantity
	}
	return count
}

// Total sums price*quantity across all line items.
func (s State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.LineItems {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// FirstItem returns the first line item in insertion order, if any.
func (s State) FirstItem() (LineItem, bool) {
	if len(s.LineItems) == 0 {
		return LineItem{}, false
	}
	return s.LineItems[0], true
}

// Action is one cart state transition command.
type Action interface {
	isAction()
}

type AddItem struct{ Item LineItem }

// UpdateItemQuantity sets the quantity unconditionally for the matching
// entry. A floor of 1 is the caller's responsibility; unknown ids are a no-op.
type UpdateItemQuantity struct {
	ProductID string
	Quantity  int
}

type RemoveItem struct{ ProductID string }

type OpenCartPanel struct{}
type CloseCartPanel struct{}
type OpenWishlistPanel struct{}
type CloseWishlistPanel struct{}

type OpenProductDetail struct{ ProductID string }
type CloseProductDetail struct{}

func (AddItem) isAction()            {}
func (UpdateItemQuantity) isAction() {}
func (RemoveItem) isAction()         {}
func (OpenCartPanel) isAction()      {}
func (CloseCartPanel) isAction()     {}
func (OpenWishlistPanel) isAction()  {}
func (CloseWishlistPanel) isAction() {}
func (OpenProductDetail) isAction()  {}
func (CloseProductDetail) isAction() {}

// Reduce applies one action to the state and returns the next state. It is
// pure: the input state is never mutated, line item slices are copied on
// every content change.
func Reduce(state State, action Action) State {
	switch act := action.(type) {
	case AddItem:
		next := state
		next.LineItems = mergeItem(state.LineItems, act.Item)
		// Adding never auto-opens the cart panel.
		next.IsCartPanelOpen = false
		return next

	case UpdateItemQuantity:
		next := state
		next.LineItems = setQuantity(state.LineItems, act.ProductID, act.Quantity)
		return next

	case RemoveItem:
		next := state
		next.LineItems = removeProduct(state.LineItems, act.ProductID)
		return next

	case OpenCartPanel:
		next := state
		next.IsCartPanelOpen = true
		return next

	case CloseCartPanel:
		next := state
		next.IsCartPanelOpen = false
		return next

	case OpenWishlistPanel:
		next := state
		next.IsWishlistPanelOpen = true
		return next

	case CloseWishlistPanel:
		next := state
		next.IsWishlistPanelOpen = false
		return next

	case OpenProductDetail:
		next := state
		next.IsProductDetailPanelOpen = true
		next.ActiveProductDetailID = act.ProductID
		return next

	case CloseProductDetail:
		next := state
		next.IsProductDetailPanelOpen = false
		next.ActiveProductDetailID = ""
		return next

	default:
		return state
	}
}

func mergeItem(items []LineItem, item LineItem) []LineItem {
	next := make([]LineItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].ProductID == item.ProductID {
			next[i].Quantity += item.Quantity
			return next
		}
	}
	return append(next, item)
}

func setQuantity(items []LineItem, productID string, quantity int) []LineItem {
	next := make([]LineItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = quantity
		}
	}
	return next
}

func removeProduct(items []LineItem, productID string) []LineItem {
	next := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	return next
}

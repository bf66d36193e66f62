package commerce

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types follow the upstream commerce API's JSON field naming.

type PurchaseItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type Customer struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Delivery struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

type ProcessorResponse struct {
	AuthorizationCode string  `json:"authorizationCode"`
	ReceiptURL        string  `json:"receiptUrl"`
	Last4             *string `json:"last4"`
	CardBrand         *string `json:"cardBrand"`
}

type Payment struct {
	Method            string            `json:"method"`
	Provider          string            `json:"provider"`
	TransactionID     string            `json:"transactionId"`
	Status            string            `json:"status"`
	Timestamp         string            `json:"timestamp"`
	Currency          string            `json:"currency"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	Tax               decimal.Decimal   `json:"tax"`
	ShippingCost      decimal.Decimal   `json:"shippingCost"`
	Discount          decimal.Decimal   `json:"discount"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"`
	ProcessorResponse ProcessorResponse `json:"processorResponse"`
}

type OrderSummary struct {
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

// Purchase is the normalized order record submitted at checkout completion.
type Purchase struct {
	OrderID   string       `json:"orderId"`
	OrderDate string       `json:"orderDate"`
	Item      PurchaseItem `json:"item"`
	Customer  Customer     `json:"customer"`
	Delivery  Delivery     `json:"delivery"`
	Payment   Payment      `json:"payment"`
	Summary   OrderSummary `json:"summary"`

	Memorials []Memorial `json:"memorials,omitempty"`
}

type DeceasedPerson struct {
	FullName     string `json:"fullName"`
	DateOfBirth  string `json:"dateOfBirth"`
	DateOfDeath  string `json:"dateOfDeath"`
	PlaceOfDeath string `json:"placeOfDeath"`
}

type QRCode struct {
	Code     string `json:"code"`
	IsActive bool   `json:"isActive"`
}

type Memorial struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	IsPublic           bool            `json:"isPublic"`
	IsConfirmed        bool            `json:"isConfirmed"`
	MemorialPurchaseID string          `json:"memorialPurchaseId"`
	Summary            string          `json:"summary"`
	DeceasedPerson     *DeceasedPerson `json:"deceasedPerson,omitempty"`
	QRCode             *QRCode         `json:"qrCode,omitempty"`
	Contributions      []Contribution  `json:"contributions,omitempty"`
}

// MemorialUpdate carries the configurable memorial fields.
type MemorialUpdate struct {
	Title          string          `json:"title,omitempty"`
	IsPublic       *bool           `json:"isPublic,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	DeceasedPerson *DeceasedPerson `json:"deceasedPerson,omitempty"`
}

type ContributionType string

const (
	ContributionBiography ContributionType = "BIOGRAPHY"
	ContributionComment   ContributionType = "COMMENT"
	ContributionStory     ContributionType = "STORY"
	ContributionPrayer    ContributionType = "PRAYER"
	ContributionImage     ContributionType = "IMAGE"
	ContributionAudio     ContributionType = "AUDIO"
	ContributionVideo     ContributionType = "VIDEO"
)

func (t ContributionType) IsValid() bool {
	switch t {
	case ContributionBiography, ContributionComment, ContributionStory,
		ContributionPrayer, ContributionImage, ContributionAudio, ContributionVideo:
		return true
	}
	return false
}

type Contribution struct {
	ID              string           `json:"id"`
	MemorialID      string           `json:"memorialId"`
	Type            ContributionType `json:"type"`
	TextContent     string           `json:"textContent,omitempty"`
	MediaURL        string           `json:"mediaUrl,omitempty"`
	ContributorName string           `json:"contributorName,omitempty"`
	IsHidden        bool             `json:"isHidden"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// CreateContributionInput is the payload for new visitor contributions.
type CreateContributionInput struct {
	MemorialID      string           `json:"memorialId"`
	Type            ContributionType `json:"type"`
	TextContent     string           `json:"textContent,omitempty"`
	MediaURL        string           `json:"mediaUrl,omitempty"`
	ContributorName string           `json:"contributorName,omitempty"`
}

type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type UserInput struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the upstream session payload: the access token plus profile.
type AuthResult struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

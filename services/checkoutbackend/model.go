package checkoutbackend

import (
	"github.com/MarcGrol/cartcheckout/services/cart"
)

const (
	CurrencyUSD             = "USD"
	IssueInstrumentDeclined = "INSTRUMENT_DECLINED"
)

type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type OrderLine struct {
	Name       string `json:"name"`
	UnitAmount Amount `json:"unit_amount"`
	Quantity   string `json:"quantity"`
}

type CreateOrderRequest struct {
	Cart []OrderLine `json:"cart"`
}

// NewCreateOrderRequest normalizes the cart: one line per item, quantity "1" and the unit
// amount with exactly two decimals.
func NewCreateOrderRequest(c cart.Cart) CreateOrderRequest {
	lines := make([]OrderLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, OrderLine{
			Name: item.Name,
			UnitAmount: Amount{
				CurrencyCode: CurrencyUSD,
				Value:        item.Price.String(),
			},
			Quantity: "1",
		})
	}
	return CreateOrderRequest{
		Cart: lines,
	}
}

type ErrorDetail struct {
	Issue       string `json:"issue"`
	Description string `json:"description"`
	DebugID     string `json:"debug_id,omitempty"`
}

type OrderResponse struct {
	ID      string        `json:"id,omitempty"`
	DebugID string        `json:"debug_id,omitempty"`
	Details []ErrorDetail `json:"details,omitempty"`

	HTTPStatus int    `json:"-"`
	Raw        []byte `json:"-"`
	// Decoded is false when the body was not a json object
	Decoded bool `json:"-"`
}

type Capture struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Payments struct {
	Captures []Capture `json:"captures"`
}

type PurchaseUnit struct {
	Payments Payments `json:"payments"`
}

type CaptureResponse struct {
	ID            string         `json:"id,omitempty"`
	Status        string         `json:"status,omitempty"`
	DebugID       string         `json:"debug_id,omitempty"`
	Details       []ErrorDetail  `json:"details,omitempty"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units,omitempty"`

	HTTPStatus int    `json:"-"`
	Raw        []byte `json:"-"`
	Decoded    bool   `json:"-"`
}

// FirstCapture returns purchase_units[0].payments.captures[0]
func (r CaptureResponse) FirstCapture() (Capture, bool) {
	if len(r.PurchaseUnits) == 0 || len(r.PurchaseUnits[0].Payments.Captures) == 0 {
		return Capture{}, false
	}
	return r.PurchaseUnits[0].Payments.Captures[0], true
}

type RedirectItem struct {
	Name  string     `json:"name"`
	Price cart.Price `json:"price"`
}

type RedirectSessionRequest struct {
	CartItems []RedirectItem `json:"cartItems"`
}

func NewRedirectSessionRequest(c cart.Cart) RedirectSessionRequest {
	items := make([]RedirectItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, RedirectItem{
			Name:  item.Name,
			Price: item.Price,
		})
	}
	return RedirectSessionRequest{
		CartItems: items,
	}
}

type RedirectSessionResponse struct {
	URL string `json:"url"`

	HTTPStatus int    `json:"-"`
	Raw        []byte `json:"-"`
}

package cart

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/cartcheckout/lib/myerrors"
)

type Item struct {
	Name  string `form:"name" json:"name"`
	Price Price  `form:"price" json:"price"`
}

func (i Item) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("item without name")
	}
	if i.Price < 0 {
		return fmt.Errorf("item %s has negative price %s", i.Name, i.Price)
	}
	return nil
}

// Cart is read-only once created
type Cart struct {
	Items []Item `form:"cartItems"`
}

// Default returns the fixed cart offered by the widget
func Default() Cart {
	return Cart{
		Items: []Item{
			{Name: "PMI PMP Course", Price: 2000},
			{Name: "PMI PgMP Simulator", Price: 2000},
		},
	}
}

func (c Cart) Validate() error {
	if len(c.Items) == 0 {
		return fmt.Errorf("cart is empty")
	}
	for idx, item := range c.Items {
		err := item.Validate()
		if err != nil {
			return fmt.Errorf("invalid item %d: %s", idx, err)
		}
	}
	return nil
}

func (c Cart) Total() Price {
	var total Price
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}

func (c Cart) Equal(other Cart) bool {
	if len(c.Items) != len(other.Items) {
		return false
	}
	for idx := range c.Items {
		if c.Items[idx] != other.Items[idx] {
			return false
		}
	}
	return true
}

func newDecoder() *formcodec.Decoder {
	decoder := formcodec.NewDecoder()
	decoder.RegisterCustomTypeFunc(func(values []string) (any, error) {
		return ParsePrice(values[0])
	}, Price(0))
	return decoder
}

func newEncoder() *formcodec.Encoder {
	encoder := formcodec.NewEncoder()
	encoder.RegisterCustomTypeFunc(func(x any) ([]string, error) {
		return []string{x.(Price).String()}, nil
	}, Price(0))
	return encoder
}

func FromRequest(r *http.Request) (Cart, error) {
	err := r.ParseForm()
	if err != nil {
		return Cart{}, myerrors.NewInvalidInputError(err)
	}
	return FromValues(r.Form)
}

func FromValues(values url.Values) (Cart, error) {
	c := Cart{}
	err := newDecoder().Decode(&c, values)
	if err != nil {
		return Cart{}, myerrors.NewInvalidInputError(fmt.Errorf("error decoding cart form: %s", err))
	}

	err = c.Validate()
	if err != nil {
		return Cart{}, myerrors.NewInvalidInputError(err)
	}

	return c, nil
}

func (c Cart) ToForm() (url.Values, error) {
	values, err := newEncoder().Encode(c)
	if err != nil {
		return nil, fmt.Errorf("error encoding cart form: %s", err)
	}

	return values, nil
}

type FormField struct {
	Name  string
	Value string
}

// FormFields returns the cart as hidden form fields in a stable order
func (c Cart) FormFields() ([]FormField, error) {
	values, err := c.ToForm()
	if err != nil {
		return nil, err
	}

	fields := make([]FormField, 0, len(values))
	for name, value := range values {
		fields = append(fields, FormField{Name: name, Value: value[0]})
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})

	return fields, nil
}

package cart

import (
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/cartcheckout/lib/myerrors"
)

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		in        string
		price     Price
		formatted string
	}{
		{in: "20", price: 2000, formatted: "20.00"},
		{in: "20.0", price: 2000, formatted: "20.00"},
		{in: "20.5", price: 2050, formatted: "20.50"},
		{in: "0.5", price: 50, formatted: "0.50"},
		{in: ".99", price: 99, formatted: "0.99"},
		{in: "19.999", price: 2000, formatted: "20.00"},
		{in: "19.994", price: 1999, formatted: "19.99"},
		{in: "1.005", price: 101, formatted: "1.01"},
		{in: "0", price: 0, formatted: "0.00"},
		{in: " 7.25 ", price: 725, formatted: "7.25"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			price, err := ParsePrice(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.price, price)
			assert.Equal(t, tc.formatted, price.String())
		})
	}

	for _, invalid := range []string{"", "-1", "abc", "1.2.3", "1,50", "1e3"} {
		t.Run("invalid "+invalid, func(t *testing.T) {
			_, err := ParsePrice(invalid)
			assert.Error(t, err)
		})
	}
}

func TestPriceBounds(t *testing.T) {
	price, err := ParsePrice("92233720368547757")
	require.NoError(t, err)
	assert.Equal(t, Price(9223372036854775700), price)
	assert.Equal(t, "92233720368547757.00", price.String())

	price, err = ParsePrice("92233720368547757.99")
	require.NoError(t, err)
	assert.Equal(t, Price(math.MaxInt64-8), price)

	for _, tooLarge := range []string{"92233720368547758", "200000000000000000", "2305843009213693952", "9223372036854775808"} {
		t.Run("too large "+tooLarge, func(t *testing.T) {
			_, err := ParsePrice(tooLarge)
			assert.Error(t, err)
		})
	}

	assert.Equal(t, "-92233720368547758.08", Price(math.MinInt64).String())
	assert.Equal(t, "92233720368547758.07", Price(math.MaxInt64).String())
	assert.Equal(t, "-0.05", Price(-5).String())
}

func TestHugePriceInFormIsInvalidInput(t *testing.T) {
	_, err := FromValues(url.Values{
		"cartItems[0].name":  {"PMI PMP Course"},
		"cartItems[0].price": {"2305843009213693952"},
	})
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
}

func TestPriceJSON(t *testing.T) {
	data, err := json.Marshal(Item{Name: "a", Price: 2000})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a","price":20}`, string(data))

	data, err = json.Marshal(Item{Name: "b", Price: 2050})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"b","price":20.5}`, string(data))

	item := Item{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"c","price":12.345}`), &item))
	assert.Equal(t, Price(1235), item.Price)

	assert.Error(t, json.Unmarshal([]byte(`{"name":"c","price":"abc"}`), &item))
}

func TestDefaultCart(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	assert.Len(t, c.Items, 2)
	assert.Equal(t, "PMI PMP Course", c.Items[0].Name)
	assert.Equal(t, "20.00", c.Items[0].Price.String())
	assert.Equal(t, "PMI PgMP Simulator", c.Items[1].Name)
	assert.Equal(t, "40.00", c.Total().String())
	assert.True(t, c.Equal(Default()))
}

func TestValidate(t *testing.T) {
	assert.Error(t, Cart{}.Validate())
	assert.Error(t, Cart{Items: []Item{{Name: "", Price: 1}}}.Validate())
	assert.Error(t, Cart{Items: []Item{{Name: "x", Price: -1}}}.Validate())
	assert.NoError(t, Cart{Items: []Item{{Name: "free", Price: 0}}}.Validate())
}

func TestFormDecode(t *testing.T) {
	form := url.Values{
		"cartItems[0].name":  []string{"PMI PMP Course"},
		"cartItems[0].price": []string{"20.00"},
		"cartItems[1].name":  []string{"PMI PgMP Simulator"},
		"cartItems[1].price": []string{"20"},
	}

	c, err := FromValues(form)
	require.NoError(t, err)
	assert.True(t, Default().Equal(c))
}

func TestFormDecodeInvalid(t *testing.T) {
	_, err := FromValues(url.Values{"cartItems[0].name": []string{"x"}, "cartItems[0].price": []string{"-5"}})
	assert.Error(t, err)
	assert.Equal(t, 400, myerrors.GetHTTPStatus(err))

	_, err = FromValues(url.Values{})
	assert.Error(t, err)
	assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
}

func TestFormFieldsRoundTripThroughDecoder(t *testing.T) {
	fields, err := Default().FormFields()
	require.NoError(t, err)

	assert.Equal(t, []FormField{
		{Name: "cartItems[0].name", Value: "PMI PMP Course"},
		{Name: "cartItems[0].price", Value: "20.00"},
		{Name: "cartItems[1].name", Value: "PMI PgMP Simulator"},
		{Name: "cartItems[1].price", Value: "20.00"},
	}, fields)

	values := url.Values{}
	for _, f := range fields {
		values.Set(f.Name, f.Value)
	}
	c, err := FromValues(values)
	require.NoError(t, err)
	assert.True(t, Default().Equal(c))
}

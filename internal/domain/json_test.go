package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItemDecodingTolerance(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantKey   string
		wantPrice OptInt
		wantQty   OptInt
	}{
		{"numbers", `{"id":9,"price":1000,"quantity":2}`, "9", Int(1000), Int(2)},
		{"quoted numbers", `{"id":"9","price":"1000","quantity":"2"}`, "9", Int(1000), Int(2)},
		{"productId fallback", `{"productId":"abc","quantity":1}`, "abc", OptInt{}, Int(1)},
		{"null and missing", `{"id":"1","price":null}`, "1", OptInt{}, OptInt{}},
		{"negative is absent", `{"id":"1","price":-5,"quantity":-1}`, "1", OptInt{}, OptInt{}},
		{"garbage is absent", `{"id":"1","price":"abc","quantity":true}`, "1", OptInt{}, OptInt{}},
		{"float rounds", `{"id":"1","price":1999.6}`, "1", Int(2000), OptInt{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it OrderItem
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &it))
			assert.Equal(t, tt.wantKey, it.Key())
			assert.Equal(t, tt.wantPrice, it.Price)
			assert.Equal(t, tt.wantQty, it.Quantity)
		})
	}
}

func TestOrderDecodes(t *testing.T) {
	raw := `{
		"id": 42,
		"customerName": "Lan",
		"customer": {"name": "Nguyễn Thị Lan", "phone": "0901234567"},
		"items": [{"id": "1", "quantity": 1}],
		"totalAmount": "3500000",
		"status": "pending",
		"paymentMethod": "cod",
		"createdAt": "2026-10-01T08:30:00.000Z"
	}`
	var o Order
	require.NoError(t, json.Unmarshal([]byte(raw), &o))
	assert.Equal(t, FlexString("42"), o.ID)
	assert.Equal(t, "Nguyễn Thị Lan", o.DisplayName())
	assert.Equal(t, "0901234567", o.DisplayPhone())
	assert.Equal(t, Int(3500000), o.TotalAmount)
	assert.Equal(t, OrderStatusPending, o.Status)
	created, ok := o.Created()
	require.True(t, ok)
	assert.Equal(t, 2026, created.Year())
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, s)
	assert.Equal(t, "Đang giao", s.Label())

	_, err = ParseOrderStatus("lost")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "0₫", Money(0).String())
	assert.Equal(t, "999₫", Money(999).String())
	assert.Equal(t, "3.500.000₫", Money(3500000).String())
	assert.Equal(t, "-12.000₫", Money(-12000).String())
	assert.Equal(t, Money(0), Money(100).Times(-1))
}

func TestFallbackProductsAreFresh(t *testing.T) {
	a := FallbackProducts()
	a[0].Name = "changed"
	b := FallbackProducts()
	assert.Equal(t, "Đầm dạ hội lộng lẫy", b[0].Name)
	assert.NotEmpty(t, b)
}

package domain

// Customer is the contact block embedded in a remote order.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// DisplayName prefers the embedded customer, then the flat order field.
func (o *Order) DisplayName() string {
	if o.Customer.Name != "" {
		return o.Customer.Name
	}
	return o.CustomerName
}

func (o *Order) DisplayPhone() string {
	if o.Customer.Phone != "" {
		return o.Customer.Phone
	}
	return o.CustomerPhone
}

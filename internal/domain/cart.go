package domain

// CartItem is a snapshot of a product taken when it was first added.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    Money  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

type CartCommandKind int

const (
	CartAdd CartCommandKind = iota + 1
	CartChangeQuantity
	CartRemove
	CartClear
)

func (k CartCommandKind) String() string {
	switch k {
	case CartAdd:
		return "add"
	case CartChangeQuantity:
		return "change_quantity"
	case CartRemove:
		return "remove"
	case CartClear:
		return "clear"
	}
	return "unknown"
}

// CartCommand is one user action on the cart. Product is only read by CartAdd
// and must already be resolved.
type CartCommand struct {
	Kind      CartCommandKind
	ProductID string
	Delta     int
	Product   *Product
}

// ReduceCart applies cmd to items and returns the next cart and whether it
// differs from the input. The input slice is never modified.
//
// Invariants kept: one item per product id, quantity >= 1, insertion order.
func ReduceCart(items []CartItem, cmd CartCommand) ([]CartItem, bool) {
	switch cmd.Kind {
	case CartAdd:
		if cmd.Product == nil || cmd.Product.ID == "" {
			return items, false
		}
		next := cloneCart(items)
		if i := indexOf(next, cmd.Product.ID); i >= 0 {
			next[i].Quantity++
			return next, true
		}
		return append(next, CartItem{
			ID:       cmd.Product.ID,
			Name:     cmd.Product.Name,
			Price:    cmd.Product.Price,
			Quantity: 1,
			Image:    cmd.Product.Image,
		}), true

	case CartChangeQuantity:
		i := indexOf(items, cmd.ProductID)
		if i < 0 || cmd.Delta == 0 {
			return items, false
		}
		q := items[i].Quantity + cmd.Delta
		if q <= 0 {
			return without(items, i), true
		}
		next := cloneCart(items)
		next[i].Quantity = q
		return next, true

	case CartRemove:
		i := indexOf(items, cmd.ProductID)
		if i < 0 {
			return items, false
		}
		return without(items, i), true

	case CartClear:
		if len(items) == 0 {
			return items, false
		}
		return []CartItem{}, true
	}
	return items, false
}

// NormalizeCart repairs a cart read from storage: drops items without id or
// with quantity < 1 and merges duplicate ids keeping the first position.
func NormalizeCart(items []CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 {
			continue
		}
		if i := indexOf(out, it.ID); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}

func CartCount(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func CartSubtotal(items []CartItem) Money {
	var total Money
	for _, it := range items {
		total += it.Price.Times(it.Quantity)
	}
	return total
}

func indexOf(items []CartItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneCart(items []CartItem) []CartItem {
	out := make([]CartItem, len(items), len(items)+1)
	copy(out, items)
	return out
}

func without(items []CartItem, i int) []CartItem {
	out := make([]CartItem, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

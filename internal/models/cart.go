package models

// CartItem позиция корзины. В корзине не больше одной позиции с одним названием.
type CartItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// AddCartItemRequest используется для приёма позиции корзины из JSON-запроса.
type AddCartItemRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

// CartSummary содержимое корзины вместе с итоговыми суммами.
type CartSummary struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Total    float64    `json:"total"`
}

// Package cart содержит корзину покупок: позиции, подытог и итог с налогом.
package cart

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/usercart/internal/models"
)

// DefaultTaxRate ставка налога по умолчанию.
const DefaultTaxRate = 0.07

// Cart хранит позиции в порядке добавления. Безопасна для конкурентного использования.
type Cart struct {
	mu      sync.RWMutex
	items   []models.CartItem
	taxRate float64
}

// New создаёт пустую корзину. Отрицательная ставка заменяется на DefaultTaxRate.
func New(taxRate float64) *Cart {
	if taxRate < 0 {
		taxRate = DefaultTaxRate
	}
	return &Cart{
		items:   make([]models.CartItem, 0),
		taxRate: taxRate,
	}
}

// AddItem добавляет позицию. Если позиция с таким названием уже есть,
// увеличивает количество на 1, цена при этом не меняется.
func (c *Cart) AddItem(name string, unitPrice float64) models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Name == name {
			c.items[i].Quantity++
			return c.items[i]
		}
	}

	item := models.CartItem{
		ID:        uuid.NewString(),
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	}
	c.items = append(c.items, item)
	return item
}

// RemoveItem удаляет позицию по ID. Возвращает false, если позиции не было.
func (c *Cart) RemoveItem(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items возвращает копию позиций.
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]models.CartItem, len(c.items))
	copy(res, c.items)
	return res
}

// Clear очищает корзину.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]models.CartItem, 0)
}

// Subtotal сумма цена × количество по всем позициям.
func (c *Cart) Subtotal() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.subtotal()
}

// Total подытог плюс налог, округлённый до центов.
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.total(c.subtotal())
}

// Summary возвращает позиции и суммы одним снимком.
func (c *Cart) Summary() models.CartSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	subtotal := c.subtotal()

	return models.CartSummary{
		Items:    items,
		Subtotal: subtotal,
		Total:    c.total(subtotal),
	}
}

func (c *Cart) subtotal() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

func (c *Cart) total(subtotal float64) float64 {
	return math.Round(subtotal*(1+c.taxRate)*100) / 100
}

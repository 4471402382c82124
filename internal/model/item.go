package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Item is the domain model for one inventory record.
// ID is assigned by the store and never changes afterwards.
type Item struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// TotalValue is quantity times unit price. Never stored.
func (it Item) TotalValue() float64 {
	return float64(it.Quantity) * it.Price
}

// Draft returns the mutable fields of the item.
func (it Item) Draft() Draft {
	return Draft{Name: it.Name, Category: it.Category, Quantity: it.Quantity, Price: it.Price}
}

// Draft holds everything about an Item except its id: the input to
// create and update.
type Draft struct {
	Name     string
	Category string
	Quantity int
	Price    float64
}

var (
	ErrEmptyName        = errors.New("name is required")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrInvalidQuantity  = errors.New("quantity must be a whole number")
	ErrInvalidPrice     = errors.New("price must be a number")
)

// Validate checks the item invariants. Callers run it before handing a
// draft to the store.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if d.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// ParseDraft turns raw form input into a validated Draft.
func ParseDraft(name, category, quantity, price string) (Draft, error) {
	d := Draft{
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
	}
	q, err := ParseQuantity(quantity)
	if err != nil {
		return Draft{}, err
	}
	p, err := ParsePrice(price)
	if err != nil {
		return Draft{}, err
	}
	d.Quantity, d.Price = q, p
	if err := d.Validate(); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// ParseQuantity parses a whole number, ignoring surrounding blanks.
func ParseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	return q, nil
}

// ParsePrice parses a decimal number, ignoring surrounding blanks.
// NaN and infinities are rejected.
func ParsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return p, nil
}

// FormatPrice renders a price in its shortest exact decimal form.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

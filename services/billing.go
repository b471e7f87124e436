package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeTax      = errors.New("tax must not be negative")
	ErrNegativeDiscount = errors.New("discount must not be negative")
)

// LineItemInput is a quantity/unit-price pair entering the calculator.
type LineItemInput struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// TotalBreakdown is the result of a totals computation.
type TotalBreakdown struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// LineAmount returns quantity x unit price for one line.
func LineAmount(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func validateItems(items []LineItemInput) error {
	for i, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("item %d: quantity must be a positive integer", i+1)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("item %d: unit price must not be negative", i+1)
		}
	}
	return nil
}

// Subtotal sums quantity x unit price over the items. The result does
// not depend on item order.
func Subtotal(items []LineItemInput) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineAmount(item.Quantity, item.UnitPrice))
	}
	return sum
}

// InvoiceTotals computes subtotal + tax - discount. Invalid input is
// rejected, never coerced to zero. An empty item sequence is valid:
// the subtotal is zero and the total is tax - discount, as computed.
func InvoiceTotals(items []LineItemInput, tax, discount decimal.Decimal) (TotalBreakdown, error) {
	if err := validateItems(items); err != nil {
		return TotalBreakdown{}, err
	}
	if tax.IsNegative() {
		return TotalBreakdown{}, ErrNegativeTax
	}
	if discount.IsNegative() {
		return TotalBreakdown{}, ErrNegativeDiscount
	}

	subtotal := Subtotal(items)
	return TotalBreakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal.Add(tax).Sub(discount),
	}, nil
}

// OrderTotals computes an order total. Orders carry no tax or discount,
// so total equals the subtotal.
func OrderTotals(items []LineItemInput) (TotalBreakdown, error) {
	if err := validateItems(items); err != nil {
		return TotalBreakdown{}, err
	}

	subtotal := Subtotal(items)
	return TotalBreakdown{
		Subtotal: subtotal,
		Tax:      decimal.Zero,
		Discount: decimal.Zero,
		Total:    subtotal,
	}, nil
}

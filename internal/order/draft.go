// Package order implements the order lifecycle: materializing a cart into
// a submittable draft and advancing a submitted order along its status
// progression through the backend.
package order

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/domain"
)

// ValidationError is a local, pre-submission failure. No network round-trip
// has happened when one is returned and the cart is left untouched.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string { return e.Code + ": " + e.Message }

var (
	ErrEmptyCart     = ValidationError{Code: "empty_cart", Message: "cart has no lines"}
	ErrMissingWaiter = ValidationError{Code: "missing_waiter", Message: "waiter name is required"}
)

// BuildDraft converts accumulated cart lines plus waiter/table metadata
// into a submittable draft. One draft item is emitted per cart line, fields
// copied verbatim; duplicate menu items across lines are not merged.
func BuildDraft(lines []cart.Line, waiterName, tableNumber string) (domain.OrderDraft, error) {
	if len(lines) == 0 {
		return domain.OrderDraft{}, ErrEmptyCart
	}
	if strings.TrimSpace(waiterName) == "" {
		return domain.OrderDraft{}, ErrMissingWaiter
	}
	draft := domain.OrderDraft{
		WaiterName:  waiterName,
		TableNumber: ParseTableNumber(tableNumber),
	}
	for _, ln := range lines {
		draft.Items = append(draft.Items, domain.DraftItem{
			Name:       ln.Name,
			Price:      ln.Price,
			Quantity:   ln.Quantity,
			MenuItemID: ln.MenuItemID,
		})
	}
	return draft, nil
}

// ParseTableNumber parses leniently: anything that is not a positive
// integer is treated as absent, never as an error.
func ParseTableNumber(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// DraftTotal is the sum of price x quantity over the draft's items, rounded
// to two decimal places.
func DraftTotal(draft domain.OrderDraft) decimal.Decimal {
	total := decimal.Zero
	for _, it := range draft.Items {
		price := decimal.NewFromFloat(it.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2)
}

// VerifyTotal checks the backend-computed amount against the draft to two
// decimals. A mismatch is a data-integrity warning for the caller to log,
// not a reason to reject the created order.
func VerifyTotal(draft domain.OrderDraft, got float64) bool {
	return decimal.NewFromFloat(got).Round(2).Equal(DraftTotal(draft))
}

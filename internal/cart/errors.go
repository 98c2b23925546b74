package cart

import (
	"errors"
	"fmt"
)

// StockExceededError rejects an add/update that would push a line item past
// the product's remaining stock for that size. The engine guarantees no
// mutation occurred.
type StockExceededError struct {
	ProductID string
	Size      string
	Available int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("only %d in stock for product %s size %s", e.Available, e.ProductID, e.Size)
}

// AsStockExceeded unwraps err into a StockExceededError when possible.
func AsStockExceeded(err error) (*StockExceededError, bool) {
	var typed *StockExceededError
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

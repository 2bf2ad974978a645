package checkout

import "errors"

var (
	ErrNotAuthenticated  = errors.New("sign in to place a rental")
	ErrEmptyCart         = errors.New("cart is empty, nothing to rent")
	ErrMissingReturnDate = errors.New("return date is required")
)

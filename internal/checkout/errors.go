package checkout

import "errors"

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

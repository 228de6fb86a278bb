package navigation

import "strings"

// Screen is one of the four storefront screens.
type Screen string

const (
	Products Screen = "products"
	Cart     Screen = "cart"
	Checkout Screen = "checkout"
	Success  Screen = "success"
)

var titles = map[Screen]string{
	Products: "Products",
	Cart:     "My Cart",
	Checkout: "Checkout",
	Success:  "Confirmation",
}

// ParseScreen maps a case-insensitive name to a Screen.
func ParseScreen(s string) (Screen, bool) {
	sc := Screen(strings.ToLower(strings.TrimSpace(s)))
	_, ok := titles[sc]
	return sc, ok
}

// Title is the header shown for the screen.
func (s Screen) Title() string { return titles[s] }

// Navigator tracks the active screen. The zero value starts on Products.
type Navigator struct {
	current Screen
}

// New returns a Navigator on the Products screen.
func New() *Navigator {
	return &Navigator{current: Products}
}

// Current returns the active screen.
func (n *Navigator) Current() Screen {
	if n.current == "" {
		return Products
	}
	return n.current
}

// Go activates target. Any screen may request any target; unknown values are
// ignored.
func (n *Navigator) Go(target Screen) {
	if _, ok := titles[target]; !ok {
		return
	}
	n.current = target
}

// Back applies the one-level back rule: Checkout returns to Cart, everything
// else returns to Products.
func (n *Navigator) Back() {
	if n.Current() == Checkout {
		n.current = Cart
		return
	}
	n.current = Products
}

// CanGoBack reports whether a back action is offered on the active screen.
func (n *Navigator) CanGoBack() bool {
	return n.Current() != Products
}

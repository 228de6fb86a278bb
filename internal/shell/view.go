package shell

import (
	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/checkout"
	"github.com/jcmexdev/storefront/internal/navigation"
)

// View is a read-only snapshot of everything a screen renders.
type View struct {
	Screen    navigation.Screen
	Title     string
	CanGoBack bool

	Lines     []LineView
	ItemCount int
	Subtotal  string
	Taxes     string
	Total     string

	Draft  checkout.Form
	Busy   bool
	Notice string
}

// LineView is one cart line with its amounts already formatted.
type LineView struct {
	ID        int
	Name      string
	ImageRef  string
	UnitPrice string
	Quantity  int
	LineTotal string
}

// viewLocked builds the snapshot. Callers hold s.mu.
func (s *Shell) viewLocked() View {
	lines := s.cart.Lines()
	totals := s.cart.Totals()

	out := make([]LineView, len(lines))
	for i, l := range lines {
		out[i] = LineView{
			ID:        l.Item.ID,
			Name:      l.Item.Name,
			ImageRef:  l.Item.ImageRef,
			UnitPrice: cart.Money(l.Item.UnitPrice),
			Quantity:  l.Quantity,
			LineTotal: cart.Money(l.Total()),
		}
	}

	return View{
		Screen:    s.nav.Current(),
		Title:     s.nav.Current().Title(),
		CanGoBack: s.nav.CanGoBack(),
		Lines:     out,
		ItemCount: s.cart.TotalCount(),
		Subtotal:  cart.Money(totals.Subtotal),
		Taxes:     cart.Money(totals.Taxes),
		Total:     cart.Money(totals.Total),
		Draft:     s.draft,
		Busy:      s.inFlight != "",
		Notice:    s.notice,
	}
}

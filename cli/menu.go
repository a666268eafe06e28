package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"shopcart/domain"
	"shopcart/util"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	actionDisplay = iota + 1
	actionRemove
	actionAdd
	actionCheckout
	actionExit
)

// Menu is the interactive console front end over one catalog and one cart.
type Menu struct {
	catalog domain.Catalog
	cart    domain.Cart
	in      *bufio.Scanner
	out     io.Writer
	now     func() time.Time
}

func NewMenu(catalog domain.Catalog, cart domain.Cart, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		catalog: catalog,
		cart:    cart,
		in:      bufio.NewScanner(in),
		out:     out,
		now:     time.Now,
	}
}

// Run loops until the user exits or input runs out.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := m.readIntInRange(renderMainMenu(), actionDisplay, actionExit)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		running, err := m.handleAction(choice)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if !running {
			break
		}
	}
	m.println("Goodbye!")
	return nil
}

func (m *Menu) handleAction(action int) (bool, error) {
	switch action {
	case actionDisplay:
		m.displayCart()
	case actionRemove:
		return true, m.removeItem()
	case actionAdd:
		return true, m.addItem()
	case actionCheckout:
		m.checkout()
	case actionExit:
		return false, nil
	}
	return true, nil
}

func (m *Menu) displayCart() {
	m.println(renderCart(m.cart.Lines(), m.cart.Subtotal()))
}

func (m *Menu) addItem() error {
	items := m.catalog.ListItems()
	if len(items) == 0 {
		m.println(dimStyle.Render("The catalog is empty."))
		return nil
	}
	choice, err := m.readIntInRange(renderCatalogChoices(items), 0, len(items))
	if err != nil || choice == 0 {
		return err
	}
	product := items[choice-1]

	qty, err := m.readInt("How many would you like to add? (0 to cancel)")
	if err != nil || qty == 0 {
		return err
	}
	line := fmt.Sprintf("%d x %s = %s", qty, product.Name(),
		money(product.UnitPrice().Mul(decimal.NewFromInt(int64(qty)))))
	ok, err := m.confirm(line + "\nAdd to cart? (y/n)")
	if err != nil || !ok {
		return err
	}

	if err := m.cart.AddItem(product, qty); err != nil {
		m.println(renderError(err))
		return nil
	}
	m.println(okStyle.Render(fmt.Sprintf("Added %d x %s to your cart.", qty, product.Name())))
	return nil
}

func (m *Menu) removeItem() error {
	lines := m.cart.Lines()
	if len(lines) == 0 {
		m.println(dimStyle.Render("Your cart is empty."))
		return nil
	}
	choice, err := m.readIntInRange(renderCartChoices(lines), 0, len(lines))
	if err != nil || choice == 0 {
		return err
	}
	product := lines[choice-1].Product()

	qty, err := m.readInt("How many would you like to remove? (0 to cancel)")
	if err != nil || qty == 0 {
		return err
	}
	ok, err := m.confirm(fmt.Sprintf("Remove %d x %s from your cart? (y/n)", qty, product.Name()))
	if err != nil || !ok {
		return err
	}

	if err := m.cart.RemoveItem(product, qty); err != nil {
		m.println(renderError(err))
		return nil
	}
	m.println(okStyle.Render(fmt.Sprintf("Removed %d x %s from your cart.", qty, product.Name())))
	return nil
}

func (m *Menu) checkout() {
	lines := m.cart.Lines()
	if len(lines) == 0 {
		m.println(dimStyle.Render("Your cart is empty, nothing to checkout."))
		return
	}

	start := time.Now()
	receipt := domain.Receipt{
		ID:       util.NewReceiptID(),
		Lines:    lines,
		Total:    m.cart.Checkout(),
		IssuedAt: m.now(),
	}
	slog.Info("checkout complete",
		"receipt_id", receipt.ID,
		"lines", len(receipt.Lines),
		"total", receipt.Total.StringFixed(2),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	m.println(renderReceipt(receipt))
	m.println("Thank you for shopping!")
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) readLine(prompt string) (string, error) {
	m.println(prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// readInt re-prompts until the answer is a whole number >= 0.
func (m *Menu) readInt(prompt string) (int, error) {
	for {
		s, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			m.println(errorStyle.Render("Please enter a proper positive whole number."))
			continue
		}
		return n, nil
	}
}

// readIntInRange re-prompts until lo <= answer <= hi.
func (m *Menu) readIntInRange(prompt string, lo, hi int) (int, error) {
	for {
		n, err := m.readInt(prompt)
		if err != nil {
			return 0, err
		}
		if n < lo || n > hi {
			m.println(errorStyle.Render(fmt.Sprintf("Please enter a valid number within the range %d - %d.", lo, hi)))
			continue
		}
		return n, nil
	}
}

func (m *Menu) confirm(prompt string) (bool, error) {
	for {
		s, err := m.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		m.println(errorStyle.Render("Please answer y or n."))
	}
}

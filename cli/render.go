package cli

import (
	"fmt"
	"shopcart/domain"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	accent  = lipgloss.Color("#D97706")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	okStyle      = lipgloss.NewStyle().Foreground(success)
	errorStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	totalStyle   = lipgloss.NewStyle().Bold(true)
	receiptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func renderMainMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Main Menu"))
	b.WriteString("\n  1. Display Cart")
	b.WriteString("\n  2. Remove an Item")
	b.WriteString("\n  3. Add an Item")
	b.WriteString("\n  4. Checkout")
	b.WriteString("\n  5. Exit")
	return b.String()
}

func renderLines(lines []domain.CartLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Product().Name())
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("    Quantity: %d\n", l.Quantity()))
		b.WriteString(fmt.Sprintf("    Cost: %s\n", money(l.Total())))
	}
	return b.String()
}

func renderCart(lines []domain.CartLine, subtotal decimal.Decimal) string {
	if len(lines) == 0 {
		return dimStyle.Render("Your cart is empty.")
	}
	return titleStyle.Render("Your Cart") + "\n" +
		renderLines(lines) +
		totalStyle.Render("Subtotal: "+money(subtotal))
}

func renderCatalogChoices(items []*domain.Product) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Catalog"))
	for i, p := range items {
		b.WriteString(fmt.Sprintf("\n  %d. %s (%s)", i+1, p.Name(), money(p.UnitPrice())))
	}
	b.WriteString(dimStyle.Render("\n  0. Back to main menu"))
	return b.String()
}

func renderCartChoices(lines []domain.CartLine) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your Cart"))
	for i, l := range lines {
		b.WriteString(fmt.Sprintf("\n  %d. %s (qty %d)", i+1, l.Product().Name(), l.Quantity()))
	}
	b.WriteString(dimStyle.Render("\n  0. Back to main menu"))
	return b.String()
}

func renderReceipt(r domain.Receipt) string {
	body := "Receipt " + r.ID + "\n" +
		r.IssuedAt.Format("2006-01-02 15:04:05") + "\n\n" +
		renderLines(r.Lines) + "\n" +
		"Total: " + money(r.Total)
	return receiptStyle.Render(body)
}

func renderError(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}

// Package pdf renders completed sales as printable receipts.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Store name + GSTIN  │  Invoice number + Date       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUSTOMER: name + phone (omitted for walk-ins)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Item | Rate | GST% | Amount                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / GST / Discounts / GRAND TOTAL           │
//	│  PAYMENT: method, tendered, change                          │
//	│  FOOTER: loyalty points + thank-you line                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/sayanm085/shopnex-api/internal/application/selling"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/pkg/config"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ selling.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator renders sale receipts with Maroto v2.
type ReceiptGenerator struct {
	store config.StoreConfig
}

// NewReceiptGenerator builds the generator with the store identity printed on
// every receipt.
func NewReceiptGenerator(store config.StoreConfig) *ReceiptGenerator {
	return &ReceiptGenerator{store: store}
}

// GenerateReceipt renders a completed sale and returns the PDF bytes.
// customer may be nil for walk-in sales.
func (g *ReceiptGenerator) GenerateReceipt(_ context.Context, sale *entity.Sale, customer *entity.Customer) ([]byte, error) {
	cfg := marotoconfig.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Sale Receipt", true).
		WithAuthor(g.store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if customer != nil {
		m.AddRows(customerRow(customer))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(tableHeaderRow())
	for _, r := range lineRows(sale.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))
	m.AddRows(paymentRow(sale))

	m.AddRows(line.NewRow(2))
	m.AddRows(footerRows(customer)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	date := sale.Date.Format("02/01/2006 15:04")
	if sale.CompletedAt != nil {
		date = sale.CompletedAt.Format("02/01/2006 15:04")
	}

	left := col.New(7).Add(
		text.New(g.store.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	)
	top := 9.0
	if g.store.Address != "" {
		left.Add(text.New(g.store.Address, props.Text{Size: 8, Top: top, Color: colorGray}))
		top += 4
	}
	if g.store.GSTIN != "" {
		left.Add(text.New("GSTIN: "+g.store.GSTIN, props.Text{Size: 8, Top: top, Color: colorGray}))
	}

	return row.New(20).Add(
		left,
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(customer *entity.Customer) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s", customer.Name, nonEmpty(customer.Phone, "—")), props.Text{
				Size: 9, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 5, align.Left),
		h("Rate", 2, align.Right),
		h("GST%", 1, align.Center),
		h("Amount", 3, align.Right),
	)
}

func lineRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(it.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.GSTPercentage.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				money(it.TotalPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	labels := []core.Component{label("Subtotal:"), label("GST:")}
	values := []core.Component{value(money(sale.Subtotal)), value(money(sale.TaxAmount))}

	discount := sale.DiscountAmount.Add(sale.AdditionalDiscount)
	if discount.IsPositive() {
		labels = append(labels, label("Discount:"))
		values = append(values, value("-"+money(discount)))
	}
	if sale.PointsDiscount.IsPositive() {
		labels = append(labels, label(fmt.Sprintf("Points (%d):", sale.LoyaltyPointsUsed)))
		values = append(values, value("-"+money(sale.PointsDiscount)))
	}

	labels = append(labels, text.New("GRAND TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
	}))
	values = append(values, text.New(money(sale.Total), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
	}))

	height := float64(6 * (len(labels) + 1))
	return row.New(height).Add(
		col.New(5),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
	)
}

func paymentRow(sale *entity.Sale) core.Row {
	detail := "Paid by " + sale.PaymentMethod
	switch sale.PaymentMethod {
	case entity.PaymentMethodCash:
		detail = fmt.Sprintf("Paid by cash   |   Tendered: %s   |   Change: %s",
			money(sale.PaymentDetails.AmountReceived), money(sale.PaymentDetails.ChangeDue))
	case entity.PaymentMethodCard:
		detail = "Paid by card   |   " + sale.PaymentDetails.CardDetails
	case entity.PaymentMethodUPI:
		detail = "Paid by UPI   |   Ref: " + sale.PaymentDetails.UPITransactionID
	}
	return row.New(8).Add(
		col.New(12).Add(text.New(detail, props.Text{Size: 8, Top: 2, Color: colorGray})),
	)
}

func footerRows(customer *entity.Customer) []core.Row {
	rows := []core.Row{}
	if customer != nil {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Loyalty balance: %d points", customer.LoyaltyPoints), props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Thank you for shopping with us. Goods once sold are not returnable without this receipt.", props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 2,
		}),
	)))
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

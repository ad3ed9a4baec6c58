// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/artmart-checkout/internal/config"
	"github.com/your-org/artmart-checkout/internal/domain/order"
	"github.com/your-org/artmart-checkout/internal/domain/pricing"
)

// Service renders order receipts as PDF
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// ReceiptData is the template input for a receipt
type ReceiptData struct {
	ReceiptNumber string
	Date          string
	ShopName      string
	Order         *order.Order
	Items         []ReceiptItem
	Subtotal      string
	Shipping      string
	Total         string
}

// ReceiptItem is one line of a receipt
type ReceiptItem struct {
	Description string
	Price       string
}

// GenerateReceipt renders a PDF receipt for a successfully settled order
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	if o.Status != order.StatusSucceeded {
		return nil, fmt.Errorf("cannot generate receipt for order with status %s", o.Status)
	}

	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%s", o.OrderNumber),
		Date:          o.CreatedAt.Format("January 2, 2006"),
		ShopName:      s.config.App.Name,
		Order:         o,
		Subtotal:      pricing.FormatEuro(o.SubtotalAmount),
		Shipping:      pricing.FormatEuro(o.ShippingAmount),
		Total:         pricing.FormatEuro(o.TotalAmount),
	}
	for _, item := range o.Items {
		description := fmt.Sprintf("Print #%d (%s, %s frame %dmm", item.ArtworkID, item.PrintSize, item.FrameStyle, item.FrameWidth)
		if item.MatWidth > 0 {
			description += fmt.Sprintf(", %s mat %dmm", item.MatColor, item.MatWidth)
		}
		description += ")"
		data.Items = append(data.Items, ReceiptItem{
			Description: description,
			Price:       pricing.FormatEuro(item.Price),
		})
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return pdfg.Buffer(), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 40px; }
  h1 { font-size: 20px; }
  .meta { color: #666; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: 8px 4px; border-bottom: 1px solid #ddd; }
  td.price, th.price { text-align: right; }
  tr.total td { font-weight: bold; border-top: 2px solid #222; }
</style>
</head>
<body>
  <h1>{{.ShopName}} Receipt {{.ReceiptNumber}}</h1>
  <div class="meta">
    {{.Date}}<br>
    Order {{.Order.OrderNumber}}<br>
    {{.Order.ShippingAddress.Name}}, {{.Order.ShippingAddress.Address}},
    {{.Order.ShippingAddress.PostalCode}} {{.Order.ShippingAddress.City}},
    {{.Order.ShippingAddress.Country}}
  </div>
  <table>
    <tr><th>Item</th><th class="price">Price</th></tr>
    {{range .Items}}
    <tr><td>{{.Description}}</td><td class="price">{{.Price}}</td></tr>
    {{end}}
    <tr><td>Subtotal</td><td class="price">{{.Subtotal}}</td></tr>
    <tr><td>Shipping</td><td class="price">{{.Shipping}}</td></tr>
    <tr class="total"><td>Total</td><td class="price">{{.Total}}</td></tr>
  </table>
</body>
</html>`

func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse receipt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute receipt template: %w", err)
	}
	return buf.String(), nil
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"mu-waterwear/models"
	"mu-waterwear/utils"
)

// ReceiptService renders order receipts as HTML and prints them to PDF
// with headless Chrome. The PDF route navigates Chrome to the HTML render
// endpoint so both outputs come from the same template.
type ReceiptService struct {
	baseURL string
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(baseURL string) *ReceiptService {
	return &ReceiptService{baseURL: baseURL}
}

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>MU Waterwear - Order {{.Reference}}</title>
<style>
	body { font-family: Helvetica, Arial, sans-serif; margin: 40px; color: #111; }
	h1 { font-size: 20px; letter-spacing: 2px; }
	.meta { color: #555; font-size: 12px; margin-bottom: 24px; }
	table { width: 100%; border-collapse: collapse; font-size: 13px; }
	th, td { text-align: left; padding: 8px 4px; border-bottom: 1px solid #ddd; }
	td.amount, th.amount { text-align: right; }
	.total td { font-weight: bold; border-top: 2px solid #111; }
</style>
</head>
<body>
	<h1>MU WATERWEAR</h1>
	<div class="meta">
		Order {{.Reference}}<br>
		{{.CreatedAt}}{{if .CustomerEmail}}<br>{{.CustomerEmail}}{{end}}
	</div>
	<table>
		<tr><th>Item</th><th>Size</th><th>Qty</th><th class="amount">Price</th></tr>
		{{range .Lines}}
		<tr>
			<td>{{.Name}}</td>
			<td>{{.Size}}</td>
			<td>{{.Quantity}}</td>
			<td class="amount">{{.PriceFormatted}}</td>
		</tr>
		{{end}}
		<tr class="total"><td colspan="3">Total charged</td><td class="amount">{{.TotalFormatted}}</td></tr>
	</table>
</body>
</html>`))

type receiptLine struct {
	Name           string
	Size           string
	Quantity       int
	PriceFormatted string
}

type receiptData struct {
	Reference      string
	CreatedAt      string
	CustomerEmail  string
	Lines          []receiptLine
	TotalFormatted string
}

// RenderHTML renders the receipt page for an order
func (s *ReceiptService) RenderHTML(order *models.OrderResponse) ([]byte, error) {
	data := receiptData{
		Reference:      order.Reference,
		CreatedAt:      order.CreatedAt,
		CustomerEmail:  order.CustomerEmail,
		TotalFormatted: utils.FormatUSD(order.AmountTotal),
	}
	for _, line := range order.Lines {
		data.Lines = append(data.Lines, receiptLine{
			Name:           line.Name,
			Size:           line.Size,
			Quantity:       line.Quantity,
			PriceFormatted: utils.FormatUSD(line.UnitPrice * int64(line.Quantity)),
		})
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePDF prints the rendered receipt page to PDF using chromedp
func (s *ReceiptService) GeneratePDF(ctx context.Context, reference string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Detect Chrome/Chromium path and configure chromedp
	chromePath := detectChromePath()
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/orders/%s/receipt", s.baseURL, reference)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27). // A4
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt PDF: %w", err)
	}

	return pdfBuf, nil
}

package ses

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"billforge/internal/domain"
	"billforge/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoice(ctx context.Context, snap *domain.InvoiceSnapshot, downloadURL string) error {
	if snap.BillTo.Email == "" {
		return fmt.Errorf("invoice %s: billing party has no email address", snap.InvoiceNumber)
	}

	subject := fmt.Sprintf("Invoice %s from %s", snap.InvoiceNumber, s.fromName)
	htmlBody := buildInvoiceHTML(snap, downloadURL)
	textBody := buildInvoiceText(snap, downloadURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{snap.BillTo.Email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func money(v float64) string {
	return "Rs. " + strconv.FormatFloat(v, 'f', 2, 64)
}

func buildInvoiceText(snap *domain.InvoiceSnapshot, downloadURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", snap.BillTo.Name)
	fmt.Fprintf(&b, "Please find below the summary of invoice %s dated %s.\n\n", snap.InvoiceNumber, snap.Date)
	fmt.Fprintf(&b, "Subtotal: %s\n", money(snap.Subtotal))
	fmt.Fprintf(&b, "Discount: %s\n", money(snap.TotalDiscount))
	fmt.Fprintf(&b, "Tax: %s\n", money(snap.TotalTax))
	fmt.Fprintf(&b, "Delivery: %s\n", money(snap.DeliveryCharge))
	fmt.Fprintf(&b, "Grand Total: %s\n", money(snap.GrandTotal))
	fmt.Fprintf(&b, "Amount in words: %s\n\n", snap.AmountInWords)
	if snap.DueDate != "" {
		fmt.Fprintf(&b, "Payment is due by %s.\n\n", snap.DueDate)
	}
	if downloadURL != "" {
		fmt.Fprintf(&b, "Download the full invoice here:\n%s\n\n", downloadURL)
	}
	b.WriteString("Thank you for your business.\n")
	return b.String()
}

func buildInvoiceHTML(snap *domain.InvoiceSnapshot, downloadURL string) string {
	var link string
	if downloadURL != "" {
		link = fmt.Sprintf(`<p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Invoice</a>
  </p>`, downloadURL)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Dear %s,</p>
  <p>Please find below the summary of your invoice dated %s.</p>
  <table style="width: 100%%; border-collapse: collapse;">
    <tr><td style="padding: 6px 0;">Subtotal</td><td style="text-align: right;">%s</td></tr>
    <tr><td style="padding: 6px 0;">Discount</td><td style="text-align: right;">%s</td></tr>
    <tr><td style="padding: 6px 0;">Tax</td><td style="text-align: right;">%s</td></tr>
    <tr><td style="padding: 6px 0;">Delivery</td><td style="text-align: right;">%s</td></tr>
    <tr><td style="padding: 6px 0; font-weight: bold; border-top: 1px solid #333;">Grand Total</td><td style="text-align: right; font-weight: bold; border-top: 1px solid #333;">%s</td></tr>
  </table>
  <p style="color: #666; font-style: italic;">%s</p>
  %s
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">This is an automatically generated invoice notification.</p>
</body>
</html>`,
		snap.InvoiceNumber, snap.BillTo.Name, snap.Date,
		money(snap.Subtotal), money(snap.TotalDiscount), money(snap.TotalTax),
		money(snap.DeliveryCharge), money(snap.GrandTotal),
		snap.AmountInWords, link)
}

package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

const confirmationSubject = "✅ Confirmation de votre réservation Skiset"

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de réservation</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f3f4f6;">
  <table width="600" cellpadding="0" cellspacing="0" style="margin:20px auto;background-color:#ffffff;border-radius:8px;">
    <tr>
      <td style="background-color:#1e3a8a;padding:40px 30px;text-align:center;">
        <h1 style="margin:0;color:#ffffff;">RELIEF<span style="color:#60a5fa;">.</span></h1>
        <p style="margin:10px 0 0 0;color:#93c5fd;">Confirmation de réservation</p>
      </td>
    </tr>
    <tr>
      <td style="padding:30px;">
        <h2 style="color:#1f2937;">Bonjour {{.FirstName}} {{.LastName}} !</h2>
        <p style="color:#4b5563;">Merci pour votre réservation. Voici le récapitulatif :</p>
        <p style="color:#4b5563;">Dates : <strong>{{.StartDate}}</strong> au <strong>{{.EndDate}}</strong></p>
        <table width="100%" cellpadding="0" cellspacing="0">
          {{range .Items}}
          <tr style="border-bottom:1px solid #e5e7eb;">
            <td style="padding:12px 8px;"><strong>{{.Name}}</strong>{{if .Surname}}<br><span style="color:#6b7280;font-size:13px;">Pour : {{.Surname}}</span>{{end}}</td>
            <td style="padding:12px 8px;text-align:center;">{{.Quantity}}</td>
            <td style="padding:12px 8px;text-align:right;">{{.LineTotal}}</td>
          </tr>
          {{end}}
        </table>
        <p style="color:#1f2937;">Sous-total : {{.Subtotal}}</p>
        {{if .HasDiscount}}<p style="color:#059669;">Code promo appliqué : -{{.Discount}}</p>{{end}}
        <p style="color:#1f2937;font-size:18px;"><strong>Total à payer : {{.FinalPrice}}</strong></p>
        {{if .TrackingURL}}<p><a href="{{.TrackingURL}}" style="color:#1e3a8a;">Suivre ma réservation</a></p>{{end}}
        <p style="color:#4b5563;">À bientôt sur les pistes !<br>L'équipe Skiset Relief</p>
      </td>
    </tr>
  </table>
</body>
</html>`))

type confirmationItem struct {
	Name      string
	Surname   string
	Quantity  int32
	LineTotal string
}

type confirmationData struct {
	FirstName   string
	LastName    string
	StartDate   string
	EndDate     string
	Items       []confirmationItem
	Subtotal    string
	Discount    string
	HasDiscount bool
	FinalPrice  string
	TrackingURL string
}

// RenderConfirmation builds the customer-facing confirmation email.
func RenderConfirmation(res dbgen.Reservation, items []dbgen.ReservationItem, baseURL string) (string, string, error) {
	data := confirmationData{
		FirstName:   res.FirstName,
		LastName:    res.LastName,
		Subtotal:    formatEuros(res.TotalPrice),
		Discount:    formatEuros(res.DiscountAmount),
		HasDiscount: res.DiscountAmount > 0,
		FinalPrice:  formatEuros(res.FinalPrice),
	}
	if res.StartDate.Valid {
		data.StartDate = formatFrenchDate(res.StartDate)
	}
	if res.EndDate.Valid {
		data.EndDate = formatFrenchDate(res.EndDate)
	}
	if baseURL != "" && res.ID.Valid {
		data.TrackingURL = strings.TrimRight(baseURL, "/") + "/reservation/" + uuidToString(res.ID)
	}
	for _, it := range items {
		name := it.Category
		if it.ProductName.Valid {
			name = it.ProductName.String
		}
		item := confirmationItem{
			Name:      name,
			Quantity:  it.Quantity,
			LineTotal: formatEuros(it.Price * float64(it.Quantity)),
		}
		if it.Surname.Valid {
			item.Surname = it.Surname.String
		}
		data.Items = append(data.Items, item)
	}
	var buf strings.Builder
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return confirmationSubject, buf.String(), nil
}

// RenderStatusUpdate builds the short status change notification.
func RenderStatusUpdate(res dbgen.Reservation) (string, string) {
	subject := "Mise à jour de votre réservation Skiset"
	var label string
	switch res.Status {
	case dbgen.ReservationStatusCONFIRMED:
		label = "confirmée"
	case dbgen.ReservationStatusCANCELLED:
		label = "annulée"
	case dbgen.ReservationStatusCOMPLETED:
		label = "terminée"
	default:
		label = "en attente"
	}
	html := fmt.Sprintf(
		`<p>Bonjour %s %s,</p><p>Votre réservation est maintenant <strong>%s</strong>.</p><p>L'équipe Skiset Relief</p>`,
		template.HTMLEscapeString(res.FirstName), template.HTMLEscapeString(res.LastName), label,
	)
	return subject, html
}

func uuidToString(id pgtype.UUID) string {
	b := id.Bytes
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

func formatEuros(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)
	formatted = strings.ReplaceAll(formatted, ".", ",")
	return formatted + " €"
}

func formatFrenchDate(d pgtype.Date) string {
	t := d.Time
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[int(t.Month())-1], t.Year())
}

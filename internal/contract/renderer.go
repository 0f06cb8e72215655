package contract

import (
	"fmt"
	"strings"

	"github.com/Eursukkul/rental-backoffice/internal/models"
)

// DefaultTemplate seeds the contract_template setting.
const DefaultTemplate = `TEMPORARY RENTAL AGREEMENT

Landlord: {landlord_name}
Tenant: {tenant_name}, CPF {tenant_cpf}, RG {tenant_rg}, resident at {tenant_address}.
Companions: {companions}

Property: {property_description}
Stay: from {checkin} to {checkout} ({nights} nights).
Total price: {total_price}, paid by {payment_method}.
Payment plan: {payment_summary}
{installments_breakdown}

PIX key: {pix_key}
WiFi: {wifi_name} / {wifi_password}
Gate code: {gate_code}

Signed on {today_long}.

{landlord_signature}
{landlord_name}

{tenant_signature}
{tenant_name}
`

// Rendered is the contract body plus the placeholders the template referenced
// without a value.
type Rendered struct {
	Text    string   `json:"text"`
	Missing []string `json:"missing,omitempty"`
}

func (r Rendered) Complete() bool {
	return len(r.Missing) == 0
}

type Renderer struct {
	resolver *Resolver
}

func NewRenderer(resolver *Resolver) *Renderer {
	return &Renderer{resolver: resolver}
}

func (r *Renderer) Resolver() *Resolver {
	return r.resolver
}

// Render fills the operator template for a booking. It never fails: missing
// placeholders are reported inline so the document still gets produced.
func (r *Renderer) Render(b *models.Booking, entries []models.PaymentEntry, tmpl string) Rendered {
	fields := r.resolver.Resolve(b, entries)
	sub := Substitute(tmpl, fields)

	text := sub.Text
	if !sub.Complete() {
		text = strings.TrimRight(text, "\n") + "\n\n" + MissingDiagnostic(sub.Missing)
	}

	summary := fields[FieldPaymentSummary]
	if !sub.References(FieldPaymentSummary) && !sub.References(FieldInstallmentsBreakdown) && summary != "-" {
		text = strings.TrimRight(text, "\n") + fmt.Sprintf("\n\nPayment: %s.", summary)
	}

	return Rendered{Text: text, Missing: sub.Missing}
}

// MissingDiagnostic is the visible line appended when placeholders are unresolved.
func MissingDiagnostic(missing []string) string {
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = "{" + m + "}"
	}
	return "[Template error: missing placeholder(s): " + strings.Join(names, ", ") + "]"
}

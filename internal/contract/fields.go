package contract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Eursukkul/rental-backoffice/config"
	"github.com/Eursukkul/rental-backoffice/internal/format"
	"github.com/Eursukkul/rental-backoffice/internal/models"
)

// Placeholder names understood by contract and message templates.
const (
	FieldLandlordName          = "landlord_name"
	FieldTenantName            = "tenant_name"
	FieldTenantCPF             = "tenant_cpf"
	FieldTenantRG              = "tenant_rg"
	FieldTenantAddress         = "tenant_address"
	FieldTenantPhone           = "tenant_phone"
	FieldTenantEmail           = "tenant_email"
	FieldCompanions            = "companions"
	FieldPropertyName          = "property_name"
	FieldPropertyDescription   = "property_description"
	FieldCheckIn               = "checkin"
	FieldCheckOut              = "checkout"
	FieldNights                = "nights"
	FieldTotalPrice            = "total_price"
	FieldPaymentMethod         = "payment_method"
	FieldPixKey                = "pix_key"
	FieldWifiName              = "wifi_name"
	FieldWifiPassword          = "wifi_password"
	FieldGateCode              = "gate_code"
	FieldPaymentSummary        = "payment_summary"
	FieldInstallmentsBreakdown = "installments_breakdown"
	FieldToday                 = "today"
	FieldTodayLong             = "today_long"
	FieldLandlordSignature     = "landlord_signature"
	FieldTenantSignature       = "tenant_signature"
)

// Signature markers are kept verbatim in rendered text and interpreted by the compositor.
var (
	LandlordSignatureMarker = "{" + FieldLandlordSignature + "}"
	TenantSignatureMarker   = "{" + FieldTenantSignature + "}"
)

// IsSignatureMarker reports whether a trimmed line is one of the reserved markers.
func IsSignatureMarker(line string) bool {
	line = strings.TrimSpace(line)
	return line == LandlordSignatureMarker || line == TenantSignatureMarker
}

// Fields maps placeholder names to resolved values.
type Fields map[string]string

// Resolver builds the placeholder map for a booking.
type Resolver struct {
	property config.Property
	now      func() time.Time
}

func NewResolver(property config.Property) *Resolver {
	return &Resolver{property: withDefaults(property), now: time.Now}
}

// WithClock replaces the clock used for the "today" fields.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

func withDefaults(p config.Property) config.Property {
	p.LandlordName = orDefault(p.LandlordName, config.DefaultLandlordName)
	p.PropertyName = orDefault(p.PropertyName, config.DefaultPropertyName)
	p.PropertyDescription = orDefault(p.PropertyDescription, config.DefaultPropertyDescription)
	p.PixKey = orDefault(p.PixKey, config.DefaultPixKey)
	p.WifiName = orDefault(p.WifiName, config.DefaultWifiName)
	p.WifiPassword = orDefault(p.WifiPassword, config.DefaultWifiPassword)
	p.GateCode = orDefault(p.GateCode, config.DefaultGateCode)
	return p
}

// Resolve assembles every placeholder value for the booking. entries is the
// booking's ledger in any order.
func (r *Resolver) Resolve(b *models.Booking, entries []models.PaymentEntry) Fields {
	guest := b.Guest
	if guest == nil {
		guest = &models.Guest{}
	}
	today := r.now()

	return Fields{
		FieldLandlordName:          r.property.LandlordName,
		FieldTenantName:            orDefault(guest.Name, "-"),
		FieldTenantCPF:             orDefault(guest.CPF, "-"),
		FieldTenantRG:              orDefault(guest.RG, "-"),
		FieldTenantAddress:         orDefault(guest.Address, "-"),
		FieldTenantPhone:           orDefault(guest.Phone, "-"),
		FieldTenantEmail:           orDefault(guest.Email, "-"),
		FieldCompanions:            Companions(guest.Companions),
		FieldPropertyName:          r.property.PropertyName,
		FieldPropertyDescription:   r.property.PropertyDescription,
		FieldCheckIn:               format.Date(b.CheckIn),
		FieldCheckOut:              format.Date(b.CheckOut),
		FieldNights:                strconv.Itoa(b.Nights()),
		FieldTotalPrice:            format.Currency(b.TotalPrice),
		FieldPaymentMethod:         orDefault(b.PaymentMethod, "-"),
		FieldPixKey:                r.property.PixKey,
		FieldWifiName:              r.property.WifiName,
		FieldWifiPassword:          r.property.WifiPassword,
		FieldGateCode:              r.property.GateCode,
		FieldPaymentSummary:        PaymentSummary(b),
		FieldInstallmentsBreakdown: InstallmentsBreakdown(entries),
		FieldToday:                 format.Date(today),
		FieldTodayLong:             format.LongDate(today),
		FieldLandlordSignature:     LandlordSignatureMarker,
		FieldTenantSignature:       TenantSignatureMarker,
	}
}

// Companions normalizes the multi-line companion list into "a, b, c", or "-".
func Companions(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var names []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

// PaymentSummary describes the deposit and installment plan from the booking's
// summary fields, e.g. "Deposit of R$ 500,00 and 2 installments of R$ 750,00".
func PaymentSummary(b *models.Booking) string {
	var parts []string
	if b.DepositAmount != nil && *b.DepositAmount > 0 {
		parts = append(parts, "Deposit of "+format.Currency(b.DepositAmount))
	}
	if b.InstallmentsCount != nil && *b.InstallmentsCount > 0 {
		part := fmt.Sprintf("%d installments", *b.InstallmentsCount)
		if b.InstallmentValue != nil && *b.InstallmentValue > 0 {
			part += " of " + format.Currency(b.InstallmentValue)
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "-"
	}

	summary := strings.Join(parts, " and ")
	if due := strings.TrimSpace(b.InstallmentsDue); due != "" {
		summary += ", due dates: " + due
	}
	return summary
}

// InstallmentsBreakdown lists the ledger ordered by due date, one line per entry.
func InstallmentsBreakdown(entries []models.PaymentEntry) string {
	if len(entries) == 0 {
		return ""
	}
	sorted := make([]models.PaymentEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})

	lines := make([]string, len(sorted))
	for i, e := range sorted {
		lines[i] = fmt.Sprintf("%dª installment: %s - %s", i+1, format.Date(e.DueDate), format.Money(e.Amount))
	}
	return strings.Join(lines, "\n")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

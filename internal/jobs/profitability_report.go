package jobs

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"resellerdesk/internal/caching"
	"resellerdesk/internal/config"
	"resellerdesk/internal/models"
	"resellerdesk/internal/repositories"
	"resellerdesk/internal/services"
)

const (
	reportSheet      = "Profitability"
	reportBatchLimit = 10000
)

// Column layout of the profitability sheet. Net unit price, annual billing,
// margin and margin % are written as formulas over sibling cells in the same
// row; the remaining columns carry literal values.
var reportHeader = []string{
	"Customer",            // A
	"Domain",              // B
	"Cloud Identity ID",   // C
	"Subscription ID",     // D
	"SKU ID",              // E
	"SKU Name",            // F
	"Plan",                // G
	"Commitment",          // H
	"Status",              // I
	"Start Date",          // J
	"End Date",            // K
	"Renewal",             // L
	"Trial",               // M
	"Purchase Order",      // N
	"Billing Method",      // O
	"Max Seats",           // P
	"Licensed Seats",      // Q
	"Order Ref",           // R
	"Order Date",          // S
	"Recurrence",          // T
	"Previous SKU",        // U
	"Previous Unit Price", // V
	"Invoice Number",      // W
	"Unit Price",          // X
	"Discount %",          // Y
	"Net Unit Price",      // Z
	"Annual Billing",      // AA
	"Google Cost",         // AB
	"Margin",              // AC
	"Margin %",            // AD
	"Console URL",         // AE
}

// ProfitabilityReport joins synced subscriptions against sale orders and
// posted invoices and writes one spreadsheet row per billable subscription.
type ProfitabilityReport struct {
	subscriptionRepo repositories.SubscriptionRepository
	resellerRepo     repositories.ResellerPartnerRepository
	saleOrderRepo    repositories.SaleOrderRepository
	invoiceRepo      repositories.InvoiceRepository
	storage          services.StorageService
	cache            caching.CacheService
	settings         config.ReportSettings
}

func NewProfitabilityReport(
	subscriptionRepo repositories.SubscriptionRepository,
	resellerRepo repositories.ResellerPartnerRepository,
	saleOrderRepo repositories.SaleOrderRepository,
	invoiceRepo repositories.InvoiceRepository,
	storage services.StorageService,
	cache caching.CacheService,
	settings config.ReportSettings,
) *ProfitabilityReport {
	return &ProfitabilityReport{
		subscriptionRepo: subscriptionRepo,
		resellerRepo:     resellerRepo,
		saleOrderRepo:    saleOrderRepo,
		invoiceRepo:      invoiceRepo,
		storage:          storage,
		cache:            cache,
		settings:         settings,
	}
}

// IncludeInReport reports whether a subscription belongs in the export:
// active, not a free plan, not a staff SKU.
func IncludeInReport(sub *models.Subscription) bool {
	if sub.Status != models.SubscriptionStatusActive {
		return false
	}
	if strings.Contains(sub.SkuName, "Staff") {
		return false
	}
	if strings.Contains(strings.ToUpper(sub.PlanName), "FREE") {
		return false
	}
	return true
}

// NormalizeDomain strips scheme, a leading www. and a trailing slash so the
// stored domain can be matched against buyer websites by containment.
func NormalizeDomain(raw string) string {
	domain := strings.TrimSpace(raw)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.TrimSuffix(domain, "/")
	return domain
}

// Generate builds the workbook, stores it and returns a download URL.
func (g *ProfitabilityReport) Generate(ctx context.Context) (*models.ReportResult, error) {
	workbook, rows, err := g.BuildWorkbook(ctx)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	fileName := fmt.Sprintf("profitability_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	if err := g.storage.EnsureBucketExists(ctx, g.settings.Bucket); err != nil {
		return nil, fmt.Errorf("failed to ensure report bucket: %w", err)
	}
	if err := g.storage.UploadReport(ctx, g.settings.Bucket, fileName, bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	url, err := g.storage.GetPresignedURL(g.settings.Bucket, fileName, time.Duration(g.settings.URLExpiryHours)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to create download URL: %w", err)
	}

	return &models.ReportResult{
		FileName:    fileName,
		URL:         url,
		Rows:        rows,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// BuildWorkbook writes the header and one row per reportable subscription.
// A row that fails is logged and skipped; the rest of the report still comes
// out.
func (g *ProfitabilityReport) BuildWorkbook(ctx context.Context) (*excelize.File, int, error) {
	subscriptions, err := g.subscriptionRepo.List(ctx, reportBatchLimit, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	workbook := excelize.NewFile()
	if err := workbook.SetSheetName("Sheet1", reportSheet); err != nil {
		workbook.Close()
		return nil, 0, err
	}
	if err := workbook.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		workbook.Close()
		return nil, 0, err
	}

	row := 2
	for _, sub := range subscriptions {
		if !IncludeInReport(sub) {
			continue
		}
		if err := g.writeRow(ctx, workbook, row, sub); err != nil {
			log.Printf("Failed to write report row for subscription %q: %v", sub.SubscriptionID, err)
			continue
		}
		row++
	}
	return workbook, row - 2, nil
}

func (g *ProfitabilityReport) writeRow(ctx context.Context, workbook *excelize.File, row int, sub *models.Subscription) error {
	owner := g.resolveOwner(ctx, sub)

	customerName := sub.CustomerID
	domain := ""
	cloudIdentityID := ""
	if owner != nil {
		customerName = owner.OrgDisplayName
		domain = NormalizeDomain(owner.Domain)
		cloudIdentityID = owner.CloudIdentityID
	}

	var orders []*models.SaleOrder
	if domain != "" {
		var err error
		orders, err = g.saleOrderRepo.ListMatching(ctx, domain, sub.SkuID, sub.SkuName)
		if err != nil {
			return fmt.Errorf("order lookup: %w", err)
		}
	}

	// Every financial field starts out zero/blank and is only filled in when
	// the matching record actually exists; an unresolved order leaves the row
	// with empty commercial columns instead of failing.
	var (
		orderRef      string
		orderDate     string
		recurrence    string
		previousSKU   string
		previousUnit  float64
		invoiceNumber string
		unitPrice     float64
		discount      float64
	)

	if len(orders) > 0 {
		current := orders[0]
		orderRef = current.Name
		orderDate = current.OrderDate.Format(displayDateFormat)
		recurrence = current.Recurrence

		if line := matchOrderLine(current.Lines, sub); line != nil {
			unitPrice = line.UnitPrice
			discount = line.Discount
		}

		invoices, err := g.invoiceRepo.ListPostedByOrigin(ctx, current.Name)
		if err != nil {
			return fmt.Errorf("invoice lookup: %w", err)
		}
		if line, number := matchInvoiceLine(invoices, sub); line != nil {
			invoiceNumber = number
			unitPrice = line.UnitPrice
			discount = line.Discount
		}

		if len(orders) > 1 {
			if line := matchOrderLine(orders[1].Lines, sub); line != nil {
				previousSKU = line.ProductSKU
				if previousSKU == "" {
					previousSKU = line.ProductName
				}
				previousUnit = line.UnitPrice
			}
		}
	}

	netUnit := unitPrice * (1 - discount/100)
	annual := netUnit * float64(sub.LicensedSeats)
	googleCost := annual
	if recurrence == models.RecurrenceMonthly {
		googleCost *= 12
	}

	values := []interface{}{
		customerName,         // A
		domain,               // B
		cloudIdentityID,      // C
		sub.SubscriptionID,   // D
		sub.SkuID,            // E
		sub.SkuName,          // F
		sub.PlanName,         // G
		sub.IsCommitmentPlan, // H
		sub.Status,           // I
		sub.StartDateDisplay, // J
		sub.EndDateDisplay,   // K
		sub.RenewalType,      // L
		sub.IsInTrial,        // M
		sub.PurchaseOrderID,  // N
		sub.BillingMethod,    // O
		sub.NumberOfSeats,    // P
		sub.LicensedSeats,    // Q
		orderRef,             // R
		orderDate,            // S
		recurrence,           // T
		previousSKU,          // U
		previousUnit,         // V
		invoiceNumber,        // W
		unitPrice,            // X
		discount,             // Y
		netUnit,              // Z  (formula)
		annual,               // AA (formula)
		googleCost,           // AB
		annual - googleCost,  // AC (formula)
		0.0,                  // AD (formula)
		sub.ResourceUIURL,    // AE
	}
	cell := fmt.Sprintf("A%d", row)
	if err := workbook.SetSheetRow(reportSheet, cell, &values); err != nil {
		return err
	}

	// Formula columns reference sibling cells in the same row; the literal
	// values written above act as cached results.
	formulas := map[string]string{
		fmt.Sprintf("Z%d", row):  fmt.Sprintf("X%d*(1-Y%d/100)", row, row),
		fmt.Sprintf("AA%d", row): fmt.Sprintf("Z%d*Q%d", row, row),
		fmt.Sprintf("AC%d", row): fmt.Sprintf("AA%d-AB%d", row, row),
		fmt.Sprintf("AD%d", row): fmt.Sprintf("IF(AA%d=0,0,AC%d/AA%d)", row, row, row),
	}
	for cell, formula := range formulas {
		if err := workbook.SetCellFormula(reportSheet, cell, formula); err != nil {
			return err
		}
	}
	return nil
}

// resolveOwner finds the reseller partner a subscription belongs to. The
// remote customer reference may be a cloud identity id or a domain; an
// unknown owner degrades the row, it does not fail it. The sync keeps a
// cached snapshot keyed by cloud identity id, so that is checked first.
func (g *ProfitabilityReport) resolveOwner(ctx context.Context, sub *models.Subscription) *models.ResellerPartner {
	if g.cache != nil {
		if owner, err := g.cache.GetResellerPartner(ctx, sub.CustomerID); err == nil && owner != nil {
			return owner
		}
	}

	owner, err := g.resellerRepo.GetByCustomerRef(ctx, sub.CustomerID)
	if err != nil {
		if !repositories.IsNotFound(err) {
			log.Printf("Failed to resolve owner for subscription %q: %v", sub.SubscriptionID, err)
		}
		return nil
	}
	return owner
}

func matchOrderLine(lines []*models.SaleOrderLine, sub *models.Subscription) *models.SaleOrderLine {
	for _, line := range lines {
		if line.ProductSKU != "" && line.ProductSKU == sub.SkuID {
			return line
		}
		if sub.SkuName != "" && strings.Contains(line.ProductName, sub.SkuName) {
			return line
		}
	}
	return nil
}

func matchInvoiceLine(invoices []*models.Invoice, sub *models.Subscription) (*models.InvoiceLine, string) {
	for _, invoice := range invoices {
		for _, line := range invoice.Lines {
			if line.ProductSKU != "" && line.ProductSKU == sub.SkuID {
				return line, invoice.Number
			}
			if sub.SkuName != "" && strings.Contains(line.ProductName, sub.SkuName) {
				return line, invoice.Number
			}
		}
	}
	return nil, ""
}

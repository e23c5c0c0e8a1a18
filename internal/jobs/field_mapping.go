package jobs

import (
	"strconv"
	"strings"
	"time"

	"resellerdesk/internal/google"
	"resellerdesk/internal/models"
)

// Display-date markers for subscriptions without a usable interval timestamp.
// The two cases are deliberately distinct: absent means the plan has no
// interval, invalid means the remote sent something unparseable.
const (
	DateUnavailable = "date unavailable"
	DateInvalid     = "invalid date"

	displayDateFormat = "02/01/2006"
)

// Patch is a partial update built from one remote record. A field missing from
// the patch keeps its stored value, so a remote empty string never erases a
// previously synced value. A field present in the patch fully replaces the
// stored one, including explicit zero values for bools and ints.
type Patch map[string]any

func (p Patch) Set(field string, value any) {
	p[field] = value
}

// SetNonEmpty records a string field only when the remote actually sent one.
func (p Patch) SetNonEmpty(field, value string) {
	if value != "" {
		p[field] = value
	}
}

// DisplayDate derives the human-readable date for an epoch-millisecond string.
func DisplayDate(epochMillis string) string {
	if epochMillis == "" {
		return DateUnavailable
	}
	ms, err := strconv.ParseInt(epochMillis, 10, 64)
	if err != nil {
		return DateInvalid
	}
	return time.UnixMilli(ms).UTC().Format(displayDateFormat)
}

// ComposeAddress joins up to three address lines with locality, administrative
// area, postal code and region code, separated by single spaces. Missing
// components are not collapsed, so the result can contain interior runs of
// spaces; downstream consumers expect the historical format and it is kept
// as-is rather than fixed silently.
func ComposeAddress(lines []string, locality, administrativeArea, postalCode, regionCode string) string {
	parts := make([]string, 3, 7)
	for i := 0; i < 3 && i < len(lines); i++ {
		parts[i] = lines[i]
	}
	parts = append(parts, locality, administrativeArea, postalCode, regionCode)
	return strings.Join(parts, " ")
}

func addressLine(lines []string, n int) string {
	if n < len(lines) {
		return lines[n]
	}
	return ""
}

// customerPatch flattens one remote customer into a reseller partner patch.
func customerPatch(customer google.Customer) Patch {
	patch := Patch{}
	patch.SetNonEmpty("name", customer.Name)
	patch.SetNonEmpty("org_display_name", customer.OrgDisplayName)
	patch.SetNonEmpty("alternate_email", customer.AlternateEmail)
	patch.SetNonEmpty("domain", customer.Domain)
	patch.SetNonEmpty("cloud_identity_id", customer.CloudIdentityID)
	patch.SetNonEmpty("language_code", customer.LanguageCode)

	if addr := customer.OrgPostalAddress; addr != nil {
		patch.SetNonEmpty("region_code", addr.RegionCode)
		patch.SetNonEmpty("postal_code", addr.PostalCode)
		patch.SetNonEmpty("administrative_area", addr.AdministrativeArea)
		patch.SetNonEmpty("locality", addr.Locality)
		patch.SetNonEmpty("sublocality", addr.Sublocality)
		patch.SetNonEmpty("organization", addr.Organization)
		patch.SetNonEmpty("address_line_1", addressLine(addr.AddressLines, 0))
		patch.SetNonEmpty("address_line_2", addressLine(addr.AddressLines, 1))
		patch.SetNonEmpty("address_line_3", addressLine(addr.AddressLines, 2))
		patch.SetNonEmpty("address", ComposeAddress(addr.AddressLines, addr.Locality,
			addr.AdministrativeArea, addr.PostalCode, addr.RegionCode))
	}
	if contact := customer.PrimaryContactInfo; contact != nil {
		patch.SetNonEmpty("first_name", contact.FirstName)
		patch.SetNonEmpty("last_name", contact.LastName)
		patch.SetNonEmpty("display_name", contact.DisplayName)
		patch.SetNonEmpty("email", contact.Email)
		patch.SetNonEmpty("phone", contact.Phone)
	}
	return patch
}

func applyResellerPartnerPatch(partner *models.ResellerPartner, patch Patch) {
	for field, value := range patch {
		switch field {
		case "name":
			partner.Name = value.(string)
		case "org_display_name":
			partner.OrgDisplayName = value.(string)
		case "region_code":
			partner.RegionCode = value.(string)
		case "postal_code":
			partner.PostalCode = value.(string)
		case "administrative_area":
			partner.AdministrativeArea = value.(string)
		case "locality":
			partner.Locality = value.(string)
		case "sublocality":
			partner.Sublocality = value.(string)
		case "address":
			partner.Address = value.(string)
		case "address_line_1":
			partner.AddressLine1 = value.(string)
		case "address_line_2":
			partner.AddressLine2 = value.(string)
		case "address_line_3":
			partner.AddressLine3 = value.(string)
		case "organization":
			partner.Organization = value.(string)
		case "first_name":
			partner.FirstName = value.(string)
		case "last_name":
			partner.LastName = value.(string)
		case "display_name":
			partner.DisplayName = value.(string)
		case "email":
			partner.Email = value.(string)
		case "phone":
			partner.Phone = value.(string)
		case "alternate_email":
			partner.AlternateEmail = value.(string)
		case "domain":
			partner.Domain = value.(string)
		case "cloud_identity_id":
			partner.CloudIdentityID = value.(string)
		case "language_code":
			partner.LanguageCode = value.(string)
		}
	}
}

// subscriptionPatch flattens one remote subscription. Bools, seat counts and
// the derived display dates are always present in the patch: they are
// recomputed from source on every sync.
func subscriptionPatch(sub google.Subscription) Patch {
	patch := Patch{}
	patch.SetNonEmpty("kind", sub.Kind)
	patch.SetNonEmpty("customer_id", sub.CustomerID)
	patch.SetNonEmpty("subscription_id", sub.SubscriptionID)
	patch.SetNonEmpty("sku_id", sub.SkuID)
	patch.SetNonEmpty("sku_name", sub.SkuName)
	patch.SetNonEmpty("billing_method", sub.BillingMethod)
	patch.SetNonEmpty("creation_time", sub.CreationTime)
	patch.SetNonEmpty("purchase_order_id", sub.PurchaseOrderID)
	patch.SetNonEmpty("status", sub.Status)
	patch.SetNonEmpty("resource_ui_url", sub.ResourceUIURL)

	var startTime, endTime string
	if plan := sub.Plan; plan != nil {
		patch.SetNonEmpty("plan_name", plan.PlanName)
		patch.Set("is_commitment_plan", plan.IsCommitmentPlan)
		if plan.CommitmentInterval != nil {
			startTime = plan.CommitmentInterval.StartTime
			endTime = plan.CommitmentInterval.EndTime
		}
	}
	patch.SetNonEmpty("start_time", startTime)
	patch.SetNonEmpty("end_time", endTime)
	patch.Set("start_date_display", DisplayDate(startTime))
	patch.Set("end_date_display", DisplayDate(endTime))

	if seats := sub.Seats; seats != nil {
		// Commitment plans report numberOfSeats; flexible plans report
		// maximumNumberOfSeats instead.
		maxSeats := seats.NumberOfSeats
		if maxSeats == 0 {
			maxSeats = seats.MaximumNumberOfSeats
		}
		patch.Set("number_of_seats", maxSeats)
		patch.Set("licensed_seats", seats.LicensedNumberOfSeats)
	}
	if trial := sub.TrialSettings; trial != nil {
		patch.Set("is_in_trial", trial.IsInTrial)
	}
	if renewal := sub.RenewalSettings; renewal != nil {
		patch.SetNonEmpty("renewal_type", renewal.RenewalType)
	}
	return patch
}

func applySubscriptionPatch(subscription *models.Subscription, patch Patch) {
	for field, value := range patch {
		switch field {
		case "kind":
			subscription.Kind = value.(string)
		case "customer_id":
			subscription.CustomerID = value.(string)
		case "subscription_id":
			subscription.SubscriptionID = value.(string)
		case "sku_id":
			subscription.SkuID = value.(string)
		case "sku_name":
			subscription.SkuName = value.(string)
		case "billing_method":
			subscription.BillingMethod = value.(string)
		case "creation_time":
			subscription.CreationTime = value.(string)
		case "plan_name":
			subscription.PlanName = value.(string)
		case "is_commitment_plan":
			subscription.IsCommitmentPlan = value.(bool)
		case "start_time":
			subscription.StartTime = value.(string)
		case "end_time":
			subscription.EndTime = value.(string)
		case "number_of_seats":
			subscription.NumberOfSeats = value.(int)
		case "licensed_seats":
			subscription.LicensedSeats = value.(int)
		case "is_in_trial":
			subscription.IsInTrial = value.(bool)
		case "renewal_type":
			subscription.RenewalType = value.(string)
		case "purchase_order_id":
			subscription.PurchaseOrderID = value.(string)
		case "status":
			subscription.Status = value.(string)
		case "resource_ui_url":
			subscription.ResourceUIURL = value.(string)
		case "start_date_display":
			subscription.StartDateDisplay = value.(string)
		case "end_date_display":
			subscription.EndDateDisplay = value.(string)
		}
	}
}

// companyPatch builds the company contact for a customer. Address fields are
// copied from the owning organization; the website carries the primary domain
// so sale orders can be matched back to it.
func companyPatch(customer google.Customer) Patch {
	patch := Patch{}
	patch.SetNonEmpty("name", customer.OrgDisplayName)
	patch.SetNonEmpty("website", customer.Domain)
	if addr := customer.OrgPostalAddress; addr != nil {
		patch.SetNonEmpty("street", addressLine(addr.AddressLines, 0))
		patch.SetNonEmpty("city", addr.Locality)
		patch.SetNonEmpty("state", addr.AdministrativeArea)
		patch.SetNonEmpty("zip", addr.PostalCode)
		patch.SetNonEmpty("country_code", addr.RegionCode)
	}
	if contact := customer.PrimaryContactInfo; contact != nil {
		patch.SetNonEmpty("email", contact.Email)
		patch.SetNonEmpty("phone", contact.Phone)
	}
	return patch
}

// userPatch builds the person contact for a directory user.
func userPatch(user google.DirectoryUser) Patch {
	patch := Patch{}
	patch.SetNonEmpty("email", user.PrimaryEmail)
	if name := user.Name; name != nil {
		if name.FullName != "" {
			patch.SetNonEmpty("name", name.FullName)
		} else {
			patch.SetNonEmpty("name", strings.TrimSpace(name.GivenName+" "+name.FamilyName))
		}
	}
	return patch
}

func applyPartnerPatch(partner *models.Partner, patch Patch) {
	for field, value := range patch {
		switch field {
		case "name":
			partner.Name = value.(string)
		case "email":
			partner.Email = value.(string)
		case "phone":
			partner.Phone = value.(string)
		case "street":
			partner.Street = value.(string)
		case "city":
			partner.City = value.(string)
		case "state":
			partner.State = value.(string)
		case "zip":
			partner.Zip = value.(string)
		case "country_code":
			partner.CountryCode = value.(string)
		case "website":
			partner.Website = value.(string)
		}
	}
}

package google

// Typed payloads for the three remote APIs. Every nested message the sync cares
// about is declared here; optional messages are pointers so a missing branch is
// an explicit nil instead of a silent zero value.

// Customer is an end-customer organization from the channel customer listing.
type Customer struct {
	Name               string         `json:"name"` // resource name, accounts/{account}/customers/{customer}
	OrgDisplayName     string         `json:"orgDisplayName"`
	OrgPostalAddress   *PostalAddress `json:"orgPostalAddress,omitempty"`
	PrimaryContactInfo *ContactInfo   `json:"primaryContactInfo,omitempty"`
	AlternateEmail     string         `json:"alternateEmail,omitempty"`
	Domain             string         `json:"domain,omitempty"`
	CloudIdentityID    string         `json:"cloudIdentityId,omitempty"`
	LanguageCode       string         `json:"languageCode,omitempty"`
	CreateTime         string         `json:"createTime,omitempty"`
}

type PostalAddress struct {
	RegionCode         string   `json:"regionCode,omitempty"`
	PostalCode         string   `json:"postalCode,omitempty"`
	AdministrativeArea string   `json:"administrativeArea,omitempty"`
	Locality           string   `json:"locality,omitempty"`
	Sublocality        string   `json:"sublocality,omitempty"`
	AddressLines       []string `json:"addressLines,omitempty"`
	Organization       string   `json:"organization,omitempty"`
}

type ContactInfo struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Subscription is one entry from the reseller subscription listing. Timestamps
// are epoch-millisecond values that the API encodes as JSON strings; they are
// kept as strings all the way into storage.
type Subscription struct {
	Kind            string           `json:"kind,omitempty"`
	CustomerID      string           `json:"customerId,omitempty"`
	SubscriptionID  string           `json:"subscriptionId,omitempty"`
	SkuID           string           `json:"skuId,omitempty"`
	SkuName         string           `json:"skuName,omitempty"`
	BillingMethod   string           `json:"billingMethod,omitempty"`
	CreationTime    string           `json:"creationTime,omitempty"`
	Plan            *Plan            `json:"plan,omitempty"`
	Seats           *Seats           `json:"seats,omitempty"`
	TrialSettings   *TrialSettings   `json:"trialSettings,omitempty"`
	RenewalSettings *RenewalSettings `json:"renewalSettings,omitempty"`
	PurchaseOrderID string           `json:"purchaseOrderId,omitempty"`
	Status          string           `json:"status,omitempty"`
	ResourceUIURL   string           `json:"resourceUiUrl,omitempty"`
}

type Plan struct {
	PlanName           string              `json:"planName,omitempty"`
	IsCommitmentPlan   bool                `json:"isCommitmentPlan,omitempty"`
	CommitmentInterval *CommitmentInterval `json:"commitmentInterval,omitempty"`
}

type CommitmentInterval struct {
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type Seats struct {
	NumberOfSeats         int `json:"numberOfSeats,omitempty"`
	LicensedNumberOfSeats int `json:"licensedNumberOfSeats,omitempty"`
	MaximumNumberOfSeats  int `json:"maximumNumberOfSeats,omitempty"`
}

type TrialSettings struct {
	IsInTrial    bool   `json:"isInTrial,omitempty"`
	TrialEndTime string `json:"trialEndTime,omitempty"`
}

type RenewalSettings struct {
	RenewalType string `json:"renewalType,omitempty"`
}

// DirectoryUser is one admin-directory user of a customer domain.
type DirectoryUser struct {
	PrimaryEmail string    `json:"primaryEmail,omitempty"`
	Name         *UserName `json:"name,omitempty"`
	IsAdmin      bool      `json:"isAdmin,omitempty"`
	OrgUnitPath  string    `json:"orgUnitPath,omitempty"`
	Suspended    bool      `json:"suspended,omitempty"`
}

type UserName struct {
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
	FullName   string `json:"fullName,omitempty"`
}

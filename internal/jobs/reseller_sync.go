package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"resellerdesk/internal/caching"
	"resellerdesk/internal/google"
	"resellerdesk/internal/models"
	"resellerdesk/internal/repositories"
	"resellerdesk/internal/services"

	"github.com/google/uuid"
)

const syncResultTTL = 7 * 24 * time.Hour

// DirectoryService is what the sync needs from the remote side.
type DirectoryService interface {
	ListCustomers(ctx context.Context) ([]google.Customer, error)
	ListSubscriptions(ctx context.Context, customerID string) ([]google.Subscription, error)
	ListDomainUsers(ctx context.Context, domain string) ([]google.DirectoryUser, error)
}

// ResellerSync pulls customers, their admin users and their subscriptions from
// the remote directory and reconciles them into local storage. Each pass is
// best-effort: a record that fails is logged, counted and skipped, never
// aborting the batch.
type ResellerSync struct {
	directory        DirectoryService
	resellerRepo     repositories.ResellerPartnerRepository
	partnerRepo      repositories.PartnerRepository
	subscriptionRepo repositories.SubscriptionRepository
	tagSvc           services.TagService
	cache            caching.CacheService
	tags             []string
}

func NewResellerSync(
	directory DirectoryService,
	resellerRepo repositories.ResellerPartnerRepository,
	partnerRepo repositories.PartnerRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	tagSvc services.TagService,
	cache caching.CacheService,
	tags []string,
) *ResellerSync {
	return &ResellerSync{
		directory:        directory,
		resellerRepo:     resellerRepo,
		partnerRepo:      partnerRepo,
		subscriptionRepo: subscriptionRepo,
		tagSvc:           tagSvc,
		cache:            cache,
		tags:             tags,
	}
}

// SyncContacts reconciles every remote customer into a reseller partner plus a
// company contact, pulls the customer's directory users as person contacts, and
// tags everything it touched.
func (s *ResellerSync) SyncContacts(ctx context.Context) *models.SyncResult {
	result := &models.SyncResult{StartedAt: time.Now().UTC()}
	defer s.finish(ctx, "contacts", result)

	customers, err := s.directory.ListCustomers(ctx)
	if err != nil {
		log.Printf("Failed to fetch customers: %v", err)
		result.AddError(fmt.Sprintf("fetch customers: %v", err))
		return result
	}
	log.Printf("Fetched %d customers", len(customers))

	tagIDs, err := s.tagSvc.EnsureTags(ctx, s.tags)
	if err != nil {
		// Tagging is best-effort; contacts still sync without labels.
		log.Printf("Failed to provision tags: %v", err)
		result.AddError(fmt.Sprintf("provision tags: %v", err))
	}

	for _, customer := range customers {
		result.Processed++
		created, err := s.syncCustomer(ctx, customer, tagIDs)
		if err != nil {
			log.Printf("Failed to sync customer %q: %v", customer.OrgDisplayName, err)
			result.AddError(fmt.Sprintf("customer %q: %v", customer.OrgDisplayName, err))
			result.Skipped++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result
}

// SyncSubscriptions reconciles the subscriptions of every remote customer and
// links each one to its owning reseller partner.
func (s *ResellerSync) SyncSubscriptions(ctx context.Context) *models.SyncResult {
	result := &models.SyncResult{StartedAt: time.Now().UTC()}
	defer s.finish(ctx, "subscriptions", result)

	customers, err := s.directory.ListCustomers(ctx)
	if err != nil {
		log.Printf("Failed to fetch customers: %v", err)
		result.AddError(fmt.Sprintf("fetch customers: %v", err))
		return result
	}

	for _, customer := range customers {
		ref := customerRef(customer)
		if ref == "" {
			// Listing without a customer filter would return the whole
			// account's subscriptions and attribute them to this customer.
			log.Printf("Skipping subscriptions for customer %q: no usable identifier", customer.OrgDisplayName)
			result.AddError(fmt.Sprintf("customer %q: no cloud identity id or domain", customer.OrgDisplayName))
			continue
		}
		subs, err := s.directory.ListSubscriptions(ctx, ref)
		if err != nil {
			if errors.Is(err, google.ErrPermissionDenied) || errors.Is(err, google.ErrNotFound) {
				log.Printf("Skipping subscriptions for customer %q: %v", customer.OrgDisplayName, err)
			} else {
				log.Printf("Failed to fetch subscriptions for customer %q: %v", customer.OrgDisplayName, err)
			}
			result.AddError(fmt.Sprintf("customer %q subscriptions: %v", customer.OrgDisplayName, err))
			continue
		}

		owner, err := s.findResellerPartner(ctx, customer)
		if err != nil {
			log.Printf("Failed to resolve owner for customer %q: %v", customer.OrgDisplayName, err)
			result.AddError(fmt.Sprintf("customer %q owner: %v", customer.OrgDisplayName, err))
			owner = nil
		}

		for _, sub := range subs {
			result.Processed++
			created, err := s.upsertSubscription(ctx, sub, owner)
			if err != nil {
				log.Printf("Failed to sync subscription %q: %v", sub.SubscriptionID, err)
				result.AddError(fmt.Sprintf("subscription %q: %v", sub.SubscriptionID, err))
				result.Skipped++
				continue
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
	}
	return result
}

func (s *ResellerSync) finish(ctx context.Context, kind string, result *models.SyncResult) {
	result.FinishedAt = time.Now().UTC()
	if s.cache != nil {
		if err := s.cache.SetLastSyncResult(ctx, kind, result, syncResultTTL); err != nil {
			log.Printf("Failed to cache %s sync result: %v", kind, err)
		}
	}
	log.Printf("%s sync finished: processed=%d created=%d updated=%d skipped=%d errors=%d",
		kind, result.Processed, result.Created, result.Updated, result.Skipped, len(result.Errors))
}

// customerRef is the identifier the subscription listing accepts: the cloud
// identity id once assigned, the primary domain before that.
func customerRef(customer google.Customer) string {
	if customer.CloudIdentityID != "" {
		return customer.CloudIdentityID
	}
	return customer.Domain
}

// findResellerPartner resolves the local row for a remote customer: by cloud
// identity id when the remote has assigned one, by organization display name
// otherwise. Returns (nil, nil) when no row exists yet.
func (s *ResellerSync) findResellerPartner(ctx context.Context, customer google.Customer) (*models.ResellerPartner, error) {
	if customer.CloudIdentityID != "" {
		partner, err := s.resellerRepo.GetByCloudIdentityID(ctx, customer.CloudIdentityID)
		if err == nil {
			return partner, nil
		}
		if !repositories.IsNotFound(err) {
			return nil, err
		}
	}
	// Name matching is the weaker fallback for customers synced before their
	// cloud identity id was known.
	partner, err := s.resellerRepo.GetByOrgDisplayName(ctx, customer.OrgDisplayName)
	if err == nil {
		return partner, nil
	}
	if repositories.IsNotFound(err) {
		return nil, nil
	}
	return nil, err
}

func (s *ResellerSync) syncCustomer(ctx context.Context, customer google.Customer, tagIDs []uuid.UUID) (bool, error) {
	patch := customerPatch(customer)

	existing, err := s.findResellerPartner(ctx, customer)
	if err != nil {
		return false, fmt.Errorf("lookup failed: %w", err)
	}

	created := false
	resellerPartner := existing
	if resellerPartner != nil {
		applyResellerPartnerPatch(resellerPartner, patch)
		if err := s.resellerRepo.Update(ctx, resellerPartner); err != nil {
			return false, fmt.Errorf("update failed: %w", err)
		}
	} else {
		resellerPartner = &models.ResellerPartner{ID: uuid.New()}
		applyResellerPartnerPatch(resellerPartner, patch)
		if err := s.resellerRepo.Create(ctx, resellerPartner); err != nil {
			return false, fmt.Errorf("create failed: %w", err)
		}
		created = true
	}

	if s.cache != nil {
		if err := s.cache.SetResellerPartner(ctx, resellerPartner, syncResultTTL); err != nil {
			log.Printf("Failed to cache reseller partner %q: %v", resellerPartner.OrgDisplayName, err)
		}
	}

	company, err := s.upsertCompany(ctx, customer, tagIDs)
	if err != nil {
		return created, fmt.Errorf("company contact: %w", err)
	}

	if company != nil {
		linked, err := s.resellerRepo.HasPartnerLink(ctx, resellerPartner.ID, company.ID)
		if err != nil {
			return created, fmt.Errorf("link check: %w", err)
		}
		if !linked {
			if err := s.resellerRepo.LinkPartner(ctx, resellerPartner.ID, company.ID); err != nil {
				return created, fmt.Errorf("link company: %w", err)
			}
		}
	}

	s.syncDomainUsers(ctx, customer, company, tagIDs)
	return created, nil
}

// upsertCompany reconciles the company contact for a customer, keyed by
// display name. Returns nil when the customer has no usable name.
func (s *ResellerSync) upsertCompany(ctx context.Context, customer google.Customer, tagIDs []uuid.UUID) (*models.Partner, error) {
	if customer.OrgDisplayName == "" {
		return nil, nil
	}

	patch := companyPatch(customer)
	company, err := s.partnerRepo.GetCompanyByName(ctx, customer.OrgDisplayName)
	if err != nil {
		if !repositories.IsNotFound(err) {
			return nil, err
		}
		company = &models.Partner{ID: uuid.New(), IsCompany: true}
		applyPartnerPatch(company, patch)
		if err := s.partnerRepo.Create(ctx, company); err != nil {
			return nil, err
		}
	} else {
		applyPartnerPatch(company, patch)
		if err := s.partnerRepo.Update(ctx, company); err != nil {
			return nil, err
		}
	}

	if len(tagIDs) > 0 {
		if err := s.partnerRepo.AddTags(ctx, company.ID, tagIDs); err != nil {
			log.Printf("Failed to tag company %q: %v", company.Name, err)
		}
	}
	return company, nil
}

// syncDomainUsers pulls the customer's directory users as person contacts.
// Permission and not-found failures are expected for customers that have not
// granted the reseller access; they are logged and the customer is skipped.
func (s *ResellerSync) syncDomainUsers(ctx context.Context, customer google.Customer, company *models.Partner, tagIDs []uuid.UUID) {
	if customer.Domain == "" {
		return
	}

	users, err := s.directory.ListDomainUsers(ctx, customer.Domain)
	if err != nil {
		if errors.Is(err, google.ErrPermissionDenied) || errors.Is(err, google.ErrNotFound) {
			log.Printf("Skipping users for domain %q: %v", customer.Domain, err)
		} else {
			log.Printf("Failed to fetch users for domain %q: %v", customer.Domain, err)
		}
		return
	}

	for _, user := range users {
		if err := s.upsertPerson(ctx, user, company, tagIDs); err != nil {
			log.Printf("Failed to sync user %q: %v", user.PrimaryEmail, err)
		}
	}
}

// upsertPerson reconciles one person contact, keyed by email address.
func (s *ResellerSync) upsertPerson(ctx context.Context, user google.DirectoryUser, company *models.Partner, tagIDs []uuid.UUID) error {
	if user.PrimaryEmail == "" {
		return errors.New("user has no primary email")
	}

	patch := userPatch(user)
	person, err := s.partnerRepo.GetByEmail(ctx, user.PrimaryEmail)
	if err != nil {
		if !repositories.IsNotFound(err) {
			return err
		}
		person = &models.Partner{ID: uuid.New()}
		applyPartnerPatch(person, patch)
		if company != nil {
			person.ParentID = &company.ID
		}
		if err := s.partnerRepo.Create(ctx, person); err != nil {
			return err
		}
	} else {
		applyPartnerPatch(person, patch)
		if company != nil && person.ParentID == nil {
			person.ParentID = &company.ID
		}
		if err := s.partnerRepo.Update(ctx, person); err != nil {
			return err
		}
	}

	if len(tagIDs) > 0 {
		if err := s.partnerRepo.AddTags(ctx, person.ID, tagIDs); err != nil {
			log.Printf("Failed to tag contact %q: %v", person.Email, err)
		}
	}
	return nil
}

// upsertSubscription reconciles one subscription, keyed by its remote
// subscription id, and links it to its owner when known.
func (s *ResellerSync) upsertSubscription(ctx context.Context, sub google.Subscription, owner *models.ResellerPartner) (bool, error) {
	if sub.SubscriptionID == "" {
		return false, errors.New("subscription has no subscriptionId")
	}

	patch := subscriptionPatch(sub)
	created := false

	subscription, err := s.subscriptionRepo.GetBySubscriptionID(ctx, sub.SubscriptionID)
	if err != nil {
		if !repositories.IsNotFound(err) {
			return false, err
		}
		subscription = &models.Subscription{ID: uuid.New()}
		applySubscriptionPatch(subscription, patch)
		if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
			return false, err
		}
		created = true
	} else {
		applySubscriptionPatch(subscription, patch)
		if err := s.subscriptionRepo.Update(ctx, subscription); err != nil {
			return false, err
		}
	}

	if owner != nil {
		linked, err := s.resellerRepo.HasSubscriptionLink(ctx, owner.ID, subscription.ID)
		if err != nil {
			return created, err
		}
		if !linked {
			if err := s.resellerRepo.LinkSubscription(ctx, owner.ID, subscription.ID); err != nil {
				return created, err
			}
		}
	}
	return created, nil
}

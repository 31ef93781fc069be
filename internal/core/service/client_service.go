package service

import (
	"context"
	"fmt"

	"github.com/mwarren/crmapi/internal/core/domain"
	"github.com/mwarren/crmapi/internal/core/repository"
	"github.com/mwarren/crmapi/internal/core/validation"
	"go.uber.org/zap"
)

// ContactSyncer replicates a client's contact info to an external
// email-marketing system. Implementations must never return an error; all
// failure modes normalize to false.
type ContactSyncer interface {
	CreateContact(ctx context.Context, email, firstName, lastName, userID string) bool
}

// ClientInput is the full create/update payload. Optional fields use the
// empty string for "absent"; updates are full replaces, not patches.
type ClientInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Company      string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	IsActive     *bool // defaults to true when omitted
}

type ClientService struct {
	repo      repository.ClientRepository
	validator *validation.ClientValidator
	syncer    ContactSyncer
	logger    *zap.Logger
}

func NewClientService(
	repo repository.ClientRepository,
	validator *validation.ClientValidator,
	syncer ContactSyncer,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		repo:      repo,
		validator: validator,
		syncer:    syncer,
		logger:    logger,
	}
}

// List runs the listing pipeline: filter, sort, paginate, count.
func (s *ClientService) List(ctx context.Context, filter repository.ClientFilter) ([]*domain.Client, int, error) {
	clients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates the payload, enforces email uniqueness, persists the new
// client and dispatches a detached sync of the contact to the email-marketing
// service. The sync outcome never affects the returned result.
func (s *ClientService) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	if fieldErrors := s.validator.Validate(input.payload()); len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	exists, err := s.repo.EmailExists(ctx, input.Email, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	client := domain.NewClient()
	input.apply(client)

	// The UNIQUE index on email is the backstop for creates racing past the
	// check above; the repository translates its violation to
	// domain.ErrDuplicateEmail.
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.dispatchContactSync(client)

	return client, nil
}

// Update replaces all mutable fields of an existing client. The identifier
// and creation timestamp are never touched.
func (s *ClientService) Update(ctx context.Context, id string, input ClientInput) (*domain.Client, error) {
	if fieldErrors := s.validator.Validate(input.payload()); len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if client.Email != input.Email {
		exists, err := s.repo.EmailExists(ctx, input.Email, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if exists {
			return nil, domain.ErrDuplicateEmail
		}
	}

	input.apply(client)
	client.Touch()

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// dispatchContactSync schedules the fire-and-forget sync on its own
// goroutine. It deliberately uses context.Background() so that cancellation
// of the request that triggered the create never tears the sync down; the
// sync's own timeout still bounds it. Failures are observed through logging
// only.
func (s *ClientService) dispatchContactSync(client *domain.Client) {
	go func() {
		if ok := s.syncer.CreateContact(context.Background(), client.Email, client.FirstName, client.LastName, client.ID); !ok {
			s.logger.Warn("contact sync did not complete",
				zap.String("client_id", client.ID),
				zap.String("email", client.Email))
		}
	}()
}

func (in ClientInput) payload() validation.ClientPayload {
	return validation.ClientPayload{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		Company:      in.Company,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
	}
}

// apply overwrites the client's mutable fields from the payload. Optional
// fields given as empty strings are stored as NULL.
func (in ClientInput) apply(client *domain.Client) {
	client.FirstName = in.FirstName
	client.LastName = in.LastName
	client.Email = in.Email
	client.Phone = optional(in.Phone)
	client.Company = optional(in.Company)
	client.AddressLine1 = optional(in.AddressLine1)
	client.AddressLine2 = optional(in.AddressLine2)
	client.City = optional(in.City)
	client.State = optional(in.State)
	client.PostalCode = optional(in.PostalCode)
	client.Country = optional(in.Country)
	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	} else {
		client.IsActive = true
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

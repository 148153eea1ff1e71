package service

import (
	"context"

	"github.com/seatstack/seatstack/internal/api/dto"
	"github.com/seatstack/seatstack/internal/domain/organization"
	"github.com/seatstack/seatstack/internal/domain/subscription"
	"github.com/seatstack/seatstack/internal/domain/user"
)

// OrganizationService provisions organizations. Provisioning creates the
// owner user and the organization's single subscription (Test tier, trial
// window) in one transaction; the subscription is never created or deleted
// on its own afterwards.
type OrganizationService interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error)
	GetOrganization(ctx context.Context, id string) (*dto.OrganizationResponse, error)
}

type organizationService struct {
	ServiceParams
}

func NewOrganizationService(params ServiceParams) OrganizationService {
	return &organizationService{
		ServiceParams: params,
	}
}

func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp *dto.OrganizationResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		org := organization.New(ctx, req.Name, "")

		owner := user.New(ctx, org.ID, req.OwnerEmail, req.OwnerName)
		if err := s.UserRepo.Create(ctx, owner); err != nil {
			return err
		}
		org.OwnerID = owner.ID

		if err := s.OrganizationRepo.Create(ctx, org); err != nil {
			return err
		}

		sub := subscription.New(ctx, org.ID)
		if err := s.SubRepo.Create(ctx, sub); err != nil {
			return err
		}

		resp = dto.NewOrganizationResponse(org)
		resp.Subscription = dto.NewSubscriptionResponse(sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *organizationService) GetOrganization(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	org, err := s.OrganizationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewOrganizationResponse(org)

	sub, err := s.SubRepo.GetByOrganizationID(ctx, id)
	if err == nil {
		resp.Subscription = dto.NewSubscriptionResponse(sub)
	}
	return resp, nil
}

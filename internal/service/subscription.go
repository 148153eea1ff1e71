package service

import (
	"context"
	"time"

	"github.com/seatstack/seatstack/internal/api/dto"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/types"
)

// SubscriptionService exposes the seat allocation and plan lifecycle of a
// subscription aggregate. Every mutation runs as a single read-modify-write
// transaction over the aggregate so two requests racing for the last free
// seat cannot both win.
type SubscriptionService interface {
	GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	GetSubscriptionByOrganization(ctx context.Context, organizationID string) (*dto.SubscriptionResponse, error)
	UpgradeSubscription(ctx context.Context, id string, req dto.UpgradeSubscriptionRequest) (*dto.SubscriptionResponse, error)
	RemoveUntil(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	SetPostalBills(ctx context.Context, id string, req dto.SetPostalBillsRequest) (*dto.SubscriptionResponse, error)
	CreateAccount(ctx context.Context, subscriptionID string) (*dto.AccountResponse, error)
	DeleteAccount(ctx context.Context, subscriptionID, accountID string) error
	AssignAccount(ctx context.Context, subscriptionID, accountID string, req dto.AssignAccountRequest) (*dto.AccountResponse, error)
	UnassignAccount(ctx context.Context, subscriptionID, accountID string) (*dto.AccountResponse, error)
	GetFreeAccount(ctx context.Context, subscriptionID string) (*dto.AccountResponse, error)
}

type subscriptionService struct {
	ServiceParams
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{
		ServiceParams: params,
	}
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) GetSubscriptionByOrganization(ctx context.Context, organizationID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubRepo.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) UpgradeSubscription(ctx context.Context, id string, req dto.UpgradeSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp *dto.SubscriptionResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if err := sub.Upgrade(ctx, req.SubscriptionType, req.Until, req.PaymentType, req.PaymentPlan); err != nil {
			return err
		}

		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}

		resp = dto.NewSubscriptionResponse(sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *subscriptionService) RemoveUntil(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	var resp *dto.SubscriptionResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		sub.RemoveUntil(ctx)

		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}
		resp = dto.NewSubscriptionResponse(sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *subscriptionService) SetPostalBills(ctx context.Context, id string, req dto.SetPostalBillsRequest) (*dto.SubscriptionResponse, error) {
	var resp *dto.SubscriptionResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		sub.PostalBills = req.PostalBills
		sub.UpdatedAt = time.Now().UTC()
		sub.UpdatedBy = types.GetUserID(ctx)

		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}
		resp = dto.NewSubscriptionResponse(sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateAccount allocates a new seat. When the tier's ceiling is reached no
// account is created and an invalid-operation error is returned; the domain
// itself signals the ceiling as an absent result.
func (s *subscriptionService) CreateAccount(ctx context.Context, subscriptionID string) (*dto.AccountResponse, error) {
	var resp *dto.AccountResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.Get(ctx, subscriptionID)
		if err != nil {
			return err
		}

		a := sub.NewAccount(ctx)
		if a == nil {
			return ierr.NewError("account limit reached").
				WithHint("The subscription's account limit has been reached").
				WithReportableDetails(map[string]any{
					"subscription_type": sub.SubscriptionType,
					"max_accounts":      sub.SubscriptionType.MaxAccounts(),
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}
		resp = dto.NewAccountResponse(sub, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *subscriptionService) DeleteAccount(ctx context.Context, subscriptionID, accountID string) error {
	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.Get(ctx, subscriptionID)
		if err != nil {
			return err
		}

		if err := sub.RemoveAccount(ctx, accountID); err != nil {
			return err
		}

		return s.SubRepo.Update(ctx, sub)
	})
}

func (s *subscriptionService) AssignAccount(ctx context.Context, subscriptionID, accountID string, req dto.AssignAccountRequest) (*dto.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp *dto.AccountResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.Get(ctx, subscriptionID)
		if err != nil {
			return err
		}

		u, err := s.UserRepo.Get(ctx, req.UserID)
		if err != nil {
			return err
		}

		a, err := sub.AssignAccount(ctx, accountID, u)
		if err != nil {
			return err
		}

		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}
		resp = dto.NewAccountResponse(sub, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *subscriptionService) UnassignAccount(ctx context.Context, subscriptionID, accountID string) (*dto.AccountResponse, error) {
	var resp *dto.AccountResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.Get(ctx, subscriptionID)
		if err != nil {
			return err
		}

		a, err := sub.UnassignAccount(ctx, accountID)
		if err != nil {
			return err
		}

		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}
		resp = dto.NewAccountResponse(sub, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetFreeAccount returns the first free seat. On a Master subscription a new
// seat is allocated when all existing ones are taken; other tiers return a
// not-found error and callers must create a seat explicitly.
func (s *subscriptionService) GetFreeAccount(ctx context.Context, subscriptionID string) (*dto.AccountResponse, error) {
	var resp *dto.AccountResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.Get(ctx, subscriptionID)
		if err != nil {
			return err
		}

		before := len(sub.Accounts)
		a := sub.GetFreeAccount(ctx)
		if a == nil {
			return ierr.NewError("no free account available").
				WithHint("All accounts are assigned; create a new account explicitly").
				Mark(ierr.ErrNotFound)
		}

		// Persist only when a seat was actually allocated
		if len(sub.Accounts) != before {
			if err := s.SubRepo.Update(ctx, sub); err != nil {
				return err
			}
		}
		resp = dto.NewAccountResponse(sub, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

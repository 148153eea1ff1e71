package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/seatstack/seatstack/internal/api/dto"
	"github.com/seatstack/seatstack/internal/domain/subscription"
	"github.com/seatstack/seatstack/internal/types"
)

// AccountViewService provides read-side projections over a subscription's
// accounts: paged listing, CSV export and activation links. These are
// snapshot reads; they never drive writes.
type AccountViewService interface {
	ListAccounts(ctx context.Context, filter *types.AccountFilter) (*dto.ListAccountsResponse, error)
	ExportAccountsCSV(ctx context.Context, subscriptionID string) ([]byte, error)
	GetActivationLink(ctx context.Context, subscriptionID, accountID string) (*dto.ActivationLinkResponse, error)
}

type accountViewService struct {
	ServiceParams
}

func NewAccountViewService(params ServiceParams) AccountViewService {
	return &accountViewService{
		ServiceParams: params,
	}
}

func (s *accountViewService) ListAccounts(ctx context.Context, filter *types.AccountFilter) (*dto.ListAccountsResponse, error) {
	sub, err := s.SubRepo.Get(ctx, filter.SubscriptionID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AccountResponse, 0, len(sub.Accounts))
	for _, a := range sub.Accounts {
		if filter.UnassignedOnly && !a.IsUnassigned() {
			continue
		}
		items = append(items, dto.NewAccountResponse(sub, a))
	}
	total := len(items)

	if filter.QueryFilter != nil && !filter.IsUnlimited() {
		start := filter.GetOffset()
		if start >= len(items) {
			items = []*dto.AccountResponse{}
		} else {
			end := start + filter.GetLimit()
			if end > len(items) {
				end = len(items)
			}
			items = items[start:end]
		}
	}

	return &dto.ListAccountsResponse{
		Items: items,
		Total: total,
	}, nil
}

func (s *accountViewService) ExportAccountsCSV(ctx context.Context, subscriptionID string) ([]byte, error) {
	sub, err := s.SubRepo.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"account_id", "user_id", "activated", "active"}); err != nil {
		return nil, err
	}

	for _, a := range sub.Accounts {
		record := []string{
			a.ID,
			types.FromNillableString(a.UserID),
			a.Activated.UTC().Format(time.RFC3339),
			strconv.FormatBool(sub.IsActive()),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetActivationLink builds a one-off link an administrator can hand to a user
// to claim the seat
func (s *accountViewService) GetActivationLink(ctx context.Context, subscriptionID, accountID string) (*dto.ActivationLinkResponse, error) {
	sub, err := s.SubRepo.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	var found bool
	for _, a := range sub.Accounts {
		if a.ID == accountID {
			found = true
			break
		}
	}
	if !found {
		return nil, subscription.NewAccountNotFoundError(accountID)
	}

	token := types.GenerateShortID()
	url := fmt.Sprintf("%s/activate/%s?token=%s", s.Config.Server.BaseURL, accountID, token)

	return &dto.ActivationLinkResponse{
		AccountID: accountID,
		URL:       url,
		Token:     token,
	}, nil
}

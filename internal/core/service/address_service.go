package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
)

type addressService struct {
	addresses ports.AddressRepository
	guards    *Guards
	log       zerolog.Logger
}

// NewAddressService returns an AddressService implementation.
func NewAddressService(addresses ports.AddressRepository, guards *Guards, log zerolog.Logger) ports.AddressService {
	return &addressService{addresses: addresses, guards: guards, log: log}
}

func (s *addressService) Add(ctx context.Context, caller domain.Claims, in ports.AddressInput) (*domain.Address, error) {
	userID, err := s.guards.ResolveUserID(ports.SelfTarget(caller))
	if err != nil {
		return nil, err
	}
	if err := s.guards.ValidateSchema(in); err != nil {
		return nil, err
	}
	if _, err := s.guards.UserExists(ctx, userID); err != nil {
		return nil, err
	}

	count, err := s.addresses.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count addresses: %w", err)
	}
	if count >= domain.MaxAddressesPerUser {
		return nil, domain.ErrAddressLimitExceeded
	}

	addr, err := s.addresses.Create(ctx, domain.Address{
		UserID:     userID,
		Type:       in.Type,
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	})
	if err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	s.log.Debug().Int64("user_id", userID).Int64("address_id", addr.ID).Msg("address added")
	return addr, nil
}

func (s *addressService) List(ctx context.Context, caller domain.Claims) ([]domain.Address, error) {
	userID, err := s.guards.ResolveUserID(ports.SelfTarget(caller))
	if err != nil {
		return nil, err
	}
	list, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	if len(list) == 0 {
		return nil, domain.ErrAddressesNotFound
	}
	return list, nil
}

func (s *addressService) Delete(ctx context.Context, caller domain.Claims, rawAddressID string) error {
	userID, err := s.guards.ResolveUserID(ports.SelfTarget(caller))
	if err != nil {
		return err
	}
	addressID, err := strconv.ParseInt(rawAddressID, 10, 64)
	if err != nil || addressID <= 0 {
		return domain.ErrAddressNotFound
	}

	removed, err := s.addresses.DeleteOwned(ctx, addressID, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if !removed {
		return domain.ErrAddressNotFound
	}
	return nil
}

// Package usecase implements principal resolution business logic.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/glennballman/Community-Canvas-sub004/internal/database"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
)

// PrincipalUsecase implements idempotent principal resolution. It is the only
// code path that constructs principals; collaborating services never insert
// into the principals table themselves.
type PrincipalUsecase struct {
	txManager     database.TxManager
	principalRepo PrincipalRepository
	// group collapses concurrent Resolve calls for the same account ref into a
	// single create, so lazy creation stays idempotent under contention.
	group singleflight.Group
}

// NewPrincipalUsecase creates a new principal usecase.
func NewPrincipalUsecase(
	txManager database.TxManager,
	principalRepo PrincipalRepository,
) *PrincipalUsecase {
	return &PrincipalUsecase{
		txManager:     txManager,
		principalRepo: principalRepo,
	}
}

// Resolve returns the principal for an account, lazily creating it on first
// sight. Exactly one principal ever exists per account ref: concurrent callers
// are deduplicated in-process by singleflight and across processes by the
// unique constraint on account_ref, with conflict losers re-reading the winner.
//
// On failure the caller gets an error and must treat the actor as having no
// capabilities; a half-resolved principal is never returned.
func (u *PrincipalUsecase) Resolve(
	ctx context.Context,
	input principalDomain.ResolveInput,
) (*principalDomain.Principal, error) {
	accountRef := strings.TrimSpace(input.AccountRef)
	if accountRef == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "account ref must not be blank")
	}
	if !input.Kind.Valid() {
		return nil, principalDomain.ErrInvalidPrincipalKind
	}

	// Fast path: the common case is an already-resolved account.
	principal, err := u.principalRepo.GetByAccountRef(ctx, accountRef)
	if err == nil {
		return principal, nil
	}
	if !errors.Is(err, principalDomain.ErrPrincipalNotFound) {
		return nil, err
	}

	result, err, _ := u.group.Do(accountRef, func() (any, error) {
		return u.create(ctx, accountRef, input)
	})
	if err != nil {
		return nil, err
	}
	return result.(*principalDomain.Principal), nil
}

// create inserts the principal and its backing profile or device registration
// in one transaction. Profiles come first so a human principal never references
// a missing profile.
func (u *PrincipalUsecase) create(
	ctx context.Context,
	accountRef string,
	input principalDomain.ResolveInput,
) (*principalDomain.Principal, error) {
	// Re-check under the flight: another caller may have finished the insert
	// between the fast path and here.
	principal, err := u.principalRepo.GetByAccountRef(ctx, accountRef)
	if err == nil {
		return principal, nil
	}
	if !errors.Is(err, principalDomain.ErrPrincipalNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	principal = &principalDomain.Principal{
		ID:          uuid.Must(uuid.NewV7()),
		AccountRef:  accountRef,
		Kind:        input.Kind,
		DisplayName: input.DisplayName,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	txErr := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		switch input.Kind {
		case principalDomain.KindHuman:
			profile := &principalDomain.PersonProfile{
				ID:          uuid.Must(uuid.NewV7()),
				DisplayName: input.DisplayName,
				CreatedAt:   now,
			}
			if err := u.principalRepo.CreatePersonProfile(ctx, profile); err != nil {
				return err
			}
			principal.PersonProfileID = &profile.ID

		case principalDomain.KindMachine:
			registration := &principalDomain.DeviceRegistration{
				ID:        uuid.Must(uuid.NewV7()),
				DeviceRef: accountRef,
				CreatedAt: now,
			}
			if err := u.principalRepo.CreateDeviceRegistration(ctx, registration); err != nil {
				return err
			}
			principal.DeviceRegistrationID = &registration.ID
		}

		return u.principalRepo.Create(ctx, principal)
	})
	if txErr != nil {
		// Another process won the account_ref race; its principal is the one.
		if errors.Is(txErr, apperrors.ErrConflict) {
			return u.principalRepo.GetByAccountRef(ctx, accountRef)
		}
		return nil, txErr
	}

	return principal, nil
}

// Get retrieves a principal by ID.
func (u *PrincipalUsecase) Get(
	ctx context.Context,
	principalID uuid.UUID,
) (*principalDomain.Principal, error) {
	return u.principalRepo.GetByID(ctx, principalID)
}

// Deactivate marks a principal inactive. Existing grants stop mattering because
// the evaluator denies inactive principals outright; the record itself stays so
// audit history keeps resolving.
func (u *PrincipalUsecase) Deactivate(ctx context.Context, principalID uuid.UUID) error {
	return u.principalRepo.Deactivate(ctx, principalID)
}

package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/cistech/market/internal/domain"
)

var phoneRe = regexp.MustCompile(`^\+[0-9]{7,15}$`)

func normalizePhone(phone string) (string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if !phoneRe.MatchString(p) {
		return "", domain.Validationf("phone must be in E.164 format")
	}
	return p, nil
}

type AuthUC struct {
	Users domain.UserRepo
	SMS   domain.SMSVerifier
}

// RequestVerification asks the SMS provider to start a verification session for
// the phone. The provider owns code generation and delivery; we return only the
// session handle it gave us.
func (uc *AuthUC) RequestVerification(ctx context.Context, phone string) (string, error) {
	if uc.SMS == nil {
		return "", errors.New("sms provider not configured")
	}
	p, err := normalizePhone(phone)
	if err != nil {
		return "", err
	}
	return uc.SMS.StartVerification(ctx, p)
}

// VerifyPhone submits the user-entered code to the provider. On the first
// successful verification for a token subject a User row is provisioned.
func (uc *AuthUC) VerifyPhone(ctx context.Context, subject, phone, code string) (*domain.User, bool, error) {
	if uc.SMS == nil {
		return nil, false, errors.New("sms provider not configured")
	}
	p, err := normalizePhone(phone)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, false, domain.Validationf("verification code is required")
	}
	ok, err := uc.SMS.CheckVerification(ctx, p, strings.TrimSpace(code))
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, domain.Validationf("invalid verification code")
	}

	u, err := uc.Users.FindByExternalUID(ctx, subject)
	switch {
	case err == nil:
		return u, false, nil
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, false, err
	}

	if _, err := uc.Users.FindByPhone(ctx, p); err == nil {
		return nil, false, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	u = &domain.User{ExternalUID: subject, Phone: p, UserType: domain.UserTypeUser}
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

type ProfileUpdate struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (uc *AuthUC) CompleteProfile(ctx context.Context, userID uint, in ProfileUpdate) (*domain.User, error) {
	u, err := uc.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
	u.Email = strings.TrimSpace(in.Email)
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *AuthUC) CheckUser(ctx context.Context, phone string) (bool, error) {
	p, err := normalizePhone(phone)
	if err != nil {
		return false, err
	}
	_, err = uc.Users.FindByPhone(ctx, p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (uc *AuthUC) UserByExternalUID(ctx context.Context, uid string) (*domain.User, error) {
	return uc.Users.FindByExternalUID(ctx, uid)
}

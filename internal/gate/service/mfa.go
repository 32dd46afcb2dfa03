package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/notify"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/pkg/cryptox"
	"github.com/aussiebroadwan/talentgate/pkg/idx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const defaultChallengeTTL = 5 * time.Minute

var (
	ErrInvalidTOTPCode     = errors.New("invalid TOTP code")
	ErrMFANotEnabled       = errors.New("MFA not enabled for this user")
	ErrMFAAlreadyEnabled   = errors.New("MFA already enabled for this user")
	ErrNoPendingEnrollment = errors.New("no pending MFA enrollment")
	ErrChallengeNotFound   = errors.New("MFA challenge not found")
	ErrChallengeExpired    = errors.New("MFA challenge expired")
	ErrTooManyAttempts     = errors.New("too many failed MFA attempts")
	ErrMFALocked           = errors.New("MFA temporarily locked after repeated failures")
)

// MFAService drives the TOTP state machine:
// disabled -> pending_verification -> enabled, plus step-up challenges.
type MFAService struct {
	Store        store.Store
	Sealer       *cryptox.Sealer
	Issuer       string // shown in authenticator apps
	ChallengeTTL time.Duration
	Notifier     notify.Sender

	now func() time.Time
}

func (s *MFAService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *MFAService) challengeTTL() time.Duration {
	if s.ChallengeTTL <= 0 {
		return defaultChallengeTTL
	}
	return s.ChallengeTTL
}

// State reports enrolment and the assurance pair for sess.
func (s *MFAService) State(ctx context.Context, sess domain.Session) (domain.MFAState, error) {
	factors, err := s.Store.Factors().ListFactors(ctx, sess.UserID)
	if err != nil {
		return domain.MFAState{}, fmt.Errorf("failed to list factors: %w", err)
	}
	return domain.MFAState{
		Enrolled:  domain.Enrolled(factors),
		Assurance: domain.AssuranceOf(sess, factors),
	}, nil
}

// EnrollTOTP starts an enrolment: a fresh secret stored as an unverified
// factor. Any earlier pending enrolment is replaced.
func (s *MFAService) EnrollTOTP(ctx context.Context, u domain.User) (domain.MFAEnrollment, error) {
	factors, err := s.Store.Factors().ListFactors(ctx, u.ID)
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to list factors: %w", err)
	}
	if domain.Enrolled(factors) {
		return domain.MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: u.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	sealed, err := s.Sealer.Seal(key.Secret())
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to seal TOTP secret: %w", err)
	}

	f := domain.Factor{
		ID:           idx.New().String(),
		UserID:       u.ID,
		Type:         domain.FactorTypeTOTP,
		Secret:       sealed,
		Status:       domain.FactorUnverified,
		FriendlyName: "Authenticator app",
		CreatedAt:    s.clock(),
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Factors().DeleteUnverifiedFactors(ctx, u.ID); err != nil {
			return err
		}
		return tx.Factors().CreateFactor(ctx, f)
	})
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to store factor: %w", err)
	}

	return domain.MFAEnrollment{
		FactorID: f.ID,
		Secret:   key.Secret(),
		QRCode:   key.URL(),
		Issuer:   s.Issuer,
		Account:  u.Email,
	}, nil
}

// VerifyEnrollment confirms the pending factor with code and raises sess to
// aal2, since the user just proved possession.
func (s *MFAService) VerifyEnrollment(ctx context.Context, u domain.User, sess domain.Session, code string) error {
	factors, err := s.Store.Factors().ListFactors(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("failed to list factors: %w", err)
	}
	if domain.Enrolled(factors) {
		return ErrMFAAlreadyEnabled
	}
	pending, ok := latest(factors, domain.FactorUnverified)
	if !ok {
		return ErrNoPendingEnrollment
	}

	if err := s.validate(pending, code); err != nil {
		return err
	}

	up := sess.Elevate()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Factors().MarkFactorVerified(ctx, pending.ID, s.clock()); err != nil {
			return err
		}
		return tx.Sessions().ElevateSession(ctx, sess.ID, up.AAL, up.AMR)
	})
	if err != nil {
		return fmt.Errorf("failed to enable MFA: %w", err)
	}

	notifyBestEffort(ctx, s.Notifier, notify.MFAEnabled(u.Email, u.FullName))
	return nil
}

// CancelEnrollment drops the pending factor.
func (s *MFAService) CancelEnrollment(ctx context.Context, userID string) error {
	n, err := s.Store.Factors().DeleteUnverifiedFactors(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel enrollment: %w", err)
	}
	if n == 0 {
		return ErrNoPendingEnrollment
	}
	return nil
}

// Unenroll removes the verified factor after checking a current code.
func (s *MFAService) Unenroll(ctx context.Context, u domain.User, code string) error {
	factors, err := s.Store.Factors().ListFactors(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("failed to list factors: %w", err)
	}
	f, ok := latest(factors, domain.FactorVerified)
	if !ok {
		return ErrMFANotEnabled
	}

	if err := s.checkCode(ctx, u.ID, f, code); err != nil {
		return err
	}
	if err := s.Store.Factors().DeleteFactor(ctx, f.ID); err != nil {
		return fmt.Errorf("failed to remove factor: %w", err)
	}

	notifyBestEffort(ctx, s.Notifier, notify.MFARemoved(u.Email, u.FullName))
	return nil
}

// IssueChallenge opens a step-up challenge for sess against the user's
// verified factor, replacing any earlier challenge on the same session.
func (s *MFAService) IssueChallenge(ctx context.Context, sess domain.Session) (domain.Challenge, error) {
	factors, err := s.Store.Factors().ListFactors(ctx, sess.UserID)
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("failed to list factors: %w", err)
	}
	f, ok := latest(factors, domain.FactorVerified)
	if !ok {
		return domain.Challenge{}, ErrMFANotEnabled
	}

	now := s.clock()
	c := domain.Challenge{
		ID:        idx.New().String(),
		FactorID:  f.ID,
		UserID:    sess.UserID,
		SessionID: sess.ID,
		ExpiresAt: now.Add(s.challengeTTL()),
		CreatedAt: now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Challenges().DeleteSessionChallenges(ctx, sess.ID); err != nil {
			return err
		}
		return tx.Challenges().CreateChallenge(ctx, c)
	})
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("failed to create challenge: %w", err)
	}
	return c, nil
}

// VerifyChallenge satisfies challengeID with code and raises sess to aal2.
// A challenge is consumed on success, expiry, or the last allowed failure.
func (s *MFAService) VerifyChallenge(ctx context.Context, sess domain.Session, challengeID, code string) error {
	c, err := s.Store.Challenges().GetChallenge(ctx, challengeID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrChallengeNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load challenge: %w", err)
	}
	// A challenge only ever belongs to the session that asked for it.
	if c.SessionID != sess.ID || c.UserID != sess.UserID {
		return ErrChallengeNotFound
	}

	if !s.clock().Before(c.ExpiresAt) {
		_ = s.Store.Challenges().DeleteChallenge(ctx, c.ID)
		return ErrChallengeExpired
	}
	if c.Attempts >= domain.MaxChallengeAttempts {
		_ = s.Store.Challenges().DeleteChallenge(ctx, c.ID)
		return ErrTooManyAttempts
	}

	f, err := s.Store.Factors().GetFactor(ctx, c.FactorID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrMFANotEnabled
	}
	if err != nil {
		return fmt.Errorf("failed to load factor: %w", err)
	}

	if err := s.checkCode(ctx, sess.UserID, f, code); err != nil {
		if !errors.Is(err, ErrInvalidTOTPCode) {
			return err
		}
		updated, incErr := s.Store.Challenges().IncrementChallengeAttempts(ctx, c.ID)
		if incErr != nil {
			return fmt.Errorf("failed to record attempt: %w", incErr)
		}
		if updated.Attempts >= domain.MaxChallengeAttempts {
			_ = s.Store.Challenges().DeleteChallenge(ctx, c.ID)
			return ErrTooManyAttempts
		}
		return ErrInvalidTOTPCode
	}

	up := sess.Elevate()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Challenges().DeleteChallenge(ctx, c.ID); err != nil {
			return err
		}
		return tx.Sessions().ElevateSession(ctx, sess.ID, up.AAL, up.AMR)
	})
	if err != nil {
		return fmt.Errorf("failed to elevate session: %w", err)
	}
	return nil
}

// checkCode validates code against an enrolled factor, counting failures per
// user across every session and challenge. A locked user is refused before
// the code is looked at.
func (s *MFAService) checkCode(ctx context.Context, userID string, f domain.Factor, code string) error {
	now := s.clock()
	fails, err := s.Store.Factors().GetMFAFailures(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load MFA failures: %w", err)
	}
	if fails.Locked(now) {
		return ErrMFALocked
	}

	err = s.validate(f, code)
	switch {
	case err == nil:
		if fails.Count > 0 {
			if err := s.Store.Factors().ResetMFAFailures(ctx, userID); err != nil {
				return fmt.Errorf("failed to reset MFA failures: %w", err)
			}
		}
		return nil
	case errors.Is(err, ErrInvalidTOTPCode):
		updated, recErr := s.Store.Factors().RecordMFAFailure(ctx, userID, now, now.Add(-domain.MFALockoutWindow))
		if recErr != nil {
			return fmt.Errorf("failed to record MFA failure: %w", recErr)
		}
		if updated.Locked(now) {
			slogx.FromContext(ctx).Warn("MFA locked after repeated failures",
				slog.String("user_id", userID),
				slog.Int("failures", updated.Count),
			)
			return ErrMFALocked
		}
		return ErrInvalidTOTPCode
	default:
		return err
	}
}

func (s *MFAService) validate(f domain.Factor, code string) error {
	secret, err := s.Sealer.Open(f.Secret)
	if err != nil {
		return fmt.Errorf("failed to unseal factor: %w", err)
	}
	ok, err := totp.ValidateCustom(code, secret, s.clock().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil || !ok {
		return ErrInvalidTOTPCode
	}
	return nil
}

// latest returns the newest factor with status.
func latest(fs []domain.Factor, status domain.FactorStatus) (domain.Factor, bool) {
	for i := len(fs) - 1; i >= 0; i-- {
		if fs[i].Status == status {
			return fs[i], true
		}
	}
	return domain.Factor{}, false
}

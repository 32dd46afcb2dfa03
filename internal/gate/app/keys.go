package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/talentgate/pkg/cryptox"
	"github.com/aussiebroadwan/talentgate/pkg/jwtx"
)

// InitSigner loads the Ed25519 session signing key from cfg.Gate.SigningKeyFile,
// generating and persisting one on first start. Sessions survive restarts as
// long as the file does.
func InitSigner(cfg Config, logger *slog.Logger) (*jwtx.Signer, error) {
	pemKey, err := loadOrGenerateKey(cfg.Gate.SigningKeyFile, logger)
	if err != nil {
		return nil, err
	}

	key, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	signer, err := jwtx.NewSigner(key, cfg.Gate.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signer: %w", err)
	}
	logger.Info("session signing key loaded", "issuer", cfg.Gate.Issuer, "path", cfg.Gate.SigningKeyFile)
	return signer, nil
}

// InitSealer builds the at-rest sealer for TOTP seeds from GATE_SECRET_KEY,
// or from the password pepper when no dedicated key is configured.
func InitSealer(cfg Config, logger *slog.Logger) (*cryptox.Sealer, error) {
	material := cfg.Gate.SecretKey
	if material == "" {
		p, err := cryptox.Pepper()
		if err != nil {
			return nil, fmt.Errorf("failed to load pepper: %w", err)
		}
		material = p
		logger.Warn("GATE_SECRET_KEY not set, sealing MFA secrets with the pepper")
	}
	return cryptox.NewSealer([]byte(material))
}

func loadOrGenerateKey(file string, logger *slog.Logger) ([]byte, error) {
	file = filepath.Clean(file)

	data, err := os.ReadFile(file)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return nil, err
	}
	data, err = cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(file, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist signing key: %w", err)
	}

	logger.Warn("generated new session signing key, existing sessions are invalid", "path", file)
	return data, nil
}

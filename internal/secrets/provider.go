package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Source names where secret material is read from.
type Source string

const (
	// SourceEnvironment reads secrets from process environment variables.
	SourceEnvironment Source = "environment"
	// SourceVault reads secrets from Azure Key Vault.
	SourceVault Source = "vault"
	// SourceAuto picks environment for development and vault otherwise.
	SourceAuto Source = "auto"
)

// Provider resolves named secrets (DB password, JWT signing key) without the
// caller knowing whether they live in the environment or in Key Vault.
type Provider struct {
	source      Source
	vaultClient *VaultClient
	logger      *zap.Logger
	environment string
}

// ProviderConfig configures secret resolution.
type ProviderConfig struct {
	Source       Source
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewProvider builds a Provider, resolving the "auto" source from the
// deployment environment and dialing Key Vault when needed.
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := cfg.Source
	if source == SourceAuto {
		switch cfg.Environment {
		case "development", "local", "":
			source = SourceEnvironment
		default:
			source = SourceVault
		}
		logger.Info("resolved secret source",
			zap.String("source", string(source)),
			zap.String("environment", cfg.Environment),
		)
	}

	p := &Provider{
		source:      source,
		logger:      logger,
		environment: cfg.Environment,
	}

	if source == SourceVault {
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}
		vc, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("init vault client: %w", err)
		}
		p.vaultClient = vc
	}

	return p, nil
}

// GetSecret fetches a secret by name. The name is the Key Vault secret name
// in vault mode and the environment variable name otherwise.
func (p *Provider) GetSecret(ctx context.Context, name string) (string, error) {
	switch p.source {
	case SourceEnvironment:
		value := os.Getenv(name)
		if value == "" {
			return "", fmt.Errorf("environment variable %q not set", name)
		}
		return value, nil
	case SourceVault:
		if p.vaultClient == nil {
			return "", fmt.Errorf("vault client not initialized")
		}
		return p.vaultClient.GetSecret(ctx, name)
	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetSecretOrEnv fetches from the configured source unless the given
// environment variable is set, which always wins. This lets an operator
// override a vault-held value without a vault change.
func (p *Provider) GetSecretOrEnv(ctx context.Context, name, envName string) (string, error) {
	if envValue := os.Getenv(envName); envValue != "" {
		p.logger.Debug("secret overridden from environment", zap.String("env_name", envName))
		return envValue, nil
	}
	return p.GetSecret(ctx, name)
}

// IsVaultEnabled reports whether vault-backed resolution is active.
func (p *Provider) IsVaultEnabled() bool {
	return p.source == SourceVault
}

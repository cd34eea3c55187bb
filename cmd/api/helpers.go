package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"problem-solver/internal/config"
	"problem-solver/internal/vault"
)

func getContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// loadSecrets overrides secret config values with those stored in Vault
func loadSecrets(cfg *config.Config) error {
	if !cfg.Vault.Enabled {
		return nil
	}

	client, err := vault.NewClient(cfg.Vault)
	if err != nil {
		return err
	}

	ctx, cancel := getContext(10 * time.Second)
	defer cancel()

	secrets, err := client.ReadSecrets(ctx)
	if errors.Is(err, vault.ErrSecretNotFound) {
		slog.Warn("No secrets stored in Vault, using environment values", "path", cfg.Vault.SecretPath)
		return nil
	}
	if err != nil {
		return err
	}

	cfg.ApplySecrets(secrets)
	slog.Info("Secrets loaded from Vault", "vault_addr", cfg.Vault.Address, "keys", len(secrets))
	return nil
}

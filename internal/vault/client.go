// Package vault reads runtime secrets from a HashiCorp Vault KV v2 engine.
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/vault/api"

	"problem-solver/internal/config"
)

// ErrSecretNotFound is returned when the secret path holds no data
var ErrSecretNotFound = errors.New("secret not found")

// Client wraps HashiCorp Vault API
type Client struct {
	client     *api.Client
	kvMount    string
	secretPath string
}

// NewClient creates a new Vault client
func NewClient(cfg config.VaultConfig) (*Client, error) {
	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	client.SetToken(cfg.Token)

	mount := cfg.KVMount
	if mount == "" {
		mount = "secret"
	}

	return &Client{
		client:     client,
		kvMount:    mount,
		secretPath: cfg.SecretPath,
	}, nil
}

// HealthCheck checks if Vault is accessible and unsealed
func (c *Client) HealthCheck(ctx context.Context) error {
	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}

	if health.Sealed {
		return fmt.Errorf("vault is sealed")
	}

	return nil
}

// ReadSecrets returns the string values stored at the configured path
func (c *Client) ReadSecrets(ctx context.Context) (map[string]string, error) {
	secret, err := c.client.KVv2(c.kvMount).Get(ctx, c.secretPath)
	if errors.Is(err, api.ErrSecretNotFound) {
		return nil, ErrSecretNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read secret %s/%s: %w", c.kvMount, c.secretPath, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, ErrSecretNotFound
	}

	values := make(map[string]string, len(secret.Data))
	for k, v := range secret.Data {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("secret key %s is not a string", k)
		}
		values[k] = s
	}
	return values, nil
}

// WriteSecrets stores values at the configured path, replacing the current version
func (c *Client) WriteSecrets(ctx context.Context, values map[string]string) error {
	data := make(map[string]interface{}, len(values))
	for k, v := range values {
		data[k] = v
	}

	if _, err := c.client.KVv2(c.kvMount).Put(ctx, c.secretPath, data); err != nil {
		return fmt.Errorf("failed to write secret %s/%s: %w", c.kvMount, c.secretPath, err)
	}
	return nil
}

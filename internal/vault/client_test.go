package vault

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcvault "github.com/testcontainers/testcontainers-go/modules/vault"

	"problem-solver/internal/config"
)

var testMetadata = map[string]any{
	"version":       3,
	"created_time":  "2026-01-01T00:00:00Z",
	"deletion_time": "",
	"destroyed":     false,
}

func kvServer(t *testing.T, status int, payload any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/secret/data/problem-solver", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Vault-Token"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if payload != nil {
			_ = json.NewEncoder(w).Encode(payload)
		}
	}))
}

func newTestClient(t *testing.T, address string) *Client {
	t.Helper()
	client, err := NewClient(config.VaultConfig{
		Address:    address,
		Token:      "test-token",
		KVMount:    "secret",
		SecretPath: "problem-solver",
	})
	require.NoError(t, err)
	return client
}

func TestReadSecrets(t *testing.T) {
	server := kvServer(t, http.StatusOK, map[string]any{
		"data": map[string]any{
			"data": map[string]any{
				"LLM_API_KEY":   "sk-live",
				"SMTP_PASSWORD": "mail-pass",
			},
			"metadata": testMetadata,
		},
	})
	defer server.Close()

	secrets, err := newTestClient(t, server.URL).ReadSecrets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"LLM_API_KEY": "sk-live", "SMTP_PASSWORD": "mail-pass"}, secrets)
}

func TestReadSecretsNotFound(t *testing.T) {
	server := kvServer(t, http.StatusNotFound, map[string]any{"errors": []string{}})
	defer server.Close()

	_, err := newTestClient(t, server.URL).ReadSecrets(context.Background())
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestReadSecretsNonString(t *testing.T) {
	server := kvServer(t, http.StatusOK, map[string]any{
		"data": map[string]any{"data": map[string]any{"DB_PASSWORD": 42}, "metadata": testMetadata},
	})
	defer server.Close()

	_, err := newTestClient(t, server.URL).ReadSecrets(context.Background())
	assert.Error(t, err)
}

func TestVaultContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcvault.Run(ctx, "hashicorp/vault:1.15", tcvault.WithToken("test-token"))
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate vault container: %v", err)
		}
	}()

	address, err := container.HttpHostAddress(ctx)
	require.NoError(t, err)

	client := newTestClient(t, address)
	require.NoError(t, client.HealthCheck(ctx))

	require.NoError(t, client.WriteSecrets(ctx, map[string]string{"ADMIN_PASSWORD_HASH": "$2a$10$abc"}))

	secrets, err := client.ReadSecrets(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$abc", secrets["ADMIN_PASSWORD_HASH"])
}

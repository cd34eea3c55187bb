package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"problem-solver/internal/config"
	"problem-solver/internal/vault"
)

// keygen prints the secrets an installation needs: the JWT signing key and the
// bcrypt hash of the admin password. With -vault they are stored in Vault instead.
func main() {
	password := flag.String("admin-password", "", "admin password to hash for ADMIN_PASSWORD_HASH")
	keyFile := flag.String("key-file", "jwt-private-key.pem", "where to write the signing key, empty to skip")
	toVault := flag.Bool("vault", false, "store ADMIN_PASSWORD_HASH in Vault (VAULT_ADDR, VAULT_TOKEN)")
	flag.Parse()

	// Generate ECDSA P-256 key pair
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		fail("Failed to generate key: %v", err)
	}

	privateKeyBytes, err := x509.MarshalECPrivateKey(privateKey)
	if err != nil {
		fail("Failed to marshal private key: %v", err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: privateKeyBytes,
	})

	fmt.Println("Generated ECDSA P-256 key pair for admin session tokens.")
	fmt.Println("\nAdd this to your .env file as JWT_SECRET:")
	fmt.Println("----------------------------------------")
	fmt.Printf("JWT_SECRET=\"%s\"\n", strings.ReplaceAll(string(privateKeyPEM), "\n", "\\n"))

	if *keyFile != "" {
		if err := os.WriteFile(*keyFile, privateKeyPEM, 0600); err != nil {
			fail("Failed to write private key file: %v", err)
		}
		fmt.Printf("\nPrivate key saved to: %s\n", *keyFile)
	}

	if *password == "" {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fail("Failed to hash password: %v", err)
	}

	if !*toVault {
		fmt.Println("\nAdmin password hash:")
		fmt.Println("----------------------------------------")
		fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hash)
		return
	}

	vaultCfg := config.VaultConfig{
		Address:    envOr("VAULT_ADDR", "http://localhost:8200"),
		Token:      os.Getenv("VAULT_TOKEN"),
		KVMount:    envOr("VAULT_KV_MOUNT", "secret"),
		SecretPath: envOr("VAULT_SECRET_PATH", "problem-solver"),
		Enabled:    true,
	}
	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		fail("Failed to create Vault client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Writing replaces the whole secret, so keep the keys already stored
	secrets, err := client.ReadSecrets(ctx)
	if errors.Is(err, vault.ErrSecretNotFound) {
		secrets = map[string]string{}
	} else if err != nil {
		fail("Failed to read secrets from Vault: %v", err)
	}
	secrets["ADMIN_PASSWORD_HASH"] = string(hash)

	if err := client.WriteSecrets(ctx, secrets); err != nil {
		fail("Failed to write secrets to Vault: %v", err)
	}
	fmt.Printf("\nADMIN_PASSWORD_HASH stored in Vault at %s/%s\n", vaultCfg.KVMount, vaultCfg.SecretPath)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package ports

import "context"

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value    string            // The secret value (e.g., the Paybox CLE key)
	Version  string            // Secret version identifier
	Metadata map[string]string // Additional secret metadata
}

// SecretManager defines the port for retrieving merchant key material
// from a secret management service. Implementations are responsible for
// authentication with the backend and for caching with a sensible TTL.
// Path format depends on the backend:
//   - AWS: "paybox/sites/{site}/cle"
//   - Vault: "secret/data/paybox/sites/{site}"
//   - Local: environment variable name
type SecretManager interface {
	// GetSecret retrieves a secret by its path/name.
	// Returns an error if the secret does not exist, permissions are
	// insufficient, or the backend is unreachable.
	GetSecret(ctx context.Context, path string) (*Secret, error)
}

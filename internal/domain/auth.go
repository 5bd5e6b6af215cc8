// Package domain contains pure business types without external dependencies.
package domain

import (
	"fmt"
	"strings"
)

// AuthMethod names the credential source used to talk to the registry.
type AuthMethod string

const (
	// AuthMethodEnvironment reads AZURE_TENANT_ID, AZURE_CLIENT_ID and a
	// secret, certificate or username/password from the environment.
	AuthMethodEnvironment AuthMethod = "EnvironmentCredential"
	// AuthMethodDefault walks the azidentity default credential chain.
	AuthMethodDefault AuthMethod = "DefaultAzureCredential"
	// AuthMethodAzureCLI reuses the token of a logged-in `az` session.
	AuthMethodAzureCLI AuthMethod = "AzureCLICredential"
	// AuthMethodManagedIdentity uses the managed identity of the host.
	AuthMethodManagedIdentity AuthMethod = "ManagedIdentityCredential"
)

// AuthMethods lists the supported authentication methods in display order.
var AuthMethods = []AuthMethod{
	AuthMethodEnvironment,
	AuthMethodDefault,
	AuthMethodAzureCLI,
	AuthMethodManagedIdentity,
}

// ParseAuthMethod resolves a method name case-insensitively.
func ParseAuthMethod(name string) (AuthMethod, error) {
	trimmed := strings.TrimSpace(name)
	for _, m := range AuthMethods {
		if strings.EqualFold(trimmed, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAuthMethod, name)
}

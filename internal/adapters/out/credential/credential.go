// Package credential builds Azure token credentials from an auth method name.
package credential

import (
	"fmt"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/bnema/azops/internal/domain"
	"github.com/bnema/azops/pkg/logger"
)

var clouds = map[string]cloud.Configuration{
	"azurepublic":     cloud.AzurePublic,
	"azurechina":      cloud.AzureChina,
	"azuregovernment": cloud.AzureGovernment,
}

// Cloud resolves a cloud name (AzurePublic, AzureChina, AzureGovernment).
// An empty name means AzurePublic.
func Cloud(name string) (cloud.Configuration, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return cloud.AzurePublic, nil
	}
	cfg, ok := clouds[key]
	if !ok {
		return cloud.Configuration{}, fmt.Errorf("%w: unknown cloud %q (expected AzurePublic, AzureChina or AzureGovernment)", domain.ErrInvalidConfig, name)
	}
	return cfg, nil
}

// New creates the credential for method against cloudCfg.
func New(method string, cloudCfg cloud.Configuration, log *logger.Logger) (azcore.TokenCredential, error) {
	authMethod, err := domain.ParseAuthMethod(method)
	if err != nil {
		return nil, err
	}

	log.Debug("Initializing credential", "auth_method", string(authMethod))
	clientOpts := azcore.ClientOptions{Cloud: cloudCfg}

	var cred azcore.TokenCredential
	switch authMethod {
	case domain.AuthMethodEnvironment:
		cred, err = azidentity.NewEnvironmentCredential(&azidentity.EnvironmentCredentialOptions{
			ClientOptions: clientOpts,
		})
	case domain.AuthMethodDefault:
		cred, err = azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
			ClientOptions: clientOpts,
		})
	case domain.AuthMethodAzureCLI:
		cred, err = azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
			TenantID: os.Getenv("AZURE_TENANT_ID"),
		})
	case domain.AuthMethodManagedIdentity:
		opts := &azidentity.ManagedIdentityCredentialOptions{ClientOptions: clientOpts}
		if clientID := os.Getenv("AZURE_CLIENT_ID"); clientID != "" {
			opts.ID = azidentity.ClientID(clientID)
		}
		cred, err = azidentity.NewManagedIdentityCredential(opts)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedAuthMethod, authMethod)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrAuthentication, authMethod, err)
	}

	log.Debug("Credential initialized", "auth_method", string(authMethod))
	return cred, nil
}

package credential

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/azops/internal/domain"
	"github.com/bnema/azops/pkg/logger"
)

func TestCloud(t *testing.T) {
	tests := []struct {
		name string
		want cloud.Configuration
	}{
		{name: "", want: cloud.AzurePublic},
		{name: "AzurePublic", want: cloud.AzurePublic},
		{name: "azurechina", want: cloud.AzureChina},
		{name: " AzureGovernment ", want: cloud.AzureGovernment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cloud(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want.ActiveDirectoryAuthorityHost, got.ActiveDirectoryAuthorityHost)
		})
	}
}

func TestCloud_Unknown(t *testing.T) {
	_, err := Cloud("AzureStack")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNew_EnvironmentCredential(t *testing.T) {
	t.Setenv("AZURE_TENANT_ID", "00000000-0000-0000-0000-000000000000")
	t.Setenv("AZURE_CLIENT_ID", "11111111-1111-1111-1111-111111111111")
	t.Setenv("AZURE_CLIENT_SECRET", "secret")

	cred, err := New("EnvironmentCredential", cloud.AzurePublic, logger.Discard())

	require.NoError(t, err)
	assert.NotNil(t, cred)
}

func TestNew_EnvironmentCredential_MissingVariables(t *testing.T) {
	t.Setenv("AZURE_TENANT_ID", "")
	t.Setenv("AZURE_CLIENT_ID", "")
	t.Setenv("AZURE_CLIENT_SECRET", "")

	cred, err := New("EnvironmentCredential", cloud.AzurePublic, logger.Discard())

	require.Error(t, err)
	assert.Nil(t, cred)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestNew_AzureCLICredential(t *testing.T) {
	cred, err := New("azureclicredential", cloud.AzurePublic, logger.Discard())

	require.NoError(t, err)
	assert.NotNil(t, cred)
}

func TestNew_ManagedIdentityCredential(t *testing.T) {
	t.Setenv("AZURE_CLIENT_ID", "11111111-1111-1111-1111-111111111111")

	cred, err := New("ManagedIdentityCredential", cloud.AzurePublic, logger.Discard())

	require.NoError(t, err)
	assert.NotNil(t, cred)
}

func TestNew_UnsupportedMethod(t *testing.T) {
	cred, err := New("ClientCertificateCredential", cloud.AzurePublic, logger.Discard())

	require.Error(t, err)
	assert.Nil(t, cred)
	assert.ErrorIs(t, err, domain.ErrUnsupportedAuthMethod)
}

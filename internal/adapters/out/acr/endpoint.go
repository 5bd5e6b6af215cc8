package acr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/azops/internal/domain"
)

// NormalizeEndpoint turns "myregistry.azurecr.io" or
// "https://myregistry.azurecr.io/" into "https://myregistry.azurecr.io".
func NormalizeEndpoint(endpoint string) (string, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return "", fmt.Errorf("%w: endpoint is required", domain.ErrInvalidEndpoint)
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidEndpoint, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %q must include a host name", domain.ErrInvalidEndpoint, endpoint)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return "", fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidEndpoint, parsed.Scheme)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	parsed.RawQuery = ""
	parsed.Fragment = ""

	return parsed.String(), nil
}

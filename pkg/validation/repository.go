// Package validation checks user-supplied registry names before they reach the registry.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Repository name validation follows the OCI distribution naming rules:
// - Lowercase letters, digits, and separators (., _, __, -)
// - Separators must not start or end a path component
// - Allows nested paths like "myorg/myapp"
var repoNameRegex = regexp.MustCompile(`^[a-z0-9]+(?:(?:[._]|__|-+)[a-z0-9]+)*(?:/[a-z0-9]+(?:(?:[._]|__|-+)[a-z0-9]+)*)*$`)

// registryHostSuffixes are the login server domains of the public and
// sovereign Azure clouds.
var registryHostSuffixes = []string{".azurecr.io", ".azurecr.cn", ".azurecr.us"}

// MaxRepositoryNameLength is the maximum allowed length for repository names.
const MaxRepositoryNameLength = 256

// ValidateRepositoryName validates a repository name such as "myorg/myapp".
// A name carrying a registry host or a tag is rejected with a hint.
func ValidateRepositoryName(name string) error {
	if name == "" {
		return fmt.Errorf("repository name cannot be empty")
	}

	if len(name) > MaxRepositoryNameLength {
		return fmt.Errorf("repository name too long: %d chars (max %d)", len(name), MaxRepositoryNameLength)
	}

	if first, _, found := strings.Cut(name, "/"); found && isRegistryHost(first) {
		return fmt.Errorf("repository name %q includes a registry host, pass only the repository path", name)
	}

	if strings.ContainsAny(name, ":@") {
		return fmt.Errorf("repository name %q includes a tag or digest", name)
	}

	if !repoNameRegex.MatchString(name) {
		return fmt.Errorf("invalid repository name %q: must contain only lowercase letters, digits, and separators (., _, -)", name)
	}

	return nil
}

// isRegistryHost reports whether a leading path component looks like a pasted
// login server. Periods alone are valid in repository names.
func isRegistryHost(component string) bool {
	if strings.Contains(component, ":") {
		return true
	}
	for _, suffix := range registryHostSuffixes {
		if strings.HasSuffix(component, suffix) {
			return true
		}
	}
	return false
}

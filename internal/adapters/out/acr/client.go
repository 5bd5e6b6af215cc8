// Package acr implements the registry client adapter for Azure Container Registry.
package acr

import (
	"context"
	_ "crypto/sha256" // registers sha256 for go-digest validation
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/containers/azcontainerregistry"
	"github.com/opencontainers/go-digest"

	"github.com/bnema/azops/internal/boundaries/out"
	"github.com/bnema/azops/internal/domain"
	"github.com/bnema/azops/pkg/logger"
)

// Ensure Client implements out.RegistryClient.
var _ out.RegistryClient = (*Client)(nil)

// registryAPI is the subset of *azcontainerregistry.Client used by the adapter.
type registryAPI interface {
	NewListTagsPager(name string, options *azcontainerregistry.ClientListTagsOptions) *runtime.Pager[azcontainerregistry.ClientListTagsResponse]
	NewListManifestsPager(name string, options *azcontainerregistry.ClientListManifestsOptions) *runtime.Pager[azcontainerregistry.ClientListManifestsResponse]
	GetTagProperties(ctx context.Context, name string, tag string, options *azcontainerregistry.ClientGetTagPropertiesOptions) (azcontainerregistry.ClientGetTagPropertiesResponse, error)
	GetManifestProperties(ctx context.Context, name string, digest string, options *azcontainerregistry.ClientGetManifestPropertiesOptions) (azcontainerregistry.ClientGetManifestPropertiesResponse, error)
	DeleteTag(ctx context.Context, name string, tag string, options *azcontainerregistry.ClientDeleteTagOptions) (azcontainerregistry.ClientDeleteTagResponse, error)
	DeleteManifest(ctx context.Context, name string, digest string, options *azcontainerregistry.ClientDeleteManifestOptions) (azcontainerregistry.ClientDeleteManifestResponse, error)
}

// Client wraps one azcontainerregistry client bound to one endpoint and credential.
type Client struct {
	api      registryAPI
	endpoint string
	log      *logger.Logger
}

// Options configures the underlying SDK client.
type Options struct {
	Cloud cloud.Configuration
}

// NewClient creates a registry client for endpoint using cred.
func NewClient(endpoint string, cred azcore.TokenCredential, opts Options, log *logger.Logger) (*Client, error) {
	normalized, err := NormalizeEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	log.Debug("Initializing ContainerRegistryClient", "endpoint", normalized)
	api, err := azcontainerregistry.NewClient(normalized, cred, &azcontainerregistry.ClientOptions{
		ClientOptions: azcore.ClientOptions{Cloud: opts.Cloud},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry client for %s: %w", normalized, err)
	}
	log.Debug("ContainerRegistryClient initialized", "endpoint", normalized)

	return newClient(api, normalized, log), nil
}

func newClient(api registryAPI, endpoint string, log *logger.Logger) *Client {
	return &Client{
		api:      api,
		endpoint: endpoint,
		log:      log.With("adapter", "acr"),
	}
}

// Endpoint returns the normalized registry URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ListTags returns all tags of repository. Failures yield an empty slice.
func (c *Client) ListTags(ctx context.Context, repository string) []domain.TagProperties {
	c.log.Info("Listing tag properties for repository", "repository", repository)

	tags := []domain.TagProperties{}
	pager := c.api.NewListTagsPager(repository, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			c.logLookupError(err, "Failed to list tag properties", "repository", repository)
			return []domain.TagProperties{}
		}
		for _, attrs := range page.Tags {
			if attrs == nil {
				continue
			}
			tags = append(tags, tagFromAttributes(repository, attrs))
		}
	}

	c.log.Info("Found tags", "count", len(tags), "repository", repository)
	return tags
}

// ListManifests returns all manifests of repository. Failures yield an empty slice.
func (c *Client) ListManifests(ctx context.Context, repository string) []domain.ManifestProperties {
	c.log.Info("Listing manifest properties for repository", "repository", repository)

	manifests := []domain.ManifestProperties{}
	pager := c.api.NewListManifestsPager(repository, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			c.logLookupError(err, "Failed to list manifest properties", "repository", repository)
			return []domain.ManifestProperties{}
		}
		for _, attrs := range page.Attributes {
			if attrs == nil {
				continue
			}
			manifests = append(manifests, manifestFromAttributes(repository, attrs))
		}
	}

	c.log.Info("Found manifests", "count", len(manifests), "repository", repository)
	return manifests
}

// GetTagProperties fetches a single tag. ok is false when the tag is absent
// or the call fails.
func (c *Client) GetTagProperties(ctx context.Context, repository, tag string) (domain.TagProperties, bool) {
	c.log.Info("Fetching properties for tag", "tag", tag, "repository", repository)

	resp, err := c.api.GetTagProperties(ctx, repository, tag, nil)
	if err != nil {
		c.logLookupError(err, "Failed to fetch tag properties", "tag", tag, "repository", repository)
		return domain.TagProperties{}, false
	}
	if resp.Tag == nil {
		c.log.Error("Tag properties response was empty", "tag", tag, "repository", repository)
		return domain.TagProperties{}, false
	}

	props := tagFromAttributes(repository, resp.Tag)
	c.log.Debug("Tag metadata", "tag", tag, "digest", props.Digest, "created_on", props.CreatedOn)
	return props, true
}

// GetManifestProperties fetches a single manifest by digest. ok is false when
// the manifest is absent or the call fails.
func (c *Client) GetManifestProperties(ctx context.Context, repository, dgst string) (domain.ManifestProperties, bool) {
	c.log.Info("Fetching properties for manifest", "manifest", dgst, "repository", repository)

	resp, err := c.api.GetManifestProperties(ctx, repository, dgst, nil)
	if err != nil {
		c.logLookupError(err, "Failed to fetch manifest properties", "manifest", dgst, "repository", repository)
		return domain.ManifestProperties{}, false
	}
	if resp.Manifest == nil {
		c.log.Error("Manifest properties response was empty", "manifest", dgst, "repository", repository)
		return domain.ManifestProperties{}, false
	}

	props := manifestFromAttributes(repository, resp.Manifest)
	c.log.Debug("Manifest metadata", "manifest", dgst, "tags", props.Tags, "created_on", props.CreatedOn)
	return props, true
}

// DeleteTag removes a tag from repository.
func (c *Client) DeleteTag(ctx context.Context, repository, tag string) error {
	c.log.Info("Deleting tag from repository", "tag", tag, "repository", repository)

	if _, err := c.api.DeleteTag(ctx, repository, tag, nil); err != nil {
		c.log.Debug("Delete tag response", "tag", tag, "err", err)
		err = classify(err)
		c.log.Error("Unable to delete tag", append([]interface{}{"tag", tag, "repository", repository}, errFields(err)...)...)
		return fmt.Errorf("delete tag %s: %w", tag, err)
	}
	return nil
}

// DeleteManifest removes a manifest from repository. A reference that is not
// a digest is resolved as a tag first.
func (c *Client) DeleteManifest(ctx context.Context, repository, digestOrTag string) error {
	c.log.Info("Deleting manifest from repository", "manifest", digestOrTag, "repository", repository)

	dgst, err := c.resolveDigest(ctx, repository, digestOrTag)
	if err != nil {
		c.log.Error("Unable to delete manifest", "manifest", digestOrTag, "repository", repository, "err", err)
		return err
	}

	if _, err := c.api.DeleteManifest(ctx, repository, dgst, nil); err != nil {
		c.log.Debug("Delete manifest response", "manifest", dgst, "err", err)
		err = classify(err)
		c.log.Error("Unable to delete manifest", append([]interface{}{"manifest", dgst, "repository", repository}, errFields(err)...)...)
		return fmt.Errorf("delete manifest %s: %w", dgst, err)
	}
	return nil
}

func (c *Client) resolveDigest(ctx context.Context, repository, reference string) (string, error) {
	if _, err := digest.Parse(reference); err == nil {
		return reference, nil
	}

	c.log.Debug("Reference is not a digest, resolving as tag", "reference", reference)
	tag, ok := c.GetTagProperties(ctx, repository, reference)
	if !ok {
		return "", fmt.Errorf("resolve %s: %w", reference, domain.ErrNotFound)
	}
	if _, err := digest.Parse(tag.Digest); err != nil {
		return "", fmt.Errorf("resolve %s: %w: %q", reference, domain.ErrInvalidDigest, tag.Digest)
	}
	return tag.Digest, nil
}

// logLookupError logs not-found distinctly from other failures. The full SDK
// error spans several lines and is only logged at debug level.
func (c *Client) logLookupError(err error, msg string, keyvals ...interface{}) {
	c.log.Debug("Registry response", append(keyvals, "err", err)...)
	if isNotFound(err) {
		msg = "Resource not found"
	}
	c.log.Error(msg, append(keyvals, errFields(err)...)...)
}

// errFields renders err as single-line log fields.
func errFields(err error) []interface{} {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return []interface{}{"status", respErr.StatusCode, "code", respErr.ErrorCode}
	}
	return []interface{}{"err", err}
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

// apiError keeps the SDK error in the chain while printing on one line.
type apiError struct {
	resp *azcore.ResponseError
}

func (e *apiError) Error() string {
	if e.resp.ErrorCode == "" {
		return fmt.Sprintf("registry returned status %d", e.resp.StatusCode)
	}
	return fmt.Sprintf("registry returned status %d (%s)", e.resp.StatusCode, e.resp.ErrorCode)
}

func (e *apiError) Unwrap() error {
	return e.resp
}

func classify(err error) error {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}
	compact := &apiError{resp: respErr}
	if respErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, compact)
	}
	return compact
}

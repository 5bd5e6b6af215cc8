package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/azops/internal/domain"
)

// MockRegistryClient is a mock implementation of out.RegistryClient
type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) ListTags(ctx context.Context, repository string) []domain.TagProperties {
	args := m.Called(ctx, repository)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.TagProperties)
}

func (m *MockRegistryClient) ListManifests(ctx context.Context, repository string) []domain.ManifestProperties {
	args := m.Called(ctx, repository)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ManifestProperties)
}

func (m *MockRegistryClient) GetTagProperties(ctx context.Context, repository, tag string) (domain.TagProperties, bool) {
	args := m.Called(ctx, repository, tag)
	return args.Get(0).(domain.TagProperties), args.Bool(1)
}

func (m *MockRegistryClient) GetManifestProperties(ctx context.Context, repository, digest string) (domain.ManifestProperties, bool) {
	args := m.Called(ctx, repository, digest)
	return args.Get(0).(domain.ManifestProperties), args.Bool(1)
}

func (m *MockRegistryClient) DeleteTag(ctx context.Context, repository, tag string) error {
	args := m.Called(ctx, repository, tag)
	return args.Error(0)
}

func (m *MockRegistryClient) DeleteManifest(ctx context.Context, repository, digestOrTag string) error {
	args := m.Called(ctx, repository, digestOrTag)
	return args.Error(0)
}

// MockDeletionLimiter is a mock implementation of out.DeletionLimiter
type MockDeletionLimiter struct {
	mock.Mock
}

func (m *MockDeletionLimiter) Wait(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

package mocks

import (
	"context"

	"rods-warden/core/store"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of store.Client
type Client struct {
	mock.Mock
}

func (m *Client) Stat(ctx context.Context, path string) (store.Kind, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(store.Kind), args.Error(1)
}

func (m *Client) List(ctx context.Context, path string) ([]store.Entry, error) {
	args := m.Called(ctx, path)
	if entries, ok := args.Get(0).([]store.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Metadata(ctx context.Context, path string) ([]store.AVU, error) {
	args := m.Called(ctx, path)
	if avus, ok := args.Get(0).([]store.AVU); ok {
		return avus, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Replicas(ctx context.Context, path string) ([]store.Replica, error) {
	args := m.Called(ctx, path)
	if replicas, ok := args.Get(0).([]store.Replica); ok {
		return replicas, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Permissions(ctx context.Context, path string) ([]store.Access, error) {
	args := m.Called(ctx, path)
	if acl, ok := args.Get(0).([]store.Access); ok {
		return acl, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) AddMetadata(ctx context.Context, path string, avus ...store.AVU) (int, error) {
	args := m.Called(ctx, path, avus)
	return args.Int(0), args.Error(1)
}

func (m *Client) RemoveMetadata(ctx context.Context, path string, avus ...store.AVU) (int, error) {
	args := m.Called(ctx, path, avus)
	return args.Int(0), args.Error(1)
}

func (m *Client) AddPermissions(ctx context.Context, path string, acl ...store.Access) (int, error) {
	args := m.Called(ctx, path, acl)
	return args.Int(0), args.Error(1)
}

func (m *Client) TrimReplicas(ctx context.Context, path string, valid, invalid bool, keep int) (int, int, error) {
	args := m.Called(ctx, path, valid, invalid, keep)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *Client) CreateCollection(ctx context.Context, path string, existOK bool) error {
	args := m.Called(ctx, path, existOK)
	return args.Error(0)
}

func (m *Client) CopyObject(ctx context.Context, src, dest string, verify bool) error {
	args := m.Called(ctx, src, dest, verify)
	return args.Error(0)
}

func (m *Client) RemoveObject(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *Client) RemoveCollection(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *Client) Close() error {
	args := m.Called()
	return args.Error(0)
}

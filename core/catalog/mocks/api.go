package mocks

import (
	"context"

	"refsync/core/catalog"

	"github.com/stretchr/testify/mock"
)

// API is a mock implementation of catalog.API
type API struct {
	mock.Mock
}

func (m *API) Vocabularies(ctx context.Context) ([]catalog.Vocabulary, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]catalog.Vocabulary); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) Properties(ctx context.Context) ([]catalog.Property, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]catalog.Property); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) ResourceClasses(ctx context.Context) ([]catalog.ResourceClass, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]catalog.ResourceClass); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) SearchItems(ctx context.Context, query catalog.ItemQuery) ([]catalog.Item, error) {
	args := m.Called(ctx, query)
	if v, ok := args.Get(0).([]catalog.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) ReadItem(ctx context.Context, id int) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*catalog.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) ReadItemSet(ctx context.Context, id int) (*catalog.ItemSet, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*catalog.ItemSet); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) FindTemplate(ctx context.Context, query catalog.TemplateQuery) (*catalog.Template, error) {
	args := m.Called(ctx, query)
	if v, ok := args.Get(0).(*catalog.Template); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) CreateItem(ctx context.Context, item *catalog.Item) (*catalog.Item, error) {
	args := m.Called(ctx, item)
	if v, ok := args.Get(0).(*catalog.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) UpdateItem(ctx context.Context, id int, item *catalog.Item) (*catalog.Item, error) {
	args := m.Called(ctx, id, item)
	if v, ok := args.Get(0).(*catalog.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) BatchCreateItems(ctx context.Context, items []*catalog.Item) ([]*catalog.Item, error) {
	args := m.Called(ctx, items)
	if v, ok := args.Get(0).([]*catalog.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

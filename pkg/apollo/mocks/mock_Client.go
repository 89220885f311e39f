// Package mocks provides test doubles for the apollo client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	apollo "github.com/sells-group/prospect-cli/pkg/apollo"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// SearchOrganizations provides a mock function with given fields: ctx, req
func (_m *MockClient) SearchOrganizations(ctx context.Context, req apollo.OrganizationSearchRequest) (*apollo.OrganizationSearchResponse, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for SearchOrganizations")
	}

	var r0 *apollo.OrganizationSearchResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, apollo.OrganizationSearchRequest) (*apollo.OrganizationSearchResponse, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, apollo.OrganizationSearchRequest) *apollo.OrganizationSearchResponse); ok {
		r0 = rf(ctx, req)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*apollo.OrganizationSearchResponse)
	}

	if rf, ok := ret.Get(1).(func(context.Context, apollo.OrganizationSearchRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SearchPeople provides a mock function with given fields: ctx, req
func (_m *MockClient) SearchPeople(ctx context.Context, req apollo.PeopleSearchRequest) (*apollo.PeopleSearchResponse, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for SearchPeople")
	}

	var r0 *apollo.PeopleSearchResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, apollo.PeopleSearchRequest) (*apollo.PeopleSearchResponse, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, apollo.PeopleSearchRequest) *apollo.PeopleSearchResponse); ok {
		r0 = rf(ctx, req)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*apollo.PeopleSearchResponse)
	}

	if rf, ok := ret.Get(1).(func(context.Context, apollo.PeopleSearchRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

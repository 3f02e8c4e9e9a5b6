// Code generated by MockGen. DO NOT EDIT.
// Source: registry.go
//
// Generated by this command:
//
//	mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "go.trai.ch/pim/internal/core/domain"
	ports "go.trai.ch/pim/internal/core/ports"
	gomock "go.uber.org/mock/gomock"
)

// MockRegistry is a mock of Registry interface.
type MockRegistry struct {
	ctrl     *gomock.Controller
	recorder *MockRegistryMockRecorder
	isgomock struct{}
}

// MockRegistryMockRecorder is the mock recorder for MockRegistry.
type MockRegistryMockRecorder struct {
	mock *MockRegistry
}

// NewMockRegistry creates a new mock instance.
func NewMockRegistry(ctrl *gomock.Controller) *MockRegistry {
	mock := &MockRegistry{ctrl: ctrl}
	mock.recorder = &MockRegistryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRegistry) EXPECT() *MockRegistryMockRecorder {
	return m.recorder
}

// CheckPackage mocks base method.
func (m *MockRegistry) CheckPackage(ctx context.Context, source domain.Source, name string) (ports.PackageStatus, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckPackage", ctx, source, name)
	ret0, _ := ret[0].(ports.PackageStatus)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CheckPackage indicates an expected call of CheckPackage.
func (mr *MockRegistryMockRecorder) CheckPackage(ctx, source, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckPackage", reflect.TypeOf((*MockRegistry)(nil).CheckPackage), ctx, source, name)
}

// Code generated by MockGen. DO NOT EDIT.
// Source: policy_loader.go
//
// Generated by this command:
//
//	mockgen -source=policy_loader.go -destination=mocks/mock_policy_loader.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	reflect "reflect"

	domain "go.trai.ch/pim/internal/core/domain"
	gomock "go.uber.org/mock/gomock"
)

// MockPolicyLoader is a mock of PolicyLoader interface.
type MockPolicyLoader struct {
	ctrl     *gomock.Controller
	recorder *MockPolicyLoaderMockRecorder
	isgomock struct{}
}

// MockPolicyLoaderMockRecorder is the mock recorder for MockPolicyLoader.
type MockPolicyLoaderMockRecorder struct {
	mock *MockPolicyLoader
}

// NewMockPolicyLoader creates a new mock instance.
func NewMockPolicyLoader(ctrl *gomock.Controller) *MockPolicyLoader {
	mock := &MockPolicyLoader{ctrl: ctrl}
	mock.recorder = &MockPolicyLoaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPolicyLoader) EXPECT() *MockPolicyLoaderMockRecorder {
	return m.recorder
}

// Load mocks base method.
func (m *MockPolicyLoader) Load(path string) (domain.Policy, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", path)
	ret0, _ := ret[0].(domain.Policy)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockPolicyLoaderMockRecorder) Load(path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockPolicyLoader)(nil).Load), path)
}

// Code generated by MockGen. DO NOT EDIT.
// Source: manifest_loader.go
//
// Generated by this command:
//
//	mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	reflect "reflect"

	domain "go.trai.ch/pim/internal/core/domain"
	gomock "go.uber.org/mock/gomock"
)

// MockManifestLoader is a mock of ManifestLoader interface.
type MockManifestLoader struct {
	ctrl     *gomock.Controller
	recorder *MockManifestLoaderMockRecorder
	isgomock struct{}
}

// MockManifestLoaderMockRecorder is the mock recorder for MockManifestLoader.
type MockManifestLoaderMockRecorder struct {
	mock *MockManifestLoader
}

// NewMockManifestLoader creates a new mock instance.
func NewMockManifestLoader(ctrl *gomock.Controller) *MockManifestLoader {
	mock := &MockManifestLoader{ctrl: ctrl}
	mock.recorder = &MockManifestLoaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockManifestLoader) EXPECT() *MockManifestLoaderMockRecorder {
	return m.recorder
}

// Discover mocks base method.
func (m *MockManifestLoader) Discover(cwd string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Discover", cwd)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Discover indicates an expected call of Discover.
func (mr *MockManifestLoaderMockRecorder) Discover(cwd any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Discover", reflect.TypeOf((*MockManifestLoader)(nil).Discover), cwd)
}

// Load mocks base method.
func (m *MockManifestLoader) Load(path string) (*domain.Manifest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", path)
	ret0, _ := ret[0].(*domain.Manifest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockManifestLoaderMockRecorder) Load(path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockManifestLoader)(nil).Load), path)
}

// Code generated by MockGen. DO NOT EDIT.
// Source: snapshot_store.go
//
// Generated by this command:
//
//	mockgen -source=snapshot_store.go -destination=mocks/mock_snapshot_store.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	reflect "reflect"

	domain "go.trai.ch/pim/internal/core/domain"
	gomock "go.uber.org/mock/gomock"
)

// MockSnapshotStore is a mock of SnapshotStore interface.
type MockSnapshotStore struct {
	ctrl     *gomock.Controller
	recorder *MockSnapshotStoreMockRecorder
	isgomock struct{}
}

// MockSnapshotStoreMockRecorder is the mock recorder for MockSnapshotStore.
type MockSnapshotStoreMockRecorder struct {
	mock *MockSnapshotStore
}

// NewMockSnapshotStore creates a new mock instance.
func NewMockSnapshotStore(ctrl *gomock.Controller) *MockSnapshotStore {
	mock := &MockSnapshotStore{ctrl: ctrl}
	mock.recorder = &MockSnapshotStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSnapshotStore) EXPECT() *MockSnapshotStoreMockRecorder {
	return m.recorder
}

// Capture mocks base method.
func (m_2 *MockSnapshotStore) Capture(m *domain.Manifest) (*domain.Snapshot, error) {
	m_2.ctrl.T.Helper()
	ret := m_2.ctrl.Call(m_2, "Capture", m)
	ret0, _ := ret[0].(*domain.Snapshot)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Capture indicates an expected call of Capture.
func (mr *MockSnapshotStoreMockRecorder) Capture(m any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Capture", reflect.TypeOf((*MockSnapshotStore)(nil).Capture), m)
}

// Fingerprint mocks base method.
func (m *MockSnapshotStore) Fingerprint(manifestPath string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Fingerprint", manifestPath)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Fingerprint indicates an expected call of Fingerprint.
func (mr *MockSnapshotStoreMockRecorder) Fingerprint(manifestPath any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Fingerprint", reflect.TypeOf((*MockSnapshotStore)(nil).Fingerprint), manifestPath)
}

// Load mocks base method.
func (m *MockSnapshotStore) Load(manifestPath string) (*domain.Snapshot, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", manifestPath)
	ret0, _ := ret[0].(*domain.Snapshot)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Load indicates an expected call of Load.
func (mr *MockSnapshotStoreMockRecorder) Load(manifestPath any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockSnapshotStore)(nil).Load), manifestPath)
}

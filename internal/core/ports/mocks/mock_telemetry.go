// Code generated by MockGen. DO NOT EDIT.
// Source: telemetry.go
//
// Generated by this command:
//
//	mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	ports "go.trai.ch/pim/internal/core/ports"
	gomock "go.uber.org/mock/gomock"
)

// MockTelemetry is a mock of Telemetry interface.
type MockTelemetry struct {
	ctrl     *gomock.Controller
	recorder *MockTelemetryMockRecorder
	isgomock struct{}
}

// MockTelemetryMockRecorder is the mock recorder for MockTelemetry.
type MockTelemetryMockRecorder struct {
	mock *MockTelemetry
}

// NewMockTelemetry creates a new mock instance.
func NewMockTelemetry(ctrl *gomock.Controller) *MockTelemetry {
	mock := &MockTelemetry{ctrl: ctrl}
	mock.recorder = &MockTelemetryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTelemetry) EXPECT() *MockTelemetryMockRecorder {
	return m.recorder
}

// Close mocks base method.
func (m *MockTelemetry) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockTelemetryMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockTelemetry)(nil).Close))
}

// Record mocks base method.
func (m *MockTelemetry) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Record", ctx, name)
	ret0, _ := ret[0].(context.Context)
	ret1, _ := ret[1].(ports.Vertex)
	return ret0, ret1
}

// Record indicates an expected call of Record.
func (mr *MockTelemetryMockRecorder) Record(ctx, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Record", reflect.TypeOf((*MockTelemetry)(nil).Record), ctx, name)
}

// MockVertex is a mock of Vertex interface.
type MockVertex struct {
	ctrl     *gomock.Controller
	recorder *MockVertexMockRecorder
	isgomock struct{}
}

// MockVertexMockRecorder is the mock recorder for MockVertex.
type MockVertexMockRecorder struct {
	mock *MockVertex
}

// NewMockVertex creates a new mock instance.
func NewMockVertex(ctrl *gomock.Controller) *MockVertex {
	mock := &MockVertex{ctrl: ctrl}
	mock.recorder = &MockVertexMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockVertex) EXPECT() *MockVertexMockRecorder {
	return m.recorder
}

// Cached mocks base method.
func (m *MockVertex) Cached() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Cached")
}

// Cached indicates an expected call of Cached.
func (mr *MockVertexMockRecorder) Cached() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cached", reflect.TypeOf((*MockVertex)(nil).Cached))
}

// Complete mocks base method.
func (m *MockVertex) Complete(err error) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Complete", err)
}

// Complete indicates an expected call of Complete.
func (mr *MockVertexMockRecorder) Complete(err any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Complete", reflect.TypeOf((*MockVertex)(nil).Complete), err)
}

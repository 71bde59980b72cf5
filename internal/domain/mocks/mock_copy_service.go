package mocks

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/promoforge/promoforge/internal/domain"
)

// MockCopyService is a mock of CopyService interface
type MockCopyService struct {
	ctrl     *gomock.Controller
	recorder *MockCopyServiceMockRecorder
}

// MockCopyServiceMockRecorder is the mock recorder for MockCopyService
type MockCopyServiceMockRecorder struct {
	mock *MockCopyService
}

// NewMockCopyService creates a new mock instance
func NewMockCopyService(ctrl *gomock.Controller) *MockCopyService {
	mock := &MockCopyService{ctrl: ctrl}
	mock.recorder = &MockCopyServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockCopyService) EXPECT() *MockCopyServiceMockRecorder {
	return m.recorder
}

// ImportCopy mocks base method
func (m *MockCopyService) ImportCopy(raw []byte) (*domain.CopyImport, error) {
	ret := m.ctrl.Call(m, "ImportCopy", raw)
	ret0, _ := ret[0].(*domain.CopyImport)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ImportCopy indicates an expected call of ImportCopy
func (mr *MockCopyServiceMockRecorder) ImportCopy(raw interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ImportCopy", reflect.TypeOf((*MockCopyService)(nil).ImportCopy), raw)
}

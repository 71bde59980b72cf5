package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/promoforge/promoforge/internal/domain"
)

// MockTemplateService is a mock of TemplateService interface
type MockTemplateService struct {
	ctrl     *gomock.Controller
	recorder *MockTemplateServiceMockRecorder
}

// MockTemplateServiceMockRecorder is the mock recorder for MockTemplateService
type MockTemplateServiceMockRecorder struct {
	mock *MockTemplateService
}

// NewMockTemplateService creates a new mock instance
func NewMockTemplateService(ctrl *gomock.Controller) *MockTemplateService {
	mock := &MockTemplateService{ctrl: ctrl}
	mock.recorder = &MockTemplateServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTemplateService) EXPECT() *MockTemplateServiceMockRecorder {
	return m.recorder
}

// CreateTemplate mocks base method
func (m *MockTemplateService) CreateTemplate(ctx context.Context, template *domain.Template) error {
	ret := m.ctrl.Call(m, "CreateTemplate", ctx, template)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateTemplate indicates an expected call of CreateTemplate
func (mr *MockTemplateServiceMockRecorder) CreateTemplate(ctx, template interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateTemplate", reflect.TypeOf((*MockTemplateService)(nil).CreateTemplate), ctx, template)
}

// GetTemplateByID mocks base method
func (m *MockTemplateService) GetTemplateByID(ctx context.Context, id string, version int64) (*domain.Template, error) {
	ret := m.ctrl.Call(m, "GetTemplateByID", ctx, id, version)
	ret0, _ := ret[0].(*domain.Template)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTemplateByID indicates an expected call of GetTemplateByID
func (mr *MockTemplateServiceMockRecorder) GetTemplateByID(ctx, id, version interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTemplateByID", reflect.TypeOf((*MockTemplateService)(nil).GetTemplateByID), ctx, id, version)
}

// GetTemplates mocks base method
func (m *MockTemplateService) GetTemplates(ctx context.Context, name string) ([]*domain.Template, error) {
	ret := m.ctrl.Call(m, "GetTemplates", ctx, name)
	ret0, _ := ret[0].([]*domain.Template)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTemplates indicates an expected call of GetTemplates
func (mr *MockTemplateServiceMockRecorder) GetTemplates(ctx, name interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTemplates", reflect.TypeOf((*MockTemplateService)(nil).GetTemplates), ctx, name)
}

// UpdateTemplate mocks base method
func (m *MockTemplateService) UpdateTemplate(ctx context.Context, template *domain.Template) error {
	ret := m.ctrl.Call(m, "UpdateTemplate", ctx, template)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateTemplate indicates an expected call of UpdateTemplate
func (mr *MockTemplateServiceMockRecorder) UpdateTemplate(ctx, template interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateTemplate", reflect.TypeOf((*MockTemplateService)(nil).UpdateTemplate), ctx, template)
}

// DeleteTemplate mocks base method
func (m *MockTemplateService) DeleteTemplate(ctx context.Context, id string) error {
	ret := m.ctrl.Call(m, "DeleteTemplate", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteTemplate indicates an expected call of DeleteTemplate
func (mr *MockTemplateServiceMockRecorder) DeleteTemplate(ctx, id interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteTemplate", reflect.TypeOf((*MockTemplateService)(nil).DeleteTemplate), ctx, id)
}

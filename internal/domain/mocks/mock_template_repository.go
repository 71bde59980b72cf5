package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/promoforge/promoforge/internal/domain"
)

// MockTemplateRepository is a mock of TemplateRepository interface
type MockTemplateRepository struct {
	ctrl     *gomock.Controller
	recorder *MockTemplateRepositoryMockRecorder
}

// MockTemplateRepositoryMockRecorder is the mock recorder for MockTemplateRepository
type MockTemplateRepositoryMockRecorder struct {
	mock *MockTemplateRepository
}

// NewMockTemplateRepository creates a new mock instance
func NewMockTemplateRepository(ctrl *gomock.Controller) *MockTemplateRepository {
	mock := &MockTemplateRepository{ctrl: ctrl}
	mock.recorder = &MockTemplateRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTemplateRepository) EXPECT() *MockTemplateRepositoryMockRecorder {
	return m.recorder
}

// CreateTemplate mocks base method
func (m *MockTemplateRepository) CreateTemplate(ctx context.Context, template *domain.Template) error {
	ret := m.ctrl.Call(m, "CreateTemplate", ctx, template)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateTemplate indicates an expected call of CreateTemplate
func (mr *MockTemplateRepositoryMockRecorder) CreateTemplate(ctx, template interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateTemplate", reflect.TypeOf((*MockTemplateRepository)(nil).CreateTemplate), ctx, template)
}

// GetTemplateByID mocks base method
func (m *MockTemplateRepository) GetTemplateByID(ctx context.Context, id string, version int64) (*domain.Template, error) {
	ret := m.ctrl.Call(m, "GetTemplateByID", ctx, id, version)
	ret0, _ := ret[0].(*domain.Template)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTemplateByID indicates an expected call of GetTemplateByID
func (mr *MockTemplateRepositoryMockRecorder) GetTemplateByID(ctx, id, version interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTemplateByID", reflect.TypeOf((*MockTemplateRepository)(nil).GetTemplateByID), ctx, id, version)
}

// GetTemplateLatestVersion mocks base method
func (m *MockTemplateRepository) GetTemplateLatestVersion(ctx context.Context, id string) (int64, error) {
	ret := m.ctrl.Call(m, "GetTemplateLatestVersion", ctx, id)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTemplateLatestVersion indicates an expected call of GetTemplateLatestVersion
func (mr *MockTemplateRepositoryMockRecorder) GetTemplateLatestVersion(ctx, id interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTemplateLatestVersion", reflect.TypeOf((*MockTemplateRepository)(nil).GetTemplateLatestVersion), ctx, id)
}

// GetTemplates mocks base method
func (m *MockTemplateRepository) GetTemplates(ctx context.Context, name string) ([]*domain.Template, error) {
	ret := m.ctrl.Call(m, "GetTemplates", ctx, name)
	ret0, _ := ret[0].([]*domain.Template)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTemplates indicates an expected call of GetTemplates
func (mr *MockTemplateRepositoryMockRecorder) GetTemplates(ctx, name interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTemplates", reflect.TypeOf((*MockTemplateRepository)(nil).GetTemplates), ctx, name)
}

// UpdateTemplate mocks base method
func (m *MockTemplateRepository) UpdateTemplate(ctx context.Context, template *domain.Template) error {
	ret := m.ctrl.Call(m, "UpdateTemplate", ctx, template)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateTemplate indicates an expected call of UpdateTemplate
func (mr *MockTemplateRepositoryMockRecorder) UpdateTemplate(ctx, template interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateTemplate", reflect.TypeOf((*MockTemplateRepository)(nil).UpdateTemplate), ctx, template)
}

// DeleteTemplate mocks base method
func (m *MockTemplateRepository) DeleteTemplate(ctx context.Context, id string) error {
	ret := m.ctrl.Call(m, "DeleteTemplate", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteTemplate indicates an expected call of DeleteTemplate
func (mr *MockTemplateRepositoryMockRecorder) DeleteTemplate(ctx, id interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteTemplate", reflect.TypeOf((*MockTemplateRepository)(nil).DeleteTemplate), ctx, id)
}

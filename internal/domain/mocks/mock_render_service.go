package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/pkg/render"
)

// MockRenderService is a mock of RenderService interface
type MockRenderService struct {
	ctrl     *gomock.Controller
	recorder *MockRenderServiceMockRecorder
}

// MockRenderServiceMockRecorder is the mock recorder for MockRenderService
type MockRenderServiceMockRecorder struct {
	mock *MockRenderService
}

// NewMockRenderService creates a new mock instance
func NewMockRenderService(ctrl *gomock.Controller) *MockRenderService {
	mock := &MockRenderService{ctrl: ctrl}
	mock.recorder = &MockRenderServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockRenderService) EXPECT() *MockRenderServiceMockRecorder {
	return m.recorder
}

// RenderPreview mocks base method
func (m *MockRenderService) RenderPreview(ctx context.Context, req *domain.RenderPreviewRequest) (*render.Result, error) {
	ret := m.ctrl.Call(m, "RenderPreview", ctx, req)
	ret0, _ := ret[0].(*render.Result)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RenderPreview indicates an expected call of RenderPreview
func (mr *MockRenderServiceMockRecorder) RenderPreview(ctx, req interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RenderPreview", reflect.TypeOf((*MockRenderService)(nil).RenderPreview), ctx, req)
}

// RenderCampaign mocks base method
func (m *MockRenderService) RenderCampaign(ctx context.Context, req *domain.RenderCampaignRequest) ([]domain.MarketRender, error) {
	ret := m.ctrl.Call(m, "RenderCampaign", ctx, req)
	ret0, _ := ret[0].([]domain.MarketRender)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RenderCampaign indicates an expected call of RenderCampaign
func (mr *MockRenderServiceMockRecorder) RenderCampaign(ctx, req interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RenderCampaign", reflect.TypeOf((*MockRenderService)(nil).RenderCampaign), ctx, req)
}

// ExportZip mocks base method
func (m *MockRenderService) ExportZip(ctx context.Context, req *domain.RenderCampaignRequest) ([]byte, error) {
	ret := m.ctrl.Call(m, "ExportZip", ctx, req)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ExportZip indicates an expected call of ExportZip
func (mr *MockRenderServiceMockRecorder) ExportZip(ctx, req interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExportZip", reflect.TypeOf((*MockRenderService)(nil).ExportZip), ctx, req)
}

// SendTest mocks base method
func (m *MockRenderService) SendTest(ctx context.Context, req *domain.SendTestRequest) error {
	ret := m.ctrl.Call(m, "SendTest", ctx, req)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendTest indicates an expected call of SendTest
func (mr *MockRenderServiceMockRecorder) SendTest(ctx, req interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendTest", reflect.TypeOf((*MockRenderService)(nil).SendTest), ctx, req)
}

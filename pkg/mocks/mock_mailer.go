package pkgmocks

import (
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockMailer is a mock of Mailer interface
type MockMailer struct {
	ctrl     *gomock.Controller
	recorder *MockMailerMockRecorder
}

// MockMailerMockRecorder is the mock recorder for MockMailer
type MockMailerMockRecorder struct {
	mock *MockMailer
}

// NewMockMailer creates a new mock instance
func NewMockMailer(ctrl *gomock.Controller) *MockMailer {
	mock := &MockMailer{ctrl: ctrl}
	mock.recorder = &MockMailerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockMailer) EXPECT() *MockMailerMockRecorder {
	return m.recorder
}

// SendTestEmail mocks base method
func (m *MockMailer) SendTestEmail(to, senderName, subject, htmlBody, altBody string) error {
	ret := m.ctrl.Call(m, "SendTestEmail", to, senderName, subject, htmlBody, altBody)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendTestEmail indicates an expected call of SendTestEmail
func (mr *MockMailerMockRecorder) SendTestEmail(to, senderName, subject, htmlBody, altBody interface{}) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendTestEmail", reflect.TypeOf((*MockMailer)(nil).SendTestEmail), to, senderName, subject, htmlBody, altBody)
}

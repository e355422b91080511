package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCheck is a testify mock of Check in the mockery expecter style.
type MockCheck struct {
	mock.Mock
}

// NewMockCheck creates a MockCheck whose expectations are asserted at cleanup.
func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MockCheck_Expecter struct {
	mock *mock.Mock
}

func (m *MockCheck) EXPECT() *MockCheck_Expecter {
	return &MockCheck_Expecter{mock: &m.Mock}
}

func (m *MockCheck) Name() string {
	return m.Called().String(0)
}

func (m *MockCheck) Category() string {
	return m.Called().String(0)
}

func (m *MockCheck) Run(ctx context.Context) *CheckResult {
	ret := m.Called(ctx)
	if r, ok := ret.Get(0).(*CheckResult); ok {
		return r
	}
	return nil
}

type MockCheck_String_Call struct {
	*mock.Call
}

func (c *MockCheck_String_Call) Return(s string) *MockCheck_String_Call {
	c.Call.Return(s)
	return c
}

func (c *MockCheck_String_Call) Maybe() *MockCheck_String_Call {
	c.Call.Maybe()
	return c
}

func (e *MockCheck_Expecter) Name() *MockCheck_String_Call {
	return &MockCheck_String_Call{Call: e.mock.On("Name")}
}

func (e *MockCheck_Expecter) Category() *MockCheck_String_Call {
	return &MockCheck_String_Call{Call: e.mock.On("Category")}
}

type MockCheck_Run_Call struct {
	*mock.Call
}

func (c *MockCheck_Run_Call) Return(r *CheckResult) *MockCheck_Run_Call {
	c.Call.Return(r)
	return c
}

func (e *MockCheck_Expecter) Run(ctx any) *MockCheck_Run_Call {
	return &MockCheck_Run_Call{Call: e.mock.On("Run", ctx)}
}

package moqt

import (
	"bytes"
	"context"
	"time"

	"github.com/nanoqt/moqsession/quic"
	"github.com/stretchr/testify/mock"
)

var _ quic.Stream = (*MockQUICStream)(nil)

// MockQUICStream is a mock implementation of quic.Stream using testify/mock.
// ReadData/WroteData let a test drive Read/Write against plain buffers
// instead of setting up mock.Called expectations. Methods with no matching
// expectation record the call and return a zero value rather than panic,
// so AssertCalled works even without an On() setup.
type MockQUICStream struct {
	mock.Mock
	ReadFunc  func(p []byte) (n int, err error)
	WriteFunc func(p []byte) (n int, err error)
	ReadData  *bytes.Buffer
	WroteData *bytes.Buffer
}

func (m *MockQUICStream) hasExpectation(method string) bool {
	for _, c := range m.ExpectedCalls {
		if c.Method == method {
			return true
		}
	}
	return false
}

func (m *MockQUICStream) recordCall(method string, args ...interface{}) {
	m.Mock.Calls = append(m.Mock.Calls, mock.Call{Method: method, Arguments: args})
}

func (m *MockQUICStream) StreamID() quic.StreamID {
	if !m.hasExpectation("StreamID") {
		m.recordCall("StreamID")
		return 0
	}
	args := m.Called()
	return args.Get(0).(quic.StreamID)
}

func (m *MockQUICStream) Read(p []byte) (n int, err error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(p)
	}
	if m.ReadData != nil {
		return m.ReadData.Read(p)
	}
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockQUICStream) Write(p []byte) (n int, err error) {
	if m.WriteFunc != nil {
		return m.WriteFunc(p)
	}
	if m.WroteData != nil {
		return m.WroteData.Write(p)
	}
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockQUICStream) CancelRead(code quic.StreamErrorCode) {
	if !m.hasExpectation("CancelRead") {
		m.recordCall("CancelRead", code)
		return
	}
	m.Called(code)
}

func (m *MockQUICStream) CancelWrite(code quic.StreamErrorCode) {
	if !m.hasExpectation("CancelWrite") {
		m.recordCall("CancelWrite", code)
		return
	}
	m.Called(code)
}

func (m *MockQUICStream) SetReadDeadline(t time.Time) error {
	if !m.hasExpectation("SetReadDeadline") {
		m.recordCall("SetReadDeadline", t)
		return nil
	}
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockQUICStream) SetWriteDeadline(t time.Time) error {
	if !m.hasExpectation("SetWriteDeadline") {
		m.recordCall("SetWriteDeadline", t)
		return nil
	}
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockQUICStream) SetDeadline(t time.Time) error {
	if !m.hasExpectation("SetDeadline") {
		m.recordCall("SetDeadline", t)
		return nil
	}
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockQUICStream) Close() error {
	if !m.hasExpectation("Close") {
		m.recordCall("Close")
		return nil
	}
	args := m.Called()
	return args.Error(0)
}

func (m *MockQUICStream) Context() context.Context {
	if !m.hasExpectation("Context") {
		m.recordCall("Context")
		return context.Background()
	}
	args := m.Called()
	return args.Get(0).(context.Context)
}

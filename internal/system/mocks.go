package system

import (
	"os"

	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for CommandExecutor.
type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Run(name string, arg ...string) error {
	callArgs := make([]interface{}, 0, len(arg)+1)
	callArgs = append(callArgs, name)
	for _, a := range arg {
		callArgs = append(callArgs, a)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockCommandExecutor) Output(name string, arg ...string) (string, error) {
	callArgs := make([]interface{}, 0, len(arg)+1)
	callArgs = append(callArgs, name)
	for _, a := range arg {
		callArgs = append(callArgs, a)
	}
	args := m.Called(callArgs...)
	return args.String(0), args.Error(1)
}

// MockController is a testify mock for Controller.
type MockController struct {
	mock.Mock
}

func (m *MockController) ReadFile(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func (m *MockController) WriteFile(path string, data string, perm os.FileMode) error {
	args := m.Called(path, data, perm)
	return args.Error(0)
}

func (m *MockController) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockController) PathExists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockController) Stat(path string) (os.FileInfo, error) {
	args := m.Called(path)
	fi, _ := args.Get(0).(os.FileInfo)
	return fi, args.Error(1)
}

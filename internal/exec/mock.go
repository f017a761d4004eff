package exec

import (
	"context"
	"fmt"
	"strings"
)

// MockCommander is a test double that records command calls and returns
// preset responses without running anything.
type MockCommander struct {
	// Responses maps command keys to their preset responses.
	// The key is formatted as: "command arg1 arg2 ..."
	Responses map[string]CommandResponse

	// OnRun, when set, is consulted before Responses for every call.
	// Tests use it to materialize files a real tool would have created
	// (an archive written by 7z, an encrypted file written by gpg).
	// Returning handled=false falls through to Responses.
	OnRun func(call CommandCall) (output []byte, err error, handled bool)

	// Calls records all commands that were executed, in order.
	Calls []CommandCall
}

// CommandCall records details of a single command execution.
type CommandCall struct {
	Dir     string
	Command string
	Args    []string
}

// CommandResponse defines the response for a specific command.
type CommandResponse struct {
	Output []byte
	Err    error
}

// NewMockCommander creates a MockCommander with empty responses and calls.
func NewMockCommander() *MockCommander {
	return &MockCommander{
		Responses: make(map[string]CommandResponse),
		Calls:     make([]CommandCall, 0),
	}
}

// Run records the call and returns the preset response if one exists.
// With no matching hook or response it returns nil, nil.
func (m *MockCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	return m.dispatch(dir, command, args)
}

// Output behaves exactly like Run; the mock does not distinguish streams.
func (m *MockCommander) Output(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	return m.dispatch(dir, command, args)
}

func (m *MockCommander) dispatch(dir, command string, args []string) ([]byte, error) {
	call := CommandCall{Dir: dir, Command: command, Args: args}
	m.Calls = append(m.Calls, call)

	if m.OnRun != nil {
		if output, err, handled := m.OnRun(call); handled {
			return output, err
		}
	}

	if resp, ok := m.Responses[commandKey(command, args)]; ok {
		return resp.Output, resp.Err
	}

	// No preset response found - succeed by default
	return nil, nil
}

// SetResponse configures a preset response for a specific command.
func (m *MockCommander) SetResponse(command string, args []string, output []byte, err error) {
	m.Responses[commandKey(command, args)] = CommandResponse{Output: output, Err: err}
}

// CallCount returns the number of commands that have been executed.
func (m *MockCommander) CallCount() int {
	return len(m.Calls)
}

// LastCall returns the most recent command call, or nil if none.
func (m *MockCommander) LastCall() *CommandCall {
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}

// CallsTo returns every recorded call to the given executable.
func (m *MockCommander) CallsTo(command string) []CommandCall {
	var calls []CommandCall
	for _, call := range m.Calls {
		if call.Command == command {
			calls = append(calls, call)
		}
	}
	return calls
}

// WasCalled checks if a command with the given arguments was ever executed.
func (m *MockCommander) WasCalled(command string, args ...string) bool {
	key := commandKey(command, args)
	for _, call := range m.Calls {
		if commandKey(call.Command, call.Args) == key {
			return true
		}
	}
	return false
}

// Reset clears all recorded calls and responses.
func (m *MockCommander) Reset() {
	m.Calls = make([]CommandCall, 0)
	m.Responses = make(map[string]CommandResponse)
	m.OnRun = nil
}

func commandKey(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return fmt.Sprintf("%s %s", command, strings.Join(args, " "))
}

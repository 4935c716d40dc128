package lua

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	rt "github.com/arnodel/golua/runtime"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	config := DefaultConfig()
	config.Stdout = nil
	runtime, err := New(config)
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	t.Cleanup(func() { runtime.Close() })
	return runtime
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.CPULimit != 10_000_000 {
		t.Errorf("expected CPULimit 10000000, got %d", config.CPULimit)
	}
	if config.MemoryLimit != 50*1024*1024 {
		t.Errorf("expected MemoryLimit %d, got %d", 50*1024*1024, config.MemoryLimit)
	}
	if config.Stdout != os.Stdout {
		t.Error("expected Stdout to be os.Stdout")
	}
}

func TestNewWithCustomStdout(t *testing.T) {
	buf := &bytes.Buffer{}
	runtime, err := New(RuntimeConfig{
		CPULimit:    1_000_000,
		MemoryLimit: 10 * 1024 * 1024,
		Stdout:      buf,
	})
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	defer runtime.Close()

	if _, err := runtime.ExecuteString("test", `print("hello from lua")`); err != nil {
		t.Fatalf("failed to execute Lua code: %v", err)
	}

	if buf.String() != "hello from lua\n" {
		t.Errorf("expected 'hello from lua\\n', got %q", buf.String())
	}
	if runtime.Output() != "hello from lua\n" {
		t.Errorf("captured output = %q", runtime.Output())
	}
}

func TestLoadString(t *testing.T) {
	runtime := newTestRuntime(t)

	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid code", "return 42", false},
		{"valid function", "function test() return 1 end", false},
		{"syntax error", "invalid lua syntax {{}}", true},
		{"empty code", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closure, err := runtime.LoadString(tt.name, tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && closure == nil {
				t.Error("expected closure to be non-nil")
			}
		})
	}
}

func TestExecuteString(t *testing.T) {
	runtime := newTestRuntime(t)

	tests := []struct {
		name       string
		code       string
		wantResult interface{}
		wantErr    bool
	}{
		{"return integer", "return 42", int64(42), false},
		{"return string", `return "hello"`, "hello", false},
		{"return calculation", "return 10 + 20 * 2", int64(50), false},
		{"return nil", "return nil", nil, false},
		{"syntax error", "return {{invalid", nil, true},
		{"runtime error", `error("boom")`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := runtime.ExecuteString(tt.name, tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("ExecuteString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			switch expected := tt.wantResult.(type) {
			case int64:
				got, ok := rt.ToInt(result)
				if !ok || got != expected {
					t.Errorf("expected %d, got %v", expected, result)
				}
			case string:
				if result.AsString() != expected {
					t.Errorf("expected %q, got %q", expected, result.AsString())
				}
			case nil:
				if result != rt.NilValue {
					t.Errorf("expected nil, got %v", result)
				}
			}
		})
	}
}

func TestExecuteFile(t *testing.T) {
	runtime := newTestRuntime(t)

	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte("return 6 * 7"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := runtime.ExecuteFile(path)
	if err != nil {
		t.Fatalf("ExecuteFile() error = %v", err)
	}
	if n, ok := rt.ToInt(result); !ok || n != 42 {
		t.Errorf("expected 42, got %v", result)
	}

	if _, err := runtime.ExecuteFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExecuteFileFromFS(t *testing.T) {
	runtime := newTestRuntime(t)
	fsys := fstest.MapFS{
		"scripts/hello.lua": &fstest.MapFile{Data: []byte(`return "Hello from FS"`)},
		"scripts/bad.lua":   &fstest.MapFile{Data: []byte(`return {{`)},
	}

	result, err := runtime.ExecuteFileFromFS(fsys, "scripts/hello.lua")
	if err != nil {
		t.Fatalf("ExecuteFileFromFS() error = %v", err)
	}
	if result.AsString() != "Hello from FS" {
		t.Errorf("got %q", result.AsString())
	}

	if _, err := runtime.LoadFileFromFS(fsys, "scripts/bad.lua"); err == nil {
		t.Error("expected compile error")
	}
	if _, err := runtime.LoadFileFromFS(fsys, "scripts/none.lua"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSetAndGetGlobal(t *testing.T) {
	runtime := newTestRuntime(t)

	runtime.SetGlobal("answer", rt.IntValue(42))
	if n, ok := rt.ToInt(runtime.GetGlobal("answer")); !ok || n != 42 {
		t.Errorf("GetGlobal(answer) = %v", runtime.GetGlobal("answer"))
	}

	result, err := runtime.ExecuteString("read", "return answer + 1")
	if err != nil {
		t.Fatalf("ExecuteString() error = %v", err)
	}
	if n, _ := rt.ToInt(result); n != 43 {
		t.Errorf("expected 43, got %v", result)
	}
}

func TestSetGoFunction(t *testing.T) {
	runtime := newTestRuntime(t)

	runtime.SetGoFunction("double", func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		n, err := c.IntArg(0)
		if err != nil {
			return nil, err
		}
		return c.PushingNext1(t.Runtime, rt.IntValue(n*2)), nil
	}, 1, false)

	result, err := runtime.ExecuteString("call", "return double(21)")
	if err != nil {
		t.Fatalf("ExecuteString() error = %v", err)
	}
	if n, _ := rt.ToInt(result); n != 42 {
		t.Errorf("expected 42, got %v", result)
	}
}

func TestCallFunction(t *testing.T) {
	runtime := newTestRuntime(t)

	if _, err := runtime.ExecuteString("define", "function add(a, b) return a + b end"); err != nil {
		t.Fatalf("ExecuteString() error = %v", err)
	}

	result, err := runtime.CallFunction("add", rt.IntValue(2), rt.IntValue(3))
	if err != nil {
		t.Fatalf("CallFunction() error = %v", err)
	}
	if n, _ := rt.ToInt(result); n != 5 {
		t.Errorf("expected 5, got %v", result)
	}

	if _, err := runtime.CallFunction("missing"); err == nil {
		t.Error("expected error for missing function")
	}
}

func TestOutput(t *testing.T) {
	runtime := newTestRuntime(t)

	if _, err := runtime.ExecuteString("print", `print("a") print("b")`); err != nil {
		t.Fatalf("ExecuteString() error = %v", err)
	}
	if runtime.Output() != "a\nb\n" {
		t.Errorf("Output() = %q", runtime.Output())
	}

	runtime.ClearOutput()
	if runtime.Output() != "" {
		t.Errorf("Output() after clear = %q", runtime.Output())
	}
}

func TestConfig(t *testing.T) {
	config := RuntimeConfig{CPULimit: 123, MemoryLimit: 456}
	runtime, err := New(config)
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	defer runtime.Close()

	if got := runtime.Config(); got.CPULimit != 123 || got.MemoryLimit != 456 {
		t.Errorf("Config() = %+v", got)
	}
}

func TestClose(t *testing.T) {
	runtime, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	if err := runtime.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	// Closing twice is harmless.
	if err := runtime.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestResourceLimits(t *testing.T) {
	runtime, err := New(RuntimeConfig{
		CPULimit:    100, // Very low limit
		MemoryLimit: 1 * 1024 * 1024,
	})
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	defer runtime.Close()

	code := `
		local sum = 0
		for i = 1, 100000 do
			sum = sum + i
		end
		return sum
	`

	_, err = runtime.ExecuteString("heavy", code)
	if !errors.Is(err, ErrResourceLimit) {
		t.Fatalf("expected ErrResourceLimit, got %v", err)
	}
	if !strings.Contains(err.Error(), "Lua execution error") {
		t.Errorf("error = %q", err)
	}
}

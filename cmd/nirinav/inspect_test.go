package main

import (
	"errors"
	"strings"
	"testing"
)

type fakeInspectClient struct {
	calls int
	err   error
}

func (f *fakeInspectClient) Inspect() error {
	f.calls++
	return f.err
}

func TestNewInspectCmdPanicsWhenClientIsNil(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic, got nil")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected panic message as string, got %T", r)
		}
		if !strings.Contains(msg, "client dependency cannot be nil") {
			t.Fatalf("expected panic message to mention nil dependency, got %q", msg)
		}
	}()

	NewInspectCmd(nil)
}

func TestInspectCmdRunEStartsViewer(t *testing.T) {
	client := &fakeInspectClient{}
	cmd := NewInspectCmd(client)

	err := cmd.RunE(cmd, []string{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected Inspect to be called once, got %d", client.calls)
	}
}

func TestInspectCmdRunEPropagatesError(t *testing.T) {
	expectedErr := errors.New("no terminal")
	client := &fakeInspectClient{err: expectedErr}
	cmd := NewInspectCmd(client)

	err := cmd.RunE(cmd, []string{})
	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected %v, got %v", expectedErr, err)
	}
}

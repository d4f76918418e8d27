package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nirinav/nirinav/internal/nav"
	"github.com/nirinav/nirinav/internal/resolver"
)

type fakeCloseClient struct {
	calls      int
	captured   nav.WindowID
	resolution *resolver.Resolution
	err        error
}

func (f *fakeCloseClient) Close(ctx context.Context, window nav.WindowID) (*resolver.Resolution, error) {
	f.calls++
	f.captured = window
	if f.err != nil {
		return nil, f.err
	}
	return f.resolution, nil
}

func editorClose() *resolver.Resolution {
	return &resolver.Resolution{
		Layer: resolver.LayerEditor,
		Path: []resolver.Step{
			{Layer: resolver.LayerEditor, Decision: nav.Move},
		},
	}
}

func TestNewCloseCmdPanicsWhenClientIsNil(t *testing.T) {
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

	NewCloseCmd(nil)
}

func TestCloseCmdRunEDefaultsToFocusedWindow(t *testing.T) {
	client := &fakeCloseClient{resolution: editorClose()}
	cmd := NewCloseCmd(client)

	err := cmd.RunE(cmd, []string{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected Close to be called once, got %d", client.calls)
	}
	if client.captured != 0 {
		t.Fatalf("expected window 0 by default, got %d", client.captured)
	}
}

func TestCloseCmdRunEWindowFlag(t *testing.T) {
	client := &fakeCloseClient{resolution: editorClose()}
	cmd := NewCloseCmd(client)
	setFlag(t, cmd, "window", "7")

	err := cmd.RunE(cmd, []string{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if client.captured != 7 {
		t.Fatalf("expected window 7, got %d", client.captured)
	}
}

func TestCloseCmdRunEPropagatesError(t *testing.T) {
	expectedErr := errors.New("compositor unreachable")
	client := &fakeCloseClient{err: expectedErr}
	cmd := NewCloseCmd(client)

	err := cmd.RunE(cmd, []string{})
	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected %v, got %v", expectedErr, err)
	}
	if client.calls != 1 {
		t.Fatalf("expected Close to be called once, got %d", client.calls)
	}
}

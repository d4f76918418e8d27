package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nirinav/nirinav/internal/launch"
)

type fakeEnvClient struct {
	harvest *launch.Harvest
	err     error
}

func (f *fakeEnvClient) HarvestEnv(ctx context.Context) (*launch.Harvest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.harvest, nil
}

func TestNewEnvCmdPanicsWhenClientIsNil(t *testing.T) {
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

	NewEnvCmd(nil)
}

func TestEnvCmdRunEPrintsSortedVariables(t *testing.T) {
	client := &fakeEnvClient{harvest: &launch.Harvest{
		Env: map[string]string{
			"ZDOTDIR":   "/home/u/.zsh",
			"CARGO_DIR": "/home/u/.cargo",
		},
		Cwd: "/home/u/project",
	}}
	cmd := NewEnvCmd(client)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	err := cmd.RunE(cmd, []string{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := "CARGO_DIR=\"/home/u/.cargo\"\nZDOTDIR=\"/home/u/.zsh\"\ncwd=\"/home/u/project\"\n"
	if output.String() != expected {
		t.Fatalf("expected output %q, got %q", expected, output.String())
	}
}

func TestEnvCmdRunEOmitsEmptyCwd(t *testing.T) {
	client := &fakeEnvClient{harvest: &launch.Harvest{
		Env: map[string]string{"EDITOR": "nvim"},
	}}
	cmd := NewEnvCmd(client)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	err := cmd.RunE(cmd, []string{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(output.String(), "cwd=") {
		t.Fatalf("expected no cwd line, got %q", output.String())
	}
}

func TestEnvCmdRunEPropagatesError(t *testing.T) {
	expectedErr := errors.New("compositor unreachable")
	client := &fakeEnvClient{err: expectedErr}
	cmd := NewEnvCmd(client)

	err := cmd.RunE(cmd, []string{})
	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected %v, got %v", expectedErr, err)
	}
}

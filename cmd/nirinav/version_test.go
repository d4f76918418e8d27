package main

import (
	"bytes"
	"strings"
	"testing"
)

type fakeVersionClient struct {
	version string
}

func (f *fakeVersionClient) Version() string {
	return f.version
}

func TestNewVersionCmdPanicsWhenClientIsNil(t *testing.T) {
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

	NewVersionCmd(nil)
}

func TestVersionCmdRunEPrintsVersion(t *testing.T) {
	client := &fakeVersionClient{version: "1.2.3+abc1234"}
	cmd := NewVersionCmd(client)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	err := cmd.RunE(cmd, []string{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	expected := "nirinav version 1.2.3+abc1234\n"
	if output.String() != expected {
		t.Fatalf("expected %q, got %q", expected, output.String())
	}
}

package nav

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Direction
		wantErr bool
	}{
		{name: "left", input: "left", want: Left},
		{name: "right", input: "right", want: Right},
		{name: "up", input: "up", want: Up},
		{name: "down", input: "down", want: Down},
		{name: "empty", input: "", wantErr: true},
		{name: "uppercase is rejected", input: "Left", wantErr: true},
		{name: "unknown word", input: "north", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid direction")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectionHorizontal(t *testing.T) {
	assert.True(t, Left.Horizontal())
	assert.True(t, Right.Horizontal())
	assert.False(t, Up.Horizontal())
	assert.False(t, Down.Horizontal())
}

func TestDecisionEscalates(t *testing.T) {
	assert.False(t, Move.Escalates())
	assert.True(t, Boundary.Escalates())
	assert.True(t, Unavailable.Escalates())
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "move", Move.String())
	assert.Equal(t, "boundary", Boundary.String())
	assert.Equal(t, "unavailable", Unavailable.String())
	assert.Equal(t, "unknown", Decision(42).String())
}

type fakeNetError struct {
	timeout bool
}

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil stays nil", err: nil, want: nil},
		{name: "connection sentinel kept", err: fmt.Errorf("dial: %w", ErrConnection), want: ErrConnection},
		{name: "timeout sentinel kept", err: fmt.Errorf("wait: %w", ErrTimeout), want: ErrTimeout},
		{name: "protocol sentinel kept", err: fmt.Errorf("decode: %w", ErrProtocol), want: ErrProtocol},
		{name: "context deadline", err: context.DeadlineExceeded, want: ErrTimeout},
		{name: "wrapped context deadline", err: fmt.Errorf("roundtrip: %w", context.DeadlineExceeded), want: ErrTimeout},
		{name: "os deadline", err: os.ErrDeadlineExceeded, want: ErrTimeout},
		{name: "missing socket file", err: fmt.Errorf("stat: %w", os.ErrNotExist), want: ErrConnection},
		{name: "net timeout", err: &fakeNetError{timeout: true}, want: ErrTimeout},
		{name: "net failure", err: &fakeNetError{timeout: false}, want: ErrConnection},
		{name: "op error", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: ErrConnection},
		{name: "anything else is protocol", err: errors.New("unexpected token"), want: ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestKindName(t *testing.T) {
	assert.Equal(t, "ok", KindName(nil))
	assert.Equal(t, "connection", KindName(ErrConnection))
	assert.Equal(t, "timeout", KindName(context.DeadlineExceeded))
	assert.Equal(t, "protocol", KindName(errors.New("garbage")))
}

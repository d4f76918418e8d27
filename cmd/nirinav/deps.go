package main

import (
	"context"
	"fmt"

	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/config"
	"github.com/nirinav/nirinav/internal/doctor"
	"github.com/nirinav/nirinav/internal/inspect"
	"github.com/nirinav/nirinav/internal/kitty"
	"github.com/nirinav/nirinav/internal/launch"
	"github.com/nirinav/nirinav/internal/nav"
	"github.com/nirinav/nirinav/internal/nvim"
	"github.com/nirinav/nirinav/internal/resolver"
	"github.com/nirinav/nirinav/internal/tmux"
	"github.com/nirinav/nirinav/internal/version"
)

// app implements the narrow client interfaces the commands declare. Layer
// clients are built per invocation so every run picks up the configuration
// the root command loaded.
type app struct{}

var appClient = &app{}

func compositorClient() *compositor.Client {
	opts := []compositor.ClientOption{compositor.WithTimeout(config.ProbeTimeout())}
	if socket := config.Get("compositor_socket", ""); socket != "" {
		opts = append(opts, compositor.WithSocketPath(socket))
	}
	return compositor.NewClient(opts...)
}

// terminalClient opens the remote control socket of the terminal instance
// behind window.
func terminalClient(window *compositor.Window) (*kitty.Client, error) {
	if window.Pid() == 0 {
		return nil, fmt.Errorf("terminal window %d has no pid", window.ID)
	}
	template := config.Get("terminal_socket_template", kitty.DefaultSocketTemplate)
	socket := kitty.ExpandSocketTemplate(template, window.Pid())
	return kitty.NewClient(socket, kitty.WithTimeout(config.ProbeTimeout())), nil
}

func multiplexerProbe(target tmux.Target) *tmux.Probe {
	runner := tmux.NewDefaultClient(target.SocketPath, tmux.WithTimeout(config.ProbeTimeout()))
	return tmux.NewProbe(runner, target)
}

func editorSession(ctx context.Context, pid int) (nvim.Session, error) {
	template := config.Get("editor_socket_template", nvim.DefaultSocketTemplate)
	socket := nvim.ExpandSocketTemplate(template, pid)
	return nvim.Dial(ctx, socket, config.ProbeTimeout())
}

func classifyConfig() resolver.Config {
	return resolver.Config{
		TerminalAppIDs:      config.GetList("terminal_app_ids", nil),
		EditorAppIDs:        config.GetList("editor_app_ids", nil),
		EditorCommands:      config.GetList("editor_commands", nil),
		MultiplexerCommands: config.GetList("multiplexer_commands", nil),
	}
}

func newResolver() *resolver.Resolver {
	terminal := func(ctx context.Context, window *compositor.Window) (resolver.TerminalProbe, error) {
		return terminalClient(window)
	}
	multiplexer := func(ctx context.Context, target tmux.Target) (resolver.MultiplexerProbe, error) {
		return multiplexerProbe(target), nil
	}
	editor := func(ctx context.Context, pid int) (resolver.EditorProbe, error) {
		session, err := editorSession(ctx, pid)
		if err != nil {
			return nil, err
		}
		return nvim.NewProbe(session), nil
	}
	return resolver.New(compositorClient(), terminal, multiplexer, editor, classifyConfig())
}

func newLauncher() *launch.Launcher {
	terminal := func(ctx context.Context, window *compositor.Window) (launch.Terminal, error) {
		return terminalClient(window)
	}
	cfg := launch.Config{
		TerminalAppIDs:  config.GetList("terminal_app_ids", nil),
		EditorCommands:  config.GetList("editor_commands", nil),
		TerminalCommand: config.Get("terminal_command", "kitty"),
		EditorCommand:   config.Get("editor_command", "neovide"),
	}
	return launch.New(compositorClient(), terminal, cfg)
}

func newDoctor() *doctor.Doctor {
	terminal := func(ctx context.Context, window *compositor.Window) (doctor.Terminal, error) {
		return terminalClient(window)
	}
	multiplexer := func(ctx context.Context, target tmux.Target) (doctor.Multiplexer, error) {
		return multiplexerProbe(target), nil
	}
	editor := func(ctx context.Context, pid int) (doctor.Editor, error) {
		session, err := editorSession(ctx, pid)
		if err != nil {
			return nil, err
		}
		return nvim.NewProbe(session), nil
	}
	cfg := doctor.Config{
		TerminalAppIDs:      config.GetList("terminal_app_ids", nil),
		EditorAppIDs:        config.GetList("editor_app_ids", nil),
		EditorCommands:      config.GetList("editor_commands", nil),
		MultiplexerCommands: config.GetList("multiplexer_commands", nil),
	}
	return doctor.New(compositorClient(), terminal, multiplexer, editor, cfg)
}

func (a *app) Switch(ctx context.Context, req nav.Request) (*resolver.Resolution, error) {
	return newResolver().Switch(ctx, req)
}

func (a *app) Close(ctx context.Context, window nav.WindowID) (*resolver.Resolution, error) {
	return newResolver().Close(ctx, window)
}

func (a *app) LaunchTerminal(ctx context.Context) error {
	return newLauncher().Terminal(ctx)
}

func (a *app) LaunchEditor(ctx context.Context) error {
	return newLauncher().Editor(ctx)
}

func (a *app) HarvestEnv(ctx context.Context) (*launch.Harvest, error) {
	return newLauncher().Harvest(ctx)
}

func (a *app) Diagnose(ctx context.Context) []doctor.Check {
	return newDoctor().Run(ctx)
}

func (a *app) Inspect() error {
	return inspect.Run(compositorClient(), nil)
}

func (a *app) Version() string {
	return version.String()
}

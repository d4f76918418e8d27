// Package kitty implements the terminal layer: a client for kitty's remote
// control socket, and the navigation probe built on top of it.
package kitty

import (
	"os"
	"strconv"
	"strings"
)

// DefaultSocketTemplate locates the per-instance control socket. kitty is
// started with `--listen-on unix:${XDG_RUNTIME_DIR}/kitty-{pid}` so the path
// derives from the environment and the instance pid.
const DefaultSocketTemplate = "${XDG_RUNTIME_DIR}/kitty-{pid}"

// ExpandSocketTemplate resolves a socket path template: ${VAR} expands from
// the environment, {pid} expands to the given pid.
func ExpandSocketTemplate(template string, pid int) string {
	path := os.Expand(template, os.Getenv)
	return strings.ReplaceAll(path, "{pid}", strconv.Itoa(pid))
}

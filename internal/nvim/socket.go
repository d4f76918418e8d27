// Package nvim implements the editor layer: a msgpack-rpc session with a
// running nvim instance and the window navigation probe built on top of it.
package nvim

import (
	"os"
	"strconv"
	"strings"
)

// DefaultSocketTemplate locates the rpc socket nvim creates on startup,
// derived from the environment and the instance pid.
const DefaultSocketTemplate = "${XDG_RUNTIME_DIR}/nvim.{pid}.0"

// ExpandSocketTemplate resolves a socket path template: ${VAR} expands from
// the environment, {pid} expands to the given pid.
func ExpandSocketTemplate(template string, pid int) string {
	path := os.Expand(template, os.Getenv)
	return strings.ReplaceAll(path, "{pid}", strconv.Itoa(pid))
}

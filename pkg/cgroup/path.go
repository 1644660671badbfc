package cgroup

import (
	"path/filepath"
	"strconv"
)

// V1Dir is the per-process directory of one v1 subsystem: <root>/<subsystem>/<app>/<id>
func V1Dir(root, subsystem, app, id string) string {
	return filepath.Join(root, subsystem, app, id)
}

// V2Dir is the unified per-process directory: <root>/<app>-<id>.scope
func V2Dir(root, app, id string) string {
	return filepath.Join(root, app+"-"+id+".scope")
}

func pidString(pid int) string {
	return strconv.Itoa(pid)
}

package cgroup

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

// removeDir removes a single cgroup directory; replaced in tests since a
// plain directory holding control files cannot be removed by rmdir.
var removeDir = os.Remove

func readFile(p string) ([]byte, error) {
	data, err := os.ReadFile(p)
	for err != nil && errors.Is(err, syscall.EINTR) {
		data, err = os.ReadFile(p)
	}
	return data, err
}

func writeFile(p string, content []byte, perm fs.FileMode) error {
	err := os.WriteFile(p, content, perm)
	for err != nil && errors.Is(err, syscall.EINTR) {
		err = os.WriteFile(p, content, perm)
	}
	return err
}

func readDirNames(p string) ([]string, error) {
	entries, err := os.ReadDir(p)
	for err != nil && errors.Is(err, syscall.EINTR) {
		entries, err = os.ReadDir(p)
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// hasEntry lists the directory and reports whether name is one of its entries
func hasEntry(dir, name string) (bool, error) {
	names, err := readDirNames(dir)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ReadProcesses reads cgroup.procs, one pid per line
func ReadProcesses(p string) ([]int, error) {
	b, err := readFile(p)
	if err != nil {
		return nil, err
	}
	return parseProcesses(b)
}

func parseProcesses(b []byte) ([]int, error) {
	var rt []int
	s := bufio.NewScanner(bytes.NewReader(b))
	for s.Scan() {
		l := strings.TrimSpace(s.Text())
		if l == "" {
			continue
		}
		pid, err := strconv.Atoi(l)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", cgroupProcs)
		}
		rt = append(rt, pid)
	}
	return rt, s.Err()
}

// parseFields splits the space separated controller list (cgroup.controllers, cgroup.subtree_control)
func parseFields(b []byte) map[string]bool {
	m := make(map[string]bool)
	for _, f := range strings.Fields(string(b)) {
		m[f] = true
	}
	return m
}

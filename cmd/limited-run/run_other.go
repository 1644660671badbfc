//go:build !linux

package main

import (
	"github.com/criyle/limited-run/pkg/config"
	"github.com/criyle/limited-run/pkg/limit"
	"github.com/criyle/limited-run/pkg/logger"
	"github.com/pkg/errors"
)

func execute(log logger.Logger, conf *config.Config, req limit.Request) error {
	return errors.New("cgroup limits are only available on linux")
}

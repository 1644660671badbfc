package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/criyle/limited-run/pkg/cgroup"
	"github.com/criyle/limited-run/pkg/config"
	"github.com/criyle/limited-run/pkg/limit"
	"github.com/criyle/limited-run/pkg/logger"
	"github.com/criyle/limited-run/pkg/supervisor"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// errNotRoot is returned when limited-run is not started with euid 0
var errNotRoot = errors.New("must be run as root")

// execute probes the host, builds the controller and supervises the command
func execute(log logger.Logger, conf *config.Config, req limit.Request) error {
	if os.Geteuid() != 0 {
		return errNotRoot
	}

	info, err := cgroup.Probe()
	if err != nil {
		return err
	}
	log.Infof("cgroup: %v", info)

	ctrl, err := cgroup.New(info, conf.CgroupOptions())
	if err != nil {
		return err
	}
	log.Debugf("cgroup: using %v controller", ctrl.Version())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, err := supervisor.New(ctrl, info, conf.SupervisorOptions()).Run(ctx, req)
	if err != nil {
		return err
	}
	log.Infof("%v", r)
	if r.ExitStatus != 0 {
		return cli.NewExitError("", r.ExitStatus)
	}
	return nil
}

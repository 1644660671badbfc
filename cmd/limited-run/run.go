package main

import (
	"fmt"
	"strings"

	"github.com/criyle/limited-run/pkg/cgroup"
	"github.com/criyle/limited-run/pkg/config"
	"github.com/criyle/limited-run/pkg/limit"
	"github.com/criyle/limited-run/pkg/logger"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/urfave/cli"
)

func run(c *cli.Context) error {
	req, err := buildRequest(c.Float64("cpus"), c.IsSet("cpus"), c.String("memory"), c.IsSet("memory"), c.Args())
	if err != nil {
		return err
	}

	conf, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if l := c.String("log-level"); l != "" {
		conf.Log.Level = l
	}
	log := logger.New(conf.LoggerConfig())
	log.Debugf("config: %+v", *conf)

	if req.HasCPU() {
		warnCPUCount(log, req.CPUShare)
	}
	if req.HasMemory() {
		warnMemoryTotal(log, req.Memory)
	}

	if c.Bool("dry-run") {
		return dryRun(conf, req)
	}

	return execute(log, conf, req)
}

// buildRequest validates the command line into a request
func buildRequest(cpus float64, cpusSet bool, memory string, memorySet bool, args []string) (limit.Request, error) {
	req := limit.Request{Command: args}
	if cpusSet {
		if err := limit.ValidateCPUShare(cpus); err != nil {
			return limit.Request{}, errors.Wrap(err, "--cpus")
		}
		req.CPUShare = cpus
	}
	if memorySet {
		if err := req.Memory.Set(memory); err != nil {
			return limit.Request{}, errors.Wrap(err, "--memory")
		}
	}
	if err := req.Validate(); err != nil {
		return limit.Request{}, err
	}
	return req, nil
}

// warnCPUCount only warns, the kernel accepts a quota above the CPU count
func warnCPUCount(log logger.Logger, share float64) {
	n, err := cpu.Counts(true)
	if err != nil {
		log.Debugf("cpu count: %v", err)
		return
	}
	if share > float64(n) {
		log.Warnf("--cpus %v exceeds the %d logical CPUs of this host", share, n)
	}
}

func warnMemoryTotal(log logger.Logger, size limit.Size) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Debugf("memory total: %v", err)
		return
	}
	if size.Byte() > vm.Total {
		log.Warnf("--memory %v (%s) exceeds the %d bytes of memory of this host", size, size.Human(), vm.Total)
	}
}

func dryRun(conf *config.Config, req limit.Request) error {
	fmt.Println(req)

	v := cgroup.VersionUnknown
	info, err := cgroup.Probe()
	if err == nil {
		v = info.RootVersion
		fmt.Println(info)
		if err := cgroup.CheckRequest(info, conf.Cgroup.V2Limits, req.HasCPU(), req.HasMemory()); err != nil {
			fmt.Println("would fail:", err)
		}
	} else {
		fmt.Println("probe:", err)
	}

	dirs := conf.CgroupOptions().Dirs(v, "<pid>", req.HasCPU(), req.HasMemory())
	if len(dirs) > 0 {
		fmt.Printf("cgroups (%v):\n  %s\n", v, strings.Join(dirs, "\n  "))
	}
	return nil
}

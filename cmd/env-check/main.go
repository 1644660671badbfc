// Command env-check prints what limited-run would find on this host: the
// supported cgroup versions, the root hierarchy and whether cpu limits work.
package main

import (
	"fmt"
	"os"

	"github.com/criyle/limited-run/pkg/cgroup"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "env-check"
	app.Usage = "print the cgroup support of this host"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "root",
			Value: "/sys/fs/cgroup",
			Usage: "cgroup mount point",
		},
	}
	app.Action = check

	if err := app.Run(os.Args); err != nil {
		cli.HandleExitCoder(cli.NewExitError("env-check: "+err.Error(), 1))
	}
}

func check(c *cli.Context) error {
	root := c.String("root")
	info, err := (&cgroup.Prober{Root: root}).Probe()
	if err != nil {
		return err
	}

	fmt.Printf("cgroup v1:    %v\n", info.SupportsV1)
	fmt.Printf("cgroup v2:    %v\n", info.SupportsV2)
	fmt.Printf("root version: %v\n", info.RootVersion)
	fmt.Printf("cpu control:  %v\n", info.SupportsCPUControl)

	if v, err := cgroup.DetectMountType(root); err != nil {
		fmt.Printf("mount type:   %v\n", err)
	} else {
		fmt.Printf("mount type:   %v\n", v)
		if info.RootVersion != cgroup.VersionUnknown && v != info.RootVersion {
			fmt.Printf("warning: %s is mounted as %v but probed as %v\n", root, v, info.RootVersion)
		}
	}

	if k, err := host.KernelVersion(); err == nil {
		fmt.Printf("kernel:       %s\n", k)
	}
	if n, err := cpu.Counts(true); err == nil {
		fmt.Printf("logical cpus: %d\n", n)
	}
	return nil
}

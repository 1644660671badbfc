// Command limited-run runs a command with its CPU and memory confined by a
// per-process cgroup, and removes the cgroup once the command is gone.
//
//	limited-run --cpus 0.5 -m 256m -- make -j4
package main

import (
	"os"

	"github.com/urfave/cli"
)

const usage = `run a command under cgroup cpu / memory limits

   The command is killed on SIGINT / SIGTERM. The exit status is the one of
   the command, 128 + signal if it was signalled, or 1 if it could not be
   set up.`

func main() {
	app := cli.NewApp()
	app.Name = "limited-run"
	app.Usage = usage
	app.UsageText = "limited-run [options] -- command [args...]"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.Float64Flag{
			Name:  "cpus",
			Usage: "number of CPUs the command may use, e.g. 0.5 (> 0.01)",
		},
		cli.StringFlag{
			Name:  "memory, m",
			Usage: "memory limit as <digits><k|m|g>, e.g. 256m",
		},
		cli.StringFlag{
			Name:   "config",
			Usage:  "configuration file",
			EnvVar: "LIMITRUN_CONFIG",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error, overrides the configuration",
		},
		cli.BoolFlag{
			Name:  "dry-run",
			Usage: "print the request and the cgroup directories without running anything",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		cli.HandleExitCoder(cli.NewExitError("limited-run: "+err.Error(), 1))
	}
}

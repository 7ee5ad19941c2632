package main

import (
	"log/slog"
	"strings"

	"textpix/convert"
	"textpix/gen"
	"textpix/parallel"

	"github.com/alecthomas/kong"
)

type cli struct {
	Convert convert.CLICmd `cmd:"" help:"Convert between text pixmaps and binary raster images"`
	Gen     gen.CLICmd     `cmd:"" help:"Draw an image procedurally"`
	Workers int            `help:"Worker count for batch commands, 0 for all CPUs" default:"0"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("textpix"),
		kong.Description("Build, convert and compose text-format pixmaps"))

	cmd := kctx.Command()
	slog.Info("running", "cmd", cmd)

	var err error
	switch {
	case strings.HasPrefix(cmd, "convert "):
		pool := parallel.Start(c.Workers)
		err = c.Convert.Run(strings.TrimPrefix(cmd, "convert "), pool.Do, pool.Wait)
	case cmd == "gen":
		err = c.Gen.Run()
	}

	if err != nil {
		slog.Error("command failed", "cmd", cmd, "error", err)
		kctx.Exit(1)
	}
}

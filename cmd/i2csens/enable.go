package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mistra/i2csens/cmd/i2csens/console"
)

var enableCmd = cli.Command{
	Name:  "enable",
	Usage: "read or toggle the sensor enable bit",
	Subcommands: cli.Commands{
		&enableGetCmd,
		&enableSetCmd,
	},
}

var enableGetCmd = cli.Command{
	Name: "get",
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, err := bindDevice(ctx, c)
		if err != nil {
			return console.Exit(1, "could not bind device: %s", console.Red(err))
		}
		defer func() { _ = dev.Unbind(ctx) }()
		state, err := dev.Attrs.Read(ctx, "enable")
		if err != nil {
			return console.Exit(1, "error reading enable attribute: %s", console.Red(err))
		}
		console.Printf("%s %s\n", console.PictoPlug, console.White(strings.TrimSpace(state)))
		return nil
	},
}

var enableSetCmd = cli.Command{
	Name:      "set",
	ArgsUsage: "<0|1>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		value := c.Args().First()
		if value == "" {
			return console.Exit(1, "missing enable value (0 or 1)")
		}
		if !c.Bool("yes") {
			answer, err := console.YesOrNo("toggle sensor enable bit?")
			if err != nil {
				return console.Exit(1, "prompt error: %s", console.Red(err))
			}
			if answer != console.Yes {
				console.Info("aborted")
				return nil
			}
		}
		dev, err := bindDevice(ctx, c)
		if err != nil {
			return console.Exit(1, "could not bind device: %s", console.Red(err))
		}
		defer func() { _ = dev.Unbind(ctx) }()
		err = dev.Attrs.Write(ctx, "enable", value)
		if err != nil {
			return console.Exit(1, "error writing enable attribute: %s", console.Red(err))
		}
		state, err := dev.Attrs.Read(ctx, "enable")
		if err != nil {
			return console.Exit(1, "error reading enable attribute back: %s", console.Red(err))
		}
		console.Printf("%s %s\n", console.PictoPlug, console.White(strings.TrimSpace(state)))
		return nil
	},
}

package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mistra/i2csens/cmd/i2csens/console"
)

var probeCmd = cli.Command{
	Name:  "probe",
	Usage: "bind the configured device and list its attributes",
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, err := bindDevice(ctx, c)
		if err != nil {
			return console.Exit(1, "could not bind device: %s", console.Red(err))
		}
		defer func() { _ = dev.Unbind(ctx) }()
		console.PInfof(console.PictoPin, "device %s bound (compatible %s)", console.White(dev.Info.Name), console.White(dev.Info.Compatible))
		names := dev.Attrs.Names()
		if len(names) == 0 {
			console.Warn("device has no exposed attributes")
			return nil
		}
		console.Infof("attributes: %s", console.White(strings.Join(names, ", ")))
		return nil
	},
}

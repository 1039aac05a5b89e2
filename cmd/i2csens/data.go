package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mistra/i2csens/cmd/i2csens/console"
)

var dataCmd = cli.Command{
	Name:    "data",
	Aliases: []string{"temp"},
	Usage:   "read the sensor data register as a temperature",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "milli", Usage: "print raw milli-degree value"},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		dev, err := bindDevice(ctx, c)
		if err != nil {
			return console.Exit(1, "could not bind device: %s", console.Red(err))
		}
		defer func() { _ = dev.Unbind(ctx) }()
		raw, err := dev.Attrs.Read(ctx, "data")
		if err != nil {
			return console.Exit(1, "error getting temperature read: %s", console.Red(err))
		}
		value := strings.TrimSpace(raw)
		if c.Bool("milli") {
			console.Printf("%s %s\n", console.PictoThermometer, console.White(value))
			return nil
		}
		milli, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return console.Exit(1, "unexpected attribute value %q: %s", value, console.Red(err))
		}
		console.Printf("%s %s\n", console.PictoThermometer, console.White(float64(milli)/1000))
		return nil
	},
}

package attr

import (
	"context"
	"fmt"

	"github.com/mistra/i2csens/sensor"
)

// Enable builds the read/write "enable" attribute of an i2csens sensor.
// Reads render the enable bit as "0\n" or "1\n"; writes parse a leading
// integer, any non-zero value enabling the sensor. Trailing bytes after the
// integer are ignored, matching the sysfs store behavior of the device.
func Enable(s *sensor.Sensor) Attribute {
	return Attribute{
		Name: "enable",
		Read: func(ctx context.Context) (string, error) {
			enabled, err := s.Enabled(ctx)
			if err != nil {
				return "", err
			}
			if enabled {
				return "1\n", nil
			}
			return "0\n", nil
		},
		Write: func(ctx context.Context, data string) error {
			var enable int
			_, err := fmt.Sscanf(data, "%d", &enable)
			if err != nil {
				return fmt.Errorf("attr: could not parse enable value %q: %w", data, err)
			}
			return s.SetEnabled(ctx, enable != 0)
		},
	}
}

// Data builds the read-only "data" attribute exposing the temperature in
// milli-degrees followed by a newline.
func Data(s *sensor.Sensor) Attribute {
	return Attribute{
		Name: "data",
		Read: func(ctx context.Context) (string, error) {
			milli, err := s.TemperatureMilli(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d\n", milli), nil
		},
	}
}

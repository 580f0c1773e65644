package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Angle is an angle in radians. In YAML it is written either as radians
// (0.785) or with a degree suffix ("45deg").
type Angle float32

func Degrees(d float64) Angle {
	return Angle(d * math.Pi / 180)
}

func (a Angle) Degrees() float32 {
	return float32(float64(a) * 180 / math.Pi)
}

func (a Angle) String() string {
	return strconv.FormatFloat(float64(a.Degrees()), 'f', -1, 32) + "deg"
}

func (a *Angle) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("angle must be a scalar, line %d", value.Line)
	}
	s := strings.TrimSpace(value.Value)
	if deg, ok := strings.CutSuffix(s, "deg"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(deg), 64)
		if err != nil {
			return fmt.Errorf("invalid angle %q, line %d", value.Value, value.Line)
		}
		*a = Degrees(v)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid angle %q, line %d", value.Value, value.Line)
	}
	*a = Angle(v)
	return nil
}

func (a Angle) MarshalYAML() (any, error) {
	return a.String(), nil
}

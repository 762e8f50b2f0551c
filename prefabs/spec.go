package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/easekit/common"
	"github.com/milk9111/easekit/curve"
	"github.com/milk9111/easekit/modal"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntitySpec is one node of a prefab tree. Components are decoded by the
// entity builders, keyed by component name.
type EntitySpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
	Children   []EntitySpec   `yaml:"children"`
}

func LoadStageSpec() (EntitySpec, error) {
	return LoadSpec[EntitySpec]("stage.yaml")
}

type ModalSpec struct {
	Name       string       `yaml:"name"`
	OpenStyle  modal.Style  `yaml:"open_style"`
	CloseStyle modal.Style  `yaml:"close_style"`
	Curve      *curve.Curve `yaml:"curve"`
	Duration   float64      `yaml:"duration"`
	UseScroll  bool         `yaml:"use_scroll"`
	StartOpen  bool         `yaml:"start_open"`
	// Scroll names an entity inside Panel.
	Scroll string `yaml:"scroll"`
	// Trigger is the button that opens the modal. It lives outside Panel.
	Trigger EntitySpec `yaml:"trigger"`
	Panel   EntitySpec `yaml:"panel"`
}

func LoadModalSpec() (ModalSpec, error) {
	return LoadSpec[ModalSpec]("modal.yaml")
}

type LoadingScreenSpec struct {
	Name      string       `yaml:"name"`
	Curve     *curve.Curve `yaml:"curve"`
	OpenCurve *curve.Curve `yaml:"open_curve"`
	Duration  float64      `yaml:"duration"`
	Hints     []string     `yaml:"hints"`
	// Background, Content, Hint and Progress name entities inside Root.
	Background string     `yaml:"background"`
	Content    string     `yaml:"content"`
	Hint       string     `yaml:"hint"`
	Progress   string     `yaml:"progress"`
	Root       EntitySpec `yaml:"root"`
}

func LoadLoadingScreenSpec() (LoadingScreenSpec, error) {
	return LoadSpec[LoadingScreenSpec]("loading_screen.yaml")
}

type ShakeSpec struct {
	Duration float64      `yaml:"duration"`
	Strength float64      `yaml:"strength"`
	Curve    *curve.Curve `yaml:"curve"`
}

type CameraSpec struct {
	Name         string       `yaml:"name"`
	Position     common.Vec3  `yaml:"position"`
	Offset       common.Vec3  `yaml:"offset"`
	Zoom         float64      `yaml:"zoom"`
	MoveDuration float64      `yaml:"move_duration"`
	MoveCurve    *curve.Curve `yaml:"move_curve"`
	Shake        ShakeSpec    `yaml:"shake"`
	Seed         uint64       `yaml:"seed"`
}

func LoadCameraSpec() (CameraSpec, error) {
	return LoadSpec[CameraSpec]("camera.yaml")
}

// CurveLibrary is a named set of curves shared by scripts and the CLI.
type CurveLibrary struct {
	Curves map[string]*curve.Curve `yaml:"curves"`
}

func LoadCurveLibrary() (CurveLibrary, error) {
	return LoadSpec[CurveLibrary]("curves.yaml")
}

// Lookup resolves name from the library first, then from the presets.
func (l CurveLibrary) Lookup(name string) (*curve.Curve, error) {
	if c, ok := l.Curves[name]; ok && c != nil {
		return c, nil
	}
	return curve.Preset(name)
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.RGBA = parsed
	return nil
}

func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	var out color.RGBA
	var err error
	if out.R, err = parse(0); err != nil {
		return color.RGBA{}, err
	}
	if out.G, err = parse(2); err != nil {
		return color.RGBA{}, err
	}
	if out.B, err = parse(4); err != nil {
		return color.RGBA{}, err
	}
	out.A = 255
	if len(hex) == 8 {
		if out.A, err = parse(6); err != nil {
			return color.RGBA{}, err
		}
	}
	return out, nil
}

package tooltier

import (
	"errors"
	"fmt"
	"strings"
)

// RawTool is a tool identifier as it appears in toolset definitions.
type RawTool string

const (
	NoTool       RawTool = "notool"
	StoneTool    RawTool = "stone"
	CopperTool   RawTool = "copper"
	IronTool     RawTool = "iron"
	BronzeTool   RawTool = "bronze"
	SteelTool    RawTool = "steel"
	MachineTools RawTool = "machinetools"
)

// Tier is the tool classification exposed on canonical items.
type Tier string

const (
	None   Tier = "none"
	Stone  Tier = "stone"
	Copper Tier = "copper"
	Iron   Tier = "iron"
	Bronze Tier = "bronze"
	Steel  Tier = "steel"
)

// Tiers lists every tier in ascending modifier order.
var Tiers = []Tier{None, Stone, Copper, Iron, Bronze, Steel}

// BasicTools is the implicit toolset of a creator without a behaviour binding.
var BasicTools = []RawTool{NoTool, StoneTool, CopperTool, IronTool, BronzeTool, SteelTool}

var modifiers = map[Tier]float64{
	None:   1,
	Stone:  2,
	Copper: 4,
	Iron:   5.3,
	Bronze: 6.15,
	Steel:  8,
}

var rawToTier = map[RawTool]Tier{
	NoTool:     None,
	StoneTool:  Stone,
	CopperTool: Copper,
	IronTool:   Iron,
	BronzeTool: Bronze,
	SteelTool:  Steel,
}

var (
	ErrUnsupportedToolset = errors.New("unsupported toolset")
	ErrEmptyToolset       = errors.New("empty toolset")
	ErrUnknownTier        = errors.New("unknown tool tier")
)

// UnsupportedToolsetError reports the first tool outside the supported kinds.
// It matches ErrUnsupportedToolset under errors.Is.
type UnsupportedToolsetError struct {
	Tool RawTool
}

func (e *UnsupportedToolsetError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedToolset, string(e.Tool))
}

func (e *UnsupportedToolsetError) Is(target error) bool {
	return target == ErrUnsupportedToolset
}

// IsUnsupported reports whether err carries an UnsupportedToolsetError.
func IsUnsupported(err error) bool {
	var u *UnsupportedToolsetError
	return errors.As(err, &u)
}

// Bounds is the resolved (minimum, maximum) tier pair of a toolset.
type Bounds struct {
	Minimum Tier
	Maximum Tier
}

// Modifier returns the fixed work-speed modifier of a tier.
func Modifier(t Tier) (float64, error) {
	m, ok := modifiers[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, string(t))
	}
	return m, nil
}

// Less orders tiers by modifier.
func Less(a, b Tier) bool {
	return modifiers[a] < modifiers[b]
}

// Supported reports whether the raw tool is one of the six supported kinds.
func Supported(tool RawTool) bool {
	_, ok := rawToTier[tool]
	return ok
}

// ToTier maps a supported raw tool onto its tier.
func ToTier(tool RawTool) (Tier, error) {
	t, ok := rawToTier[tool]
	if !ok {
		return "", &UnsupportedToolsetError{Tool: tool}
	}
	return t, nil
}

// ParseTier accepts the serialised tier name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := modifiers[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

// Resolve widens a (minimum, maximum) pair over every tool of a toolset.
func Resolve(tools []RawTool) (Bounds, error) {
	if len(tools) == 0 {
		return Bounds{}, ErrEmptyToolset
	}
	b := Bounds{Minimum: Steel, Maximum: None}
	for _, tool := range tools {
		t, err := ToTier(tool)
		if err != nil {
			return Bounds{}, err
		}
		if modifiers[t] < modifiers[b.Minimum] {
			b.Minimum = t
		}
		if modifiers[t] > modifiers[b.Maximum] {
			b.Maximum = t
		}
	}
	return b, nil
}

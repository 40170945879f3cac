package arch

import "fmt"

// RouteType selects how much of the architecture description is mandatory.
// Detailed routing needs the Fc and switch block parameters; global routing
// does not.
type RouteType int

const (
	RouteGlobal RouteType = iota
	RouteDetailed
)

func (t RouteType) String() string {
	if t == RouteDetailed {
		return "detailed"
	}
	return "global"
}

// ParseRouteType maps the command-line spelling of a routing mode to its
// RouteType.
func ParseRouteType(s string) (RouteType, error) {
	switch s {
	case "global":
		return RouteGlobal, nil
	case "detailed":
		return RouteDetailed, nil
	default:
		return 0, fmt.Errorf("unknown route type %q: must be 'global' or 'detailed'", s)
	}
}

// PinKind says whether the pins of a class drive nets or receive them.
// A class starts out unset and is fixed by the first pin line that names it.
type PinKind int

const (
	PinUnset PinKind = iota
	PinDriver
	PinReceiver
)

func (k PinKind) String() string {
	switch k {
	case PinDriver:
		return "driver"
	case PinReceiver:
		return "receiver"
	default:
		return "unset"
	}
}

// Side is one physical side of a logic block.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight

	NumSides = 4
)

var sideNames = [NumSides]string{"top", "bottom", "left", "right"}

func (s Side) String() string { return sideNames[s] }

// sideByName maps a position word from a pin line to its Side. The second
// return is false for unrecognized words.
func sideByName(word string) (Side, bool) {
	for i, name := range sideNames {
		if word == name {
			return Side(i), true
		}
	}
	return 0, false
}

// SideMask records which sides a pin physically connects to. Repeating a
// side on a pin line is harmless.
type SideMask uint8

// Add marks a side as connected.
func (m *SideMask) Add(s Side) { *m |= 1 << uint(s) }

// Has reports whether a side is connected.
func (m SideMask) Has(s Side) bool { return m&(1<<uint(s)) != 0 }

// Sides lists the connected sides in top, bottom, left, right order.
func (m SideMask) Sides() []Side {
	var out []Side
	for s := Side(0); s < NumSides; s++ {
		if m.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// ChanDistKind tags the shape of a channel width distribution.
type ChanDistKind int

const (
	ChanUniform ChanDistKind = iota
	ChanGaussian
	ChanPulse
	ChanDelta
)

func (k ChanDistKind) String() string {
	switch k {
	case ChanUniform:
		return "uniform"
	case ChanGaussian:
		return "gaussian"
	case ChanPulse:
		return "pulse"
	default:
		return "delta"
	}
}

// ChanDist describes how routing tracks are distributed across one axis of
// the device. Width is meaningful only for gaussian and pulse shapes;
// Xpeak and DC are meaningful for everything but uniform.
type ChanDist struct {
	Kind  ChanDistKind
	Peak  float64
	Width float64
	Xpeak float64
	DC    float64
}

// FcType says whether Fc values count tracks absolutely or as a fraction
// of the channel width.
type FcType int

const (
	FcAbsolute FcType = iota
	FcFractional
)

func (t FcType) String() string {
	if t == FcFractional {
		return "fractional"
	}
	return "absolute"
}

// SwitchBlockType selects the routing-track interconnection pattern used
// where channels intersect.
type SwitchBlockType int

const (
	SwitchSubset SwitchBlockType = iota
	SwitchWilton
	SwitchUniversal
)

func (t SwitchBlockType) String() string {
	switch t {
	case SwitchWilton:
		return "wilton"
	case SwitchUniversal:
		return "universal"
	default:
		return "subset"
	}
}

// RoutingArch holds the detailed-routing parameters. Its fields are only
// meaningful when the architecture was loaded with RouteDetailed.
type RoutingArch struct {
	FcType          FcType
	FcOutput        float64
	FcInput         float64
	FcPad           float64
	SwitchBlockType SwitchBlockType
}

// PinClass is a group of logically equivalent pins, such as all the inputs
// of a LUT. Pins appear in file order.
type PinClass struct {
	Kind PinKind
	Pins []int
}

// Config is the loaded architecture description. It is built once by Load
// and read-only afterwards.
type Config struct {
	IoRat                int
	ChanWidthIO          float64
	ChanX                ChanDist
	ChanY                ChanDist
	MaxSubblocksPerBlock int
	SubblockLUTSize      int

	// Routing is only populated, and only validated, for RouteDetailed.
	Routing RoutingArch

	// Classes are indexed by the class numbers used in the file, which
	// are guaranteed contiguous from zero.
	Classes []PinClass

	// PinClassOf maps a pin number to the class it belongs to.
	PinClassOf []int

	// PinLoc maps a pin number to the sides it connects to.
	PinLoc []SideMask

	// PinsPerBlock is the total pin count of one logic block.
	PinsPerBlock int
}

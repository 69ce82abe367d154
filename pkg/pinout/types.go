// Package pinout provides the pin data model for component pin tables, the
// functional group classifier, and readers/writers for the pipe-delimited
// table format.
package pinout

import "strings"

// ElectricalType is the electrical role of a pin as written in the TYPE column
type ElectricalType int

const (
	TypeUnknown ElectricalType = iota
	TypeInput
	TypeOutput
	TypeBidirectional
	TypePower
	TypeNoConnect
)

var electricalCodes = map[string]ElectricalType{
	"I":   TypeInput,
	"O":   TypeOutput,
	"I/O": TypeBidirectional,
	"PWR": TypePower,
	"NC":  TypeNoConnect,
}

// ParseElectricalType converts a table code (I, O, I/O, PWR, NC) to an ElectricalType.
// Unrecognised codes map to TypeUnknown.
func ParseElectricalType(code string) ElectricalType {
	if t, ok := electricalCodes[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return t
	}
	return TypeUnknown
}

// Code returns the table code for the type
func (t ElectricalType) Code() string {
	switch t {
	case TypeInput:
		return "I"
	case TypeOutput:
		return "O"
	case TypeBidirectional:
		return "I/O"
	case TypePower:
		return "PWR"
	case TypeNoConnect:
		return "NC"
	default:
		return "?"
	}
}

func (t ElectricalType) String() string {
	switch t {
	case TypeInput:
		return "Input"
	case TypeOutput:
		return "Output"
	case TypeBidirectional:
		return "Bidirectional"
	case TypePower:
		return "Power"
	case TypeNoConnect:
		return "NoConnect"
	default:
		return "Unknown"
	}
}

// Polarity is the active level of a signal
type Polarity int

const (
	PolarityNA Polarity = iota
	ActiveHigh
	ActiveLow
)

// ParsePolarity converts H, L or - to a Polarity
func ParsePolarity(code string) Polarity {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "H":
		return ActiveHigh
	case "L":
		return ActiveLow
	default:
		return PolarityNA
	}
}

// Code returns the table code for the polarity
func (p Polarity) Code() string {
	switch p {
	case ActiveHigh:
		return "H"
	case ActiveLow:
		return "L"
	default:
		return "-"
	}
}

// DriveStyle is the output stage of a pin
type DriveStyle int

const (
	DriveNA DriveStyle = iota
	PushPull
	OpenDrain
	TriState
)

// ParseDriveStyle converts PP, OD, 3S or - to a DriveStyle
func ParseDriveStyle(code string) DriveStyle {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "PP":
		return PushPull
	case "OD":
		return OpenDrain
	case "3S":
		return TriState
	default:
		return DriveNA
	}
}

// Code returns the table code for the drive style
func (d DriveStyle) Code() string {
	switch d {
	case PushPull:
		return "PP"
	case OpenDrain:
		return "OD"
	case TriState:
		return "3S"
	default:
		return "-"
	}
}

// Group is the functional category used to place a pin on the symbol
type Group string

const (
	GroupPower     Group = "POWER"
	GroupGround    Group = "GROUND"
	GroupNC        Group = "NC"
	GroupI2C       Group = "I2C"
	GroupUART      Group = "UART"
	GroupAddress   Group = "ADDRESS"
	GroupData      Group = "DATA"
	GroupMemData   Group = "MEM_DATA"
	GroupMemAddr   Group = "MEM_ADDR"
	GroupVideo     Group = "VIDEO"
	GroupMemCtrl   Group = "MEM_CTRL"
	GroupVideoSync Group = "VIDEO_SYNC"
	GroupChipSel   Group = "CHIP_SEL"
	GroupInterrupt Group = "INTERRUPT"
	GroupDMA       Group = "DMA"
	GroupClock     Group = "CLOCK"
	GroupSystem    Group = "SYSTEM"
	GroupBusCtrl   Group = "BUS_CTRL"
	GroupTimer     Group = "TIMER"
	GroupControl   Group = "CONTROL"
)

// Groups lists every group in classifier order
var Groups = []Group{
	GroupPower, GroupGround, GroupNC, GroupI2C, GroupUART,
	GroupAddress, GroupData, GroupMemData, GroupMemAddr, GroupVideo,
	GroupMemCtrl, GroupVideoSync, GroupChipSel, GroupInterrupt, GroupDMA,
	GroupClock, GroupSystem, GroupBusCtrl, GroupTimer, GroupControl,
}

// ParseGroup looks up a GROUP column value. The second result is false for
// empty, "-" or unrecognised values.
func ParseGroup(s string) (Group, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, g := range Groups {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

// Pin is one row of a pin table
type Pin struct {
	Number      string // Pin number, printed verbatim
	Name        string // Signal name
	Type        ElectricalType
	TypeCode    string // TYPE column as written, kept for unknown codes
	Polarity    Polarity
	Drive       DriveStyle
	Group       Group
	Description string
}

// NewPin builds a pin from table codes and fills its group with Classify
func NewPin(number, name, typeCode, polarity, drive, description string) Pin {
	p := Pin{
		Number:      number,
		Name:        name,
		Type:        ParseElectricalType(typeCode),
		TypeCode:    strings.TrimSpace(typeCode),
		Polarity:    ParsePolarity(polarity),
		Drive:       ParseDriveStyle(drive),
		Description: description,
	}
	p.Group = Classify(p.Name, p.Type)
	return p
}

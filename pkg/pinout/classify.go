package pinout

import "strings"

// Rule is one step of the classification cascade
type Rule struct {
	Name  string
	Match func(name string, t ElectricalType) bool
	Group Group
}

// Rules is evaluated top to bottom and the first match wins. Exact-match
// rules for serial buses sit above the substring rules because names like
// SDA and SCL would otherwise be swallowed by the bus-control and sync
// tokens further down.
var Rules = []Rule{
	{"supply", func(n string, t ElectricalType) bool { return t == TypePower && containsAny(n, "VDD", "VCC") }, GroupPower},
	{"ground", func(n string, t ElectricalType) bool { return t == TypePower }, GroupGround},
	{"no-connect", func(n string, t ElectricalType) bool { return t == TypeNoConnect || n == "RESERVED" }, GroupNC},
	{"i2c", exact("SDA", "SCL"), GroupI2C},
	{"uart", exact("TXD", "RXD", "RTS", "CTS", "XCKI"), GroupUART},
	{"address-bus", prefixDigit("A"), GroupAddress},
	{"data-bus", prefixDigit("D"), GroupData},
	{"memory-data-bus", prefixDigit("MD"), GroupMemData},
	{"memory-address-bus", prefixDigit("MA"), GroupMemAddr},
	{"video-bus", prefixDigit("V"), GroupVideo},
	{"memory-control", contains("RAS", "CAS", "WE", "OE", "W/R"), GroupMemCtrl},
	{"video-sync", exact("VSYNC", "HSYNC", "CSYNC", "BLANK", "DA"), GroupVideoSync},
	{"chip-select", func(n string, _ ElectricalType) bool { return strings.HasPrefix(n, "CS") || n == "WRP" }, GroupChipSel},
	{"interrupt", contains("INT", "IRQ", "IACK", "NMI"), GroupInterrupt},
	{"interrupt-input", prefixDigit("IN"), GroupInterrupt},
	{"dma", contains("REQ", "DONE", "DTC", "BR", "BG", "BGACK"), GroupDMA},
	{"dma-ack", func(n string, _ ElectricalType) bool { return strings.HasPrefix(n, "ACK") && len(n) > 3 }, GroupDMA},
	{"clock", contains("CLK", "XTAL", "CKOUT", "XT/"), GroupClock},
	{"system", contains("RESET", "HALT", "BERR", "AV", "RSTOUT", "M/S", "TST"), GroupSystem},
	{"bus-control", contains("AS", "DS", "UDS", "LDS", "DTACK", "FC", "R/W", "RDY"), GroupBusCtrl},
	{"timer", contains("T1", "T2"), GroupTimer},
	{"video-control", exact("IPA"), GroupVideo},
}

// Classify returns the functional group of a pin. It never fails: names no
// rule recognises fall through to GroupControl.
func Classify(name string, t ElectricalType) Group {
	_, g := Explain(name, t)
	return g
}

// Explain is Classify that also reports which rule matched ("default" if none did)
func Explain(name string, t ElectricalType) (string, Group) {
	for _, r := range Rules {
		if r.Match(name, t) {
			return r.Name, r.Group
		}
	}
	return "default", GroupControl
}

func exact(names ...string) func(string, ElectricalType) bool {
	return func(n string, _ ElectricalType) bool {
		for _, s := range names {
			if n == s {
				return true
			}
		}
		return false
	}
}

func contains(tokens ...string) func(string, ElectricalType) bool {
	return func(n string, _ ElectricalType) bool {
		return containsAny(n, tokens...)
	}
}

func containsAny(n string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(n, tok) {
			return true
		}
	}
	return false
}

// prefixDigit matches names that start with prefix immediately followed by a digit
func prefixDigit(prefix string) func(string, ElectricalType) bool {
	return func(n string, _ ElectricalType) bool {
		if !strings.HasPrefix(n, prefix) || len(n) <= len(prefix) {
			return false
		}
		c := n[len(prefix)]
		return c >= '0' && c <= '9'
	}
}

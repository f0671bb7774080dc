package metric

import (
	"fmt"
	"sync"
)

// Derivation selects how raw samples turn into a measurement.
type Derivation int

const (
	// Raw uses the latest sample as is.
	Raw Derivation = iota
	// CPUUtilization derives a percentage from two successive idle counters.
	CPUUtilization
	// ByteRate derives a per-second rate from two windowed sums.
	ByteRate
	// ByteScale renders a byte count with a human readable unit.
	ByteScale
)

// String returns the derivation name.
func (d Derivation) String() string {
	switch d {
	case CPUUtilization:
		return "cpu_utilization"
	case ByteRate:
		return "byte_rate"
	case ByteScale:
		return "byte_scale"
	default:
		return "raw"
	}
}

// ParseDerivation returns the derivation with the given name. An empty name
// is Raw.
func ParseDerivation(name string) (Derivation, error) {
	switch name {
	case "", "raw":
		return Raw, nil
	case "cpu_utilization":
		return CPUUtilization, nil
	case "byte_rate":
		return ByteRate, nil
	case "byte_scale":
		return ByteScale, nil
	default:
		return Raw, fmt.Errorf("unknown derivation %q", name)
	}
}

// Unit labels.
const (
	UnitPercentage        = "percentage"
	UnitJiffies           = "jiffies"
	UnitRunnableProcesses = "runnable processes"
	UnitProcesses         = "processes"
	UnitFrames            = "frames"
	UnitPackets           = "packets"
	UnitBytes             = "Bytes"
	UnitBitsPerSecond     = "bits / s"
	UnitBytesPerSecond    = "Bytes / s"
)

// Entry is one catalog row. An empty Descriptor.Table means the type is
// stored under its own name.
type Entry struct {
	Descriptor Descriptor
	Units      string
	Derivation Derivation
}

// Catalog maps metric types to storage descriptors, units and derivations.
// It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[Type]Entry
}

// NewCatalog returns a catalog loaded with the built-in metric types.
func NewCatalog() *Catalog {
	c := &Catalog{entries: make(map[Type]Entry, len(builtin))}
	for t, e := range builtin {
		c.entries[t] = e
	}
	return c
}

// Register adds or replaces a catalog row.
func (c *Catalog) Register(t Type, e Entry) error {
	if t == "" {
		return fmt.Errorf("metric type is empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[t] = e
	return nil
}

// Lookup returns the row for t, if any.
func (c *Catalog) Lookup(t Type) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[t]
	return e, ok
}

// Resolve returns the storage descriptor for t.
// Types without a stored location resolve to a table named after the type.
func (c *Catalog) Resolve(t Type) Descriptor {
	if e, ok := c.Lookup(t); ok && e.Descriptor.Table != "" {
		return e.Descriptor
	}
	return Descriptor{Table: string(t)}
}

// Units returns the static unit label for t, or "" when none is defined.
func (c *Catalog) Units(t Type) string {
	e, _ := c.Lookup(t)
	return e.Units
}

// Derivation returns the derivation rule for t.
func (c *Catalog) Derivation(t Type) Derivation {
	e, _ := c.Lookup(t)
	return e.Derivation
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var aliases = map[Type]Type{
	"network.incoming.bytes.rate": "network_incoming",
	"network.outgoing.bytes.rate": "network_outgoing",
}

// Canonical maps collector aliases onto catalog names.
func Canonical(t Type) Type {
	if c, ok := aliases[t]; ok {
		return c
	}
	return t
}

func units(u string) Entry { return Entry{Units: u} }

func processes(state string) Entry {
	return Entry{
		Descriptor: Descriptor{Table: "processes_value", Type: "ps_state", TypeInstance: state},
		Units:      UnitProcesses,
	}
}

func load(t string) Entry {
	return Entry{
		Descriptor: Descriptor{Table: t, Type: "load"},
		Units:      UnitRunnableProcesses,
	}
}

var builtin = map[Type]Entry{
	"cpu_util": {
		Descriptor: Descriptor{Table: "aggregation_value", Type: "cpu", TypeInstance: "idle"},
		Units:      UnitPercentage,
		Derivation: CPUUtilization,
	},
	"cpuidle": {
		Descriptor: Descriptor{Table: "aggregation_value", Type: "cpu", TypeInstance: "idle"},
		Units:      UnitJiffies,
	},
	"memfree": {
		Descriptor: Descriptor{Table: "memory_value", TypeInstance: "free"},
		Derivation: ByteScale,
	},
	"fsfree": {
		Descriptor: Descriptor{Table: "df_value", TypeInstance: "free", Instance: "root"},
		Derivation: ByteScale,
	},
	"load_shortterm": load("load_shortterm"),
	"load_midterm":   load("load_midterm"),
	"load_longterm":  load("load_longterm"),
	"network_incoming": {
		Descriptor: Descriptor{Table: "interface_rx", Type: "if_octets"},
		Units:      UnitBytesPerSecond,
		Derivation: ByteRate,
	},
	"network_outgoing": {
		Descriptor: Descriptor{Table: "interface_tx", Type: "if_octets"},
		Units:      UnitBytesPerSecond,
		Derivation: ByteRate,
	},
	"processes_blocked":  processes("blocked"),
	"processes_paging":   processes("paging"),
	"processes_running":  processes("running"),
	"processes_sleeping": processes("sleeping"),
	"processes_stopped":  processes("stopped"),
	"processes_zombie":   processes("zombies"),

	// proxy cache
	"cachediskutilization": units(UnitPercentage),
	"cachememkutilization": units(UnitPercentage),
	"cpuusage":             units(UnitPercentage),
	"diskhits":             units(UnitPercentage),
	"hits":                 units(UnitPercentage),
	"hits_bytes":           units(UnitPercentage),
	"memoryhits":           units(UnitPercentage),

	// rtp
	"rtp_frame_loss":    units(UnitFrames),
	"rtp_pack_in":       units(UnitPackets),
	"rtp_pack_out":      units(UnitPackets),
	"rtp_pack_in_byte":  units(UnitBytes),
	"rtp_pack_out_byte": units(UnitBytes),

	// traffic classification
	"mbits_packets_all":        units(UnitBitsPerSecond),
	"mbits_packets_apple":      units(UnitBitsPerSecond),
	"mbits_packets_bittorrent": units(UnitBitsPerSecond),
	"mbits_packets_dns":        units(UnitBitsPerSecond),
	"mbits_packets_dropbox":    units(UnitBitsPerSecond),
	"mbits_packets_google":     units(UnitBitsPerSecond),
	"mbits_packets_http":       units(UnitBitsPerSecond),
	"mbits_packets_icloud":     units(UnitBitsPerSecond),
	"mbits_packets_skype":      units(UnitBitsPerSecond),
	"mbits_packets_twitter":    units(UnitBitsPerSecond),
	"mbits_packets_viber":      units(UnitBitsPerSecond),
	"mbits_packets_youtube":    units(UnitBitsPerSecond),
}

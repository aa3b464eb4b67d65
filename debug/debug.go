package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Scan      bool
	Block     bool
	Inline    bool
	Transform bool
	Index     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scan = boolEnv("RST_DEBUG_SCAN")
	d.Block = boolEnv("RST_DEBUG_BLOCK")
	d.Inline = boolEnv("RST_DEBUG_INLINE")
	d.Transform = boolEnv("RST_DEBUG_TRANSFORM")
	d.Index = boolEnv("RST_DEBUG_INDEX")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Block() bool {
	return d.Block
}
func Inline() bool {
	return d.Inline
}
func Transform() bool {
	return d.Transform
}
func Index() bool {
	return d.Index
}

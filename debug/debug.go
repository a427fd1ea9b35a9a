// Package debug holds the environment controlled debug switches of the
// dobj tools and a stderr logger for them.
//
//	DOBJ_DEBUG_DECODE  log decoded documents
//	DOBJ_DEBUG_PATCH   log patches and their results
//	DOBJ_DEBUG_QUERY   log compiled expressions and their results
//	DOBJ_DEBUG_LOCK    log document file locking
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Patch  bool
	Query  bool
	Lock   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("DOBJ_DEBUG_DECODE")
	d.Patch = boolEnv("DOBJ_DEBUG_PATCH")
	d.Query = boolEnv("DOBJ_DEBUG_QUERY")
	d.Lock = boolEnv("DOBJ_DEBUG_LOCK")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Patch() bool {
	return d.Patch
}
func Query() bool {
	return d.Query
}
func Lock() bool {
	return d.Lock
}

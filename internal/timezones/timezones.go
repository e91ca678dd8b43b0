// Package timezones exposes the fixed list of IANA timezone names offered to users.
package timezones

import (
	_ "embed"
	"strconv"
	"strings"
	"sync"
)

//go:embed zones.txt
var zonesFile string

// Timezone is one entry of the listing. IDs are sequential from "0" in name order.
type Timezone struct {
	ID       string `json:"id"`
	Timezone string `json:"timezone"`
}

var (
	once   sync.Once
	all    []Timezone
	byName map[string]struct{}
)

func load() {
	names := strings.Fields(zonesFile)
	all = make([]Timezone, len(names))
	byName = make(map[string]struct{}, len(names))
	for i, name := range names {
		all[i] = Timezone{ID: strconv.Itoa(i), Timezone: name}
		byName[name] = struct{}{}
	}
}

// All returns the process-wide listing. The slice is shared and must not be modified.
func All() []Timezone {
	once.Do(load)
	return all
}

// Valid reports whether name is a listed timezone
func Valid(name string) bool {
	once.Do(load)
	_, ok := byName[name]
	return ok
}

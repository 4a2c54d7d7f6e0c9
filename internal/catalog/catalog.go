// Package catalog maps the numeric game mode and map identifiers reported by
// the backend to display names.
package catalog

import "fmt"

var maps = map[int]string{
	1: "Fractal",
	2: "Christmas",
	3: "Infected",
	4: "Colossus",
}

var gameModes = map[int]string{
	1: "Death Match",
	2: "Team Death Match",
	3: "King Of The Hill",
	4: "Team King Of The Hill",
}

// MapName returns the name of map id, if known.
func MapName(id int) (string, bool) {
	name, ok := maps[id]
	return name, ok
}

// GameModeName returns the name of game mode id, if known.
func GameModeName(id int) (string, bool) {
	name, ok := gameModes[id]
	return name, ok
}

// MapLabel is MapName with a placeholder for unknown ids.
func MapLabel(id int) string {
	if name, ok := MapName(id); ok {
		return name
	}
	return fmt.Sprintf("Unknown map (%d)", id)
}

// GameModeLabel is GameModeName with a placeholder for unknown ids.
func GameModeLabel(id int) string {
	if name, ok := GameModeName(id); ok {
		return name
	}
	return fmt.Sprintf("Unknown game mode (%d)", id)
}

package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

func init() {
	Register(Format{Name: "ascii", Parse: ParseASCII}, ".map")
}

// headerEnd separates the key/value header from the grid.
const headerEnd = "---"

// ParseASCII parses a plain-text level:
//
//	# comment
//	id: e1m2
//	name: Corridor
//	transparent: 5 6
//	spawn: 1.5 2.5 90
//	---
//	#####
//	#@.5#
//	#####
//
// The header is optional; without a "---" line the whole file is the grid and
// the id must be supplied by the caller. Spawn angle is in degrees.
func ParseASCII(data []byte) (Level, error) {
	var (
		level  Level
		header []string
		rows   []string
	)

	hasHeader := bytes.Contains(data, []byte("\n"+headerEnd)) || bytes.HasPrefix(data, []byte(headerEnd))
	inGrid := !hasHeader

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if !inGrid {
			trimmed := strings.TrimSpace(line)
			if trimmed == headerEnd {
				inGrid = true
				continue
			}
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			header = append(header, trimmed)
			continue
		}
		// A row of spaces is open floor; only empty lines are skipped.
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return Level{}, fmt.Errorf("reading grid: %w", err)
	}

	for _, h := range header {
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			return Level{}, fmt.Errorf("malformed header line %q", h)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch key {
		case "id":
			level.ID = value
		case "name":
			level.Name = value
		case "transparent":
			for _, f := range strings.Fields(value) {
				id, err := strconv.ParseInt(f, 10, 32)
				if err != nil {
					return Level{}, fmt.Errorf("transparent id %q: %w", f, err)
				}
				level.Transparent = append(level.Transparent, int32(id))
			}
		case "spawn":
			spawn, err := parseSpawn(value)
			if err != nil {
				return Level{}, err
			}
			level.Spawn = spawn
		default:
			if level.Metadata == nil {
				level.Metadata = make(map[string]string)
			}
			level.Metadata[key] = value
		}
	}

	if len(rows) == 0 {
		return Level{}, errors.New("level has no grid rows")
	}

	tiles, spawn, err := parseRows(rows, nil)
	if err != nil {
		return Level{}, err
	}
	level.Tiles = tiles
	if level.Spawn == nil {
		level.Spawn = spawn
	}
	level.Height = len(tiles)
	level.Width = len(tiles[0])

	return level, nil
}

// parseSpawn parses "x y [angle]".
func parseSpawn(value string) (*Spawn, error) {
	fields := strings.Fields(value)
	if len(fields) < 2 || len(fields) > 3 {
		return nil, fmt.Errorf("spawn %q: want \"x y [angle]\"", value)
	}

	nums := make([]float64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("spawn %q: %w", value, err)
		}
		nums[i] = n
	}

	s := &Spawn{X: nums[0], Y: nums[1]}
	if len(nums) == 3 {
		s.Angle = nums[2]
	}
	return s, nil
}

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrMalformedLine    = errors.New("malformed line")
	ErrBadValue         = errors.New("bad attribute value")
	ErrMissingAttribute = errors.New("missing attribute")
)

const (
	attrHitPoints = "Hit Points"
	attrDamage    = "Damage"
)

// BossStats are the two numbers read from the puzzle input.
type BossStats struct {
	HitPoints int `json:"hit_points" yaml:"hit_points"`
	Damage    int `json:"damage" yaml:"damage"`
}

// ParseBoss reads "Name: value" lines. Order and surrounding whitespace do
// not matter, unknown names are ignored, and both Hit Points and Damage must
// be present.
func ParseBoss(r io.Reader) (BossStats, error) {
	attrs := map[string]int{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return BossStats{}, fmt.Errorf("line %d %q: %w", lineNo, line, ErrMalformedLine)
		}
		name = strings.TrimSpace(name)
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return BossStats{}, fmt.Errorf("line %d %s=%q: %w", lineNo, name, strings.TrimSpace(value), ErrBadValue)
		}
		attrs[name] = n
	}
	if err := sc.Err(); err != nil {
		return BossStats{}, err
	}

	hp, ok := attrs[attrHitPoints]
	if !ok {
		return BossStats{}, fmt.Errorf("%w: %s", ErrMissingAttribute, attrHitPoints)
	}
	dmg, ok := attrs[attrDamage]
	if !ok {
		return BossStats{}, fmt.Errorf("%w: %s", ErrMissingAttribute, attrDamage)
	}
	return BossStats{HitPoints: hp, Damage: dmg}, nil
}

func LoadBoss(path string) (BossStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return BossStats{}, err
	}
	defer f.Close()

	bs, err := ParseBoss(f)
	if err != nil {
		return BossStats{}, fmt.Errorf("%s: %w", path, err)
	}
	return bs, nil
}

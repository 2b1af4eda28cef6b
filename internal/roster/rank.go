package roster

import (
	"fmt"
	"strings"
)

// Rank is a skill label. Labels are ordered from beginner (BG-) to A+.
type Rank string

const DefaultRank Rank = "BG"

var ranks = []Rank{
	"BG-", "BG", "BG+",
	"N-", "N", "N+",
	"S-", "S", "S+",
	"P-", "P", "P+",
	"C-", "C", "C+",
	"B-", "B", "B+",
	"A-", "A", "A+",
}

// Ranks returns every valid label, weakest first.
func Ranks() []Rank {
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	return out
}

// ParseRank validates a label. An empty label yields DefaultRank.
func ParseRank(label string) (Rank, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return DefaultRank, nil
	}
	for _, r := range ranks {
		if string(r) == label {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rank %q", label)
}

// Base strips the -/+ modifier.
func (r Rank) Base() string {
	return strings.TrimRight(string(r), "-+")
}

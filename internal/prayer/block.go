package prayer

import (
	"fmt"
	"strings"
)

// Block is the interval between two consecutive prayers, keyed "Start_End".
type Block string

const (
	FajrDhuhr   Block = "Fajr_Dhuhr"
	DhuhrAsr    Block = "Dhuhr_Asr"
	AsrMaghrib  Block = "Asr_Maghrib"
	MaghribIsha Block = "Maghrib_Isha"
	IshaFajr    Block = "Isha_Fajr"
)

const defaultColor = "#B8A9FC"

// Blocks lists the five blocks in canonical order; Isha_Fajr spans midnight.
var Blocks = [5]Block{FajrDhuhr, DhuhrAsr, AsrMaghrib, MaghribIsha, IshaFajr}

var blockColors = map[Block]string{
	FajrDhuhr:   "#B8A9FC",
	DhuhrAsr:    "#F8BBD0",
	AsrMaghrib:  "#FFE0B2",
	MaghribIsha: "#C8E6C9",
	IshaFajr:    "#B3E5FC",
}

// BlockStartingAt returns the block that opens with prayer n.
func BlockStartingAt(n Name) Block {
	i := n.index()
	if i < 0 {
		return ""
	}
	return Blocks[i]
}

// ParseBlock accepts one of the five block keys.
func ParseBlock(raw string) (Block, error) {
	trimmed := strings.TrimSpace(raw)
	for _, b := range Blocks {
		if trimmed == string(b) {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBlock, raw)
}

// Bounds returns the prayers that open and close the block.
func (b Block) Bounds() (Name, Name) {
	start, end, _ := strings.Cut(string(b), "_")
	return Name(start), Name(end)
}

// Color is the display colour associated with the block.
func (b Block) Color() string {
	if c, ok := blockColors[b]; ok {
		return c
	}
	return defaultColor
}

// Index returns the canonical position of b, or -1 for unknown keys.
func (b Block) Index() int {
	for i, candidate := range Blocks {
		if candidate == b {
			return i
		}
	}
	return -1
}

package save

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pokedit/pokedit/pokedit/bit"
)

// A Game wraps the raw bytes of a Gen 3 save file, reading and writing fields
// in place on demand.
//
// The contents of a Gen 3 save file are as follows:
//
//	| Offset  | Size  | Contents            |
//	|---------|-------|---------------------|
//	| 0x00000 | 57344 | Game save A         |
//	| 0x0E000 | 57344 | Game save B         |
//	| 0x1C000 | 8192  | Hall of Fame        |
//	| 0x1E000 | 4096  | Mystery Gift        |
//	| 0x1F000 | 4096  | Recorded Battle     |
//
// Each game save slot holds 14 sections of 4096 bytes. A section carries its
// ID, checksum, signature and save index in a footer; the slot with the higher
// save index is the current one.
type Game struct {
	data    []byte
	active  slotInfo
	backup  slotInfo
	version Version
}

// MinFileSize is the minimum size of a valid save file (128KiB).
const MinFileSize = 128 * 1024

const (
	slotSize     = SectionSize * sectionCount
	slotAOffset  = 0
	slotBOffset  = slotSize
	sectionCount = 14

	// SectionSize is the size in bytes of one save slot section.
	SectionSize = 4096

	sectionIDOffset        = 0x0FF4
	sectionChecksumOffset  = 0x0FF6
	sectionSignatureOffset = 0x0FF8
	sectionIndexOffset     = 0x0FFC
	sectionSignature       = 0x08012025
)

// sectionDataLength is the number of bytes covered by each section's checksum,
// indexed by section ID.
var sectionDataLength = [sectionCount]int{
	3884, 3968, 3968, 3968, 3848, 3968, 3968,
	3968, 3968, 3968, 3968, 3968, 3968, 2000,
}

// slotInfo records the absolute offsets of a validated save slot and of the
// sections the editor cares about.
type slotInfo struct {
	offset    int
	index     uint32
	trainer   int
	teamItems int
}

// Load parses and validates a save file. The Game keeps a reference to data
// and edits it in place.
func Load(data []byte) (*Game, error) {
	slog.Debug("loading Gen 3 save", "size", len(data))

	if len(data) < MinFileSize {
		return nil, fmt.Errorf("%w: expected at least %d bytes, got %d",
			ErrTooSmall, MinFileSize, len(data))
	}

	slotA, err := parseSlot(data, slotAOffset)
	if err != nil {
		return nil, fmt.Errorf("slot a: %w", err)
	}
	slotB, err := parseSlot(data, slotBOffset)
	if err != nil {
		return nil, fmt.Errorf("slot b: %w", err)
	}

	active, backup := slotB, slotA
	if slotA.index > slotB.index {
		active, backup = slotA, slotB
	}
	slog.Debug("save slots parsed",
		"index_a", fmt.Sprintf("0x%08X", slotA.index),
		"index_b", fmt.Sprintf("0x%08X", slotB.index),
		"active", map[bool]string{true: "a", false: "b"}[active.offset == slotAOffset])

	g := &Game{
		data:   data,
		active: active,
		backup: backup,
	}
	g.version = versionFromGameCode(bit.ReadWord(data, active.trainer+gameCodeOffset))

	slog.Debug("Gen 3 save loaded", "version", g.version)
	return g, nil
}

// LoadFile reads and parses the save file at path.
func LoadFile(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// New creates a fresh, structurally valid save for the given version, with
// all fields zeroed. Slot A is the active slot.
func New(version Version) *Game {
	data := make([]byte, MinFileSize)

	slots := []struct {
		offset int
		index  uint32
	}{{slotAOffset, 1}, {slotBOffset, 0}}

	for _, slot := range slots {
		for i := 0; i < sectionCount; i++ {
			off := slot.offset + i*SectionSize
			bit.WriteHalfWord(data, off+sectionIDOffset, uint16(i))
			bit.WriteWord(data, off+sectionSignatureOffset, sectionSignature)
			bit.WriteWord(data, off+sectionIndexOffset, slot.index)
		}
		// The game code word identifies the version (and doubles as the
		// security key on Emerald; 2 yields a stable non-zero code there).
		code := uint32(version)
		if version == Emerald {
			code = 2
		}
		bit.WriteWord(data, slot.offset+gameCodeOffset, code)
		// Keyed fields store value XOR key, so zero money on Emerald is
		// the key itself. The fresh FRLG key is zero and needs nothing.
		if version == Emerald {
			bit.WriteWord(data, slot.offset+teamItemsSectionID*SectionSize+moneyOffsetRSE, code)
		}
		for i := 0; i < sectionCount; i++ {
			updateChecksum(data, slot.offset+i*SectionSize, i)
		}
	}

	g, err := Load(data)
	if err != nil {
		panic(fmt.Sprintf("fresh save failed validation: %v", err))
	}
	return g
}

// parseSlot validates one save slot and locates its sections.
func parseSlot(data []byte, offset int) (slotInfo, error) {
	info := slotInfo{
		offset:    offset,
		index:     bit.ReadWord(data, offset+sectionIndexOffset),
		trainer:   -1,
		teamItems: -1,
	}

	for i := 0; i < sectionCount; i++ {
		secOffset := offset + i*SectionSize
		id := bit.ReadHalfWord(data, secOffset+sectionIDOffset)
		if int(id) >= sectionCount {
			slog.Error("found invalid section id", "id", id)
			return slotInfo{}, fmt.Errorf("%w: %d", ErrInvalidSectionID, id)
		}

		if sig := bit.ReadWord(data, secOffset+sectionSignatureOffset); sig != sectionSignature {
			return slotInfo{}, fmt.Errorf("%w: section %d has signature 0x%08X, expected 0x%08X",
				ErrBadSignature, id, sig, uint32(sectionSignature))
		}

		want := sectionChecksum(data, secOffset, int(id))
		if got := bit.ReadHalfWord(data, secOffset+sectionChecksumOffset); got != want {
			return slotInfo{}, fmt.Errorf("%w: section %d has checksum 0x%04X, expected 0x%04X",
				ErrBadChecksum, id, got, want)
		}

		if idx := bit.ReadWord(data, secOffset+sectionIndexOffset); idx != info.index {
			return slotInfo{}, fmt.Errorf("%w: 0x%08X - 0x%08X", ErrMismatchedIndex, info.index, idx)
		}

		switch id {
		case trainerSectionID:
			info.trainer = secOffset
		case teamItemsSectionID:
			info.teamItems = secOffset
		}
	}

	if info.trainer < 0 {
		return slotInfo{}, fmt.Errorf("%w: trainer", ErrMissingSection)
	}
	if info.teamItems < 0 {
		return slotInfo{}, fmt.Errorf("%w: team/items", ErrMissingSection)
	}

	return info, nil
}

// sectionChecksum computes the checksum of the section at secOffset: the
// 32 bit sum of the section's data words, folded into 16 bits.
func sectionChecksum(data []byte, secOffset, id int) uint16 {
	var sum uint32
	for i := 0; i < sectionDataLength[id]; i += 4 {
		sum += bit.ReadWord(data, secOffset+i)
	}
	return uint16(sum>>16) + uint16(sum)
}

// updateChecksum recomputes and stores the checksum of the section at
// secOffset.
func updateChecksum(data []byte, secOffset, id int) {
	bit.WriteHalfWord(data, secOffset+sectionChecksumOffset, sectionChecksum(data, secOffset, id))
}

// Clone returns a deep copy of the game, sharing nothing with the receiver.
func (g *Game) Clone() *Game {
	data := make([]byte, len(g.data))
	copy(data, g.data)
	return &Game{
		data:    data,
		active:  g.active,
		backup:  g.backup,
		version: g.version,
	}
}

// Version reports the detected game version.
func (g *Game) Version() Version {
	return g.version
}

// Bytes exposes the underlying save file bytes.
func (g *Game) Bytes() []byte {
	return g.data
}

// WriteFile persists the save file to path.
func (g *Game) WriteFile(path string) error {
	return os.WriteFile(path, g.data, 0644)
}

package save

import (
	"fmt"

	"github.com/pokedit/pokedit/pokedit/bit"
)

const (
	trainerSectionID   = 0
	teamItemsSectionID = 1

	// Trainer section field offsets.
	genderOffset     = 0x0008
	trainerIDOffset  = 0x000A
	timePlayedOffset = 0x000E
	gameCodeOffset   = 0x00AC
	frlgSecurityKey  = 0x0AF8

	// Team/items section money offsets.
	moneyOffsetRSE  = 0x0490
	moneyOffsetFRLG = 0x0290
)

// MaxMoney is the largest amount of money the games can represent.
const MaxMoney = 999999

// Version identifies the Gen 3 game that produced a save file.
type Version uint8

const (
	RubySapphire     Version = 0
	FireRedLeafGreen Version = 1
	Emerald          Version = 2
)

func (v Version) String() string {
	switch v {
	case RubySapphire:
		return "Ruby/Sapphire"
	case FireRedLeafGreen:
		return "FireRed/LeafGreen"
	case Emerald:
		return "Emerald"
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

func versionFromGameCode(code uint32) Version {
	switch code {
	case 0:
		return RubySapphire
	case 1:
		return FireRedLeafGreen
	default:
		// Any other value is the Emerald security key.
		return Emerald
	}
}

// Gender is the trainer's gender.
type Gender uint8

const (
	Male   Gender = 0
	Female Gender = 1
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	}
	return fmt.Sprintf("Gender(%d)", uint8(g))
}

// TrainerID is the trainer's public (visible) and private ID halves.
type TrainerID struct {
	Public  uint16
	Private uint16
}

// TimePlayed is the in-game play time counter.
type TimePlayed struct {
	Hours   uint16
	Minutes uint8
	Seconds uint8
	Frames  uint8
}

func (t TimePlayed) String() string {
	return fmt.Sprintf("%d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// Gender reads the trainer's gender from the active slot.
func (g *Game) Gender() (Gender, error) {
	switch g.data[g.active.trainer+genderOffset] {
	case 0:
		return Male, nil
	case 1:
		return Female, nil
	default:
		return Male, fmt.Errorf("%w: gender", ErrInvalidData)
	}
}

// TrainerID reads the trainer's ID from the active slot.
func (g *Game) TrainerID() TrainerID {
	return TrainerID{
		Public:  bit.ReadHalfWord(g.data, g.active.trainer+trainerIDOffset),
		Private: bit.ReadHalfWord(g.data, g.active.trainer+trainerIDOffset+2),
	}
}

// TimePlayed reads the play time counter from the active slot.
func (g *Game) TimePlayed() TimePlayed {
	off := g.active.trainer + timePlayedOffset
	return TimePlayed{
		Hours:   bit.ReadHalfWord(g.data, off),
		Minutes: g.data[off+2],
		Seconds: g.data[off+3],
		Frames:  g.data[off+4],
	}
}

// SecurityKey returns the key used to obfuscate money and item quantities.
// Ruby/Sapphire saves have no key.
func (g *Game) SecurityKey() uint32 {
	switch g.version {
	case Emerald:
		return bit.ReadWord(g.data, g.active.trainer+gameCodeOffset)
	case FireRedLeafGreen:
		return bit.ReadWord(g.data, g.active.trainer+frlgSecurityKey)
	default:
		return 0
	}
}

func (g *Game) moneyOffset() int {
	if g.version == FireRedLeafGreen {
		return g.active.teamItems + moneyOffsetFRLG
	}
	return g.active.teamItems + moneyOffsetRSE
}

// Money reads the trainer's money, undoing the security key obfuscation.
func (g *Game) Money() uint32 {
	return bit.ReadWord(g.data, g.moneyOffset()) ^ g.SecurityKey()
}

// SetMoney stores the given amount, clamped to [0, MaxMoney], and updates the
// team/items section checksum. It returns the stored value.
func (g *Game) SetMoney(amount uint32) uint32 {
	if amount > MaxMoney {
		amount = MaxMoney
	}
	bit.WriteWord(g.data, g.moneyOffset(), amount^g.SecurityKey())
	updateChecksum(g.data, g.active.teamItems, teamItemsSectionID)
	return amount
}

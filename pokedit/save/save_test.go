package save

import (
	"testing"

	"github.com/pokedit/pokedit/pokedit/bit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTooSmall(t *testing.T) {
	_, err := Load(make([]byte, 1024))
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestLoadFreshSave(t *testing.T) {
	tests := []struct {
		name    string
		version Version
	}{
		{"ruby/sapphire", RubySapphire},
		{"firered/leafgreen", FireRedLeafGreen},
		{"emerald", Emerald},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Load(New(tt.version).Bytes())
			require.NoError(t, err)
			assert.Equal(t, tt.version, g.Version())
		})
	}
}

func TestLoadRejectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(data []byte)
		wantErr error
	}{
		{
			name: "invalid section id",
			corrupt: func(data []byte) {
				bit.WriteHalfWord(data, 0x0FF4, 99)
			},
			wantErr: ErrInvalidSectionID,
		},
		{
			name: "bad signature",
			corrupt: func(data []byte) {
				bit.WriteWord(data, 0x0FF8, 0xDEADBEEF)
			},
			wantErr: ErrBadSignature,
		},
		{
			name: "bad checksum",
			corrupt: func(data []byte) {
				data[0x0100]++
			},
			wantErr: ErrBadChecksum,
		},
		{
			name: "mismatched save index",
			corrupt: func(data []byte) {
				// The footer is not covered by the checksum, so only the
				// index check trips.
				off := 3 * SectionSize
				bit.WriteWord(data, off+0x0FFC, 7)
			},
			wantErr: ErrMismatchedIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := New(Emerald).Bytes()
			tt.corrupt(data)
			_, err := Load(data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestActiveSlotSelection(t *testing.T) {
	g := New(Emerald)
	// Fresh saves mark slot A (index 1) as current over slot B (index 0).
	assert.Equal(t, 0, g.active.offset)
	assert.Equal(t, slotSize, g.backup.offset)
}

func TestGender(t *testing.T) {
	g := New(Emerald)

	gender, err := g.Gender()
	require.NoError(t, err)
	assert.Equal(t, Male, gender)

	g.data[g.active.trainer+genderOffset] = 1
	updateChecksum(g.data, g.active.trainer, trainerSectionID)
	gender, err = g.Gender()
	require.NoError(t, err)
	assert.Equal(t, Female, gender)

	g.data[g.active.trainer+genderOffset] = 42
	_, err = g.Gender()
	assert.ErrorIs(t, err, ErrInvalidData)
}

// A fresh Emerald save has a non-zero security key, so zero money must be
// stored pre-encoded under it.
func TestFreshSaveMoneyIsZero(t *testing.T) {
	for _, version := range []Version{RubySapphire, FireRedLeafGreen, Emerald} {
		t.Run(version.String(), func(t *testing.T) {
			g := New(version)
			assert.Equal(t, uint32(0), g.Money())
		})
	}

	g := New(Emerald)
	require.NotZero(t, g.SecurityKey())
	assert.Equal(t, g.SecurityKey(), bit.ReadWord(g.Bytes(), g.moneyOffset()))
}

func TestMoneyRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		version Version
	}{
		{"ruby/sapphire plain", RubySapphire},
		{"firered/leafgreen keyed", FireRedLeafGreen},
		{"emerald keyed", Emerald},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.version)
			assert.Equal(t, uint32(0), g.Money())

			g.SetMoney(123456)
			assert.Equal(t, uint32(123456), g.Money())

			// Edits keep the file loadable: checksums were updated.
			reloaded, err := Load(g.Bytes())
			require.NoError(t, err)
			assert.Equal(t, uint32(123456), reloaded.Money())
		})
	}
}

func TestSetMoneyClamps(t *testing.T) {
	g := New(Emerald)
	assert.Equal(t, uint32(MaxMoney), g.SetMoney(MaxMoney+500))
	assert.Equal(t, uint32(MaxMoney), g.Money())
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(Emerald)
	g.SetMoney(100)

	c := g.Clone()
	c.SetMoney(9000)

	assert.Equal(t, uint32(100), g.Money())
	assert.Equal(t, uint32(9000), c.Money())
}

func TestTrainerIDAndTimePlayed(t *testing.T) {
	g := New(Emerald)

	off := g.active.trainer
	bit.WriteHalfWord(g.data, off+trainerIDOffset, 12345)
	bit.WriteHalfWord(g.data, off+trainerIDOffset+2, 54321)
	bit.WriteHalfWord(g.data, off+timePlayedOffset, 99)
	g.data[off+timePlayedOffset+2] = 59
	g.data[off+timePlayedOffset+3] = 30
	updateChecksum(g.data, off, trainerSectionID)

	id := g.TrainerID()
	assert.Equal(t, uint16(12345), id.Public)
	assert.Equal(t, uint16(54321), id.Private)

	tp := g.TimePlayed()
	assert.Equal(t, uint16(99), tp.Hours)
	assert.Equal(t, uint8(59), tp.Minutes)
	assert.Equal(t, "99:59:30", tp.String())
}

package store

import "github.com/gethiox/mfx/internal/pkg/preset"

// On-media layout:
//
//	0            signature "MFX"
//	3            32 preset records, 4 bytes each (program, param1, param2, param3)
//	3+128        32 midi map entries
//	3+128+32     last used preset index
const (
	Signature       = "MFX"
	SignatureLength = len(Signature)

	PresetsOffset  = SignatureLength
	MidiMapOffset  = PresetsOffset + preset.RecordLength*preset.Count
	LastUsedOffset = MidiMapOffset + preset.Count

	Size = LastUsedOffset + 1
)

func presetOffset(index int) int64 {
	return int64(PresetsOffset + index*preset.RecordLength)
}

package store

import (
	"errors"
	"fmt"

	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/preset"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

var (
	ErrIndexOutOfRange = errors.New("preset index out of range")
	ErrNotInitialized  = errors.New("store is not initialized")
	ErrInvalidPreset   = preset.ErrInvalidPreset
)

// Store keeps the preset bank, midi map and last used preset index on a Medium.
// Without the signature the region content is undefined, FactoryReset has to be invoked first.
type Store struct {
	medium Medium
}

func New(medium Medium) *Store {
	return &Store{medium: medium}
}

func checkIndex(index int) error {
	if index < 0 || index > preset.MaxSlot {
		return fmt.Errorf("%w: %d (valid: 0-%d)", ErrIndexOutOfRange, index, preset.MaxSlot)
	}
	return nil
}

func (s *Store) read(off int64, n int) ([]byte, error) {
	var buf = make([]byte, n)
	_, err := s.medium.ReadAt(buf, off)
	if err != nil {
		return nil, fmt.Errorf("failed to read %d bytes at %d: %w", n, off, err)
	}
	return buf, nil
}

func (s *Store) write(off int64, data []byte) error {
	_, err := s.medium.WriteAt(data, off)
	if err != nil {
		return fmt.Errorf("failed to write %d bytes at %d: %w", len(data), off, err)
	}
	return nil
}

// IsInitialized tells if the signature is in place
func (s *Store) IsInitialized() (bool, error) {
	sig, err := s.read(0, SignatureLength)
	if err != nil {
		return false, err
	}
	return string(sig) == Signature, nil
}

// FactoryReset writes the signature, zeroes all presets, writes identity midi map and points
// last used preset to the first slot.
func (s *Store) FactoryReset() error {
	var region = make([]byte, Size)
	copy(region, Signature)

	identity := preset.IdentityMap()
	copy(region[MidiMapOffset:], identity[:])

	// signature goes last so interrupted reset is still recognized as uninitialized
	err := s.write(int64(SignatureLength), region[SignatureLength:])
	if err != nil {
		return fmt.Errorf("factory reset failed: %w", err)
	}
	err = s.write(0, region[:SignatureLength])
	if err != nil {
		return fmt.Errorf("factory reset failed: %w", err)
	}

	log.Info("factory reset done", logger.Storage)
	return nil
}

func (s *Store) WritePreset(p preset.Preset, index int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	record := p.Bytes()
	err := s.write(presetOffset(index), record[:])
	if err != nil {
		return err
	}
	log.Info(fmt.Sprintf("preset written: %s", p), logger.Storage, zap.Int("slot", index+1))
	return nil
}

func (s *Store) ReadPreset(index int) (preset.Preset, error) {
	if err := checkIndex(index); err != nil {
		return preset.Preset{}, err
	}

	data, err := s.read(presetOffset(index), preset.RecordLength)
	if err != nil {
		return preset.Preset{}, err
	}
	return preset.FromBytes(data)
}

// ReadBank reads all preset slots at once
func (s *Store) ReadBank() (preset.Bank, error) {
	var bank preset.Bank
	data, err := s.read(int64(PresetsOffset), preset.RecordLength*preset.Count)
	if err != nil {
		return bank, err
	}
	for i := range bank {
		p, err := preset.FromBytes(data[i*preset.RecordLength : (i+1)*preset.RecordLength])
		if err != nil {
			return bank, err
		}
		bank[i] = p
	}
	return bank, nil
}

func (s *Store) WriteMidiMap(m preset.MidiMap) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexOutOfRange, err)
	}
	err := s.write(int64(MidiMapOffset), m[:])
	if err != nil {
		return err
	}
	log.Info("midi map written", logger.Storage)
	return nil
}

func (s *Store) ReadMidiMap() (preset.MidiMap, error) {
	var m preset.MidiMap
	data, err := s.read(int64(MidiMapOffset), preset.Count)
	if err != nil {
		return m, err
	}
	copy(m[:], data)
	return m, nil
}

func (s *Store) WriteLastUsedIndex(index int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	return s.write(int64(LastUsedOffset), []byte{byte(index)})
}

func (s *Store) ReadLastUsedIndex() (int, error) {
	data, err := s.read(int64(LastUsedOffset), 1)
	if err != nil {
		return 0, err
	}
	index := int(data[0])
	if err := checkIndex(index); err != nil {
		return 0, err
	}
	return index, nil
}

// Snapshot reads the whole persisted state
func (s *Store) Snapshot() (preset.Snapshot, error) {
	ok, err := s.IsInitialized()
	if err != nil {
		return preset.Snapshot{}, err
	}
	if !ok {
		return preset.Snapshot{}, ErrNotInitialized
	}

	bank, err := s.ReadBank()
	if err != nil {
		return preset.Snapshot{}, err
	}
	m, err := s.ReadMidiMap()
	if err != nil {
		return preset.Snapshot{}, err
	}
	lastUsed, err := s.ReadLastUsedIndex()
	if err != nil {
		lastUsed = 0
	}
	return preset.NewSnapshot(bank, m, uint8(lastUsed)), nil
}

// Restore overwrites the whole persisted state, the store gets initialized if it wasn't already
func (s *Store) Restore(snapshot preset.Snapshot) error {
	bank, m, lastUsed, err := snapshot.Unpack()
	if err != nil {
		return err
	}

	ok, err := s.IsInitialized()
	if err != nil {
		return err
	}
	if !ok {
		if err := s.FactoryReset(); err != nil {
			return err
		}
	}

	for i, p := range bank {
		if err := s.WritePreset(p, i); err != nil {
			return err
		}
	}
	if err := s.WriteMidiMap(m); err != nil {
		return err
	}
	return s.WriteLastUsedIndex(int(lastUsed))
}

func (s *Store) Close() error {
	return s.medium.Close()
}

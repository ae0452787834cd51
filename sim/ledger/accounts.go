// Package ledger loads real publisher stake snapshots from ledger
// account dumps, feeding them through the same validated builder used
// for synthetic snapshots. Production and simulated data are
// indistinguishable to the derivation and checking logic.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
)

// AccountRecord is one publisher stake account as dumped from the
// ledger: a base58 public key and its staked amount in native units.
type AccountRecord struct {
	Pubkey string `json:"pubkey"`
	Stake  uint64 `json:"stake"`
}

// SnapshotFile is the on-disk snapshot format. TotalStake is optional;
// when present it must match the sum of the accounts.
type SnapshotFile struct {
	Slot       uint64          `json:"slot"`
	TotalStake *uint64         `json:"total_stake,omitempty"`
	Accounts   []AccountRecord `json:"accounts"`
}

// LoadSnapshot reads and validates a snapshot dump. Structural problems
// (bad keys, duplicates, total mismatch) surface as
// sim.ErrMalformedSnapshot.
func LoadSnapshot(path string) (*sim.AccountSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return DecodeSnapshot(data)
}

// DecodeSnapshot parses and validates a snapshot dump from memory.
func DecodeSnapshot(data []byte) (*sim.AccountSnapshot, error) {
	var file SnapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", sim.ErrMalformedSnapshot, err)
	}

	b := sim.NewSnapshotBuilder(file.Slot)
	for _, rec := range file.Accounts {
		key, err := sim.ParsePublisherKey(rec.Pubkey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", sim.ErrMalformedSnapshot, err)
		}
		b.Add(key, rec.Stake)
	}

	if file.TotalStake != nil {
		return b.BuildChecked(*file.TotalStake)
	}
	return b.Build()
}

// WriteSnapshot dumps a snapshot in the on-disk format, entries in
// publisher-key order, with the total-stake scalar included.
func WriteSnapshot(path string, snapshot *sim.AccountSnapshot) error {
	total := snapshot.TotalStake()
	file := SnapshotFile{
		Slot:       snapshot.Slot(),
		TotalStake: &total,
		Accounts:   make([]AccountRecord, 0, snapshot.NumPublishers()),
	}
	snapshot.ForEach(func(e sim.StakeEntry) {
		file.Accounts = append(file.Accounts, AccountRecord{
			Pubkey: e.Publisher.String(),
			Stake:  e.Stake,
		})
	})

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	logrus.Debugf("wrote snapshot with %d accounts to %s", snapshot.NumPublishers(), path)
	return nil
}

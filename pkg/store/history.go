package store

import (
	"encoding/binary"
	"strings"

	bolt "go.etcd.io/bbolt"
)

// Runs f in a read-only transaction on the command bucket.
func (s *dbStore) viewCmds(f func(b *bolt.Bucket) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return f(tx.Bucket([]byte(bucketCmd)))
	})
}

// NextCmdSeq returns the sequence number the next added command will get.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.viewCmds(func(b *bolt.Bucket) error {
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd appends a command to the history, and returns its sequence number.
func (s *dbStore) AddCmd(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		if seq, err = b.NextSequence(); err != nil {
			return err
		}
		return b.Put(seqKey(seq), []byte(text))
	})
	if err == nil {
		logger.Printf("added command %d", seq)
	}
	return int(seq), err
}

// Cmd returns the command with the given sequence number.
func (s *dbStore) Cmd(seq int) (string, error) {
	var text string
	err := s.viewCmds(func(b *bolt.Bucket) error {
		v := b.Get(seqKey(uint64(seq)))
		if v == nil {
			return ErrNoMatchingCmd
		}
		text = string(v)
		return nil
	})
	return text, err
}

// CmdsWithSeq returns the commands whose sequence numbers are in [from, upto),
// oldest first.
func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.viewCmds(func(b *bolt.Bucket) error {
		c := b.Cursor()
		for k, v := c.Seek(seqKey(uint64(from))); k != nil; k, v = c.Next() {
			seq := keySeq(k)
			if seq >= uint64(upto) {
				break
			}
			cmds = append(cmds, Cmd{Text: string(v), Seq: int(seq)})
		}
		return nil
	})
	return cmds, err
}

// PrevCmd returns the newest command that has the given prefix and a sequence
// number smaller than upto.
func (s *dbStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.viewCmds(func(b *bolt.Bucket) error {
		c := b.Cursor()
		k, v := c.Seek(seqKey(uint64(upto)))
		if k == nil {
			// All commands are before upto.
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if strings.HasPrefix(string(v), prefix) {
				cmd = Cmd{Text: string(v), Seq: int(keySeq(k))}
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

// Keys are big-endian so that the byte order of keys matches the order of
// sequence numbers.

func seqKey(seq uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, seq)
}

func keySeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// KeyValueStore is the persistence contract of the widget configuration:
// named scalar values whose write order survives a round trip. Values are
// kept as strings; the typed accessors convert on the way in and out.
type KeyValueStore interface {
	PutString(key, value string)
	PutInt(key string, value int)
	PutFloat(key string, value float64)
	PutBool(key string, value bool)
	GetString(key string) (string, bool)
	GetInt(key string) (int, bool)
	GetFloat(key string) (float64, bool)
	GetBool(key string) (bool, bool)
	First() (key, value string, ok bool)
	Len() int
}

type kvPair struct {
	Key   string `json:"k"`
	Value string `json:"v"`
}

// Record is the file-backed KeyValueStore. A put on an existing key
// rewrites the value in place, so field order stays stable across saves.
type Record struct {
	pairs []kvPair
	index map[string]int
}

func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

func (r *Record) put(key, value string) {
	if i, ok := r.index[key]; ok {
		r.pairs[i].Value = value
		return
	}
	r.index[key] = len(r.pairs)
	r.pairs = append(r.pairs, kvPair{Key: key, Value: value})
}

func (r *Record) PutString(key, value string) { r.put(key, value) }

func (r *Record) PutInt(key string, value int) { r.put(key, strconv.Itoa(value)) }

func (r *Record) PutFloat(key string, value float64) {
	r.put(key, strconv.FormatFloat(value, 'g', -1, 64))
}

func (r *Record) PutBool(key string, value bool) { r.put(key, strconv.FormatBool(value)) }

func (r *Record) GetString(key string) (string, bool) {
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.pairs[i].Value, true
}

func (r *Record) GetInt(key string) (int, bool) {
	s, ok := r.GetString(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (r *Record) GetFloat(key string) (float64, bool) {
	s, ok := r.GetString(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (r *Record) GetBool(key string) (bool, bool) {
	s, ok := r.GetString(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}

// First returns the record's leading pair. Schema migration keys off it:
// the oldest layout stored the source reference there with no version
// marker at all.
func (r *Record) First() (key, value string, ok bool) {
	if len(r.pairs) == 0 {
		return "", "", false
	}
	return r.pairs[0].Key, r.pairs[0].Value, true
}

func (r *Record) Len() int { return len(r.pairs) }

func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.pairs)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var pairs []kvPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	r.pairs = pairs
	r.index = make(map[string]int, len(pairs))
	for i, p := range pairs {
		if _, dup := r.index[p.Key]; !dup {
			r.index[p.Key] = i
		}
	}
	return nil
}

// ProfileStore reads and writes named widget profiles as JSON files in a
// directory, one record per profile.
type ProfileStore struct {
	dir string
}

func NewProfileStore(dir string) *ProfileStore {
	return &ProfileStore{dir: dir}
}

func (ps *ProfileStore) path(name string) string {
	return filepath.Join(ps.dir, name+".json")
}

func (ps *ProfileStore) Exists(name string) bool {
	_, err := os.Stat(ps.path(name))
	return err == nil
}

func (ps *ProfileStore) Load(name string) (*Record, error) {
	data, err := os.ReadFile(ps.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %v", err)
	}

	record := NewRecord()
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %v", err)
	}
	return record, nil
}

func (ps *ProfileStore) Save(name string, record *Record) error {
	if err := os.MkdirAll(ps.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %v", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %v", err)
	}

	tmp := ps.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %v", err)
	}
	return os.Rename(tmp, ps.path(name))
}

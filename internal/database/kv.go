package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
)

// KVStore is a typed get/set wrapper over the flat settings table. All user
// preferences live here under documented keys; structured values are stored
// as JSON strings.
type KVStore struct {
	db *sql.DB
}

// NewKVStore creates a key-value adapter over the settings table
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the raw string value for a key. The second result reports
// whether the key was present.
func (kv *KVStore) Get(key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a raw string value under a key, overwriting any previous value.
func (kv *KVStore) Set(key, value string) error {
	_, err := kv.db.Exec(`
        INSERT INTO settings (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value
    `, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is a no-op.
func (kv *KVStore) Delete(key string) error {
	if _, err := kv.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// GetBool reads a boolean, falling back to the default when the key is
// absent or malformed.
func (kv *KVStore) GetBool(key string, defaultValue bool) (bool, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return defaultValue, err
	}
	if !ok {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue, nil
	}
	return value, nil
}

// SetBool stores a boolean value.
func (kv *KVStore) SetBool(key string, value bool) error {
	return kv.Set(key, strconv.FormatBool(value))
}

// GetInt reads an integer, falling back to the default when the key is
// absent or malformed.
func (kv *KVStore) GetInt(key string, defaultValue int) (int, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return defaultValue, err
	}
	if !ok {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, nil
	}
	return value, nil
}

// SetInt stores an integer value.
func (kv *KVStore) SetInt(key string, value int) error {
	return kv.Set(key, strconv.Itoa(value))
}

// GetJSON unmarshals a stored JSON value into v. The first result reports
// whether the key was present.
func (kv *KVStore) GetJSON(key string, v interface{}) (bool, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals v and stores it under a key.
func (kv *KVStore) SetJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	return kv.Set(key, string(data))
}

package boltstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangled.org/brewguide.app/brewguide/internal/database"
)

func TestSettingsStore_PutGet(t *testing.T) {
	store := setupTestStore(t).SettingsStore()

	blob := json.RawMessage(`{"cumulativeDisplay":true,"defaultRatio":15}`)
	require.NoError(t, store.Put(SettingsKeyApp, blob))

	got, err := store.Get(SettingsKeyApp)
	require.NoError(t, err)
	assert.JSONEq(t, string(blob), string(got))
}

func TestSettingsStore_Get_Missing(t *testing.T) {
	store := setupTestStore(t).SettingsStore()

	_, err := store.Get("no-such-key")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSettingsStore_Put_Replaces(t *testing.T) {
	store := setupTestStore(t).SettingsStore()

	require.NoError(t, store.Put(SettingsKeyQuickDecrements, json.RawMessage(`[15,18]`)))
	require.NoError(t, store.Put(SettingsKeyQuickDecrements, json.RawMessage(`[15,18,20]`)))

	got, err := store.Get(SettingsKeyQuickDecrements)
	require.NoError(t, err)
	assert.JSONEq(t, `[15,18,20]`, string(got))
}

func TestSettingsStore_Delete(t *testing.T) {
	store := setupTestStore(t).SettingsStore()

	require.NoError(t, store.Put(SettingsKeyApp, json.RawMessage(`{}`)))
	require.NoError(t, store.Delete(SettingsKeyApp))

	_, err := store.Get(SettingsKeyApp)
	assert.ErrorIs(t, err, database.ErrNotFound)

	// Deleting a missing key is a no-op
	assert.NoError(t, store.Delete(SettingsKeyApp))
}

func TestSettingsStore_Keys(t *testing.T) {
	store := setupTestStore(t).SettingsStore()

	assert.Empty(t, store.Keys())

	require.NoError(t, store.Put(SettingsKeyApp, json.RawMessage(`{}`)))
	require.NoError(t, store.Put(SettingsKeyQuickDecrements, json.RawMessage(`[]`)))

	keys := store.Keys()
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, SettingsKeyApp)
	assert.Contains(t, keys, SettingsKeyQuickDecrements)
}

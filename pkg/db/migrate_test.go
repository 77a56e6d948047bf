package db

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDBConnection(":memory:", false, "NORMAL")
	require.NoError(t, err, "OpenDBConnection failed for in-memory DB")
	t.Cleanup(func() { db.Close() })
	return db
}

// checkTableExists is a test helper to verify if a table exists in the database.
func checkTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?;", tableName).Scan(&name)
	if err == sql.ErrNoRows {
		t.Errorf("Table '%s' does not exist, but it should.", tableName)
		return
	}
	require.NoError(t, err, "checking table %s", tableName)
	assert.Equal(t, tableName, name)
}

func TestOpenDBConnection_InvalidSyncMode(t *testing.T) {
	_, err := OpenDBConnection(":memory:", false, "SOMETIMES")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sync pragma value")

	assert.True(t, ValidSyncMode("normal"))
	assert.False(t, ValidSyncMode("sometimes"))
}

func TestUpgradeDB_NewDatabase(t *testing.T) {
	db := openTestDB(t)

	err := UpgradeDB(db, zap.NewNop(), ":memory:", TargetSchemaVersion)
	require.NoError(t, err, "UpgradeDB failed on a new in-memory database")

	for _, tableName := range []string{"jubiland_versions", "mood_entries", "celebrations"} {
		checkTableExists(t, db, tableName)
	}

	version, err := GetComponentSchemaVersion(db, JubilandDBComponent)
	require.NoError(t, err)
	assert.Equal(t, TargetSchemaVersion, version)
}

func TestUpgradeDB_AlreadyUpToDate(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, InitializeSchema(db, TargetSchemaVersion))
	require.NoError(t, UpgradeDB(db, nil, ":memory:", TargetSchemaVersion))

	version, err := GetComponentSchemaVersion(db, JubilandDBComponent)
	require.NoError(t, err)
	assert.Equal(t, TargetSchemaVersion, version)
}

func TestUpgradeDB_OlderVersionNeedsMigration(t *testing.T) {
	db := openTestDB(t)

	const dbInitialSchemaVersion int64 = 1
	const appTargetsSchemaVersion int64 = 2

	require.NoError(t, InitializeSchema(db, dbInitialSchemaVersion))

	err := UpgradeDB(db, zap.NewNop(), ":memory:", appTargetsSchemaVersion)
	require.Error(t, err, "UpgradeDB should fail for an older DB version requiring migration")

	expectedErrorMsg := fmt.Sprintf("component %s in database ':memory:' has schema version %d, which is older than application's target schema version %d", JubilandDBComponent, dbInitialSchemaVersion, appTargetsSchemaVersion)
	assert.Contains(t, err.Error(), expectedErrorMsg)

	currentVersion, err := GetComponentSchemaVersion(db, JubilandDBComponent)
	require.NoError(t, err)
	assert.Equal(t, dbInitialSchemaVersion, currentVersion, "a failed upgrade must not change the version")
}

func TestUpgradeDB_NewerVersionUnsupported(t *testing.T) {
	db := openTestDB(t)

	const dbInitialSchemaVersion int64 = 2
	const appTargetsSchemaVersion int64 = 1

	require.NoError(t, InitializeSchema(db, dbInitialSchemaVersion))

	err := UpgradeDB(db, zap.NewNop(), ":memory:", appTargetsSchemaVersion)
	require.Error(t, err, "UpgradeDB should fail for a newer DB version")

	expectedErrorMsg := fmt.Sprintf("component %s in database ':memory:' has schema version %d, which is newer than application's target schema version %d", JubilandDBComponent, dbInitialSchemaVersion, appTargetsSchemaVersion)
	assert.Contains(t, err.Error(), expectedErrorMsg)

	currentVersion, err := GetComponentSchemaVersion(db, JubilandDBComponent)
	require.NoError(t, err)
	assert.Equal(t, dbInitialSchemaVersion, currentVersion)
}

func TestGetComponentSchemaVersion_NoTable(t *testing.T) {
	db := openTestDB(t)

	version, err := GetComponentSchemaVersion(db, JubilandDBComponent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
}

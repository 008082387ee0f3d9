// Package testutil opens throwaway sqlite databases for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/trainer-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/trainer-scheduler/internal/db"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := dbpkg.NewDB(&config.Config{DBDriver: config.DriverSQLite, DBUrl: dsn})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func SeedClient(t *testing.T, db *gorm.DB, balance int) *models.Client {
	t.Helper()

	c := &models.Client{Name: "client", AvailableSessions: balance}
	require.NoError(t, db.Create(c).Error)
	return c
}

func SeedAssignment(t *testing.T, db *gorm.DB, clientID, trainerID uint) {
	t.Helper()

	require.NoError(t, db.Create(&models.ClientTrainerAssignment{
		ClientID:  clientID,
		TrainerID: trainerID,
		Active:    true,
	}).Error)
}

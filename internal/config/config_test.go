package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DB_DRIVER", "CANCEL_NOTICE_HOURS", "LATE_CANCEL_FEE",
		"RESTORE_CREDIT_ON_LATE", "LOCK_TIMEOUT_MS", "SERVER_PORT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 24, cfg.CancelNoticeHours)
	assert.True(t, cfg.LateCancelFee.Equal(decimal.NewFromInt(25)))
	assert.False(t, cfg.RestoreCreditOnLate)
	assert.Equal(t, 3*time.Second, cfg.LockTimeout)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("CANCEL_NOTICE_HOURS", "12")
	t.Setenv("LATE_CANCEL_FEE", "17.50")
	t.Setenv("RESTORE_CREDIT_ON_LATE", "true")
	t.Setenv("LOCK_TIMEOUT_MS", "500")

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 12, cfg.CancelNoticeHours)
	assert.Equal(t, "17.5", cfg.LateCancelFee.String())
	assert.True(t, cfg.RestoreCreditOnLate)
	assert.Equal(t, 500*time.Millisecond, cfg.LockTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CANCEL_NOTICE_HOURS", "soon")
	t.Setenv("LATE_CANCEL_FEE", "-3")
	t.Setenv("RESTORE_CREDIT_ON_LATE", "maybe")

	cfg := Load()

	assert.Equal(t, 24, cfg.CancelNoticeHours)
	assert.True(t, cfg.LateCancelFee.Equal(decimal.NewFromInt(25)))
	assert.False(t, cfg.RestoreCreditOnLate)
}

func TestConfigPolicy(t *testing.T) {
	t.Setenv("CANCEL_NOTICE_HOURS", "48")
	t.Setenv("LATE_CANCEL_FEE", "10")
	t.Setenv("RESTORE_CREDIT_ON_LATE", "")

	p := Load().Policy()

	assert.Equal(t, 48, p.NoticeHours)
	assert.True(t, p.LateFee.Equal(decimal.NewFromInt(10)))
	assert.True(t, p.RestoreOnTimely)
	assert.False(t, p.RestoreOnLate)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com")

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, Load().CORSOrigins)
}

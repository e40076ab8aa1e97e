package model

import (
	"path/filepath"
	"testing"

	"campus-board/backend/common"

	"github.com/stretchr/testify/assert"
)

func init() {
	common.RedisEnabled = false
	common.RDB = nil
}

func setupTestDB(t *testing.T) func() {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	common.SQLitePath = filepath.Join(t.TempDir(), "model_test.db")

	err := InitDB()
	assert.NoError(t, err)

	return func() {
		common.SQLitePath = originalSQLitePath
	}
}

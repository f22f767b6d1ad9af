package mysqlkv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/focustasks/internal/kv/mysqlkv"
)

func Test_NormalizeDSN_Forces_ParseTime(t *testing.T) {
	t.Parallel()

	got, err := mysqlkv.NormalizeDSN("user:pw@tcp(127.0.0.1:3306)/focus")
	require.NoError(t, err)
	assert.Contains(t, got, "parseTime=true")
	assert.Contains(t, got, "/focus")
}

func Test_NormalizeDSN_Rejects_Bad_Input(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		dsn  string
	}{
		{name: "MissingDatabase", dsn: "user:pw@tcp(127.0.0.1:3306)/"},
		{name: "Garbage", dsn: "user:pw@tcp(127.0.0.1:3306"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := mysqlkv.NormalizeDSN(testCase.dsn)
			require.Error(t, err)
		})
	}
}

func Test_Open_Rejects_Invalid_Table_Before_Connecting(t *testing.T) {
	t.Parallel()

	_, err := mysqlkv.Open(mysqlkv.Options{
		DSN:   "user:pw@tcp(127.0.0.1:3306)/focus",
		Table: "slots; DROP TABLE x",
	})
	require.ErrorContains(t, err, "invalid table name")
}

func Test_CreateTableSQL_Uses_Case_Sensitive_Key_Column(t *testing.T) {
	t.Parallel()

	sql := mysqlkv.CreateTableSQL(mysqlkv.DefaultTable)

	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS kv_slots (")
	assert.Contains(t, sql, "slot_key VARBINARY(128) PRIMARY KEY")
	assert.NotContains(t, sql, "VARCHAR")
}

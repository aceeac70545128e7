package extractor

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dns-parser/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
}

func TestResultWriter_FileName(t *testing.T) {
	writer := NewResultWriter(types.DefaultConfig(), quietLogger())

	assert.Equal(t, "dns-parse-05-March-2024-14:07.json", writer.FileName(fixedClock()))
}

func TestResultWriter_Write(t *testing.T) {
	config := types.DefaultConfig()
	config.OutputDir = filepath.Join(t.TempDir(), "parse-results")
	writer := NewResultWriter(config, quietLogger())
	writer.now = fixedClock

	title, empty := "Видеокарта", ""
	products := []types.Product{
		{Title: &title, Price: 45999, Link: "https://www.dns-shop.ru/product/1/", IsSale: true},
		{Price: 100, Link: types.NoLink},
		{Title: &empty, Price: 5, Link: types.NoLink},
	}

	path, err := writer.Write(products)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(config.OutputDir, "dns-parse-05-March-2024-14:07.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"title":"Видеокарта","price":45999,"link":"https://www.dns-shop.ru/product/1/","isSale":true},
		{"price":100,"link":"NO-LINK","isSale":false},
		{"title":"","price":5,"link":"NO-LINK","isSale":false}
	]`, string(data))

	var decoded []types.Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, products, decoded)
}

func TestResultWriter_Write_ExistingDirectory(t *testing.T) {
	config := types.DefaultConfig()
	config.OutputDir = t.TempDir()
	writer := NewResultWriter(config, quietLogger())

	_, err := writer.Write(nil)
	require.NoError(t, err)

	_, err = writer.Write([]types.Product{{Price: 1, Link: types.NoLink}})
	require.NoError(t, err)
}

func TestResultWriter_Write_Failure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	config := types.DefaultConfig()
	config.OutputDir = blocker
	writer := NewResultWriter(config, quietLogger())

	_, err := writer.Write([]types.Product{{Price: 1, Link: types.NoLink}})

	var writeErr *types.WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Contains(t, writeErr.Path, "not-a-dir")
}

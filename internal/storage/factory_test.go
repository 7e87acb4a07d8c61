package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/config"
)

func TestValidateStorageType(t *testing.T) {
	st, err := ValidateStorageType("memory")
	require.NoError(t, err)
	assert.Equal(t, StorageTypeMemory, st)

	st, err = ValidateStorageType("postgres")
	require.NoError(t, err)
	assert.Equal(t, StorageTypePostgres, st)

	_, err = ValidateStorageType("mongo")
	assert.Error(t, err)
}

func TestFactory_CreateMemoryContainer(t *testing.T) {
	container, err := NewFactory(StorageTypeMemory).CreateContainer(&config.Config{})
	require.NoError(t, err)
	assert.NoError(t, container.Health())
	assert.NotNil(t, container.Events())
	assert.NoError(t, container.Close())
}

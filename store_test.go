package snsd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stellarns/snsd/schema"
)

func TestStoreEnvelope(t *testing.T) {
	dbPath := "./data"
	s, err := NewBoltStore(dbPath)
	assert.NoError(t, err)

	hash := "3389e9f0f1a65f19736cacf544c2e825313d8447f2f20d3f02498ce8ffea924a"
	envelope := "eyJ0eCI6e319"
	assert.False(t, s.ExistEnvelope(hash))

	err = s.SaveEnvelope(hash, envelope)
	assert.NoError(t, err)
	assert.True(t, s.ExistEnvelope(hash))

	loaded, err := s.LoadEnvelope(hash)
	assert.NoError(t, err)
	assert.Equal(t, envelope, loaded)

	_, err = s.LoadEnvelope("unknown")
	assert.ErrorIs(t, err, schema.ErrNotExist)

	err = s.Close()
	assert.NoError(t, err)
	err = os.RemoveAll(dbPath)
	assert.NoError(t, err)
}

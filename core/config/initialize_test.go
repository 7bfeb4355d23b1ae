package config

import (
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(io.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(filepath.Join(tempDir, ConfigurationName))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("CreateSessionLog", func(t *testing.T) {
		fd, err := cfg.CreateSessionLog("session.cast")
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("OpenAppLog", func(t *testing.T) {
		fd, err := cfg.OpenAppLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("PrivateKeyPem", func(t *testing.T) {
		keyPem, err := cfg.PrivateKeyPem()
		assert.Nil(t, err)

		_, err = gossh.ParsePrivateKey(keyPem)
		assert.Nil(t, err)
	})
}

func TestInitializeFs_keepsExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	custom := []byte("prompt: \"> \"\nhostname: custom\n")
	require.NoError(t, afero.WriteFile(fs, ConfigurationName, custom, 0600))
	require.NoError(t, afero.WriteFile(fs, PrivateKeyName, []byte("key"), 0600))

	require.NoError(t, initializeFs(fs, log.New(io.Discard, "", 0)))

	got, err := afero.ReadFile(fs, ConfigurationName)
	require.NoError(t, err)
	assert.Equal(t, custom, got)

	key, err := afero.ReadFile(fs, PrivateKeyName)
	require.NoError(t, err)
	assert.Equal(t, []byte("key"), key)

	isDir, err := afero.IsDir(fs, LogsDirName)
	require.NoError(t, err)
	assert.True(t, isDir)
}

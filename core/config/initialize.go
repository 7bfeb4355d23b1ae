package config

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"

	"github.com/spf13/afero"
)

// Initialize sets up a configuration directory, keeping any existing files,
// and loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	fs := afero.NewBasePathFs(afero.NewOsFs(), dir)
	if err := initializeFs(fs, logger); err != nil {
		return nil, err
	}

	return loadFs(fs)
}

func initializeFs(fs afero.Fs, logger *log.Logger) error {
	logger.Printf("Creating %s\n", LogsDirName)
	if err := fs.MkdirAll(LogsDirName, 0700); err != nil {
		return err
	}

	if err := writeIfMissing(fs, logger, ConfigurationName, func() ([]byte, error) {
		return defaultConfigData, nil
	}); err != nil {
		return err
	}

	return writeIfMissing(fs, logger, PrivateKeyName, generatePrivateKeyPem)
}

func writeIfMissing(fs afero.Fs, logger *log.Logger, name string, contents func() ([]byte, error)) error {
	exists, err := afero.Exists(fs, name)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("Keeping existing %s\n", name)
		return nil
	}

	data, err := contents()
	if err != nil {
		return err
	}
	logger.Printf("Writing %s\n", name)
	return afero.WriteFile(fs, name, data, 0600)
}

// generatePrivateKeyPem creates a PKCS #8 encoded ed25519 SSH host key.
func generatePrivateKeyPem() ([]byte, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Initialize writes a default configuration and host key into dir, keeping
// any files that already exist, then loads the result.
func Initialize(dir string, log *zap.SugaredLogger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	if err := InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), dir), log); err != nil {
		return nil, err
	}

	return Load(dir)
}

// InitializeFs writes a default configuration and host key into the root of
// fs.
func InitializeFs(fs afero.Fs, log *zap.SugaredLogger) error {
	if err := writeIfMissing(fs, ConfigurationName, log, func() ([]byte, error) {
		return defaultConfigData, nil
	}); err != nil {
		return err
	}

	return writeIfMissing(fs, PrivateKeyName, log, generateHostKey)
}

func writeIfMissing(fs afero.Fs, name string, log *zap.SugaredLogger, contents func() ([]byte, error)) error {
	exists, err := afero.Exists(fs, name)
	switch {
	case err != nil:
		return err
	case exists:
		log.Infof("%s already exists, skipping", name)
		return nil
	}

	data, err := contents()
	if err != nil {
		return err
	}

	log.Infof("writing %s", name)
	return afero.WriteFile(fs, name, data, 0600)
}

func generateHostKey() ([]byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), nil
}

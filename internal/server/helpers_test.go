package server

import (
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cert-inventory/internal/config"

	"github.com/github/fakeca"
	"github.com/stretchr/testify/require"
)

// writeStores fills machine/MY under a temp root with an expiring leaf, an expired leaf and
// two certificates the default deny list drops.
func writeStores(t *testing.T) string {
	t.Helper()

	now := time.Now()
	root := t.TempDir()
	dir := filepath.Join(root, "machine", "MY")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	corp := fakeca.New(fakeca.IsCA, fakeca.Subject(pkix.Name{CommonName: "Contoso CA"}))
	vendor := fakeca.New(fakeca.IsCA, fakeca.Subject(pkix.Name{CommonName: "Microsoft Root Authority"}))

	certs := map[string]*fakeca.Identity{
		"vpn.pem": corp.Issue(
			fakeca.Subject(pkix.Name{CommonName: "vpn.contoso.example"}),
			fakeca.NotBefore(now.AddDate(-1, 0, 0)),
			fakeca.NotAfter(now.AddDate(0, 0, 30)),
		),
		"legacy.pem": corp.Issue(
			fakeca.Subject(pkix.Name{CommonName: "legacy.contoso.example"}),
			fakeca.NotBefore(now.AddDate(-2, 0, 0)),
			fakeca.NotAfter(now.AddDate(0, 0, -10)),
		),
		"office.pem": vendor.Issue(
			fakeca.Subject(pkix.Name{CommonName: "office.example"}),
			fakeca.NotAfter(now.AddDate(1, 0, 0)),
		),
		"anchor.pem": corp.Issue(
			fakeca.Subject(pkix.Name{CommonName: "trust_anchor"}),
			fakeca.NotAfter(now.AddDate(1, 0, 0)),
		),
	}

	for name, id := range certs {
		data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: id.Certificate.Raw})
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	return root
}

// loadTestConfig writes a config pointing the directory provider at root and loads it.
func loadTestConfig(t *testing.T, root string, extra string) *config.Config {
	t.Helper()

	body := fmt.Sprintf(`
inventory:
  provider: directory
  directory:
    machine_root: %s
    user_root: %s
%s`, filepath.Join(root, "machine"), filepath.Join(root, "user"), extra)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	return cfg
}

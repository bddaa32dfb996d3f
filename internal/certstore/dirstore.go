package certstore

import (
	"crypto/x509"
	"os"
	"path/filepath"
	"strings"

	"cert-inventory/internal/utils"

	"github.com/pkg/errors"
	"software.sslmate.com/src/go-pkcs12"
)

// DirProvider serves stores from directories on disk. Each scope maps to a root directory and
// each store is a subdirectory of it holding PEM, DER or PKCS#12 files.
type DirProvider struct {
	Roots map[Scope]string

	// PKCS12Password is tried when decoding .p12/.pfx files.
	PKCS12Password string
}

func NewDirProvider(roots map[Scope]string, pkcs12Password string) *DirProvider {
	return &DirProvider{Roots: roots, PKCS12Password: pkcs12Password}
}

func (p *DirProvider) Open(loc Location) (Store, error) {
	root, ok := p.Roots[loc.Scope]
	if !ok || root == "" {
		return nil, errors.Wrapf(ErrStoreNotFound, "no directory configured for scope %s", loc.Scope)
	}

	if loc.Name == "" || strings.ContainsAny(loc.Name, `/\`) || loc.Name == ".." {
		return nil, errors.Wrapf(ErrStoreNotFound, "invalid store name %q", loc.Name)
	}

	dir := filepath.Join(root, loc.Name)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrStoreNotFound, "%s", dir)
		}
		return nil, errors.Wrapf(err, "failed to open store %s", loc)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrStoreNotFound, "%s is not a directory", dir)
	}

	return &dirStore{dir: dir, password: p.PKCS12Password}, nil
}

type dirStore struct {
	dir      string
	password string
	closed   bool
}

var certExtensions = []string{".pem", ".crt", ".cer", ".der"}
var pkcs12Extensions = []string{".p12", ".pfx"}

func (s *dirStore) Certificates() ([]Certificate, error) {
	if s.closed {
		return nil, errors.New("store is closed")
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", s.dir)
	}

	var (
		certs   []Certificate
		failed  int
		lastErr error
	)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !utils.IsStringInSlice(ext, certExtensions) && !utils.IsStringInSlice(ext, pkcs12Extensions) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		found, err := s.readFile(path, ext)
		if err != nil {
			failed++
			lastErr = errors.Wrap(err, entry.Name())
			continue
		}
		certs = append(certs, found...)
	}

	if failed > 0 {
		return certs, errors.Wrapf(lastErr, "%d file(s) in %s could not be read", failed, s.dir)
	}

	return certs, nil
}

func (s *dirStore) readFile(path, ext string) ([]Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed []*x509.Certificate
	if utils.IsStringInSlice(ext, pkcs12Extensions) {
		parsed, err = decodePKCS12(data, s.password)
	} else {
		parsed, err = utils.ParseCertificates(data)
	}
	if err != nil {
		return nil, err
	}

	out := make([]Certificate, 0, len(parsed))
	for _, c := range parsed {
		out = append(out, NewX509Certificate(c))
	}
	return out, nil
}

// decodePKCS12 reads a key bundle (leaf plus chain) or, failing that, a trust store.
func decodePKCS12(data []byte, password string) ([]*x509.Certificate, error) {
	_, leaf, chain, err := pkcs12.DecodeChain(data, password)
	if err == nil {
		return append([]*x509.Certificate{leaf}, chain...), nil
	}

	trusted, trustErr := pkcs12.DecodeTrustStore(data, password)
	if trustErr != nil {
		return nil, errors.Wrap(err, "failed to decode pkcs12")
	}
	return trusted, nil
}

func (s *dirStore) Close() error {
	s.closed = true
	return nil
}

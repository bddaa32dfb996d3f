//go:build windows

package certstore

import (
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// CRYPT_E_NOT_FOUND, returned by CertEnumCertificatesInStore at the end of a store.
const cryptENotFound = 0x80092004

type systemProvider struct{}

// NewSystemProvider returns a Provider reading the Windows system certificate stores.
func NewSystemProvider() Provider {
	return systemProvider{}
}

func (systemProvider) Open(loc Location) (Store, error) {
	var location uint32
	switch loc.Scope {
	case ScopeMachine:
		location = windows.CERT_SYSTEM_STORE_LOCAL_MACHINE
	case ScopeUser:
		location = windows.CERT_SYSTEM_STORE_CURRENT_USER
	default:
		return nil, errors.Wrapf(ErrUnknownScope, "%q", loc.Scope)
	}

	name, err := windows.UTF16PtrFromString(loc.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid store name %q", loc.Name)
	}

	handle, err := windows.CertOpenStore(
		windows.CERT_STORE_PROV_SYSTEM,
		0, 0,
		location|windows.CERT_STORE_OPEN_EXISTING_FLAG|windows.CERT_STORE_READONLY_FLAG,
		uintptr(unsafe.Pointer(name)),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open store %s", loc)
	}
	if handle == 0 {
		return nil, errors.Wrapf(ErrStoreNotFound, "%s", loc)
	}

	return &winCertStore{store: handle}, nil
}

type winCertStore struct {
	store windows.Handle
}

// Certificates copies the metadata of every entry while its context is still valid, so the
// returned values do not hold store handles.
func (s *winCertStore) Certificates() ([]Certificate, error) {
	if s.store == 0 {
		return nil, errors.Wrap(ErrStoreNotFound, "store handle is closed")
	}

	var (
		certs []Certificate
		ctx   *windows.CertContext
		err   error
	)

	for {
		ctx, err = windows.CertEnumCertificatesInStore(s.store, ctx)
		if ctx == nil {
			break
		}

		certs = append(certs, readCertContext(ctx))
	}

	if err != nil {
		if errno, ok := err.(windows.Errno); ok && uint32(errno) == cryptENotFound {
			return certs, nil
		}
		return certs, errors.Wrap(err, "certificate enumeration failed")
	}

	return certs, nil
}

func (s *winCertStore) Close() error {
	if s.store == 0 {
		return nil
	}

	err := windows.CertCloseStore(s.store, 0)
	s.store = 0
	if err != nil {
		return errors.Wrap(err, "failed to close store")
	}
	return nil
}

// winCertificate holds the values read from a CERT_CONTEXT.
type winCertificate struct {
	notAfter   time.Time
	subject    string
	subjectErr error
	issuer     string
	issuerErr  error
}

func readCertContext(ctx *windows.CertContext) winCertificate {
	c := winCertificate{}
	if ctx.CertInfo != nil {
		c.notAfter = filetimeToTime(ctx.CertInfo.NotAfter.HighDateTime, ctx.CertInfo.NotAfter.LowDateTime)
	}
	c.subject, c.subjectErr = certNameString(ctx, 0)
	c.issuer, c.issuerErr = certNameString(ctx, windows.CERT_NAME_ISSUER_FLAG)
	return c
}

func certNameString(ctx *windows.CertContext, flags uint32) (string, error) {
	size := windows.CertGetNameString(ctx, windows.CERT_NAME_SIMPLE_DISPLAY_TYPE, flags, nil, nil, 0)
	if size <= 1 {
		return "", ErrEmptyName
	}

	buf := make([]uint16, size)
	windows.CertGetNameString(ctx, windows.CERT_NAME_SIMPLE_DISPLAY_TYPE, flags, nil, &buf[0], size)
	return windows.UTF16ToString(buf), nil
}

func (c winCertificate) NotAfter() time.Time {
	return c.notAfter
}

func (c winCertificate) DisplayName(issuer bool) (string, error) {
	if issuer {
		return c.issuer, c.issuerErr
	}
	return c.subject, c.subjectErr
}

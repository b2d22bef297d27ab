package filesystem

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Exported constants.
const (
	// DefaultSFTPPort is used when an sftp:// URL names no port
	DefaultSFTPPort = 22
	// SFTPScheme prefixes remote locations
	SFTPScheme = "sftp://"
)

// Exported variables.
var (
	ErrSFTPMissingUser = errors.New("SFTP URL must include username (sftp://user@host/path)")
	ErrSFTPMissingHost = errors.New("SFTP URL must include host")
)

// Location is either a local directory or a directory on an SFTP server.
type Location struct {
	Remote bool

	// Path is the local path, or the remote path for SFTP locations
	Path string

	// SFTP only
	Host string
	Port int
	User string
}

// String renders the location the way a user would type it.
func (l Location) String() string {
	if !l.Remote {
		return l.Path
	}

	return fmt.Sprintf("%s%s@%s:%d/%s", SFTPScheme, l.User, l.Host, l.Port, strings.TrimPrefix(l.Path, "/"))
}

// IsRemoteLocation reports whether raw names an SFTP location.
func IsRemoteLocation(raw string) bool {
	return strings.HasPrefix(raw, SFTPScheme)
}

// ParseLocation parses a directory argument, detecting SFTP URLs.
// SFTP URLs have the format sftp://user@host[:port]/path:
//   - sftp://joe@nas/photos   → photos, relative to the login directory
//   - sftp://joe@nas//srv/in  → /srv/in, absolute
//   - sftp://joe@nas          → the login directory
//
// Anything else is a local path.
func ParseLocation(raw string) (Location, error) {
	if !IsRemoteLocation(raw) {
		return Location{Path: raw}, nil
	}

	u, err := url.Parse(raw) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return Location{}, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.User == nil || u.User.Username() == "" {
		return Location{}, ErrSFTPMissingUser
	}

	host := u.Hostname()
	if host == "" {
		return Location{}, ErrSFTPMissingHost
	}

	port := DefaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return Location{}, fmt.Errorf("invalid port number: %w", err)
		}
	}

	return Location{
		Remote: true,
		Path:   remotePath(u.Path),
		Host:   host,
		Port:   port,
		User:   u.User.Username(),
	}, nil
}

// remotePath maps the URL path onto an SFTP path: a single leading slash is
// relative to the login directory, a double slash is absolute.
func remotePath(urlPath string) string {
	switch {
	case urlPath == "" || urlPath == "/":
		return "."
	case strings.HasPrefix(urlPath, "//"):
		return urlPath[1:]
	default:
		return strings.TrimPrefix(urlPath, "/")
	}
}

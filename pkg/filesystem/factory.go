package filesystem

import (
	"fmt"
	"path/filepath"
)

// Open returns the FileSystem serving loc and the path to use with it.
// Local paths are returned absolute. The returned closer releases SFTP
// connections; it is never nil.
func Open(loc Location) (FileSystem, string, func(), error) {
	if !loc.Remote {
		abs, err := filepath.Abs(loc.Path)
		if err != nil {
			return nil, "", nil, fmt.Errorf("failed to resolve %s: %w", loc.Path, err)
		}

		return NewRealFileSystem(), abs, func() {}, nil
	}

	conn, err := Connect(loc.Host, loc.Port, loc.User)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to connect to %s@%s:%d: %w", loc.User, loc.Host, loc.Port, err)
	}

	closer := func() {
		_ = conn.Close()
	}

	return NewSFTPFileSystem(conn), loc.Path, closer, nil
}

// OpenPair opens the source and destination filesystems of a run.
// Two local locations share one FileSystem value.
// If the destination cannot be opened the source is released before returning.
func OpenPair(source, dest Location) (
	sourceFS FileSystem,
	destFS FileSystem,
	sourcePath string,
	destPath string,
	closer func(),
	err error,
) {
	sourceFS, sourcePath, srcCloser, err := Open(source)
	if err != nil {
		return nil, nil, "", "", nil, fmt.Errorf("failed to open source filesystem: %w", err)
	}

	if !source.Remote && !dest.Remote {
		destPath, err = filepath.Abs(dest.Path)
		if err != nil {
			return nil, nil, "", "", nil, fmt.Errorf("failed to resolve %s: %w", dest.Path, err)
		}

		return sourceFS, sourceFS, sourcePath, destPath, srcCloser, nil
	}

	destFS, destPath, dstCloser, err := Open(dest)
	if err != nil {
		srcCloser()
		return nil, nil, "", "", nil, fmt.Errorf("failed to open destination filesystem: %w", err)
	}

	closer = func() {
		srcCloser()
		dstCloser()
	}

	return sourceFS, destFS, sourcePath, destPath, closer, nil
}

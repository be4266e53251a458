// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build !(linux || darwin || netbsd || openbsd)

package fdlimit

func lower(uint64) (func() error, error) {
	return nil, ErrNotSupported
}

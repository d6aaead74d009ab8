// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cache stores compiled effects keyed by source identity and content
// hash.
//
// The cache has two tiers. A bounded in-memory table answers repeated loads
// within a process; an on-disk directory keeps one file per (identity, hash)
// pair across runs:
//
//	<sanitized identity>-<identity digest prefix>_<hex hash>.sfxc
//
// Each file is laid out as
//
//	digest(32 bytes) | uvarint format version | encoded descriptor
//
// where the digest covers everything after it. Load rejects files whose
// digest or version does not match, so a corrupted or outdated file is never
// returned. Save removes files left behind by earlier versions of the same
// source.
//
// # Thread Safety
//
// Cache is safe for concurrent use. One mutex guards both tiers.
package cache

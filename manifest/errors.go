/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import "errors"

// Sentinel errors for manifest parsing.
var (
	// ErrInvalidJSON indicates the manifest is not well-formed JSON(C).
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNotObject indicates the manifest root is not a JSON object.
	ErrNotObject = errors.New("manifest root must be an object")
)

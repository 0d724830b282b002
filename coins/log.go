// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coins

import (
	"gitlab.com/jaxnet/coins/corelog"

	"github.com/rs/zerolog"
)

// log is the package-level logger used by the codec on decode-error
// paths. It is disabled by default; callers opt in with UseLogger.
var log zerolog.Logger

func init() {
	DisableLog()
}

// DisableLog disables all library log output.
func DisableLog() {
	log = corelog.Disabled
}

// UseLogger sets the logger used by the package. Use DisableLog to
// turn off logging entirely.
func UseLogger(logger zerolog.Logger) {
	log = logger
}

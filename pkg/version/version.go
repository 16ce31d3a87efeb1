//-------------------------------------------------------------------------
//
// pgEdge E-commerce Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package version identifies the running loader. The version is stamped
// into the ecomload_metadata table after each job, and the tool name is
// reported to PostgreSQL as application_name.
package version

import (
	"fmt"
	"runtime"
)

// Name is the tool name as it appears in pg_stat_activity.
const Name = "pgedge-ecomload"

// Set at release time with -ldflags "-X .../pkg/version.Version=...".
var (
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info is the line printed by the version command.
func Info() string {
	return fmt.Sprintf(
		"%s %s (commit: %s, built: %s, go: %s, %s/%s)",
		Name, Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}

// Short is the value recorded under the metadata "version" key.
func Short() string {
	return Version
}

// AppName returns the application_name for a connection opened by job,
// e.g. "pgedge-ecomload (load)". An empty job yields Name alone.
func AppName(job string) string {
	if job == "" {
		return Name
	}
	return fmt.Sprintf("%s (%s)", Name, job)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the directory.
//
// An [App] turns one command line into one directory request through an
// [adapter.ServerAdapter] and prints the result to its output.
package client

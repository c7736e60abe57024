// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cli wires the tokenpoll commands together with cobra.

	tokenpoll [flags]        same as serve
	tokenpoll serve [flags]  run the HTTP server
	tokenpoll seed [flags]   reset the database and create a sample poll

Flag parsing is left to cliparse.ParseFlags, so every command accepts the
same -p, -d, -t, -c, -base-url and -admin-password flags. A .env file in
the working directory is loaded before any command runs.
*/
package cli

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the tokenpoll server.

tokenpoll runs small, closed polls. An admin creates a poll with a list of
options and a number of single-use tokens; each token becomes a link (and a
QR code) that lets exactly one person vote once. Results and a CSV export
of who voted for what are available to the admin.

# Starting the Server

The server needs an admin password; everything else has a default:

	ADMIN_PASSWORD=secret go run .

Or with flags:

	go run . serve -p 8080 -admin-password secret -base-url https://vote.example.com

A sample poll can be created with:

	go run . seed -admin-password secret

# Configuration

Required settings:

  - ADMIN_PASSWORD (-admin-password): Password for the admin pages

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string (default: data.db)
  - APP_BASE_URL (-base-url): Public URL used in token links
  - CONFIG_FILE (-c): YAML file with the same settings

Values are read from flags, then the environment (including .env), then the
YAML file.

# Architecture

  - cli: serve and seed commands
  - router: Route definitions using chi
  - handlers: HTTP request handlers (admin, voting, results)
  - polls: Poll, voting and results logic on database/sql
  - views: Embedded HTML templates
  - qr: QR code rendering
  - middleware: Logging and response helpers
  - models: Domain and view types
  - auth: Token codes and admin password checks
  - db: Connections and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

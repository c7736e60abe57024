// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: SQLite file path or PostgreSQL connection string (default: data.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminPassword: Shared secret for the admin pages (required)
  - BaseURL: Public URL used to build token links (default: http://localhost:<port>)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-c                YAML config file
	--admin-password  Admin password
	--base-url        Public base URL

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	CONFIG_FILE    → -c
	ADMIN_PASSWORD → --admin-password
	APP_BASE_URL   → --base-url

A .env file is loaded into the environment by the cli package before
ParseFlags runs.

# Config File

Anything still unset is read from the YAML file named by -c:

	port: 3000
	database_url: data.db
	admin_password: change-me
	base_url: https://vote.example.com

Precedence is flags, then environment, then file, then defaults.
*/
package cliparse

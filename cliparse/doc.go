// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: sqlite file or PostgreSQL connection string (default: vote.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - CookieSecret: Secret for signing voter cookies (required)
  - TemplateDir: Re-read HTML templates from disk on every request (dev only)
  - ProdMode: Set by PROD=true; disables TemplateDir
  - RedisAddr: Redis address for the results cache (optional)
  - ResultsTTL: How long cached results live (default: 1m)
  - PublicBaseURL: Prefix for share links returned by the API

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-cookie-secret  Voter cookie secret
	-templates      Template directory
	-redis          Redis address
	-cache-ttl      Results cache TTL
	-base-url       Public base URL

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d (MAPDB_FILE is also accepted)
	DATABASE_TYPE     → -t
	COOKIE_SECRET     → -cookie-secret
	TEMPLATE_DIR      → -templates
	REDIS_ADDR        → -redis
	RESULTS_CACHE_TTL → -cache-ttl
	PUBLIC_BASE_URL   → -base-url
	PROD              (no flag)

CLI flags take precedence over environment variables. main loads a .env
file first, so values there behave like environment variables.

# Validation

ParseFlags returns an error if:

  - COOKIE_SECRET is missing
  - PORT or RESULTS_CACHE_TTL cannot be parsed
  - DATABASE_TYPE is not sqlite or postgres
*/
package cliparse

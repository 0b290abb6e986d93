package postgres

import (
	"context"
	"fmt"
)

// Schema mirrors the hosted backend's tables. gen_random_uuid needs Postgres 13+.
const Schema = `
create table if not exists projects (
  id uuid primary key default gen_random_uuid(),
  title text not null,
  year text not null default '',
  category text not null,
  location text not null default '',
  image text not null,
  description text not null default '',
  created_at timestamptz not null default now()
);

create table if not exists services (
  id uuid primary key default gen_random_uuid(),
  title text not null,
  description text not null,
  icon text,
  created_at timestamptz not null default now()
);

create table if not exists admin_users (
  id uuid primary key default gen_random_uuid(),
  email text not null,
  pw_code text not null,
  role text,
  created_at timestamptz not null default now()
);

create unique index if not exists admin_users_email_lower_idx on admin_users (lower(email));

create table if not exists contact_messages (
  id uuid primary key default gen_random_uuid(),
  full_name text not null,
  phone_number text not null,
  email_address text not null,
  interested_service text not null default '',
  message text not null,
  created_at timestamptz not null default now()
);
`

// Migrate creates the tables when they are missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

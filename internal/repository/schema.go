package repository

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID      string    `db:"game_id"`
	BoardSize   int       `db:"board_size"`
	BlackEngine string    `db:"black_engine"`
	WhiteEngine string    `db:"white_engine"`
	BlackScore  int       `db:"black_score"`
	WhiteScore  int       `db:"white_score"`
	Winner      string    `db:"winner"`
	StartedAt   time.Time `db:"started_at"`
	FinishedAt  time.Time `db:"finished_at"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	GameID     string `db:"game_id"`
	MoveNumber int    `db:"move_number"`
	Color      string `db:"color"`
	X          int    `db:"x"`
	Y          int    `db:"y"`
	Pass       bool   `db:"pass"`
}

// schema is valid for both SQLite and PostgreSQL.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS games (
		game_id TEXT PRIMARY KEY,
		board_size INTEGER NOT NULL,
		black_engine TEXT NOT NULL,
		white_engine TEXT NOT NULL,
		black_score INTEGER NOT NULL,
		white_score INTEGER NOT NULL,
		winner TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS moves (
		game_id TEXT NOT NULL REFERENCES games(game_id),
		move_number INTEGER NOT NULL,
		color TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		pass BOOLEAN NOT NULL,
		PRIMARY KEY (game_id, move_number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_games_finished_at ON games(finished_at)`,
}

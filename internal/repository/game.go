package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/lk16/othengine/internal/game"
	"github.com/lk16/othengine/internal/othello"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var ErrGameNotFound = errors.New("game not found")

// Open connects to the database.
func Open(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	// SQLite serializes writes anyway, and in-memory databases only exist on one connection.
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

// GameRepository archives finished games.
type GameRepository struct {
	db *sqlx.DB
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Migrate creates the tables if they don't exist yet.
func (repo *GameRepository) Migrate(ctx context.Context) error {
	for _, statement := range schema {
		if _, err := repo.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}
	return nil
}

// SaveGame stores a finished game with all its moves.
func (repo *GameRepository) SaveGame(ctx context.Context, result *game.Result) error {
	gameID := result.ID.String()

	record := GameRecord{
		GameID:      gameID,
		BoardSize:   result.Size,
		BlackEngine: result.BlackEngine,
		WhiteEngine: result.WhiteEngine,
		BlackScore:  result.BlackScore,
		WhiteScore:  result.WhiteScore,
		Winner:      result.Winner.String(),
		StartedAt:   result.StartedAt.UTC(),
		FinishedAt:  result.FinishedAt.UTC(),
	}

	moves := make([]MoveRecord, len(result.Moves))
	for i, move := range result.Moves {
		moves[i] = MoveRecord{
			GameID:     gameID,
			MoveNumber: i + 1,
			Color:      move.Color.String(),
			X:          move.Point.X,
			Y:          move.Point.Y,
			Pass:       move.Pass,
		}
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO games (
			game_id, board_size, black_engine, white_engine,
			black_score, white_score, winner, started_at, finished_at
		) VALUES (
			:game_id, :board_size, :black_engine, :white_engine,
			:black_score, :white_score, :winner, :started_at, :finished_at
		)`, record)
	if err != nil {
		return fmt.Errorf("error saving game: %w", err)
	}

	if len(moves) > 0 {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO moves (game_id, move_number, color, x, y, pass)
			VALUES (:game_id, :move_number, :color, :x, :y, :pass)`, moves)
		if err != nil {
			return fmt.Errorf("error saving moves: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing game: %w", err)
	}

	return nil
}

// GetGame loads a game with its moves.
func (repo *GameRepository) GetGame(ctx context.Context, id uuid.UUID) (*game.Result, error) {
	var record GameRecord

	query := repo.db.Rebind(`SELECT * FROM games WHERE game_id = ?`)
	if err := repo.db.GetContext(ctx, &record, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		return nil, fmt.Errorf("error loading game: %w", err)
	}

	var moveRecords []MoveRecord

	query = repo.db.Rebind(`SELECT * FROM moves WHERE game_id = ? ORDER BY move_number`)
	if err := repo.db.SelectContext(ctx, &moveRecords, query, id.String()); err != nil {
		return nil, fmt.Errorf("error loading moves: %w", err)
	}

	return toResult(record, moveRecords)
}

// ListGames returns the most recently finished games, newest first.
func (repo *GameRepository) ListGames(ctx context.Context, limit int) ([]GameRecord, error) {
	records := make([]GameRecord, 0, limit)

	query := repo.db.Rebind(`SELECT * FROM games ORDER BY finished_at DESC LIMIT ?`)
	if err := repo.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("error listing games: %w", err)
	}

	return records, nil
}

func toResult(record GameRecord, moveRecords []MoveRecord) (*game.Result, error) {
	id, err := uuid.Parse(record.GameID)
	if err != nil {
		return nil, fmt.Errorf("invalid game id %q: %w", record.GameID, err)
	}

	var winner othello.Color
	if err = winner.UnmarshalText([]byte(record.Winner)); err != nil {
		return nil, fmt.Errorf("invalid winner: %w", err)
	}

	moves := make([]game.Move, len(moveRecords))
	for i, moveRecord := range moveRecords {
		color, err := othello.ParseColor(moveRecord.Color)
		if err != nil {
			return nil, fmt.Errorf("invalid move %d: %w", moveRecord.MoveNumber, err)
		}

		moves[i] = game.Move{
			Color: color,
			Point: othello.Point{X: moveRecord.X, Y: moveRecord.Y},
			Pass:  moveRecord.Pass,
		}
	}

	return &game.Result{
		ID:          id,
		Size:        record.BoardSize,
		BlackEngine: record.BlackEngine,
		WhiteEngine: record.WhiteEngine,
		BlackScore:  record.BlackScore,
		WhiteScore:  record.WhiteScore,
		Winner:      winner,
		Moves:       moves,
		StartedAt:   record.StartedAt,
		FinishedAt:  record.FinishedAt,
	}, nil
}

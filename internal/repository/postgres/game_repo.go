package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iamasit07/connect4-engine/internal/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

const gameColumns = `game_id, human_color, difficulty, winner, reason, total_moves,
	moves, board_state, duration_seconds, created_at, finished_at`

// SaveGame stores a finished or abandoned game. Saving the same game twice
// overwrites the outcome.
func (r *GameRepo) SaveGame(ctx context.Context, record *domain.GameRecord) error {
	movesJSON, err := json.Marshal(record.Moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}
	boardJSON, err := json.Marshal(record.BoardState)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	query := `
	INSERT INTO games (` + gameColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO UPDATE SET
		winner = EXCLUDED.winner,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		moves = EXCLUDED.moves,
		board_state = EXCLUDED.board_state,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at;
	`

	_, err = r.DB.ExecContext(ctx, query,
		record.GameID,
		record.HumanColor,
		record.Difficulty,
		nullString(record.Winner),
		record.Reason,
		record.TotalMoves,
		movesJSON,
		boardJSON,
		record.DurationSeconds,
		record.CreatedAt,
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}
	return nil
}

// GetGameByID returns nil without an error when the game is unknown.
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1;`

	record, err := scanGame(r.DB.QueryRowContext(ctx, query, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return record, nil
}

// ListRecentGames returns the latest finished games, newest first.
func (r *GameRepo) ListRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	limit = clampLimit(limit)
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY finished_at DESC LIMIT $1;`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := make([]domain.GameRecord, 0, limit)
	for rows.Next() {
		record, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game rows: %w", err)
	}
	return games, nil
}

func scanGame(row rowScanner) (*domain.GameRecord, error) {
	var record domain.GameRecord
	var winner sql.NullString
	var movesJSON, boardJSON []byte

	err := row.Scan(
		&record.GameID,
		&record.HumanColor,
		&record.Difficulty,
		&winner,
		&record.Reason,
		&record.TotalMoves,
		&movesJSON,
		&boardJSON,
		&record.DurationSeconds,
		&record.CreatedAt,
		&record.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	if winner.Valid {
		record.Winner = winner.String
	}
	if len(movesJSON) > 0 {
		if err := json.Unmarshal(movesJSON, &record.Moves); err != nil {
			return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
		}
	}
	if len(boardJSON) > 0 && string(boardJSON) != "null" {
		if err := json.Unmarshal(boardJSON, &record.BoardState); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	} else {
		empty := domain.NewBoard()
		record.BoardState = empty.Grid()
	}
	return &record, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

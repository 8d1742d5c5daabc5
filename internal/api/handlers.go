package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/othengine/internal/config"
	"github.com/lk16/othengine/internal/engine"
	"github.com/lk16/othengine/internal/game"
	"github.com/lk16/othengine/internal/middleware"
	"github.com/lk16/othengine/internal/othello"
	"github.com/lk16/othengine/internal/repository"
	"github.com/lk16/othengine/internal/services"
)

// Handlers serves the API using the connections in services.
type Handlers struct {
	services *services.Services
}

// NewHandlers creates the API handlers.
func NewHandlers(services *services.Services) *Handlers {
	return &Handlers{services: services}
}

// parseBody decodes and validates the request body into payload.
func parseBody(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := config.Struct(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, config.ValidationDetails(err))
	}

	return nil
}

// GetMoves returns the legal moves of the side to move.
func (h *Handlers) GetMoves(c *fiber.Ctx) error {
	var payload MovesPayload
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	board, err := othello.NewBoardFromString(payload.Board)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	turn := board.Turn()

	moves := board.Moves(turn)
	if moves == nil {
		moves = []othello.Point{}
	}

	return c.Status(fiber.StatusOK).JSON(MovesResponse{
		Turn:       turn,
		Moves:      moves,
		BlackScore: board.Score(othello.Black),
		WhiteScore: board.Score(othello.White),
		GameOver:   board.IsGameOver(),
	})
}

// Search runs a fixed depth minimax search for the side to move.
func (h *Handlers) Search(c *fiber.Ctx) error {
	var payload SearchPayload
	if err := parseBody(c, &payload); err != nil {
		return err
	}

	board, err := othello.NewBoardFromString(payload.Board)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	passRule := engine.PassContinue
	if payload.PassRule != "" {
		if passRule, err = engine.ParsePassRule(payload.PassRule); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	c.Locals(middleware.SearchDepthKey, payload.Depth)

	minimax := engine.NewMinimax(
		engine.WithDepth(payload.Depth),
		engine.WithPassRule(passRule),
		engine.WithCache(h.services.Cache),
	)

	entry, err := minimax.Search(board)
	if errors.Is(err, engine.ErrNoLegalMoves) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("%s has no legal moves", board.Turn()))
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(SearchResponse{
		Move:  entry.Move,
		Score: entry.Score,
		Nodes: entry.Nodes,
	})
}

// ListGames returns the most recently archived games.
func (h *Handlers) ListGames(c *fiber.Ctx) error {
	games := h.services.Games
	if games == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Game archive is not configured")
	}

	limit := c.QueryInt("limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
	}

	records, err := games.ListGames(c.Context(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	summaries := make([]GameSummary, len(records))
	for i, record := range records {
		summaries[i] = GameSummary{
			ID:          record.GameID,
			Size:        record.BoardSize,
			BlackEngine: record.BlackEngine,
			WhiteEngine: record.WhiteEngine,
			BlackScore:  record.BlackScore,
			WhiteScore:  record.WhiteScore,
			Winner:      record.Winner,
			FinishedAt:  record.FinishedAt,
		}
	}

	return c.Status(fiber.StatusOK).JSON(summaries)
}

// GetGame returns an archived game with its moves and final board.
func (h *Handlers) GetGame(c *fiber.Ctx) error {
	games := h.services.Games
	if games == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Game archive is not configured")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid game id")
	}

	result, err := games.GetGame(c.Context(), id)
	if errors.Is(err, repository.ErrGameNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Game not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	board, err := game.Replay(result.Size, result.Moves)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(GameResponse{
		GameSummary: GameSummary{
			ID:          result.ID.String(),
			Size:        result.Size,
			BlackEngine: result.BlackEngine,
			WhiteEngine: result.WhiteEngine,
			BlackScore:  result.BlackScore,
			WhiteScore:  result.WhiteScore,
			Winner:      result.Winner.String(),
			FinishedAt:  result.FinishedAt,
		},
		StartedAt: result.StartedAt,
		Moves:     result.Moves,
		Board:     board.String(),
	})
}

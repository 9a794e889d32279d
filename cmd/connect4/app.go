package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/internal/service/player"
	"github.com/urfave/cli/v2"
)

func playFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "yellow",
			Aliases: []string{"y"},
			Usage:   "who plays yellow: human, random or bot",
			Value:   player.KindHuman,
		},
		&cli.StringFlag{
			Name:    "red",
			Aliases: []string{"r"},
			Usage:   "who plays red: human, random or bot",
			Value:   player.KindBot,
		},
		&cli.StringFlag{
			Name:    "difficulty",
			Aliases: []string{"d"},
			Usage:   "bot difficulty: easy, medium or hard",
			Value:   bot.DifficultyHard,
		},
		&cli.IntFlag{
			Name:  "depth",
			Usage: "search depth of the hard bot",
			Value: config.GetEnvAsInt("SEARCH_DEPTH", bot.DefaultSearchDepth),
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "seed for random players, 0 uses the clock",
		},
	}
}

// newApp builds the command line. Errors are returned from Run rather than
// exiting so callers decide the exit code.
func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "connect4",
		Usage:     "play Connect Four in the terminal",
		Reader:    in,
		Writer:    out,
		ErrWriter: out,
		Flags:     playFlags(),
		Action: func(cCtx *cli.Context) error {
			return play(cCtx, in, out)
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play a game between two players",
				Flags: playFlags(),
				Action: func(cCtx *cli.Context) error {
					return play(cCtx, in, out)
				},
			},
			{
				Name:      "analyze",
				Usage:     "evaluate a position given as rows, top row first",
				ArgsUsage: "ROW ROW ROW ROW ROW ROW",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "depth",
						Usage: "search depth",
						Value: bot.DefaultSearchDepth,
					},
					&cli.StringFlag{
						Name:  "to-move",
						Usage: "yellow or red, defaults to the side whose turn it is",
					},
				},
				Action: func(cCtx *cli.Context) error {
					return analyze(cCtx, out)
				},
			},
		},
	}
}

func play(cCtx *cli.Context, in io.Reader, out io.Writer) error {
	engine := bot.NewEngine(cCtx.Int("depth"), nil)
	human := player.NewHuman(in)

	newPlayer := func(kind string, seed int64) (player.Player, error) {
		return player.New(strings.ToLower(kind), player.Options{
			Human:      human,
			Engine:     engine,
			Difficulty: cCtx.String("difficulty"),
			Seed:       seed,
		})
	}

	seed := cCtx.Int64("seed")
	yellow, err := newPlayer(cCtx.String("yellow"), seed)
	if err != nil {
		return err
	}
	redSeed := seed
	if seed != 0 {
		redSeed = seed + 1
	}
	red, err := newPlayer(cCtx.String("red"), redSeed)
	if err != nil {
		return err
	}

	_, err = game.NewLoop(yellow, red, out).Run(cCtx.Context)
	return err
}

func analyze(cCtx *cli.Context, out io.Writer) error {
	board, err := domain.ParseBoard(cCtx.Args().Slice())
	if err != nil {
		return err
	}

	toMove := board.SideToMove()
	if s := cCtx.String("to-move"); s != "" {
		if toMove, err = domain.ParseColor(s); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "%s\neval: %d\n", board, board.Eval())
	if result := board.CheckForWin(); result != nil {
		fmt.Fprintf(out, "result: %s\n", result)
		return nil
	}

	decision, err := bot.Search(board, toMove, cCtx.Int("depth"))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s to move, best column %d (value %d, %d positions)\n",
		toMove.Name(), decision.Column, decision.Value, decision.Nodes)
	return nil
}

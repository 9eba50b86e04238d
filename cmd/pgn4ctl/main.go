package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"pgn4_backend/internal/adapters"
	"pgn4_backend/internal/bootstrap"
	"pgn4_backend/internal/domain/pgn4"
	"pgn4_backend/internal/repository"
	gameUseCase "pgn4_backend/internal/usecase/game"
	"pgn4_backend/microservices/usecase"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pgn4ctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pgn4ctl",
		Usage: "format, inspect and archive four player chess games",
		Commands: []*cli.Command{
			{
				Name:      "fmt",
				Usage:     "rewrite a game in canonical layout",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "overwrite the file instead of printing"},
				},
				Action: formatCommand,
			},
			{
				Name:      "inspect",
				Usage:     "print tags, variant and main line",
				ArgsUsage: "[file]",
				Action:    inspectCommand,
			},
			{
				Name:      "visit",
				Usage:     "print the quarter-turn a path points at",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Value: "0", Usage: "path such as 1-1-3"},
				},
				Action: visitCommand,
			},
			{
				Name:      "pdf",
				Usage:     "render a game to PDF",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "game.pdf", Usage: "output file"},
				},
				Action: pdfCommand,
			},
			{
				Name:      "import",
				Usage:     "store every *.pgn4 file under a directory",
				ArgsUsage: "<dir>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: ".env", Usage: "dotenv file with REDIS_URL and MONGO_URI"},
				},
				Action: importCommand,
			},
		},
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

// readGame parses the file named by the first argument, or stdin for "" and "-".
func readGame(c *cli.Context) (*pgn4.PGN4, string, error) {
	name := c.Args().First()

	var (
		data []byte
		err  error
	)
	if name == "" || name == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, name, err
	}

	doc, err := pgn4.Parse(string(data))
	if err != nil {
		return nil, name, fmt.Errorf("%s: %w", displayName(name), err)
	}
	return doc, name, nil
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}

func formatCommand(c *cli.Context) error {
	doc, name, err := readGame(c)
	if err != nil {
		return err
	}

	if c.Bool("write") {
		if name == "" || name == "-" {
			return fmt.Errorf("-w needs a file argument")
		}
		return os.WriteFile(name, []byte(doc.String()+"\n"), 0o644)
	}

	_, err = fmt.Fprintln(c.App.Writer, doc.String())
	return err
}

func inspectCommand(c *cli.Context) error {
	doc, _, err := readGame(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	for _, tag := range doc.Tags {
		fmt.Fprintf(w, "%s: %s\n", tag.Name, tag.Value)
	}
	if variant, err := doc.Variant(); err == nil {
		fmt.Fprintf(w, "mode: %s (promotion rank %d)\n", variant.Mode, variant.PawnPromotionRank)
	}
	fmt.Fprintf(w, "plies: %d\n", doc.PlyCount())

	moves := make([]string, 0, doc.PlyCount())
	for _, m := range usecase.MainLine(doc) {
		moves = append(moves, m.(string))
	}
	_, err = fmt.Fprintf(w, "main line: %s\n", strings.Join(moves, " "))
	return err
}

func visitCommand(c *cli.Context) error {
	doc, _, err := readGame(c)
	if err != nil {
		return err
	}
	path, err := pgn4.ParsePath(c.String("path"))
	if err != nil {
		return err
	}

	v := pgn4.NewVisitor(doc)
	if err := pgn4.FollowPath(v, &pgn4.PartialPath{}, path); err != nil {
		return fmt.Errorf("path %s: %w", c.String("path"), err)
	}

	w := c.App.Writer
	if q := v.QTurn(); q != nil {
		bare := pgn4.QuarterTurn{Main: q.Main, Modifier: q.Modifier, ExtraStalemate: q.ExtraStalemate, Description: q.Description}
		fmt.Fprintf(w, "move: %s\n", bare.String())
	} else {
		fmt.Fprintln(w, "move: (start)")
	}
	_, err = fmt.Fprintf(w, "alternatives: %d\nlast: %t\n", v.Alternatives(), v.Last())
	return err
}

func pdfCommand(c *cli.Context) error {
	doc, name, err := readGame(c)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := generatePDF(doc, displayName(name), out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, "PDF created:", out)
	return err
}

func importCommand(c *cli.Context) error {
	root := c.Args().First()
	if root == "" {
		return fmt.Errorf("import needs a directory")
	}

	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(c.String("config"))
	if err != nil {
		return err
	}

	files, err := repository.NewArchiveStorage(logger).CollectArchive(root)
	if err != nil {
		return err
	}

	ctx := context.Background()
	mongoAdapter := adapters.NewAdapterMongo(cfg, logger)
	if err := mongoAdapter.Init(ctx); err != nil {
		return err
	}
	defer mongoAdapter.Close(ctx)

	redisAdapter := adapters.NewAdapterRedis(cfg, logger)
	if err := redisAdapter.Init(ctx); err != nil {
		return err
	}
	defer redisAdapter.Close(ctx)

	repo := repository.NewGameRepository(*cfg, logger, redisAdapter.GetClient(), mongoAdapter.Database)
	report := gameUseCase.NewGameUseCase(repo, logger).ImportArchive(ctx, files)

	w := c.App.Writer
	for _, path := range sortedKeys(report.Imported) {
		fmt.Fprintf(w, "imported %s as %s\n", path, report.Imported[path])
	}
	for _, path := range sortedKeys(report.Failed) {
		fmt.Fprintf(w, "failed %s: %s\n", path, report.Failed[path])
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(report.Failed), len(files))
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

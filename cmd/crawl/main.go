package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/peterkuimelis/cardcrawl/internal/combat"
	"github.com/peterkuimelis/cardcrawl/internal/config"
	"github.com/peterkuimelis/cardcrawl/internal/content"
	"github.com/peterkuimelis/cardcrawl/internal/log"
	crawlmcp "github.com/peterkuimelis/cardcrawl/internal/mcp"
	"github.com/peterkuimelis/cardcrawl/internal/view"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "play":
		runPlay(os.Args[2:])
	case "sim":
		runSim(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  crawl play [--hero ID] [--seed N] [--content DIR]")
	fmt.Println("  crawl sim [--hero ID] [--seed N] [--room ID] [--floors N] [--turns N] [--content DIR]")
	fmt.Println("  crawl validate [--content DIR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play      Play a run interactively in the terminal")
	fmt.Println("  sim       Let the autopilot play a run and print the transcript")
	fmt.Println("  validate  Load content and report every problem found")
	fmt.Println()
	fmt.Println("Defaults come from CARDCRAWL_* environment variables.")
}

// setup loads configuration, the logger and the content registry.
func setup(cfg config.Config) (*zap.Logger, *combat.Registry) {
	logger, err := cfg.NewLogger()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	reg, err := content.NewLoader(logger).LoadDir(cfg.ContentDir)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	return logger, reg
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	return cfg
}

func runPlay(args []string) {
	cfg := loadConfig()
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	hero := fs.String("hero", cfg.Hero, "hero id to play")
	seed := fs.Int64("seed", cfg.Seed, "run seed (0 for random)")
	dir := fs.String("content", cfg.ContentDir, "content directory (empty for built-in content)")
	fs.Parse(args)
	cfg.ContentDir = *dir
	cfg.Seed = *seed

	logger, reg := setup(cfg)
	defer logger.Sync()

	runSeed, err := cfg.RunSeed()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	engine := combat.NewEngine(reg, combat.WithLogger(logger), combat.WithHandSize(cfg.HandSize))
	sess, err := crawlmcp.NewSession(engine, logger, *hero, runSeed)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	fmt.Printf("Seed %d\n", runSeed)

	if err := playLoop(sess, bufio.NewReader(os.Stdin), os.Stdout); err != nil && !errors.Is(err, io.EOF) {
		config.Exitf("Error: %v", err)
	}
}

func playLoop(sess *crawlmcp.Session, reader *bufio.Reader, w io.Writer) error {
	resp := sess.State()
	for {
		renderEvents(w, resp.Events)
		if resp.GameOver {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "═══════════════════════════════════")
			fmt.Fprintln(w, "          GAME OVER")
			fmt.Fprintln(w, "═══════════════════════════════════")
			fmt.Fprintln(w, resp.Result)
			fmt.Fprintln(w, "═══════════════════════════════════")
			return nil
		}

		var err error
		switch resp.Pending.Type {
		case crawlmcp.DecisionChooseRoom:
			fmt.Fprintln(w)
			view.RenderRun(w, resp.State)
			fmt.Fprintln(w, "\nRooms:")
			for i, id := range resp.Pending.Rooms {
				fmt.Fprintf(w, "  %d) %s\n", i+1, id)
			}
			idx, rerr := readChoice(reader, w, len(resp.Pending.Rooms))
			if rerr != nil {
				return rerr
			}
			resp, err = sess.ChooseRoom(resp.Pending.Rooms[idx])

		case crawlmcp.DecisionChooseAction:
			view.RenderCombat(w, resp.State.Combat)
			view.RenderActions(w, resp.Pending.Actions)
			idx, rerr := readChoice(reader, w, len(resp.Pending.Actions))
			if rerr != nil {
				return rerr
			}
			resp, err = sess.TakeAction(idx)
		}
		if err != nil {
			return err
		}
	}
}

func renderEvents(w io.Writer, events []view.EventView) {
	for _, ev := range events {
		fmt.Fprintf(w, "  [T%d %s] %s\n", ev.Turn, ev.Phase, ev.Details)
	}
}

// readChoice reads a 1-based choice and returns it 0-based.
func readChoice(reader *bufio.Reader, w io.Writer, count int) (int, error) {
	for {
		fmt.Fprint(w, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(w, "Enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1, nil
	}
}

func runSim(args []string) {
	cfg := loadConfig()
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	hero := fs.String("hero", cfg.Hero, "hero id to play")
	seed := fs.Int64("seed", cfg.Seed, "run seed (0 for random)")
	room := fs.String("room", "", "room to fight on the first floor (default: first combat room dealt)")
	floors := fs.Int("floors", 1, "number of floors to play")
	turns := fs.Int("turns", cfg.MaxTurns, "player turns per combat before giving up")
	quiet := fs.Bool("quiet", false, "print only summaries")
	dir := fs.String("content", cfg.ContentDir, "content directory (empty for built-in content)")
	fs.Parse(args)
	cfg.ContentDir = *dir
	cfg.Seed = *seed

	logger, reg := setup(cfg)
	defer logger.Sync()

	runSeed, err := cfg.RunSeed()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	engine := combat.NewEngine(reg, combat.WithLogger(logger), combat.WithHandSize(cfg.HandSize))

	var transcript log.EventLogger = log.NewMemoryLogger()
	if !*quiet {
		transcript = log.NewTextLogger(os.Stdout)
	}
	if err := simulate(engine, transcript, os.Stdout, simOptions{
		hero:   *hero,
		seed:   runSeed,
		room:   *room,
		floors: *floors,
		turns:  *turns,
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}

type simOptions struct {
	hero   string
	seed   int64
	room   string
	floors int
	turns  int
}

// simulate plays floors with the autopilot, always taking the first combat
// room on offer.
func simulate(engine *combat.Engine, transcript log.EventLogger, w io.Writer, opts simOptions) error {
	run, err := engine.StartRun(opts.hero, opts.seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Seed %d\n", opts.seed)

	for floor := range opts.floors {
		deal := combat.Action{Type: combat.ActionDealRoomChoices, Amount: crawlmcp.RoomsPerFloor}
		if floor == 0 && opts.room != "" {
			r, ok := engine.Registry().Room(opts.room)
			if !ok {
				return fmt.Errorf("%w: room %q", combat.ErrUnknownContent, opts.room)
			}
			deal.Rooms = []combat.Room{r}
		}
		run = engine.ApplyAction(run, deal)
		if len(run.RoomChoices) == 0 {
			return errors.New("no rooms to choose from")
		}
		pick := run.RoomChoices[0]
		if i := slices.IndexFunc(run.RoomChoices, func(r combat.Room) bool { return r.Kind.HasCombat() }); i >= 0 {
			pick = run.RoomChoices[i]
		}
		run = engine.ApplyAction(run, combat.Action{Type: combat.ActionSelectRoom, Room: pick.ID})
		run = engine.AutoPlay(run, opts.turns)

		log.Drain(&run.VisualQueue, transcript)
		if run.Combat == nil || run.CurrentRoom != pick.ID || !pick.Kind.HasCombat() {
			continue
		}
		log.Drain(&run.Combat.VisualQueue, transcript)
		view.RenderSummary(w, view.BuildCombatView(engine, run.Combat))

		switch run.Combat.Phase {
		case combat.PhaseVictory:
			continue
		case combat.PhaseDefeat:
			fmt.Fprintf(w, "Defeated on floor %d.\n", run.Floor)
		default:
			fmt.Fprintf(w, "Stopped after %d turns.\n", opts.turns)
		}
		break
	}

	fmt.Fprintln(w)
	view.RenderRun(w, view.BuildRunView(engine, run))
	return nil
}

func runValidate(args []string) {
	cfg := loadConfig()
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	dir := fs.String("content", cfg.ContentDir, "content directory (empty for built-in content)")
	fs.Parse(args)

	logger, err := cfg.NewLogger()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer logger.Sync()

	reg, err := content.NewLoader(logger).LoadDir(*dir)
	var verr *content.ValidationError
	if errors.As(err, &verr) {
		for _, p := range verr.Problems {
			fmt.Println(p.Error())
		}
		config.Exitf("%d problem(s)", len(verr.Problems))
	}
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	fmt.Printf("ok: %d cards, %d enemies, %d rooms\n", len(reg.CardIDs()), len(reg.EnemyIDs()), len(reg.RoomIDs()))
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leverr-lang/leverr/internal/diag"
)

func newReplCmd(opts *rootOptions, logger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive Leverr session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, logger())
		},
	}
}

// replSession holds the one piece of state a REPL line-by-line loop keeps:
// a bounded cache of the lines it has evaluated, for the :history command.
// Bindings from one line are never visible to the next; spec.md defines no
// cross-line environment threading.
type replSession struct {
	id      uuid.UUID
	log     *zap.Logger
	history *lru.Cache[int, string]
	next    int
}

func runRepl(opts *rootOptions, log *zap.Logger) error {
	cache, err := lru.New[int, string](opts.historySize)
	if err != nil {
		return fmt.Errorf("building history cache: %w", err)
	}
	sess := &replSession{id: uuid.New(), log: log, history: cache}
	sess.log.Info("repl session start", zap.String("session_id", sess.id.String()))
	defer sess.log.Info("repl session end", zap.String("session_id", sess.id.String()))

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("leverr> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("leverr> ")
			continue
		}
		if done := sess.dispatch(line); done {
			return nil
		}
		fmt.Print("leverr> ")
	}
	return scanner.Err()
}

// dispatch handles one REPL line, returning true when the session should
// end.
func (s *replSession) dispatch(line string) bool {
	if strings.HasPrefix(line, ":") {
		return s.command(line)
	}

	out, d := evalLine(line)
	if d != nil {
		fmt.Println(diag.NewFormatter().Format(*d, line))
		s.log.Debug("eval failed", zap.String("session_id", s.id.String()), zap.String("line", line))
		return false
	}
	fmt.Println(out)
	s.record(line)
	return false
}

func (s *replSession) record(line string) {
	s.history.Add(s.next, line)
	s.next++
}

func (s *replSession) command(line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case ":quit", ":exit":
		return true
	case ":history":
		s.printHistory()
	case ":type":
		expr := strings.TrimSpace(rest)
		ty, d := typeOf(expr)
		if d != nil {
			fmt.Println(diag.NewFormatter().Format(*d, expr))
			return false
		}
		fmt.Println(ty)
	default:
		fmt.Printf("unknown command %q\n", cmd)
	}
	return false
}

func (s *replSession) printHistory() {
	keys := s.history.Keys()
	sort.Ints(keys)
	for _, k := range keys {
		if line, ok := s.history.Peek(k); ok {
			fmt.Printf("%d: %s\n", k, line)
		}
	}
}

// evalLine evaluates line through the full pipeline, satisfying the
// `eval(line)` shell collaborator.
func evalLine(line string) (string, *diag.Diagnostic) {
	return runSource(line, nil)
}

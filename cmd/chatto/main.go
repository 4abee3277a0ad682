// Package main implements the chatto CLI, a terminal client for the Chatto
// chat-analysis backend.
package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chattolabs/chatto/internal/api"
	"github.com/chattolabs/chatto/internal/config"
	"github.com/chattolabs/chatto/internal/logging"
	"github.com/chattolabs/chatto/internal/session"
)

var (
	// version is stamped by the release build.
	version = "dev"

	configPath string
	flagMode   string
	outputJSON bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chatto",
	Short: "Terminal client for the Chatto chat-analysis service",
	Long: `chatto uploads messenger chat exports and runs the Chatto analyses
(chemi, some, mbti, contrib) against them from the terminal.

Run without a subcommand for help; run "chatto tui" for the interactive UI.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/chatto/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "play", "API side to target: play or business")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output results as JSON")
}

// appState bundles the loaded config, logger, and session for one command
// invocation.
type appState struct {
	cfg    *config.Config
	logger *zap.Logger
	mgr    *session.Manager
	mode   api.Mode
}

// newAppState loads configuration, opens the logger, and builds the session
// manager backed by the token file in the config directory.
func newAppState() (*appState, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, err
	}

	mode := api.Mode(flagMode)
	if mode != api.ModePlay && mode != api.ModeBusiness {
		return nil, fmt.Errorf("unknown mode %q, want play or business", flagMode)
	}

	configDir, err := config.EnsureConfigDir()
	if err != nil {
		return nil, err
	}
	store := session.NewStore(session.DefaultPath(configDir))

	var opts []api.Option
	opts = append(opts, api.WithLogger(logger))
	if cfg.API.CSRFToken.IsSet() {
		opts = append(opts, api.WithCSRFToken(cfg.API.CSRFToken.Value()))
	}
	mgr := session.NewManager(cfg.API.BaseURL, store, logger, opts...)

	return &appState{cfg: cfg, logger: logger, mgr: mgr, mode: mode}, nil
}

func (s *appState) close() {
	_ = s.logger.Sync()
}

func (s *appState) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.cfg.API.Timeout)
}

// requireAuth resolves the stored session and returns the authorized client,
// or an error telling the user to log in.
func (s *appState) requireAuth(ctx context.Context) (*api.Client, error) {
	if err := s.mgr.Bootstrap(ctx); err != nil {
		return nil, err
	}
	if s.mgr.Status() != session.StatusAuthenticated {
		return nil, fmt.Errorf("로그인이 필요합니다. chatto login 을 먼저 실행해주세요")
	}
	return s.mgr.Authorized(), nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// parseKind maps a CLI argument to an analysis kind.
func parseKind(arg string) (api.Kind, error) {
	kind := api.Kind(arg)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown analysis kind %q, want chemi, some, mbti, or contrib", arg)
	}
	return kind, nil
}

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ai2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server where every connection plays its own game.

Runs are stored in the server's database (see --db), so all players share
one leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ai2048/host_key

Examples:
  ai2048 serve                           # Listen on :23234
  ai2048 serve --ssh :2222               # Listen on port 2222
  ai2048 serve --host-key ./my_host_key  # Use specific host key
  ai2048 serve --preset normal           # Lighter AI for shared hosts

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagPreset, "preset", "", "Intelligence preset: off, low, normal, high")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(flagPreset)
	exitOnErr("loading config", err)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        cfg,
		Logger:      newLogger("ai2048-ssh"),
	})
	exitOnErr("creating server", err)

	exitOnErr("serving", server.ListenAndServe())
}

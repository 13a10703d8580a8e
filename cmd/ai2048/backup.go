package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ai2048/internal/engine"
	"github.com/vovakirdan/ai2048/internal/storage"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage named board backups",
	Long: `Backups are boards you can start 'play' or 'solve' from. Inside 'play',
B backs up the board and --save-backup stores it on exit.

Boards are written row by row, rows separated by '/', cells by commas or
spaces, 0 for empty:

  ai2048 backup save corner "0,0,0,0/0,0,0,0/0,2,0,0/2,4,8,64"
  ai2048 backup load corner
  ai2048 backup list
  ai2048 backup delete corner`,
}

var backupSaveCmd = &cobra.Command{
	Use:   "save <name> <board>",
	Short: "Store a board under a name",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		board, err := parseBoard(args[1])
		exitOnErr("parsing board", err)

		withStore(func(store *storage.Store) {
			exitOnErr("saving backup", store.SaveBackup(args[0], board))
			fmt.Printf("Backup %q saved.\n", args[0])
		})
	},
}

var backupLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a stored board",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *storage.Store) {
			board, err := store.LoadBackup(args[0])
			exitOnErr("loading backup", err)
			fmt.Println(board)
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored boards",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *storage.Store) {
			backups, err := store.ListBackups()
			exitOnErr("listing backups", err)

			if len(backups) == 0 {
				fmt.Println("No backups stored.")
				return
			}
			fmt.Printf("  %-16s  %-5s  %-5s  %-6s  %s\n", "Name", "Size", "Tiles", "Max", "Saved")
			fmt.Printf("  %-16s  %-5s  %-5s  %-6s  %s\n", "----", "----", "-----", "---", "-----")
			for _, b := range backups {
				fmt.Printf("  %-16s  %-5s  %-5d  %-6d  %s\n",
					b.Name, fmt.Sprintf("%dx%d", b.BoardSize, b.BoardSize), b.Tiles, b.MaxTile, humanize.Time(b.CreatedAt))
			}
		})
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored board",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *storage.Store) {
			exitOnErr("deleting backup", store.DeleteBackup(args[0]))
			fmt.Printf("Backup %q deleted.\n", args[0])
		})
	},
}

func init() {
	backupCmd.AddCommand(backupSaveCmd, backupLoadCmd, backupListCmd, backupDeleteCmd)
}

// withStore opens the database for the duration of fn.
func withStore(fn func(*storage.Store)) {
	store, err := storage.Open(flagDBPath)
	exitOnErr("opening runs database", err)
	defer store.Close()
	fn(store)
}

// parseBoard reads "2,0,0,2/0,4,0,0/..." into a square board.
func parseBoard(s string) (*engine.Board, error) {
	lines := strings.Split(strings.TrimSpace(s), "/")
	rows := make([][]int, 0, len(lines))
	for i, line := range lines {
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		row := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad cell %q", i+1, f)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return engine.BoardFromRows(rows)
}

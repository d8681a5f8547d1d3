package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillt/insight-engine/internal/config"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Run:   runConfigShow,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to ~/.insight-engine/config.yaml",
		Run:   runConfigInit,
	}

	configCmd.AddCommand(initCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	b, _ := json.MarshalIndent(cfg, "", "  ")
	fmt.Println(string(b))
}

func runConfigInit(cmd *cobra.Command, args []string) {
	if err := config.Save(cfg); err != nil {
		exitErr("write config", err)
	}
	fmt.Printf(`{"ok":true,"path":%q}`+"\n", filepath.Join(config.Dir(), "config.yaml"))
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-barry/todos/routes"
	"github.com/go-barry/todos/store"
	"github.com/urfave/cli/v2"
)

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print configuration, routes and asset cache summary",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		config, err := loadConfig(c)
		if err != nil {
			return err
		}

		templates := config.TemplatesDir
		if templates == "" {
			templates = "(embedded)"
		}

		fmt.Println("📁 Output Directory:", config.OutputDir)
		fmt.Println("📁 Public Directory:", config.PublicDir)
		fmt.Println("📁 Templates:", templates)
		fmt.Println("🔁 Debug Headers Enabled:", config.DebugHeaders)
		fmt.Println("🔁 Debug Logs Enabled:", config.DebugLogs)
		fmt.Println("📝 Log Format:", config.LogFormat)
		fmt.Println()

		pages := routes.Pages(store.New())
		fmt.Println("🗂️  Routes Found:", len(pages))
		for _, page := range pages {
			actions := make([]string, 0, len(page.Actions))
			for name := range page.Actions {
				actions = append(actions, name)
			}
			sort.Strings(actions)

			fmt.Printf("   %s → %s", page.Path, page.Template)
			if len(actions) > 0 {
				fmt.Printf(" [actions: %s]", strings.Join(actions, ", "))
			}
			fmt.Println()
		}

		assetCount := 0
		filepath.Walk(filepath.Join(config.OutputDir, "static"), func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() && !strings.HasSuffix(path, ".gz") {
				assetCount++
			}
			return nil
		})

		fmt.Println("💾 Cached Assets:", assetCount)

		return nil
	},
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-barry/todos/core"
	"github.com/urfave/cli/v2"
)

var BuildCommand = &cli.Command{
	Name:  "build",
	Usage: "Minify css and js from the public directory into the output directory",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		config, err := loadConfig(c)
		if err != nil {
			return err
		}

		assets := core.NewAssets("prod", config.PublicDir, config.OutputDir)

		built := 0
		err = filepath.WalkDir(config.PublicDir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			ext := filepath.Ext(path)
			if ext != ".css" && ext != ".js" || strings.HasSuffix(strings.TrimSuffix(path, ext), ".min") {
				return nil
			}

			rel, err := filepath.Rel(config.PublicDir, path)
			if err != nil {
				return err
			}
			url := "/static/" + filepath.ToSlash(rel)

			out := assets.Minify(url)
			if out == url {
				return fmt.Errorf("failed to minify %s", path)
			}

			fmt.Printf("📦 %s → %s\n", url, out)
			built++
			return nil
		})
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("🧼 Nothing to build:", config.PublicDir)
				return nil
			}
			return err
		}

		fmt.Printf("✅ Minified %d assets.\n", built)
		return nil
	},
}

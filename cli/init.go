package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-barry/todos/core"
	"github.com/go-barry/todos/routes"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const templatesDirName = "templates"

var InitCommand = &cli.Command{
	Name:  "init",
	Usage: "Write a config file and copy the built-in templates out for editing",
	Action: func(c *cli.Context) error {
		targetDir, err := os.Getwd()
		if err != nil {
			return err
		}
		fmt.Println("🚀 Initialising todos in:", targetDir)

		configPath := filepath.Join(targetDir, core.DefaultConfigPath)
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists", core.DefaultConfigPath)
		}

		templatesDir := filepath.Join(targetDir, templatesDirName)
		if err := copyEmbeddedDir(routes.Templates, ".", templatesDir); err != nil {
			return fmt.Errorf("failed to copy templates: %w", err)
		}

		config := core.DefaultConfig()
		config.TemplatesDir = templatesDirName

		data, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		if err := os.MkdirAll(filepath.Join(targetDir, config.PublicDir), os.ModePerm); err != nil {
			return err
		}

		fmt.Println("✅ Project initialised.")
		fmt.Println("▶  Run: todos dev")
		return nil
	},
}

func copyEmbeddedDir(source fs.FS, sourceDir string, targetDir string) error {
	return fs.WalkDir(source, sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		targetPath := filepath.Join(targetDir, rel)

		if d.IsDir() {
			return os.MkdirAll(targetPath, os.ModePerm)
		}

		data, err := fs.ReadFile(source, path)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), os.ModePerm); err != nil {
			return err
		}

		return os.WriteFile(targetPath, data, 0644)
	})
}

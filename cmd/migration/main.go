package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/hugohenrick/mercadinho/internal/infrastructure/config"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var migrationsPath string

func main() {
	// Carregar variáveis de ambiente
	if err := config.LoadEnvFile(); err != nil {
		log.Printf("Aviso: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "migration",
	Short: "Gerencia as migrações do banco do mercadinho",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "diretório das migrações (padrão: MIGRATIONS_PATH)")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(versionCmd)
}

// openMigrator carrega a configuração e abre o migrator
func openMigrator() (*database.Migrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	path := migrationsPath
	if path == "" {
		path = cfg.Storage.MigrationsPath
	}
	return database.NewMigrator(cfg.Database.ConnectionString(), path)
}

// migration up
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas as migrações pendentes",
	RunE: func(cmd *cobra.Command, args []string) error {
		mg, err := openMigrator()
		if err != nil {
			return err
		}
		defer mg.Close()

		if err := mg.Up(); err != nil {
			return err
		}
		fmt.Println("Migrações executadas com sucesso!")
		return nil
	},
}

// migration down [passos]
var downCmd = &cobra.Command{
	Use:   "down [passos]",
	Short: "Desfaz as últimas migrações (padrão: 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("número de passos inválido: %q", args[0])
			}
			steps = n
		}

		mg, err := openMigrator()
		if err != nil {
			return err
		}
		defer mg.Close()

		if err := mg.Down(steps); err != nil {
			return err
		}
		fmt.Printf("%d migração(ões) desfeita(s)\n", steps)
		return nil
	},
}

// migration version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Mostra a versão atual do banco",
	RunE: func(cmd *cobra.Command, args []string) error {
		mg, err := openMigrator()
		if err != nil {
			return err
		}
		defer mg.Close()

		version, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Printf("versão: %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

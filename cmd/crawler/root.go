package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawler",
		Short: "Extrai as versões dos veículos do site da marca",
		Long: `crawler percorre o catálogo de modelos, extrai as versões de cada página,
junta os dados do comparativo, descarta versões já salvas e grava o resultado em JSON.

A configuração vem do ambiente (ou de um arquivo .env).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewSnapshotCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Cria a tabela veiculos no banco configurado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.store == nil {
				return errors.New("DATABASE_URL não configurada")
			}
			if err := a.store.CreateSchema(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tabela veiculos pronta (%s)\n", a.cfg.StoreDriver)
			return nil
		},
	}
}

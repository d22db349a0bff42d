package main

import (
	"errors"

	"github.com/spf13/cobra"

	"manuaisprj/internal/crawler"
)

func NewSnapshotCmd() *cobra.Command {
	var (
		save    bool
		outFile string
		only    []string
	)
	cmd := &cobra.Command{
		Use:   "snapshot <manifest.yaml>",
		Short: "Processa páginas salvas listadas em um manifesto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			manifest, err := crawler.LoadManifest(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			models := manifest.ModelList()
			if len(models) == 0 {
				home, err := manifest.CatalogDocument()
				if err != nil {
					return err
				}
				if home != nil {
					models = crawler.DiscoverModels(home, a.log)
				}
			}
			models = filterModels(models, only)
			if len(models) == 0 {
				return errors.New("manifesto sem modelos")
			}

			p := a.pipeline(&crawler.SnapshotRenderer{Manifest: manifest}, &crawler.SnapshotBrowser{Manifest: manifest})
			if outFile == "" {
				outFile = a.cfg.OutputFile
			}
			return a.run(ctx, cmd.OutOrStdout(), p, models, outFile, save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "grava as versões novas no banco")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "arquivo JSON de saída (padrão OUTPUT_FILE)")
	cmd.Flags().StringSliceVar(&only, "model", nil, "processa apenas estes modelos")
	return cmd
}

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"manuaisprj/internal/crawler"
	"manuaisprj/internal/model"
)

func NewCrawlCmd() *cobra.Command {
	var (
		save    bool
		outFile string
		only    []string
	)
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Percorre o site ao vivo",
		Long: `Descobre os modelos no menu da página inicial (CATALOG_URL), busca a página
de cada modelo e extrai suas versões.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			client := crawler.NewClient(a.cfg.FetchTimeout)
			html, err := client.Fetch(ctx, a.cfg.CatalogURL)
			if err != nil {
				return err
			}
			home, err := crawler.NewDocument(html, a.cfg.CatalogURL)
			if err != nil {
				return err
			}
			models := filterModels(crawler.DiscoverModels(home, a.log), only)
			if len(models) == 0 {
				return errors.New("nenhum modelo encontrado no menu. Verifique o menu e os seletores")
			}

			p := a.pipeline(&crawler.HTTPRenderer{Client: client}, &crawler.HTTPBrowser{Client: client})
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

func filterModels(models []model.Model, only []string) []model.Model {
	if len(only) == 0 {
		return models
	}
	want := make(map[string]bool, len(only))
	for _, n := range only {
		want[n] = true
	}
	var out []model.Model
	for _, m := range models {
		if want[m.Name] {
			out = append(out, m)
		}
	}
	return out
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	repo "github.com/Raviram02/HostelBite/internal/repository"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Products []model.Product `yaml:"products"`
}

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the product catalog from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			products, err := readCatalog(file)
			if err != nil {
				return err
			}

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStores(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = st.close() }()

			if err := st.migrate(ctx); err != nil {
				return err
			}
			if err := seedCatalog(ctx, st.products, products); err != nil {
				return err
			}
			logger.Info("catalog seeded", "file", file, "products", len(products))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed/products.yaml", "Catalog YAML file")
	return cmd
}

func readCatalog(path string) ([]model.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parseCatalog(raw)
}

func parseCatalog(raw []byte) ([]model.Product, error) {
	var cat catalogFile
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(cat.Products))
	for i, p := range cat.Products {
		id := strings.TrimSpace(p.ID)
		switch {
		case id == "":
			return nil, fmt.Errorf("product #%d: id is required", i+1)
		case strings.TrimSpace(p.Name) == "":
			return nil, fmt.Errorf("product %s: name is required", id)
		case p.Price <= 0:
			return nil, fmt.Errorf("product %s: price must be positive", id)
		case seen[id]:
			return nil, fmt.Errorf("product %s: duplicate id", id)
		}
		seen[id] = true
		cat.Products[i].ID = id
	}
	return cat.Products, nil
}

func seedCatalog(ctx context.Context, products repo.ProductRepository, catalog []model.Product) error {
	for _, p := range catalog {
		if err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert %s: %w", p.ID, err)
		}
	}
	return nil
}

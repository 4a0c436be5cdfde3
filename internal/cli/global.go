package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kubev2v/training-planner/internal/hardware"
)

type GlobalOptions struct {
	CatalogFile string

	catalog *hardware.Catalog
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		CatalogFile: "",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.CatalogFile, "catalog", o.CatalogFile, "Path to a YAML hardware catalog merged over the built-in tiers")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	catalog, err := hardware.LoadFile(o.CatalogFile)
	if err != nil {
		return fmt.Errorf("loading hardware catalog: %w", err)
	}
	o.catalog = catalog
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

// Catalog returns the catalog loaded by Complete.
func (o *GlobalOptions) Catalog() *hardware.Catalog {
	if o.catalog == nil {
		return hardware.Default()
	}
	return o.catalog
}

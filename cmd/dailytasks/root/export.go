package root

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"daily-tasks/internal/config"
	"daily-tasks/internal/repository"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the profile's stored state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if a.cfg.StoreDriver != config.StoreSQLite {
				return fmt.Errorf("export reads the sqlite store, STORE_DRIVER is %q", a.cfg.StoreDriver)
			}
			state, err := exportNamespace(cmd.Context(), repository.NewKVRepository(a.db), a.profile())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(state)
		},
	}
}

// exportNamespace collects every stored value of namespace. Values that are not
// valid JSON are exported as strings so one bad entry does not hide the rest.
func exportNamespace(ctx context.Context, repo *repository.KVRepository, namespace string) (map[string]json.RawMessage, error) {
	keys, err := repo.Keys(ctx, namespace)
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		raw, ok, err := repo.Get(ctx, namespace, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !json.Valid(raw) {
			raw, _ = json.Marshal(string(raw))
		}
		out[key] = json.RawMessage(raw)
	}
	return out, nil
}

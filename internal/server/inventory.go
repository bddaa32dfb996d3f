package server

import (
	"fmt"
	"log/slog"

	"cert-inventory/internal/certstore"
	"cert-inventory/internal/config"
	"cert-inventory/internal/inventory"
)

// NewPipeline wires the configured store provider, locations and deny list into a pipeline.
func NewPipeline(cfg *config.Config, logger *slog.Logger) (*inventory.Pipeline, error) {
	locations, err := buildLocations(cfg.Inventory.Locations)
	if err != nil {
		return nil, err
	}

	provider, err := buildProvider(&cfg.Inventory)
	if err != nil {
		return nil, err
	}

	collector := inventory.NewCollector(provider, buildDenyList(cfg.Filter), logger)

	return inventory.NewPipeline(collector, locations, cfg.Inventory.WarnDays, logger), nil
}

func buildProvider(cfg *config.InventoryConfig) (certstore.Provider, error) {
	switch cfg.Provider {
	case config.ProviderSystem:
		return certstore.NewSystemProvider(), nil
	case config.ProviderDirectory:
		if cfg.Directory == nil {
			return nil, fmt.Errorf("inventory.directory is required for the directory provider")
		}
		roots := map[certstore.Scope]string{
			certstore.ScopeMachine: cfg.Directory.MachineRoot,
			certstore.ScopeUser:    cfg.Directory.UserRoot,
		}
		return certstore.NewDirProvider(roots, cfg.Directory.PKCS12Password), nil
	default:
		return nil, fmt.Errorf("unknown inventory provider %q", cfg.Provider)
	}
}

func buildLocations(locs []config.LocationConfig) ([]certstore.Location, error) {
	locations := make([]certstore.Location, 0, len(locs))

	for i, loc := range locs {
		scope, err := certstore.ParseScope(loc.Scope)
		if err != nil {
			return nil, fmt.Errorf("inventory.locations[%d]: %w", i, err)
		}
		locations = append(locations, certstore.Location{Scope: scope, Name: loc.Name})
	}

	return locations, nil
}

// buildDenyList extends the default deny list with the configured entries. With
// replace_defaults only the configured entries apply. UUID subjects stay rejected unless
// reject_uuid_subjects is set to false.
func buildDenyList(f config.FilterConfig) inventory.DenyList {
	base := inventory.DefaultDenyList
	if f.ReplaceDefaults {
		base = inventory.DenyList{RejectUUIDSubjects: true}
	}

	deny := base.Extend(f.IssuerSubstrings, f.SubjectPrefixes)
	if f.RejectUUID != nil {
		deny.RejectUUIDSubjects = *f.RejectUUID
	}

	return deny
}

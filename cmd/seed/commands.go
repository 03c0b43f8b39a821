// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/spellbook/internal/platform/config"
	"github.com/taibuivan/spellbook/internal/platform/constants"
	"github.com/taibuivan/spellbook/internal/platform/migration"
	pgstore "github.com/taibuivan/spellbook/internal/platform/postgres"
	redisstore "github.com/taibuivan/spellbook/internal/platform/redis"
	"github.com/taibuivan/spellbook/internal/platform/sec"
	"github.com/taibuivan/spellbook/internal/spell"
	"github.com/taibuivan/spellbook/pkg/predicate"
	"github.com/taibuivan/spellbook/pkg/query"
	"github.com/taibuivan/spellbook/pkg/slice"
)

const defaultSeedFile = "./data/seed/spells.yaml"

// newRootCommand assembles the command tree. Output goes to out.
func newRootCommand(out io.Writer, logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Spell catalogue tooling",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)

	root.AddCommand(
		newLoadCommand(logger),
		newCheckCommand(),
		newTokenCommand(),
	)
	return root
}

// # load

func newLoadCommand(logger *slog.Logger) *cobra.Command {
	var file string
	var migrate bool

	command := &cobra.Command{
		Use:   "load",
		Short: "Upsert a YAML spell list into PostgreSQL",
		RunE: func(command *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !command.Flags().Changed("file") {
				file = cfg.SeedFile
			}

			spells, err := spell.LoadSeedFile(file)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(command.Context(), 5*time.Minute)
			defer cancel()

			if migrate {
				if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
					return err
				}
			}

			pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			cache, closeCache := openCache(ctx, cfg.RedisURL, logger)
			defer closeCache()

			service := spell.NewService(spell.NewRepository(pool), cache, logger)
			for _, entry := range spells {
				if err := service.CreateSpell(ctx, entry); err != nil {
					return fmt.Errorf("load %q: %w", entry.Index, err)
				}
			}

			fmt.Fprintf(command.OutOrStdout(), "loaded %d spells from %s\n", len(spells), file)
			return nil
		},
	}

	command.Flags().StringVarP(&file, "file", "f", defaultSeedFile, "YAML spell list")
	command.Flags().BoolVar(&migrate, "migrate", false, "run pending migrations first")
	return command
}

// openCache connects the spell cache for invalidation. When Redis is down it
// returns a nil cache and the load goes to PostgreSQL only.
func openCache(ctx context.Context, redisURL string, logger *slog.Logger) (spell.Cache, func()) {
	rdb, err := redisstore.NewClient(ctx, redisURL, logger)
	if err != nil {
		logger.Warn("seed_cache_unavailable", slog.Any("error", err))
		return nil, func() {}
	}
	return spell.NewRedisCache(rdb, logger), func() { _ = rdb.Close() }
}

// # check

type checkOptions struct {
	file          string
	explain       bool
	name          string
	levels        []string
	classes       []string
	components    []string
	ritual        string
	concentration string
	higherLevel   string
	material      string
	ranges        []string
	durations     []string
	castingTimes  []string
}

// filter mirrors the lenient query string parsing of the HTTP API.
func (options *checkOptions) filter() *spell.Filter {
	return &spell.Filter{
		Name:                  options.name,
		Levels:                query.IntSlice(options.levels),
		Classes:               query.List(options.classes),
		Components:            query.List(options.components),
		Ritual:                query.Bool(options.ritual),
		Concentration:         query.Bool(options.concentration),
		HasHigherLevel:        query.Bool(options.higherLevel),
		HasMaterial:           query.Bool(options.material),
		RangeCategories:       slice.As[spell.RangeCategory](query.List(options.ranges)),
		DurationCategories:    slice.As[spell.DurationCategory](query.List(options.durations)),
		CastingTimeCategories: slice.As[spell.CastingTimeCategory](query.List(options.castingTimes)),
	}
}

func newCheckCommand() *cobra.Command {
	options := &checkOptions{}

	command := &cobra.Command{
		Use:   "check",
		Short: "Search a YAML spell list in memory",
		Example: `  seed check --level 3 --class wizard
  seed check --range self,touch --casting-time 1_reaction --explain`,
		RunE: func(command *cobra.Command, _ []string) error {
			spells, err := spell.LoadSeedFile(options.file)
			if err != nil {
				return err
			}

			where := spell.Compile(options.filter())
			out := command.OutOrStdout()
			if options.explain {
				fmt.Fprintln(out, where.String())
			}

			matched := slice.Filter(spells, func(entry *spell.Spell) bool {
				return predicate.Match(where, entry.Record())
			})

			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, entry := range matched {
				fmt.Fprintf(writer, "%d\t%s\t%s\n", entry.Level, entry.Index, entry.Name)
			}
			if err := writer.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "%d of %d spells match\n", len(matched), len(spells))
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVarP(&options.file, "file", "f", defaultSeedFile, "YAML spell list")
	flags.BoolVar(&options.explain, "explain", false, "print the compiled predicate")
	flags.StringVar(&options.name, "name", "", "case-insensitive name substring")
	flags.StringSliceVar(&options.levels, "level", nil, "spell levels (0-9)")
	flags.StringSliceVar(&options.classes, "class", nil, "class indexes")
	flags.StringSliceVar(&options.components, "component", nil, "components (V, S, M)")
	flags.StringVar(&options.ritual, "ritual", "", "true or false")
	flags.StringVar(&options.concentration, "concentration", "", "true or false")
	flags.StringVar(&options.higherLevel, "higher-level", "", "true or false")
	flags.StringVar(&options.material, "material", "", "true or false")
	flags.StringSliceVar(&options.ranges, "range", nil, "range categories")
	flags.StringSliceVar(&options.durations, "duration", nil, "duration categories")
	flags.StringSliceVar(&options.castingTimes, "casting-time", nil, "casting time categories")
	return command
}

// # token

func newTokenCommand() *cobra.Command {
	var userID, username, role string
	var ttl time.Duration

	command := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token signed with JWT_PRIVATE_KEY_PATH",
		RunE: func(command *cobra.Command, _ []string) error {
			if !sec.UserRole(role).IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWTPrivKeyPath == "" {
				return fmt.Errorf("JWT_PRIVATE_KEY_PATH is not set")
			}

			tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
			if err != nil {
				return err
			}

			token, err := tokens.GenerateAccessToken(userID, username, role, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(command.OutOrStdout(), token)
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&userID, "user-id", "local-operator", "subject user id")
	flags.StringVar(&username, "username", "operator", "display name")
	flags.StringVar(&role, "role", string(sec.RoleEditor), "admin, editor or member")
	flags.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return command
}

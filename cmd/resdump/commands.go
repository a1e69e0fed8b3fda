package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/enovales/winres/errors"
	"github.com/enovales/winres/langpref"
	"github.com/enovales/winres/loader"
	"github.com/enovales/winres/memmodule"
	"github.com/enovales/winres/resdir"
	"github.com/enovales/winres/resource"
	"github.com/enovales/winres/strtable"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List resource types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.module()
			if err != nil {
				return err
			}
			types, err := resdir.CollectTypes(m)
			if err != nil {
				return err
			}

			recs := make([]idRecord, len(types))
			for i, t := range types {
				recs[i] = newIDRecord(t)
			}
			return emit(cmd.OutOrStdout(), a.cfg.Output, recs, func(w io.Writer) error {
				for _, r := range recs {
					line := typeStyle.Render(r.ID)
					if r.Label != "" {
						line = typeStyle.Render(r.Label) + " " + helpStyle.Render(r.ID)
					}
					fmt.Fprintln(w, line)
				}
				return nil
			})
		},
	}
}

func newNamesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "names TYPE",
		Short: "List resource names of one type",
		Long:  "TYPE is a well-known tag such as STRING or RT_ICON, a number written as #n, or a name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.module()
			if err != nil {
				return err
			}
			names, err := resdir.CollectNames(m, resource.ParseID(args[0]))
			if err != nil {
				return err
			}

			recs := make([]idRecord, len(names))
			for i, n := range names {
				recs[i] = idRecord{ID: n.String()}
			}
			return emit(cmd.OutOrStdout(), a.cfg.Output, recs, func(w io.Writer) error {
				for _, r := range recs {
					fmt.Fprintln(w, nameStyle.Render(r.ID))
				}
				return nil
			})
		},
	}
}

func newLangsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "langs TYPE NAME",
		Short: "List the languages of one resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.module()
			if err != nil {
				return err
			}
			langs, err := resdir.CollectLanguages(m, resource.ParseID(args[0]), resource.ParseName(args[1]))
			if err != nil {
				return err
			}

			recs := make([]langRecord, len(langs))
			for i, l := range langs {
				recs[i] = newLangRecord(l)
			}
			return emit(cmd.OutOrStdout(), a.cfg.Output, recs, func(w io.Writer) error {
				for _, r := range recs {
					fmt.Fprintf(w, "%s %s %s\n", langStyle.Render(fmt.Sprintf("%-8s", r.Tag)), r.ID, helpStyle.Render(r.Display))
				}
				return nil
			})
		},
	}
}

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show every resource with its size and content type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.module()
			if err != nil {
				return err
			}

			recs := []entryRecord{}
			for e, err := range resdir.Entries(m) {
				if err != nil {
					return err
				}
				data, err := loader.ReadAllLanguage(m, e.Type, e.Name, e.Lang)
				if err != nil {
					return err
				}
				recs = append(recs, newEntryRecord(e, data))
			}
			a.log.Debug("tree collected", zap.Int("entries", len(recs)))

			return emit(cmd.OutOrStdout(), a.cfg.Output, recs, func(w io.Writer) error {
				var typ, name string
				for _, r := range recs {
					if r.Type != typ {
						typ, name = r.Type, ""
						fmt.Fprintln(w, typeStyle.Render(typ))
					}
					if r.Name != name {
						name = r.Name
						fmt.Fprintln(w, "  "+nameStyle.Render(name))
					}
					fmt.Fprintf(w, "    %s %8s  %s\n",
						langStyle.Render(fmt.Sprintf("%-8s", r.Lang)), humanSize(r.Size), helpStyle.Render(r.MIME))
				}
				return nil
			})
		},
	}
}

func newDumpCmd(a *app) *cobra.Command {
	var (
		lang    string
		outFile string
		raw     bool
	)
	cmd := &cobra.Command{
		Use:   "dump TYPE NAME",
		Short: "Write the bytes of one resource",
		Long: `Without --lang-id the language is chosen by the fallback search, driven by the
--lang list when one is configured. Output to a terminal is shown as a hex dump
unless --raw is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.module()
			if err != nil {
				return err
			}
			typ, name := resource.ParseID(args[0]), resource.ParseName(args[1])

			var data []byte
			if lang != "" {
				l, perr := memmodule.ParseLang(lang)
				if perr != nil {
					return perr
				}
				data, err = loader.ReadAllLanguage(m, typ, name, l)
			} else {
				data, err = loader.ReadAll(a.context(cmd.Context()), m, typ, name)
			}
			if err != nil {
				return err
			}

			if outFile != "" {
				a.log.Info("writing resource", zap.String("path", outFile), zap.Int("bytes", len(data)))
				return os.WriteFile(outFile, data, 0o644)
			}
			w := cmd.OutOrStdout()
			if !raw && isTerminal(w) {
				_, err = io.WriteString(w, hex.Dump(data))
				return err
			}
			_, err = w.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&lang, "lang-id", "", "exact language: locale name, 0x0409, 1033 or neutral")
	cmd.Flags().StringVarP(&outFile, "out", "O", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&raw, "raw", false, "write raw bytes even to a terminal")
	return cmd
}

type stringRecord struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

func newStringsCmd(a *app) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "strings",
		Short: "Decode the module's string tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.module()
			if err != nil {
				return err
			}

			var exact *resource.LangID
			if lang != "" {
				l, err := memmodule.ParseLang(lang)
				if err != nil {
					return err
				}
				exact = &l
			}

			typ := resource.String.ID()
			blocks, err := resdir.CollectNames(m, typ)
			if err != nil {
				return err
			}

			recs := []stringRecord{}
			for _, block := range blocks {
				var data []byte
				if exact != nil {
					data, err = loader.ReadAllLanguage(m, typ, block, *exact)
					if resourceMissing(err) {
						continue
					}
				} else {
					data, err = loader.ReadAll(a.context(cmd.Context()), m, typ, block)
				}
				if err != nil {
					return err
				}

				decoded, err := decodeBlock(block, data)
				if err != nil {
					a.log.Warn("skipping undecodable string block", zap.Stringer("block", block), zap.Error(err))
					continue
				}
				recs = append(recs, decoded...)
			}

			return emit(cmd.OutOrStdout(), a.cfg.Output, recs, func(w io.Writer) error {
				for _, r := range recs {
					fmt.Fprintf(w, "%s %s\n", nameStyle.Render(fmt.Sprintf("%8s", r.ID)), strconv.Quote(r.Text))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang-id", "", "exact language: locale name, 0x0409, 1033 or neutral")
	return cmd
}

// decodeBlock turns one RT_STRING block into records. Numbered blocks map
// to string ids; named blocks are listed by slot.
func decodeBlock(block resource.ID, data []byte) ([]stringRecord, error) {
	if n, ok := block.Number(); ok && n > 0 && n <= 0x1000 {
		strs, err := strtable.Strings(uint16(n), data)
		if err != nil {
			return nil, err
		}
		recs := make([]stringRecord, 0, len(strs))
		for _, id := range slices.Sorted(maps.Keys(strs)) {
			recs = append(recs, stringRecord{ID: strconv.Itoa(int(id)), Text: strs[id]})
		}
		return recs, nil
	}

	strs, err := strtable.Decode(data)
	if err != nil {
		return nil, err
	}
	var recs []stringRecord
	for i, s := range strs {
		if s != "" {
			recs = append(recs, stringRecord{ID: fmt.Sprintf("%s[%d]", block, i), Text: s})
		}
	}
	return recs, nil
}

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect preferred UI languages",
		Long: `With --fixture the fixture's default preference list is used. Otherwise the
commands act on the calling thread's list; a change made by set lasts only for
this process.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the preferred UI languages, most preferred first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acc, err := a.preferences()
			if err != nil {
				return err
			}
			var prefs []string
			if err := withThread(func() (err error) {
				prefs, err = acc.Get()
				return err
			}); err != nil {
				return err
			}
			return printPrefs(cmd.OutOrStdout(), a.cfg.Output, prefs)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [LANG...]",
		Short: "Replace the preferred UI languages and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := a.preferences()
			if err != nil {
				return err
			}
			var prefs []string
			if err := withThread(func() (err error) {
				if err = acc.Set(args); err != nil {
					return err
				}
				prefs, err = acc.Get()
				return err
			}); err != nil {
				return err
			}
			return printPrefs(cmd.OutOrStdout(), a.cfg.Output, prefs)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check LANG...",
		Short: "Validate language names and print their canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canon := make([]string, len(args))
			for i, name := range args {
				tag, err := langpref.Parse(name)
				if err != nil {
					return err
				}
				canon[i] = tag.String()
			}
			return printPrefs(cmd.OutOrStdout(), a.cfg.Output, canon)
		},
	})
	return cmd
}

// preferences returns the accessor the prefs commands act on.
func (a *app) preferences() (langpref.Accessor, error) {
	if a.fixture != "" {
		if _, err := a.module(); err != nil {
			return nil, err
		}
	}
	return a.prefs, nil
}

func printPrefs(w io.Writer, format string, prefs []string) error {
	if prefs == nil {
		prefs = []string{}
	}
	return emit(w, format, prefs, func(w io.Writer) error {
		for i, p := range prefs {
			fmt.Fprintf(w, "%d. %s\n", i+1, langStyle.Render(p))
		}
		return nil
	})
}

func resourceMissing(err error) bool {
	return errors.Is(err, errors.ErrNotFound)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

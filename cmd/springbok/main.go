package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ralatsdc/springbok-mgl/internal/logging"
	"github.com/ralatsdc/springbok-mgl/pkg/bill"
	"github.com/ralatsdc/springbok-mgl/pkg/crossref"
	"github.com/ralatsdc/springbok-mgl/pkg/malegislature"
	"github.com/ralatsdc/springbok-mgl/pkg/markup"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// refinerFlagSpec ties a command-line flag to a refiner group on the
// search page and the query field the search endpoint expects.
type refinerFlagSpec struct {
	flagName      string
	groupFragment string
	field         string
}

var refinerFlagSpecs = []refinerFlagSpec{
	{"general-court", "Court", malegislature.FieldGeneralCourt},
	{"branch", "Branch", malegislature.FieldBranch},
	{"sponsor-legislator", "Legislator", malegislature.FieldSponsorLegislator},
	{"sponsor-committee", "Committee", malegislature.FieldSponsorCommittee},
	{"sponsor-other", "Other", malegislature.FieldSponsorOther},
	{"document-type", "Document", malegislature.FieldDocumentType},
}

func main() {
	var configPath string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "springbok",
		Short: "Massachusetts General Laws bill markup",
		Long: `Springbok reads Massachusetts legislature bills and produces marked-up
copies of the General Laws sections each bill amends.

It searches and downloads bill text from malegislature.gov, segments the
bill into sections, classifies each section's amendment type, resolves
the chapters and sections of the General Laws the bill references, and
writes asciidoc documents showing struck text, inserted text, and
repeals inline.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(searchCmd(&configPath, &logLevel))
	rootCmd.AddCommand(downloadCmd(&configPath, &logLevel))
	rootCmd.AddCommand(markupCmd(&configPath, &logLevel))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, builds the logger, and constructs the
// malegislature client shared by all subcommands.
func setup(configPath, logLevel string) (cliConfig, *logging.Logger, *malegislature.Client, error) {
	config, err := loadCLIConfig(configPath)
	if err != nil {
		return cliConfig{}, nil, nil, err
	}
	if logLevel != "" {
		config.LogLevel = logLevel
	}

	logger, err := logging.New(logging.Config{Level: config.LogLevel})
	if err != nil {
		return cliConfig{}, nil, nil, fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}

	client, err := malegislature.NewClient(config.clientConfig(), logger)
	if err != nil {
		return cliConfig{}, nil, nil, err
	}
	return config, logger, client, nil
}

func searchCmd(configPath, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [search-term]",
		Short: "Search legislation, optionally refined",
		Long: `Search legislation on malegislature.gov.

Refiner flags narrow the search. Pass the literal value "list" to a
refiner flag to print that group's available keys.

Example:
  springbok search "motor vehicles"
  springbok search --general-court 192 --document-type Bill transportation
  springbok search --sponsor-legislator list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _, client, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			searchTerm := ""
			if len(args) > 0 {
				searchTerm = args[0]
			}

			if !cmd.Flags().Changed("general-court") && config.GeneralCourt != "" {
				if err := cmd.Flags().Set("general-court", config.GeneralCourt); err != nil {
					return err
				}
			}

			refinements, listed, err := resolveRefinements(cmd, client)
			if err != nil {
				return err
			}
			if listed {
				return nil
			}

			entries, err := client.Search(malegislature.SearchURL(searchTerm, refinements))
			if err != nil {
				return err
			}

			for _, entry := range entries {
				fmt.Printf("%-10s %s\n", entry.BillNumber, entry.Summary)
				fmt.Printf("           sponsor: %s\n", entry.Sponsor)
				fmt.Printf("           %s\n", entry.BillURL)
			}
			fmt.Printf("\n%d results\n", len(entries))
			return nil
		},
	}

	for _, spec := range refinerFlagSpecs {
		cmd.Flags().String(spec.flagName, "", fmt.Sprintf("refine by %s (or \"list\")", strings.ReplaceAll(spec.flagName, "-", " ")))
	}
	return cmd
}

// resolveRefinements turns refiner flags into search refinements by
// scraping the search page's refiner groups. A flag given the value
// "list" prints the group's keys instead; listed reports whether any
// flag did so.
func resolveRefinements(cmd *cobra.Command, client *malegislature.Client) ([]malegislature.Refinement, bool, error) {
	var selected []refinerFlagSpec
	values := make(map[string]string)
	for _, spec := range refinerFlagSpecs {
		value, _ := cmd.Flags().GetString(spec.flagName)
		if value != "" {
			selected = append(selected, spec)
			values[spec.flagName] = value
		}
	}
	if len(selected) == 0 {
		return nil, false, nil
	}

	refinerMap, err := client.ScrapeRefiners()
	if err != nil {
		return nil, false, err
	}

	var refinements []malegislature.Refinement
	var listed bool
	for _, spec := range selected {
		group, found := refinerMap.Group(spec.groupFragment)
		if !found {
			return nil, false, fmt.Errorf("refiner group for --%s not found on search page", spec.flagName)
		}

		value := values[spec.flagName]
		if value == "list" {
			fmt.Printf("%s:\n", group.Label)
			for _, entry := range group.Entries {
				fmt.Printf("  %-30s %s\n", entry.Key, entry.Label)
			}
			listed = true
			continue
		}

		entry, found := group.Entry(value)
		if !found {
			return nil, false, fmt.Errorf("unknown --%s value %q (use \"list\" to see keys)", spec.flagName, value)
		}
		refinements = append(refinements, malegislature.Refinement{Field: spec.field, Token: entry.Token})
	}
	return refinements, listed, nil
}

func downloadCmd(configPath, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <bill-number>",
		Short: "Download a bill's text",
		Long: `Download the text of a bill by its number (e.g. H3979) and write it to
a file, one text fragment per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			billNumber := args[0]
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = billNumber + ".txt"
			}

			fragments, err := fetchBillFragments(client, billNumber)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, []byte(strings.Join(fragments, "\n")), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("Wrote %d fragments to %s\n", len(fragments), output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file (default <bill-number>.txt)")
	return cmd
}

func markupCmd(configPath, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markup <bill-number>",
		Short: "Mark up the law sections a bill amends",
		Long: `Run the full pipeline for a bill: download its text, segment it into
sections, resolve the General Laws sections it references, download
those law sections, and write one asciidoc file per law section with
strikes, insertions, and repeals marked inline.

Example:
  springbok markup H3979 --output-dir out
  springbok markup H3979 --render`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, client, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			billNumber := args[0]
			outputDir, _ := cmd.Flags().GetString("output-dir")
			if outputDir == "" {
				outputDir = config.OutputDir
			}
			render, _ := cmd.Flags().GetBool("render")

			fragments, err := fetchBillFragments(client, billNumber)
			if err != nil {
				return err
			}

			segmenter := bill.NewSegmenter(logger)
			billSections := segmenter.Segment(fragments)
			fmt.Println(segmenter.CountSectionTypes(billSections))

			sectionsByNumber := make(map[string]bill.Section, len(billSections))
			for _, billSection := range billSections {
				sectionsByNumber[billSection.Number] = billSection
			}

			index := crossref.Build(billSections)
			lawSections := client.FetchLawSections(index)
			if skipped := len(index.Requests()) - len(lawSections); skipped > 0 {
				fmt.Printf("Skipped %d law sections that could not be fetched\n", skipped)
			}

			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
			}

			engine := markup.NewEngine(logger)
			report := &markup.Report{}
			var written int
			for _, lawSection := range lawSections {
				var amendingSections []bill.Section
				for _, number := range lawSection.BillSectionNumbers {
					if billSection, found := sectionsByNumber[number]; found {
						amendingSections = append(amendingSections, billSection)
					}
				}

				marked, conditions := engine.Annotate(lawSection.LawKey, lawSection.Text, amendingSections)
				report.Add(conditions...)
				if marked == nil {
					continue
				}

				outputPath := filepath.Join(outputDir, markupFileName(lawSection.LawKey))
				if err := os.WriteFile(outputPath, []byte(marked.Text()+"\n"), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outputPath, err)
				}
				written++

				if render {
					if err := renderAsciidoc(outputPath); err != nil {
						return err
					}
				}
			}

			fmt.Println(report)
			fmt.Printf("Wrote %d marked-up law sections to %s/\n", written, outputDir)
			return nil
		},
	}

	cmd.Flags().StringP("output-dir", "o", "", "output directory for .adoc files")
	cmd.Flags().Bool("render", false, "render each .adoc file with asciidoctor")
	return cmd
}

// fetchBillFragments locates a bill by number via search and downloads
// its text fragments.
func fetchBillFragments(client *malegislature.Client, billNumber string) ([]string, error) {
	entries, err := client.Search(malegislature.SearchURL(billNumber, nil))
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if normalizeBillNumber(entry.BillNumber) == normalizeBillNumber(billNumber) {
			return client.BillTextFragments(entry.BillURL)
		}
	}
	return nil, fmt.Errorf("bill %s not found", billNumber)
}

// normalizeBillNumber folds "H.3979" and "h3979" onto the same form so
// the number a user types matches the site's display form.
func normalizeBillNumber(billNumber string) string {
	return strings.ToUpper(strings.ReplaceAll(billNumber, ".", ""))
}

// markupFileName derives a filesystem-safe .adoc file name from a law
// key. Fractional section numbers contain spaces and Unicode fractions,
// so spaces become underscores.
func markupFileName(lawKey string) string {
	return strings.ReplaceAll(lawKey, " ", "_") + ".adoc"
}

func renderAsciidoc(adocPath string) error {
	renderCmd := exec.Command("asciidoctor", adocPath)
	renderCmd.Stdout = os.Stdout
	renderCmd.Stderr = os.Stderr
	if err := renderCmd.Run(); err != nil {
		return fmt.Errorf("asciidoctor failed for %s: %w", adocPath, err)
	}
	return nil
}

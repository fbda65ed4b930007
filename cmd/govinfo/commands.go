package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openfederal/govinfo-client/pkg/export"
	"github.com/openfederal/govinfo-client/pkg/govinfo"
)

var (
	flagCollection string
	flagStartDate  string
	flagEndDate    string
	flagOut        string
	flagStripHTML  bool
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the collections exposed by the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		collections, err := svc.Collections(cmd.Context())
		if err != nil {
			return err
		}

		for _, c := range collections {
			fmt.Printf("%-12s %-50s packages=%d granules=%d\n",
				c.CollectionCode, c.CollectionName, c.PackageCount, c.GranuleCount)
		}
		return nil
	},
}

var publishedCmd = &cobra.Command{
	Use:   "published",
	Short: "Fetch all packages published in a date range, optionally to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, pageSize, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		records, err := svc.FetchAllPublished(cmd.Context(), govinfo.PublishedParams{
			Collection: flagCollection,
			StartDate:  flagStartDate,
			EndDate:    flagEndDate,
			PageSize:   pageSize,
		})
		if err != nil {
			return err
		}

		if flagOut != "" {
			return export.WritePackagesCSV(flagOut, records)
		}

		for _, r := range records {
			fmt.Printf("%s\t%s\t%s\n", r.PackageID, r.DateIssued, r.Title)
		}
		return nil
	},
}

var packageCmd = &cobra.Command{
	Use:   "package <packageId>",
	Short: "Show metadata and download links for one package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		summary, err := svc.PackageSummaryByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printJSON(summary)
	},
}

var granulesCmd = &cobra.Command{
	Use:   "granules <packageId>",
	Short: "List all granules of a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, pageSize, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		granules, err := svc.AllGranules(cmd.Context(), args[0], pageSize)
		if err != nil {
			return err
		}

		for _, g := range granules {
			fmt.Printf("%s\t%s\t%s\n", g.GranuleID, g.GranuleClass, g.Title)
		}
		return nil
	},
}

var granuleCmd = &cobra.Command{
	Use:   "granule <packageId> <granuleId>",
	Short: "Show metadata for one granule of a package",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		summary, err := svc.GranuleSummaryByID(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		return printJSON(summary)
	},
}

var relatedCmd = &cobra.Command{
	Use:   "related <accessId>",
	Short: "Fetch the related-content graph for an access id, optionally to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		edges, err := svc.RelatedEdges(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if flagOut != "" {
			return export.WriteEdgesCSV(flagOut, edges)
		}

		for _, e := range edges {
			fmt.Printf("%s\t%s\t%s\t%s\n", e.AccessID, e.Relationship, e.Collection, e.Link)
		}
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "Download a document body to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagOut == "" {
			return fmt.Errorf("--out is required for download")
		}

		svc, _, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		n, err := export.DownloadText(cmd.Context(), svc.Client(), args[0], flagOut, flagStripHTML)
		if err != nil {
			return err
		}

		fmt.Printf("wrote %d bytes to %s\n", n, flagOut)
		return nil
	},
}

func init() {
	publishedCmd.Flags().StringVar(&flagCollection, "collection", "", "collection code (e.g. BILLS)")
	publishedCmd.Flags().StringVar(&flagStartDate, "start-date", "", "start date (YYYY-MM-DD, required)")
	publishedCmd.Flags().StringVar(&flagEndDate, "end-date", "", "end date (YYYY-MM-DD, required)")
	publishedCmd.Flags().StringVar(&flagOut, "out", "", "CSV output path (default: print to stdout)")

	relatedCmd.Flags().StringVar(&flagOut, "out", "", "CSV output path (default: print to stdout)")

	downloadCmd.Flags().StringVar(&flagOut, "out", "", "output file path (required)")
	downloadCmd.Flags().BoolVar(&flagStripHTML, "strip-html", false, "strip HTML markup, keep visible text")
}

// printJSON pretty-prints a value to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

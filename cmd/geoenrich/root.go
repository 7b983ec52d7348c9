package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AttenSteph/geoenrich"
	geoenrichprom "github.com/AttenSteph/geoenrich/prometheus"
)

type rootFlags struct {
	input         string
	output        string
	cityDB        string
	asnDB         string
	ipColumn      string
	outputColumn  string
	chunkSize     int
	encoding      string
	delimiter     string
	quote         string
	naFilter      bool
	keepInvalid   bool
	invalidMarker string
	configFile    string
	metricsListen string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "geoenrich",
		Short: "Enrich a CSV with a GeoIP column using local IP databases",
		Long: `Resolves the IP address column of a delimited file against a local
geolocation database and inserts one derived column immediately to its right.

Supported databases: MaxMind GeoLite2/GeoIP2 City (.mmdb, required) with an
optional GeoLite2 ASN database, or an IP2Location city database (.bin).
Private, loopback, link-local, and reserved addresses are skipped cleanly.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.input, "in", "", "input CSV path")
	f.StringVar(&flags.output, "out", "", "output CSV path (default: <input>.geoip.csv)")
	f.StringVar(&flags.cityDB, "db", "", "path to the City database (.mmdb or .bin)")
	f.StringVar(&flags.asnDB, "asn-db", "", "path to the ASN database (.mmdb, optional)")
	f.StringVar(&flags.ipColumn, "ip-col", "", "name of the IP column (default: auto-detect)")
	f.StringVar(&flags.outputColumn, "geoip-col", geoenrich.DefaultOutputColumn, "name of the inserted column")
	f.IntVar(&flags.chunkSize, "chunksize", 0, "process the input in chunks of this many rows (0 = whole file)")
	f.StringVar(&flags.encoding, "encoding", "", "text encoding by IANA name (default: UTF-8)")
	f.StringVar(&flags.delimiter, "sep", ",", "field delimiter")
	f.StringVar(&flags.quote, "quotechar", `"`, "quote character")
	f.BoolVar(&flags.naFilter, "na-filter", false, "render NA-like cells (NA, N/A, NaN, null) as empty")
	f.BoolVar(&flags.keepInvalid, "keep-invalid", false, "write a marker for non-public IPs instead of an empty cell")
	f.StringVar(&flags.invalidMarker, "invalid-marker", geoenrich.DefaultInvalidMarker, "marker used with --keep-invalid")
	f.StringVar(&flags.configFile, "config", "", "YAML file with flag defaults")
	f.StringVar(&flags.metricsListen, "metrics-listen", "", "serve Prometheus metrics on this address during the run")
	f.BoolVar(&flags.verbose, "verbose", false, "enable debug logging")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func run(cmd *cobra.Command, flags *rootFlags) error {
	if flags.configFile != "" {
		fileCfg, err := loadFileConfig(flags.configFile)
		if err != nil {
			return err
		}
		applyFileConfig(cmd, flags, fileCfg)
	}

	if flags.input == "" {
		return fmt.Errorf("no input path; use --in")
	}
	if flags.cityDB == "" {
		return fmt.Errorf("no city database path; use --db")
	}

	delimiter, err := singleRune("--sep", flags.delimiter)
	if err != nil {
		return err
	}
	quote, err := singleRune("--quotechar", flags.quote)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	opts := []geoenrich.Option{
		geoenrich.WithOutputColumn(flags.outputColumn),
		geoenrich.WithChunkSize(flags.chunkSize),
		geoenrich.WithDelimiter(delimiter),
		geoenrich.WithQuote(quote),
		geoenrich.WithEncoding(flags.encoding),
		geoenrich.WithNAFilter(flags.naFilter),
		geoenrich.MarkInvalid(flags.keepInvalid),
		geoenrich.WithInvalidMarker(flags.invalidMarker),
		geoenrich.WithLogger(logger),
	}
	if flags.ipColumn != "" {
		opts = append(opts, geoenrich.WithColumn(flags.ipColumn))
	}

	if flags.metricsListen != "" {
		metrics, err := geoenrichprom.New()
		if err != nil {
			return err
		}
		opts = append(opts, geoenrich.WithMetrics(metrics))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: flags.metricsListen, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener failed", "error", err)
			}
		}()
		defer server.Close()
	}

	resolver, closeResolver, err := openResolver(flags.cityDB, flags.asnDB)
	if err != nil {
		return err
	}
	defer closeResolver()

	enricher, err := geoenrich.New(resolver, opts...)
	if err != nil {
		return err
	}

	in, err := os.Open(flags.input)
	if err != nil {
		return fmt.Errorf("open input %q: %w", flags.input, err)
	}
	defer in.Close()

	outPath := flags.output
	if outPath == "" {
		outPath = deriveOutputPath(flags.input)
	}

	// Creation is deferred until the first write so configuration errors
	// surfaced during processing setup leave no output file behind.
	out := &lazyFile{path: outPath}
	defer out.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := enricher.Process(ctx, in, out)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output %q: %w", outPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote: %s (%d rows, %d public, %d found)\n",
		outPath, stats.Rows, stats.Public, stats.Found)

	return nil
}

// openResolver picks the city backend by file extension: .bin selects
// IP2Location, anything else the MaxMind mmdb reader. An ASN database is
// always mmdb.
func openResolver(cityPath, asnPath string) (geoenrich.Resolver, func() error, error) {
	if strings.EqualFold(filepath.Ext(cityPath), ".bin") {
		city, err := geoenrich.OpenIP2Location(cityPath)
		if err != nil {
			return nil, nil, err
		}
		if asnPath == "" {
			return geoenrich.CombineResolvers(city, nil), city.Close, nil
		}

		asn, err := geoenrich.OpenMaxMindASN(asnPath)
		if err != nil {
			city.Close()
			return nil, nil, err
		}
		closer := func() error {
			return errors.Join(city.Close(), asn.Close())
		}
		return geoenrich.CombineResolvers(city, asn), closer, nil
	}

	resolver, err := geoenrich.OpenMaxMind(cityPath, asnPath)
	if err != nil {
		return nil, nil, err
	}
	return resolver, resolver.Close, nil
}

func deriveOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".geoip.csv"
}

func singleRune(flag, value string) (rune, error) {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || size != len(value) {
		return 0, fmt.Errorf("%s must be a single character, got %q", flag, value)
	}
	return r, nil
}

// lazyFile defers file creation until the first write.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.path)
		if err != nil {
			return 0, err
		}
		l.f = f
	}
	return l.f.Write(p)
}

func (l *lazyFile) Sync() error {
	if l.f == nil {
		return nil
	}
	return l.f.Sync()
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil
	return f.Close()
}

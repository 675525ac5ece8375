package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/djcass44/deb-order/cmd/cache"
	"github.com/djcass44/deb-order/internal/report"
	"github.com/djcass44/deb-order/pkg/airutil"
	dov1 "github.com/djcass44/deb-order/pkg/api/v1"
	"github.com/djcass44/deb-order/pkg/debian"
	"github.com/djcass44/deb-order/pkg/downloader"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/yaml"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "print package sources in dependency order",
	RunE:  order,
}

const (
	flagConfig     = "config"
	flagOS         = "os"
	flagDistro     = "distro"
	flagRepository = "repository"
	flagComponent  = "component"
	flagArch       = "arch"
	flagIndex      = "index"
	flagOutput     = "output"
	flagTimeout    = "timeout"
)

func init() {
	addOrderFlags(orderCmd.Flags())

	_ = orderCmd.MarkFlagFilename(flagConfig, ".yaml", ".yml", ".json")
	_ = orderCmd.MarkFlagDirname(cache.FlagCacheDir)
}

func addOrderFlags(flags *pflag.FlagSet) {
	flags.StringP(flagConfig, "c", "", "path to a configuration file")
	flags.StringP(flagOS, "o", "", "operating system in the repository (e.g. ubuntu)")
	flags.StringP(flagDistro, "d", "", "distribution to read (e.g. focal)")
	flags.String(flagRepository, debian.DefaultRepository, "base url of the repository")
	flags.String(flagComponent, debian.DefaultComponent, "repository component")
	flags.String(flagArch, debian.DefaultArch, "package architecture")
	flags.String(flagIndex, "", "read the index from this path or url instead of the repository")
	flags.String(flagOutput, string(dov1.OutputText), "output format (text, json, control)")
	flags.Duration(flagTimeout, time.Minute, "timeout for downloading the index")
	flags.String(cache.FlagCacheDir, "", "cache directory (defaults to user cache dir)")
}

func order(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	configPath, _ := cmd.Flags().GetString(flagConfig)
	timeout, _ := cmd.Flags().GetDuration(flagTimeout)
	cacheDir, _ := cmd.Flags().GetString(cache.FlagCacheDir)

	var cfg dov1.Order
	if configPath != "" {
		var err error
		cfg, err = readConfig(configPath)
		if err != nil {
			return err
		}
	}
	applyFlags(cmd.Flags(), &cfg.Spec)

	if cfg.Spec.Index == "" && (cfg.Spec.OS == "" || cfg.Spec.Distro == "") {
		return errors.New("--os and --distro are required unless --index is set")
	}

	var retriever debian.Retriever
	if cfg.Spec.Index != "" {
		src, err := airutil.ExpandEnv(cfg.Spec.Index)
		if err != nil {
			return err
		}
		dl, err := downloader.NewDownloader(cache.Dir(cacheDir))
		if err != nil {
			return err
		}
		retriever = &debian.FileSource{Src: src, Downloader: dl}
	} else {
		repoURL, err := airutil.ExpandEnv(cfg.Spec.Repository.URL)
		if err != nil {
			return err
		}
		retriever = debian.NewRepository(repoURL, cfg.Spec.Repository.Component, cfg.Spec.Repository.Arch, &http.Client{Timeout: timeout})
	}
	log.V(1).Info("ordering packages", "os", cfg.Spec.OS, "distro", cfg.Spec.Distro, "index", cfg.Spec.Index)

	res, err := report.Run(cmd.Context(), retriever, cfg.Spec.OS, cfg.Spec.Distro)
	if err != nil {
		return err
	}

	// render everything before printing anything so that
	// a failure never leaves partial output behind
	var buf bytes.Buffer
	if err := report.Write(&buf, res, cfg.Spec.Output); err != nil {
		return err
	}
	_, err = buf.WriteTo(cmd.OutOrStdout())
	return err
}

// applyFlags copies flag values into the spec. Flags that
// were explicitly set always win, otherwise they only fill
// in what the configuration file left empty.
func applyFlags(flags *pflag.FlagSet, spec *dov1.OrderSpec) {
	set := func(name string, dst *string) {
		v, _ := flags.GetString(name)
		if flags.Changed(name) || *dst == "" {
			*dst = v
		}
	}
	set(flagOS, &spec.OS)
	set(flagDistro, &spec.Distro)
	set(flagRepository, &spec.Repository.URL)
	set(flagComponent, &spec.Repository.Component)
	set(flagArch, &spec.Repository.Arch)
	set(flagIndex, &spec.Index)

	output := string(spec.Output)
	set(flagOutput, &output)
	spec.Output = dov1.OutputFormat(output)
}

func readConfig(s string) (dov1.Order, error) {
	f, err := os.Open(s)
	if err != nil {
		return dov1.Order{}, err
	}
	defer f.Close()

	var config dov1.Order
	if err := yaml.NewYAMLOrJSONDecoder(f, 4).Decode(&config); err != nil {
		return dov1.Order{}, err
	}
	return config, nil
}

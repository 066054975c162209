package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/assetkit/pkg/attachment"
	"github.com/dmitrymomot/assetkit/pkg/processor"
	"github.com/dmitrymomot/assetkit/pkg/storage"
)

type classification struct {
	Input string `yaml:"input"`
	MIME  string `yaml:"mime"`
	Type  string `yaml:"type"`
}

func newClassifyCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <mime-type|file>...",
		Short: "Classify MIME types or files into asset types",
		Long: `Classify MIME types or files into asset types.

Arguments naming an existing file are sniffed by content; anything else is
treated as a MIME type.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := c.kit(cmd)
			if err != nil {
				return err
			}

			out := make([]classification, 0, len(args))
			for _, arg := range args {
				mime := arg
				if data, err := os.ReadFile(arg); err == nil {
					mime = storage.DetectBytes(data)
				}
				out = append(out, classification{Input: arg, MIME: mime, Type: kit.Classify(mime)})
			}
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
}

type typeInfo struct {
	Name      string   `yaml:"name"`
	MIMETypes []string `yaml:"mime_types,omitempty"`
}

func newTypesCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List known asset types in classification order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kit, err := c.kit(cmd)
			if err != nil {
				return err
			}

			reg := kit.Registry()
			names := reg.KnownTypes()
			out := make([]typeInfo, 0, len(names))
			for _, name := range names {
				out = append(out, typeInfo{Name: name, MIMETypes: reg.MIMETypes(name)})
			}
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
}

type configView struct {
	Storage         string            `yaml:"storage"`
	Path            string            `yaml:"path"`
	URL             string            `yaml:"url,omitempty"`
	Bucket          string            `yaml:"bucket,omitempty"`
	Container       string            `yaml:"container,omitempty"`
	Region          string            `yaml:"region,omitempty"`
	Endpoint        string            `yaml:"endpoint,omitempty"`
	HostAlias       string            `yaml:"host_alias,omitempty"`
	PathStyle       bool              `yaml:"path_style,omitempty"`
	ServiceNet      bool              `yaml:"service_net,omitempty"`
	Whiny           bool              `yaml:"whiny"`
	WhinyThumbnails bool              `yaml:"whiny_thumbnails"`
	Credentials     map[string]string `yaml:"credentials,omitempty"`
	Processors      []string          `yaml:"processors"`
	Styles          []string          `yaml:"styles"`
}

func newConfigCommand(c *cli) *cobra.Command {
	var (
		backend     string
		showSecrets bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved storage configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kit, err := c.kit(cmd)
			if err != nil {
				return err
			}

			cfg := kit.Config()
			if backend != "" {
				if cfg, err = kit.Build(backend, nil); err != nil {
					return err
				}
			}
			return writeYAML(cmd.OutOrStdout(), viewConfig(cfg, showSecrets))
		},
	}
	cmd.Flags().StringVarP(&backend, "backend", "b", "", "backend selector (filesystem, s3, cloudFiles) instead of the configured one")
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print credential values")
	return cmd
}

func viewConfig(cfg *attachment.Config, showSecrets bool) configView {
	creds := cfg.Credentials()
	if !showSecrets {
		for k, v := range creds {
			if v != "" && k != attachment.CredServiceNet {
				creds[k] = "********"
			}
		}
	}
	styles := make([]string, 0)
	for _, o := range attachment.ThumbnailOptions(cfg.Styles()) {
		if o.Value != attachment.StyleOriginal {
			styles = append(styles, o.Label)
		}
	}
	return configView{
		Storage:         cfg.Backend().String(),
		Path:            cfg.Path(),
		URL:             cfg.URL(),
		Bucket:          cfg.Bucket(),
		Container:       cfg.Container(),
		Region:          cfg.Region(),
		Endpoint:        cfg.Endpoint(),
		HostAlias:       cfg.HostAlias(),
		PathStyle:       cfg.PathStyle(),
		ServiceNet:      cfg.ServiceNet(),
		Whiny:           cfg.Whiny(),
		WhinyThumbnails: cfg.WhinyThumbnails(),
		Credentials:     creds,
		Processors:      cfg.Processors(),
		Styles:          styles,
	}
}

type styleOption struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

func newStylesCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List thumbnail styles as picker options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kit, err := c.kit(cmd)
			if err != nil {
				return err
			}

			opts := kit.ThumbnailOptions()
			out := make([]styleOption, 0, len(opts))
			for _, o := range opts {
				out = append(out, styleOption{Label: o.Label, Value: o.Value})
			}
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
}

type probeResult struct {
	File   string `yaml:"file"`
	MIME   string `yaml:"mime"`
	Type   string `yaml:"type"`
	Size   int64  `yaml:"size"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Icon   string `yaml:"placeholder,omitempty"`
}

func newProbeCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>...",
		Short: "Detect type, size and image dimensions of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := c.kit(cmd)
			if err != nil {
				return err
			}

			out := make([]probeResult, 0, len(args))
			var errs []error
			for _, file := range args {
				data, err := os.ReadFile(file)
				if err != nil {
					errs = append(errs, fmt.Errorf("probe %s: %w", file, err))
					continue
				}
				mime := storage.DetectBytes(data)
				res := probeResult{
					File: file,
					MIME: mime,
					Type: kit.Classify(mime),
					Size: int64(len(data)),
				}
				res.Width, res.Height = processor.Dimensions(bytes.NewReader(data))
				if kind, ok := attachment.PlaceholderKind(kit.Registry(), mime); ok {
					res.Icon = attachment.PlaceholderDir + kind + "_" + attachment.StyleIcon + ".png"
				}
				out = append(out, res)
			}
			if err := writeYAML(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			return errors.Join(errs...)
		},
	}
}

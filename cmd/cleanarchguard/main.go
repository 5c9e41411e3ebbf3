// Command cleanarchguard checks that the console modules keep their layers
// pointing inwards: presentation and infrastructure may depend on services
// and domain, never the other way round.
package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type config struct {
	Version           int      `yaml:"version"`
	Root              string   `yaml:"root"`
	IgnoreTests       bool     `yaml:"ignore_tests"`
	IgnorePackages    []string `yaml:"ignore_packages"`
	SharedModules     []string `yaml:"shared_modules"`
	AllowedViolations []string `yaml:"allow_violations"`
	Aliases           struct {
		Domain         []string `yaml:"domain"`
		Application    []string `yaml:"application"`
		Interfaces     []string `yaml:"interfaces"`
		Infrastructure []string `yaml:"infrastructure"`
	} `yaml:"aliases"`
}

var (
	defaultDomainAliases         = []string{"domain"}
	defaultApplicationAliases    = []string{"services", "handlers"}
	defaultInterfacesAliases     = []string{"presentation"}
	defaultInfrastructureAliases = []string{"infrastructure"}
)

func main() {
	var (
		configPath = flag.String("config", ".gocleanarch.yml", "path to the layer configuration")
		debug      = flag.Bool("debug", false, "print go-cleanarch debug output")
	)
	flag.Parse()

	log := logrus.New()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to read config")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		log.WithError(err).Fatal("failed to resolve root")
	}

	if *debug {
		cleanarch.Log.SetOutput(os.Stderr)
	}

	validator := cleanarch.NewValidator(layerAliases(cfg))
	ok, errs, err := validator.Validate(root, cfg.IgnoreTests, cfg.IgnorePackages)
	if err != nil {
		log.WithError(err).Fatal("go-cleanarch failed")
	}

	messages := make([]string, 0, len(errs))
	for _, validationErr := range errs {
		messages = append(messages, validationErr.Error())
	}
	violations := filterViolations(messages, cfg)
	if !ok && len(violations) > 0 {
		for _, v := range violations {
			log.Error(v)
		}
		log.Errorf("%d layer violations", len(violations))
		os.Exit(1)
	}
	log.Info("layers ok")
}

func loadConfig(path string) (*config, error) {
	cfg := &config{Version: 1, Root: ".", IgnoreTests: true}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Version != 1 {
		return nil, errors.New("unsupported config version")
	}
	if strings.TrimSpace(cfg.Root) == "" {
		cfg.Root = "."
	}
	return cfg, nil
}

func layerAliases(cfg *config) map[string]cleanarch.Layer {
	aliases := map[string]cleanarch.Layer{}
	applyAliases(aliases, cfg.Aliases.Domain, defaultDomainAliases, cleanarch.LayerDomain)
	applyAliases(aliases, cfg.Aliases.Application, defaultApplicationAliases, cleanarch.LayerApplication)
	applyAliases(aliases, cfg.Aliases.Interfaces, defaultInterfacesAliases, cleanarch.LayerInterfaces)
	applyAliases(aliases, cfg.Aliases.Infrastructure, defaultInfrastructureAliases, cleanarch.LayerInfrastructure)
	return aliases
}

func applyAliases(dst map[string]cleanarch.Layer, custom, defaults []string, layer cleanarch.Layer) {
	candidates := defaults
	if len(custom) > 0 {
		candidates = custom
	}
	for _, alias := range candidates {
		if alias = strings.TrimSpace(alias); alias != "" {
			dst[alias] = layer
		}
	}
}

var crossModulePattern = regexp.MustCompile(`between ([\w-]+) and ([\w-]+) modules`)

// filterViolations drops cross-module findings that involve a shared module
// and anything matching an allowed pattern.
func filterViolations(messages []string, cfg *config) []string {
	shared := make(map[string]struct{}, len(cfg.SharedModules))
	for _, m := range cfg.SharedModules {
		if m = strings.TrimSpace(m); m != "" {
			shared[m] = struct{}{}
		}
	}

	var out []string
	for _, msg := range messages {
		if m := crossModulePattern.FindStringSubmatch(msg); len(m) == 3 {
			_, a := shared[m[1]]
			_, b := shared[m[2]]
			if a || b {
				continue
			}
		}
		if allowed(msg, cfg.AllowedViolations) {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func allowed(msg string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

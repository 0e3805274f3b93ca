package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/assets"
	"github.com/patrickprogramme/srtscribe/internal/fsutil"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 2

// valeur par défaut du tri : 2e champ séparé par "-"
const (
	DefaultSortIndex     = 1
	DefaultSortDelimiter = "-"
)

// LangPlaceholder est remplacé par lang_abbr dans les arguments des critères
const LangPlaceholder = "{lang}"

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	TempDir       string `yaml:"temp_dir"`
	ZippedSubFile string `yaml:"zipped_sub_file"`
	FileToWriteTo string `yaml:"file_to_write_to"`

	// Sélection
	LangAbbr     string          `yaml:"lang_abbr"`
	CriteriaFxns []string        `yaml:"criteria_fxns"`
	CriteriaArgs []CriterionArgs `yaml:"criteria_args"`

	// Tri
	Sort struct {
		Index     int    `yaml:"index"`
		Delimiter string `yaml:"delimiter"`
	} `yaml:"sort"`

	// Transcript
	HeaderFormat    string `yaml:"header_format"`
	Encoding        string `yaml:"encoding"`
	CopyToClipboard bool   `yaml:"copy_to_clipboard"`

	// Outils externes
	Extractor     string   `yaml:"extractor"`
	Prerequisites []string `yaml:"prerequisites"`
	KeepTempDir   bool     `yaml:"keep_temp_dir"`

	ConfigVersion int `yaml:"config_version"`

	// clés des anciennes versions, vidées par la migration
	LegacyPreqs  []string `yaml:"preqs,omitempty"`
	LegacyFileIn string   `yaml:"file_in,omitempty"`

	configFilePath string
}

// CriterionArgs : arguments d'un critère de sélection
// (extracteur, motif recherché, index du segment, délimiteur).
// Dans le YAML : soit un tuple [extractor, match, index, delim], soit une map.
type CriterionArgs struct {
	Extractor string `yaml:"extractor"`
	Match     string `yaml:"match"`
	Index     int    `yaml:"index"`
	Delim     string `yaml:"delim"`
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	// Chemins
	c.TempDir = ""
	c.FileToWriteTo = ""

	// Sélection : uniquement les .srt, langue dans le 3e segment
	c.LangAbbr = ""
	c.CriteriaFxns = []string{"has_suffix", "is_correct_language"}
	c.CriteriaArgs = []CriterionArgs{
		{Extractor: "whole", Match: ".srt", Index: 0, Delim: "-"},
		{Extractor: "extractor", Match: LangPlaceholder, Index: 2, Delim: "-"},
	}

	// Tri
	c.Sort.Index = DefaultSortIndex
	c.Sort.Delimiter = DefaultSortDelimiter

	// Transcript
	c.HeaderFormat = "regular"
	c.Encoding = "utf-8"
	c.CopyToClipboard = false

	// Outils externes
	c.Extractor = "unzip"
	c.Prerequisites = []string{"unzip"}
	c.KeepTempDir = false

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Default retourne la configuration par défaut, normalisée.
func Default() *Config {
	c := defaultConfig()
	c.normalizeConfig()
	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = "srtscribe.yaml"
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, goerr.Wrap(err, "échec de création du fichier de configuration par défaut")
		}
	}

	cfg := defaultConfig()
	// clé absente : fichier antérieur au versionnage, à migrer
	cfg.ConfigVersion = 0

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "lecture du fichier de configuration impossible", goerr.V("path", path))
	}

	// les champs absents conservent les valeurs par défaut
	if err := decode(path, data, cfg); err != nil {
		return nil, goerr.Wrap(err, "analyse du fichier de configuration impossible", goerr.V("path", path))
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, goerr.Wrap(err, "échec de mise à niveau de la configuration")
		}
		cfg.normalizeConfig()
	}

	return cfg, nil
}

// decode choisit le format selon l'extension. Le TOML est ramené au modèle YAML
// pour partager le décodage des tuples de critères.
func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return goerr.Wrap(err, "toml invalide")
		}
		b, err := yaml.Marshal(doc)
		if err != nil {
			return goerr.Wrap(err, "conversion toml -> yaml")
		}
		data = b
	}
	return yaml.Unmarshal(data, cfg)
}

// encode est l'inverse de decode : un fichier .toml reste en TOML.
func encode(path string, cfg *Config) ([]byte, error) {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "encodage yaml")
	}
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		return b, nil
	}
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, goerr.Wrap(err, "conversion yaml -> toml")
	}
	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "encodage toml")
	}
	return out, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return goerr.Wrap(err, "lecture du modèle de configuration embarqué impossible")
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return goerr.Wrap(err, "échec mkdir pour la configuration", goerr.V("dir", filepath.Dir(dstPath)))
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return goerr.Wrap(err, "échec d'écriture du fichier de configuration", goerr.V("path", dstPath))
	}

	slog.Info("fichier de configuration par défaut créé", slog.String("path", dstPath))
	return nil
}

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	if c.TempDir = strings.TrimSpace(c.TempDir); c.TempDir != "" {
		c.TempDir = filepath.Clean(c.TempDir)
	}
	if c.ZippedSubFile = strings.TrimSpace(c.ZippedSubFile); c.ZippedSubFile != "" {
		c.ZippedSubFile = filepath.Clean(c.ZippedSubFile)
	}
	if c.FileToWriteTo = strings.TrimSpace(c.FileToWriteTo); c.FileToWriteTo != "" {
		c.FileToWriteTo = filepath.Clean(c.FileToWriteTo)
	}

	// Trim and normalize strings
	c.LangAbbr = strings.TrimSpace(c.LangAbbr)
	c.HeaderFormat = strings.TrimSpace(strings.ToLower(c.HeaderFormat))
	if c.HeaderFormat == "" {
		c.HeaderFormat = "regular"
	}
	c.Extractor = strings.TrimSpace(strings.ToLower(c.Extractor))
	if c.Extractor == "" {
		c.Extractor = "unzip"
	}
	c.Encoding = strings.TrimSpace(strings.ToLower(c.Encoding))
	if c.Encoding == "" {
		c.Encoding = "utf-8"
	}

	if c.Sort.Index < 0 {
		c.Sort.Index = DefaultSortIndex
	}
	if c.Sort.Delimiter == "" {
		c.Sort.Delimiter = DefaultSortDelimiter
	}

	// noms de programmes : pas de doublons ni de vides
	seen := make(map[string]struct{}, len(c.Prerequisites))
	prereqs := c.Prerequisites[:0]
	for _, p := range c.Prerequisites {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		prereqs = append(prereqs, p)
	}
	c.Prerequisites = prereqs
}

// Path retourne le chemin du fichier de configuration chargé ("" pour Default()).
func (c *Config) Path() string {
	return c.configFilePath
}

// ResolvedCriteriaArgs retourne les arguments des critères avec {lang} remplacé par lang_abbr.
func (c *Config) ResolvedCriteriaArgs() []CriterionArgs {
	out := make([]CriterionArgs, len(c.CriteriaArgs))
	for i, a := range c.CriteriaArgs {
		a.Match = strings.ReplaceAll(a.Match, LangPlaceholder, c.LangAbbr)
		out[i] = a
	}
	return out
}
